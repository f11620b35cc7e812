package models

// Company mirrors the companies table.
type Company struct {
	CompanyID     string `db:"company_id"`
	CanonicalName string `db:"canonical_name"`
	IsActive      bool   `db:"is_active"`
	AuditFields
}

// CompanyMatch mirrors the company_matches table. Matches are owned by the
// upload job that produced them.
type CompanyMatch struct {
	MatchID       string  `db:"match_id"`
	UploadJobID   string  `db:"upload_job_id"`
	OriginalName  string  `db:"original_name"`
	CompanyID     *string `db:"company_id"`
	Confidence    float64 `db:"confidence"`
	IsManualMatch bool    `db:"is_manual_match"`
	AuditFields
}
