package domain

// Company is one entry of the canonical company registry.
// The matcher resolves free-text names from uploaded files against this set.
type Company struct {
	CompanyID     string `json:"companyID"`     // Primary Key (e.g., UUID)
	CanonicalName string `json:"canonicalName"` // Authoritative display name
	IsActive      bool   `json:"isActive"`
	AuditFields
}

// CompanyMatch is the outcome of resolving a free-text company name.
// A nil/empty CompanyID means the name could not be resolved and needs
// manual resolution before any inventory mutation may reference it.
type CompanyMatch struct {
	MatchID       string  `json:"matchID"`
	UploadJobID   string  `json:"uploadJobID"`
	OriginalName  string  `json:"originalName"`
	CompanyID     *string `json:"companyID,omitempty"` // nil when unresolved
	Confidence    float64 `json:"confidence"`          // in [0,1]
	IsManualMatch bool    `json:"isManualMatch"`
	AuditFields
}

// Resolved reports whether the match points at a canonical company.
func (m CompanyMatch) Resolved() bool {
	return m.CompanyID != nil && *m.CompanyID != ""
}
