package dto

import (
	"time"

	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
)

// ColumnMappingRequest tells the normalizer where each logical field lives in
// the parsed rows. Headers maps field names to header cell text (spreadsheets
// with a header row); Positions maps field names to zero-based cell indexes
// (headerless files and document captures). Exactly one style is expected per
// upload, Headers winning when both are present.
type ColumnMappingRequest struct {
	Headers    map[string]string `json:"headers"`
	Positions  map[string]int    `json:"positions"`
	DateLayout string            `json:"dateLayout"` // Go reference layout, defaults to 2006-01-02
}

// SubmitUploadRequest is the metadata manifest accompanying the uploaded file.
// The file bytes themselves arrive as the multipart "file" part.
type SubmitUploadRequest struct {
	FileKind    string               `json:"fileKind" binding:"required,oneof=SPREADSHEET DOCUMENT"`
	RecordKind  string               `json:"recordKind" binding:"required,oneof=PURCHASE SALE"`
	Mapping     ColumnMappingRequest `json:"mapping" binding:"required"`
	RowPatterns []string             `json:"rowPatterns"` // required for DOCUMENT uploads
	// Overrides pins raw company names to registry IDs, bypassing the matcher.
	Overrides map[string]string `json:"overrides"`
}

// ResolveCompanyMatchRequest manually resolves an unresolved company match.
type ResolveCompanyMatchRequest struct {
	MatchID   string `json:"matchID" binding:"required"`
	CompanyID string `json:"companyID" binding:"required"`
}

// RowOutcomeResponse defines the data returned for one ingested row.
type RowOutcomeResponse struct {
	RowIndex      int     `json:"rowIndex"`
	Status        string  `json:"status"`
	TransactionID *string `json:"transactionID,omitempty"`
	ErrorText     string  `json:"errorText,omitempty"`
}

// CompanyMatchResponse defines the data returned for a company match.
type CompanyMatchResponse struct {
	MatchID       string  `json:"matchID"`
	OriginalName  string  `json:"originalName"`
	CompanyID     *string `json:"companyID"`
	Confidence    float64 `json:"confidence"`
	IsManualMatch bool    `json:"isManualMatch"`
	Resolved      bool    `json:"resolved"`
}

// UploadJobResponse defines the data returned for an upload job.
type UploadJobResponse struct {
	UploadJobID   string                 `json:"uploadJobID"`
	FileName      string                 `json:"fileName"`
	FileKind      string                 `json:"fileKind"`
	ByteSize      int64                  `json:"byteSize"`
	UploadedBy    string                 `json:"uploadedBy"`
	SubmittedAt   time.Time              `json:"submittedAt"`
	Status        string                 `json:"status"`
	ProcessedRows int                    `json:"processedRows"`
	FailedRows    int                    `json:"failedRows"`
	ErrorMessages []string               `json:"errorMessages,omitempty"`
	RowOutcomes   []RowOutcomeResponse   `json:"rowOutcomes"`
	Matches       []CompanyMatchResponse `json:"matches"`
}

// ToRowOutcomeResponse converts a domain.RowOutcome to RowOutcomeResponse DTO
func ToRowOutcomeResponse(o *domain.RowOutcome) RowOutcomeResponse {
	return RowOutcomeResponse{
		RowIndex:      o.RowIndex,
		Status:        string(o.Status),
		TransactionID: o.TransactionID,
		ErrorText:     o.ErrorText,
	}
}

// ToCompanyMatchResponse converts a domain.CompanyMatch to CompanyMatchResponse DTO
func ToCompanyMatchResponse(m *domain.CompanyMatch) CompanyMatchResponse {
	return CompanyMatchResponse{
		MatchID:       m.MatchID,
		OriginalName:  m.OriginalName,
		CompanyID:     m.CompanyID,
		Confidence:    m.Confidence,
		IsManualMatch: m.IsManualMatch,
		Resolved:      m.Resolved(),
	}
}

// ToUploadJobResponse converts a domain.UploadJob to UploadJobResponse DTO
func ToUploadJobResponse(job *domain.UploadJob) UploadJobResponse {
	outcomes := make([]RowOutcomeResponse, len(job.RowOutcomes))
	for i := range job.RowOutcomes {
		outcomes[i] = ToRowOutcomeResponse(&job.RowOutcomes[i])
	}
	matches := make([]CompanyMatchResponse, len(job.Matches))
	for i := range job.Matches {
		matches[i] = ToCompanyMatchResponse(&job.Matches[i])
	}
	return UploadJobResponse{
		UploadJobID:   job.UploadJobID,
		FileName:      job.FileName,
		FileKind:      string(job.FileKind),
		ByteSize:      job.ByteSize,
		UploadedBy:    job.UploadedBy,
		SubmittedAt:   job.SubmittedAt,
		Status:        string(job.Status),
		ProcessedRows: job.ProcessedRows,
		FailedRows:    job.FailedRows,
		ErrorMessages: job.ErrorMessages,
		RowOutcomes:   outcomes,
		Matches:       matches,
	}
}
