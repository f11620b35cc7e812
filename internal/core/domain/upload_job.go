package domain

import "time"

// FileKind distinguishes the two supported upload payloads.
type FileKind string

const (
	FileKindSpreadsheet FileKind = "SPREADSHEET"
	FileKindDocument    FileKind = "DOCUMENT" // pre-extracted PDF text
)

// UploadStatus is the lifecycle state of an UploadJob.
// Transitions: PENDING -> PROCESSING -> {COMPLETED, FAILED}.
type UploadStatus string

const (
	UploadPending    UploadStatus = "PENDING"
	UploadProcessing UploadStatus = "PROCESSING"
	UploadCompleted  UploadStatus = "COMPLETED"
	UploadFailed     UploadStatus = "FAILED"
)

// IsTerminal reports whether no further transition is allowed.
func (s UploadStatus) IsTerminal() bool {
	return s == UploadCompleted || s == UploadFailed
}

// CanTransitionTo enforces the job state machine.
func (s UploadStatus) CanTransitionTo(next UploadStatus) bool {
	switch s {
	case UploadPending:
		return next == UploadProcessing || next == UploadFailed
	case UploadProcessing:
		return next == UploadCompleted || next == UploadFailed
	default:
		return false
	}
}

// UploadJob represents one file's end-to-end ingestion attempt.
// It exclusively owns its row outcomes and company matches.
type UploadJob struct {
	UploadJobID   string       `json:"uploadJobID"` // Primary Key (UUID)
	FileName      string       `json:"fileName"`
	FileKind      FileKind     `json:"fileKind"`
	ByteSize      int64        `json:"byteSize"`
	UploadedBy    string       `json:"uploadedBy"` // actor identity
	SubmittedAt   time.Time    `json:"submittedAt"`
	Status        UploadStatus `json:"status"`
	ProcessedRows int          `json:"processedRows"` // rows committed successfully
	FailedRows    int          `json:"failedRows"`
	ErrorMessages []string     `json:"errorMessages"`
	RowOutcomes   []RowOutcome `json:"rowOutcomes"`
	Matches       []CompanyMatch `json:"matches"`
	AuditFields
}

// RowOutcomeStatus marks a single row's fate within a job.
type RowOutcomeStatus string

const (
	RowSucceeded RowOutcomeStatus = "SUCCEEDED"
	RowFailed    RowOutcomeStatus = "FAILED"
)

// RowOutcome records what happened to one parsed row: either the ID of the
// committed inventory transaction, or the reason the row failed.
type RowOutcome struct {
	UploadJobID   string           `json:"uploadJobID"`
	RowIndex      int              `json:"rowIndex"` // 1-based source row
	Status        RowOutcomeStatus `json:"status"`
	TransactionID *string          `json:"transactionID,omitempty"`
	ErrorText     string           `json:"errorText,omitempty"`
}
