package models

import "time"

// UploadJob mirrors the upload_jobs table.
type UploadJob struct {
	UploadJobID   string    `db:"upload_job_id"`
	FileName      string    `db:"file_name"`
	FileKind      string    `db:"file_kind"`
	ByteSize      int64     `db:"byte_size"`
	UploadedBy    string    `db:"uploaded_by"`
	SubmittedAt   time.Time `db:"submitted_at"`
	Status        string    `db:"status"`
	ProcessedRows int       `db:"processed_rows"`
	FailedRows    int       `db:"failed_rows"`
	ErrorMessages []string  `db:"error_messages"`
	AuditFields
}

// RowOutcome mirrors the upload_row_outcomes table.
type RowOutcome struct {
	UploadJobID   string  `db:"upload_job_id"`
	RowIndex      int     `db:"row_index"`
	Status        string  `db:"status"`
	TransactionID *string `db:"transaction_id"`
	ErrorText     string  `db:"error_text"`
}
