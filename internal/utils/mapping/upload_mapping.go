package mapping

import (
	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
	"github.com/partnerdesk/inventory_ingest_app/internal/models"
)

// ToModelUploadJob converts a domain UploadJob to a model UploadJob.
// Row outcomes and matches are persisted separately.
func ToModelUploadJob(d domain.UploadJob) models.UploadJob {
	return models.UploadJob{
		UploadJobID:   d.UploadJobID,
		FileName:      d.FileName,
		FileKind:      string(d.FileKind),
		ByteSize:      d.ByteSize,
		UploadedBy:    d.UploadedBy,
		SubmittedAt:   d.SubmittedAt,
		Status:        string(d.Status),
		ProcessedRows: d.ProcessedRows,
		FailedRows:    d.FailedRows,
		ErrorMessages: d.ErrorMessages,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUploadJob converts a model UploadJob to a domain UploadJob
func ToDomainUploadJob(m models.UploadJob) domain.UploadJob {
	return domain.UploadJob{
		UploadJobID:   m.UploadJobID,
		FileName:      m.FileName,
		FileKind:      domain.FileKind(m.FileKind),
		ByteSize:      m.ByteSize,
		UploadedBy:    m.UploadedBy,
		SubmittedAt:   m.SubmittedAt,
		Status:        domain.UploadStatus(m.Status),
		ProcessedRows: m.ProcessedRows,
		FailedRows:    m.FailedRows,
		ErrorMessages: m.ErrorMessages,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelRowOutcome converts a domain RowOutcome to a model RowOutcome
func ToModelRowOutcome(d domain.RowOutcome) models.RowOutcome {
	return models.RowOutcome{
		UploadJobID:   d.UploadJobID,
		RowIndex:      d.RowIndex,
		Status:        string(d.Status),
		TransactionID: d.TransactionID,
		ErrorText:     d.ErrorText,
	}
}

// ToDomainRowOutcome converts a model RowOutcome to a domain RowOutcome
func ToDomainRowOutcome(m models.RowOutcome) domain.RowOutcome {
	return domain.RowOutcome{
		UploadJobID:   m.UploadJobID,
		RowIndex:      m.RowIndex,
		Status:        domain.RowOutcomeStatus(m.Status),
		TransactionID: m.TransactionID,
		ErrorText:     m.ErrorText,
	}
}

// ToDomainRowOutcomeSlice converts a slice of model RowOutcomes to domain RowOutcomes
func ToDomainRowOutcomeSlice(ms []models.RowOutcome) []domain.RowOutcome {
	ds := make([]domain.RowOutcome, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRowOutcome(m)
	}
	return ds
}
