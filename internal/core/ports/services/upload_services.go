package services

import (
	"context"

	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
	"github.com/partnerdesk/inventory_ingest_app/internal/dto"
)

// UploadReaderSvc defines read operations for upload jobs
type UploadReaderSvc interface {
	// GetUploadJob retrieves a job with its row outcomes and company matches.
	GetUploadJob(ctx context.Context, uploadJobID string) (*domain.UploadJob, error)
}

// UploadWriterSvc defines write operations for upload jobs
type UploadWriterSvc interface {
	// SubmitUpload runs the full ingestion pipeline for one file and returns
	// the finished job. Parse failures fail the job rather than erroring.
	SubmitUpload(ctx context.Context, fileName string, fileBytes []byte, req dto.SubmitUploadRequest, uploaderUserID string) (*domain.UploadJob, error)

	// ResolveCompanyMatch manually resolves a stored match to a registry
	// company. It does not re-ingest rows; clients resubmit with overrides.
	ResolveCompanyMatch(ctx context.Context, uploadJobID string, req dto.ResolveCompanyMatchRequest, requestingUserID string) (*domain.CompanyMatch, error)
}

// UploadSvcFacade combines all upload-related service interfaces
type UploadSvcFacade interface {
	UploadReaderSvc
	UploadWriterSvc
}
