package repositories

import (
	"context"

	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
)

// UploadJobReader defines read operations for upload job data
type UploadJobReader interface {
	// FindJobByID retrieves an upload job together with its row outcomes and
	// company matches.
	FindJobByID(ctx context.Context, uploadJobID string) (*domain.UploadJob, error)

	// FindMatchByID retrieves a single company match belonging to a job.
	FindMatchByID(ctx context.Context, uploadJobID string, matchID string) (*domain.CompanyMatch, error)
}

// UploadJobWriter defines write operations for upload job data
type UploadJobWriter interface {
	// SaveJob persists a new upload job.
	SaveJob(ctx context.Context, job domain.UploadJob) error

	// UpdateJobStatus transitions a job to the given status and records the
	// final row counts and error messages. It returns apperrors.ErrJobTerminal
	// when the stored status does not allow the transition.
	UpdateJobStatus(ctx context.Context, uploadJobID string, status domain.UploadStatus, processedRows int, failedRows int, errorMessages []string, updatedByUserID string) error

	// SaveRowOutcomes appends the per-row outcomes of a job.
	SaveRowOutcomes(ctx context.Context, outcomes []domain.RowOutcome) error

	// SaveMatches persists the company matches produced by a job.
	SaveMatches(ctx context.Context, matches []domain.CompanyMatch) error

	// UpdateMatch overwrites the resolution of a stored match.
	UpdateMatch(ctx context.Context, match domain.CompanyMatch) error
}

// UploadJobRepositoryFacade combines all upload-job repository interfaces
type UploadJobRepositoryFacade interface {
	UploadJobReader
	UploadJobWriter
}
