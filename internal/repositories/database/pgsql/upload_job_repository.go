package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/partnerdesk/inventory_ingest_app/internal/apperrors"
	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
	portsrepo "github.com/partnerdesk/inventory_ingest_app/internal/core/ports/repositories"
	"github.com/partnerdesk/inventory_ingest_app/internal/models"
	"github.com/partnerdesk/inventory_ingest_app/internal/utils/mapping"
)

type PgxUploadJobRepository struct {
	BaseRepository
}

// newPgxUploadJobRepository creates a new repository for upload job data.
func newPgxUploadJobRepository(pool *pgxpool.Pool) portsrepo.UploadJobRepositoryFacade {
	return &PgxUploadJobRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxUploadJobRepository implements portsrepo.UploadJobRepositoryFacade
var _ portsrepo.UploadJobRepositoryFacade = (*PgxUploadJobRepository)(nil)

// SaveJob persists a new upload job.
func (r *PgxUploadJobRepository) SaveJob(ctx context.Context, job domain.UploadJob) error {
	modelJob := mapping.ToModelUploadJob(job)
	query := `
		INSERT INTO upload_jobs (
			upload_job_id, file_name, file_kind, byte_size, uploaded_by, submitted_at,
			status, processed_rows, failed_rows, error_messages,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelJob.UploadJobID, modelJob.FileName, modelJob.FileKind, modelJob.ByteSize,
		modelJob.UploadedBy, modelJob.SubmittedAt, modelJob.Status,
		modelJob.ProcessedRows, modelJob.FailedRows, modelJob.ErrorMessages,
		modelJob.CreatedAt, modelJob.CreatedBy, modelJob.LastUpdatedAt, modelJob.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert upload job "+modelJob.UploadJobID, err)
	}
	return nil
}

// UpdateJobStatus transitions a job, enforcing the state machine against the
// stored status under a row lock.
func (r *PgxUploadJobRepository) UpdateJobStatus(ctx context.Context, uploadJobID string, status domain.UploadStatus, processedRows int, failedRows int, errorMessages []string, updatedByUserID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Defer rollback in case of error
	defer r.Rollback(ctx, tx)

	var current string
	lockQuery := `SELECT status FROM upload_jobs WHERE upload_job_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, uploadJobID).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock upload job "+uploadJobID, err)
	}

	if !domain.UploadStatus(current).CanTransitionTo(status) {
		return fmt.Errorf("%w: cannot move from %s to %s", apperrors.ErrJobTerminal, current, status)
	}

	updateQuery := `
		UPDATE upload_jobs
		SET status = $1, processed_rows = $2, failed_rows = $3, error_messages = $4,
		    last_updated_at = NOW(), last_updated_by = $5
		WHERE upload_job_id = $6;
	`
	if errorMessages == nil {
		errorMessages = []string{}
	}
	_, err = tx.Exec(ctx, updateQuery, string(status), processedRows, failedRows, errorMessages, updatedByUserID, uploadJobID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of upload job "+uploadJobID, err)
	}

	return r.Commit(ctx, tx)
}

// SaveRowOutcomes appends the per-row outcomes of a job as one batch.
func (r *PgxUploadJobRepository) SaveRowOutcomes(ctx context.Context, outcomes []domain.RowOutcome) error {
	if len(outcomes) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO upload_row_outcomes (upload_job_id, row_index, status, transaction_id, error_text)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, outcome := range outcomes {
		m := mapping.ToModelRowOutcome(outcome)
		batch.Queue(query, m.UploadJobID, m.RowIndex, m.Status, m.TransactionID, m.ErrorText)
	}
	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert row outcomes", err)
	}
	return nil
}

// SaveMatches persists the company matches produced by a job as one batch.
func (r *PgxUploadJobRepository) SaveMatches(ctx context.Context, matches []domain.CompanyMatch) error {
	if len(matches) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO company_matches (
			match_id, upload_job_id, original_name, company_id, confidence, is_manual_match,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, match := range matches {
		m := mapping.ToModelCompanyMatch(match)
		batch.Queue(query,
			m.MatchID, m.UploadJobID, m.OriginalName, m.CompanyID, m.Confidence, m.IsManualMatch,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}
	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert company matches", err)
	}
	return nil
}

// UpdateMatch overwrites the resolution of a stored match.
func (r *PgxUploadJobRepository) UpdateMatch(ctx context.Context, match domain.CompanyMatch) error {
	m := mapping.ToModelCompanyMatch(match)
	query := `
		UPDATE company_matches
		SET company_id = $1, confidence = $2, is_manual_match = $3,
		    last_updated_at = $4, last_updated_by = $5
		WHERE match_id = $6 AND upload_job_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.Confidence, m.IsManualMatch,
		m.LastUpdatedAt, m.LastUpdatedBy, m.MatchID, m.UploadJobID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update company match "+m.MatchID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindMatchByID retrieves a single company match belonging to a job.
func (r *PgxUploadJobRepository) FindMatchByID(ctx context.Context, uploadJobID string, matchID string) (*domain.CompanyMatch, error) {
	query := `
		SELECT match_id, upload_job_id, original_name, company_id, confidence, is_manual_match,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM company_matches
		WHERE upload_job_id = $1 AND match_id = $2;
	`
	var m models.CompanyMatch
	err := r.Pool.QueryRow(ctx, query, uploadJobID, matchID).Scan(
		&m.MatchID, &m.UploadJobID, &m.OriginalName, &m.CompanyID, &m.Confidence, &m.IsManualMatch,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find company match "+matchID, err)
	}
	domainMatch := mapping.ToDomainCompanyMatch(m)
	return &domainMatch, nil
}

// FindJobByID retrieves an upload job with its row outcomes and matches.
func (r *PgxUploadJobRepository) FindJobByID(ctx context.Context, uploadJobID string) (*domain.UploadJob, error) {
	jobQuery := `
		SELECT upload_job_id, file_name, file_kind, byte_size, uploaded_by, submitted_at,
		       status, processed_rows, failed_rows, error_messages,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM upload_jobs
		WHERE upload_job_id = $1;
	`
	var modelJob models.UploadJob
	err := r.Pool.QueryRow(ctx, jobQuery, uploadJobID).Scan(
		&modelJob.UploadJobID, &modelJob.FileName, &modelJob.FileKind, &modelJob.ByteSize,
		&modelJob.UploadedBy, &modelJob.SubmittedAt, &modelJob.Status,
		&modelJob.ProcessedRows, &modelJob.FailedRows, &modelJob.ErrorMessages,
		&modelJob.CreatedAt, &modelJob.CreatedBy, &modelJob.LastUpdatedAt, &modelJob.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find upload job "+uploadJobID, err)
	}

	outcomes, err := r.findRowOutcomes(ctx, uploadJobID)
	if err != nil {
		return nil, err
	}
	matches, err := r.findMatches(ctx, uploadJobID)
	if err != nil {
		return nil, err
	}

	job := mapping.ToDomainUploadJob(modelJob)
	job.RowOutcomes = outcomes
	job.Matches = matches
	return &job, nil
}

func (r *PgxUploadJobRepository) findRowOutcomes(ctx context.Context, uploadJobID string) ([]domain.RowOutcome, error) {
	query := `
		SELECT upload_job_id, row_index, status, transaction_id, error_text
		FROM upload_row_outcomes
		WHERE upload_job_id = $1
		ORDER BY row_index;
	`
	rows, err := r.Pool.Query(ctx, query, uploadJobID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query row outcomes for job "+uploadJobID, err)
	}
	defer rows.Close()

	outcomes := []models.RowOutcome{}
	for rows.Next() {
		var m models.RowOutcome
		if err := rows.Scan(&m.UploadJobID, &m.RowIndex, &m.Status, &m.TransactionID, &m.ErrorText); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan row outcome for job "+uploadJobID, err)
		}
		outcomes = append(outcomes, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating row outcomes for job "+uploadJobID, err)
	}
	return mapping.ToDomainRowOutcomeSlice(outcomes), nil
}

func (r *PgxUploadJobRepository) findMatches(ctx context.Context, uploadJobID string) ([]domain.CompanyMatch, error) {
	query := `
		SELECT match_id, upload_job_id, original_name, company_id, confidence, is_manual_match,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM company_matches
		WHERE upload_job_id = $1
		ORDER BY original_name;
	`
	rows, err := r.Pool.Query(ctx, query, uploadJobID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query company matches for job "+uploadJobID, err)
	}
	defer rows.Close()

	matches := []models.CompanyMatch{}
	for rows.Next() {
		var m models.CompanyMatch
		err := rows.Scan(
			&m.MatchID, &m.UploadJobID, &m.OriginalName, &m.CompanyID, &m.Confidence, &m.IsManualMatch,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan company match for job "+uploadJobID, err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating company matches for job "+uploadJobID, err)
	}
	return mapping.ToDomainCompanyMatchSlice(matches), nil
}
