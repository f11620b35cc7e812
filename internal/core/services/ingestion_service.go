package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/partnerdesk/inventory_ingest_app/internal/apperrors"
	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
	portsrepo "github.com/partnerdesk/inventory_ingest_app/internal/core/ports/repositories"
	portssvc "github.com/partnerdesk/inventory_ingest_app/internal/core/ports/services"
	"github.com/partnerdesk/inventory_ingest_app/internal/dto"
	"github.com/partnerdesk/inventory_ingest_app/internal/matching"
	"github.com/partnerdesk/inventory_ingest_app/internal/middleware"
	"github.com/partnerdesk/inventory_ingest_app/internal/normalize"
	"github.com/partnerdesk/inventory_ingest_app/internal/parser"
)

// IngestionConfig tunes the upload pipeline.
type IngestionConfig struct {
	MaxRows         int     // per-file row cap, 0 means unlimited
	AcceptThreshold float64 // minimum similarity for an automatic match
}

// ingestionService runs the parse -> normalize -> match -> commit pipeline
// for uploaded files and owns the upload job lifecycle.
type ingestionService struct {
	uploadRepo  portsrepo.UploadJobRepositoryFacade
	companyRepo portsrepo.CompanyRepositoryFacade
	ledgerSvc   portssvc.LedgerSvc
	cfg         IngestionConfig
}

// NewIngestionService creates a new UploadSvcFacade.
func NewIngestionService(uploadRepo portsrepo.UploadJobRepositoryFacade, companyRepo portsrepo.CompanyRepositoryFacade, ledgerSvc portssvc.LedgerSvc, cfg IngestionConfig) portssvc.UploadSvcFacade {
	return &ingestionService{
		uploadRepo:  uploadRepo,
		companyRepo: companyRepo,
		ledgerSvc:   ledgerSvc,
		cfg:         cfg,
	}
}

// Ensure ingestionService implements the portssvc.UploadSvcFacade interface
var _ portssvc.UploadSvcFacade = (*ingestionService)(nil)

// toColumnMapping converts the request mapping into the normalizer's form.
func toColumnMapping(req dto.ColumnMappingRequest) normalize.ColumnMapping {
	mapping := normalize.ColumnMapping{DateLayout: req.DateLayout}
	if len(req.Headers) > 0 {
		mapping.Headers = make(map[normalize.Field]string, len(req.Headers))
		for field, header := range req.Headers {
			mapping.Headers[normalize.Field(field)] = header
		}
	}
	if len(req.Positions) > 0 {
		mapping.Positions = make(map[normalize.Field]int, len(req.Positions))
		for field, idx := range req.Positions {
			mapping.Positions[normalize.Field(field)] = idx
		}
	}
	return mapping
}

// SubmitUpload runs the full ingestion pipeline for one file.
// Implements portssvc.UploadSvcFacade
func (s *ingestionService) SubmitUpload(ctx context.Context, fileName string, fileBytes []byte, req dto.SubmitUploadRequest, uploaderUserID string) (*domain.UploadJob, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	job := domain.UploadJob{
		UploadJobID: uuid.NewString(),
		FileName:    fileName,
		FileKind:    domain.FileKind(req.FileKind),
		ByteSize:    int64(len(fileBytes)),
		UploadedBy:  uploaderUserID,
		SubmittedAt: now,
		Status:      domain.UploadPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     uploaderUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: uploaderUserID,
		},
	}
	if err := s.uploadRepo.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to save upload job", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save upload job: %w", err)
	}

	reader, err := parser.Parse(fileBytes, job.FileKind, parser.Options{
		MaxRows:     s.cfg.MaxRows,
		RowPatterns: req.RowPatterns,
	})
	if err != nil {
		return s.failJob(ctx, &job, uploaderUserID, err.Error())
	}
	defer reader.Close()

	if err := s.uploadRepo.UpdateJobStatus(ctx, job.UploadJobID, domain.UploadProcessing, 0, 0, nil, uploaderUserID); err != nil {
		return nil, fmt.Errorf("failed to mark job processing: %w", err)
	}
	job.Status = domain.UploadProcessing

	registry, err := s.companyRepo.ListActiveCompanies(ctx)
	if err != nil {
		logger.Error("Failed to load company registry", slog.String("error", err.Error()))
		return s.failJob(ctx, &job, uploaderUserID, "failed to load company registry")
	}
	matcher := matching.NewMatcher(registry, matching.Config{AcceptThreshold: s.cfg.AcceptThreshold})

	mapping := toColumnMapping(req.Mapping)
	var binder *normalize.Binder
	if !mapping.HasHeaderRow() {
		binder, err = normalize.NewBinder(mapping, nil)
		if err != nil {
			return s.failJob(ctx, &job, uploaderUserID, err.Error())
		}
	}

	kind := domain.RecordKind(req.RecordKind)
	matchCache := make(map[string]domain.CompanyMatch)
	var outcomes []domain.RowOutcome
	var errorMessages []string
	processed, failed := 0, 0

	for reader.Next() {
		row := reader.Row()

		// The first yielded row binds the header mapping and is not data.
		if binder == nil {
			binder, err = normalize.NewBinder(mapping, row.Cells)
			if err != nil {
				return s.failJob(ctx, &job, uploaderUserID, err.Error())
			}
			continue
		}

		candidate, err := binder.Normalize(row, kind)
		if err != nil {
			outcomes = append(outcomes, domain.RowOutcome{
				UploadJobID: job.UploadJobID,
				RowIndex:    row.Index,
				Status:      domain.RowFailed,
				ErrorText:   err.Error(),
			})
			errorMessages = append(errorMessages, err.Error())
			failed++
			continue
		}

		match, cached := matchCache[candidate.CompanyName]
		if !cached {
			if companyID, overridden := req.Overrides[candidate.CompanyName]; overridden {
				match = matching.ManualMatch(candidate.CompanyName, companyID)
			} else {
				match = matcher.Match(candidate.CompanyName)
			}
			match.MatchID = uuid.NewString()
			match.UploadJobID = job.UploadJobID
			match.AuditFields = domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     uploaderUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: uploaderUserID,
			}
			matchCache[candidate.CompanyName] = match
		}

		txn, err := s.ledgerSvc.CommitRecord(ctx, *candidate, match, job.UploadJobID, uploaderUserID)
		if err != nil {
			rowErr := fmt.Sprintf("row %d: %s", row.Index, err.Error())
			outcomes = append(outcomes, domain.RowOutcome{
				UploadJobID: job.UploadJobID,
				RowIndex:    row.Index,
				Status:      domain.RowFailed,
				ErrorText:   err.Error(),
			})
			errorMessages = append(errorMessages, rowErr)
			failed++
			continue
		}

		transactionID := txn.TransactionID
		outcomes = append(outcomes, domain.RowOutcome{
			UploadJobID:   job.UploadJobID,
			RowIndex:      row.Index,
			Status:        domain.RowSucceeded,
			TransactionID: &transactionID,
		})
		processed++
	}

	// A mid-stream failure (row cap, truncated file) fails the job, but rows
	// committed before the failure stay committed.
	streamErr := reader.Err()
	if streamErr != nil {
		errorMessages = append(errorMessages, streamErr.Error())
	}

	if len(outcomes) > 0 {
		if err := s.uploadRepo.SaveRowOutcomes(ctx, outcomes); err != nil {
			logger.Error("Failed to save row outcomes", slog.String("upload_job_id", job.UploadJobID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to save row outcomes: %w", err)
		}
	}

	matches := make([]domain.CompanyMatch, 0, len(matchCache))
	for _, match := range matchCache {
		matches = append(matches, match)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].OriginalName < matches[j].OriginalName })
	if len(matches) > 0 {
		if err := s.uploadRepo.SaveMatches(ctx, matches); err != nil {
			logger.Error("Failed to save company matches", slog.String("upload_job_id", job.UploadJobID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to save company matches: %w", err)
		}
	}

	finalStatus := domain.UploadCompleted
	if failed > 0 || streamErr != nil {
		finalStatus = domain.UploadFailed
	}
	if err := s.uploadRepo.UpdateJobStatus(ctx, job.UploadJobID, finalStatus, processed, failed, errorMessages, uploaderUserID); err != nil {
		return nil, fmt.Errorf("failed to finalize upload job: %w", err)
	}

	job.Status = finalStatus
	job.ProcessedRows = processed
	job.FailedRows = failed
	job.ErrorMessages = errorMessages
	job.RowOutcomes = outcomes
	job.Matches = matches
	job.LastUpdatedAt = time.Now().UTC()

	logger.Info("Upload ingestion finished",
		slog.String("upload_job_id", job.UploadJobID),
		slog.String("status", string(finalStatus)),
		slog.Int("processed_rows", processed),
		slog.Int("failed_rows", failed),
		slog.Int("skipped_lines", reader.Skipped()))

	return &job, nil
}

// failJob marks a job failed before any rows were ingested.
func (s *ingestionService) failJob(ctx context.Context, job *domain.UploadJob, userID string, message string) (*domain.UploadJob, error) {
	if err := s.uploadRepo.UpdateJobStatus(ctx, job.UploadJobID, domain.UploadFailed, 0, 0, []string{message}, userID); err != nil {
		return nil, fmt.Errorf("failed to mark job failed: %w", err)
	}
	job.Status = domain.UploadFailed
	job.ErrorMessages = []string{message}
	return job, nil
}

// GetUploadJob retrieves a job with its row outcomes and matches.
// Implements portssvc.UploadSvcFacade
func (s *ingestionService) GetUploadJob(ctx context.Context, uploadJobID string) (*domain.UploadJob, error) {
	job, err := s.uploadRepo.FindJobByID(ctx, uploadJobID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find upload job: %w", err)
	}
	return job, nil
}

// ResolveCompanyMatch manually pins a stored match to a registry company.
// Implements portssvc.UploadSvcFacade
func (s *ingestionService) ResolveCompanyMatch(ctx context.Context, uploadJobID string, req dto.ResolveCompanyMatchRequest, requestingUserID string) (*domain.CompanyMatch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	match, err := s.uploadRepo.FindMatchByID(ctx, uploadJobID, req.MatchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company match: %w", err)
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: company %s", apperrors.ErrNotFound, req.CompanyID)
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	if !company.IsActive {
		return nil, fmt.Errorf("%w: company %s is inactive", apperrors.ErrValidation, company.CompanyID)
	}

	now := time.Now().UTC()
	match.CompanyID = &company.CompanyID
	match.Confidence = matching.ExactConfidence
	match.IsManualMatch = true
	match.LastUpdatedAt = now
	match.LastUpdatedBy = requestingUserID

	if err := s.uploadRepo.UpdateMatch(ctx, *match); err != nil {
		logger.Error("Failed to update company match", slog.String("match_id", match.MatchID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update company match: %w", err)
	}

	logger.Info("Company match resolved manually",
		slog.String("upload_job_id", uploadJobID),
		slog.String("match_id", match.MatchID),
		slog.String("company_id", company.CompanyID))

	return match, nil
}
