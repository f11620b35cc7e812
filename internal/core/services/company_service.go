package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/partnerdesk/inventory_ingest_app/internal/apperrors"
	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
	portsrepo "github.com/partnerdesk/inventory_ingest_app/internal/core/ports/repositories"
	portssvc "github.com/partnerdesk/inventory_ingest_app/internal/core/ports/services"
	"github.com/partnerdesk/inventory_ingest_app/internal/dto"
	"github.com/partnerdesk/inventory_ingest_app/internal/middleware"
)

// companyService manages the canonical company registry.
type companyService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new CompanySvcFacade.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo}
}

// Ensure companyService implements the portssvc.CompanySvcFacade interface
var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// ListCompanies retrieves the active registry snapshot.
// Implements portssvc.CompanySvcFacade
func (s *companyService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListActiveCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// CreateCompany registers a new canonical company.
// Implements portssvc.CompanySvcFacade
func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	name := strings.TrimSpace(req.CanonicalName)
	if name == "" {
		return nil, fmt.Errorf("%w: canonical name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	company := domain.Company{
		CompanyID:     uuid.NewString(),
		CanonicalName: name,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		logger.Error("Failed to save company", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save company: %w", err)
	}

	logger.Info("Company registered", slog.String("company_id", company.CompanyID), slog.String("name", company.CanonicalName))
	return &company, nil
}
