package services

import (
	"context"

	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
	"github.com/partnerdesk/inventory_ingest_app/internal/dto"
)

// CompanyReaderSvc defines read operations for the company registry
type CompanyReaderSvc interface {
	// ListCompanies retrieves the active registry snapshot.
	ListCompanies(ctx context.Context) ([]domain.Company, error)
}

// CompanyWriterSvc defines write operations for the company registry
type CompanyWriterSvc interface {
	// CreateCompany registers a new canonical company.
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error)
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyWriterSvc
}
