package repositories

import (
	"context"

	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
)

// CompanyReader defines read operations for the company registry
type CompanyReader interface {
	// FindCompanyByID retrieves a specific company by its unique identifier.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListActiveCompanies retrieves the full registry snapshot of active
	// companies, ordered by canonical name.
	ListActiveCompanies(ctx context.Context) ([]domain.Company, error)
}

// CompanyWriter defines write operations for the company registry
type CompanyWriter interface {
	// SaveCompany persists a new company.
	SaveCompany(ctx context.Context, company domain.Company) error
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
