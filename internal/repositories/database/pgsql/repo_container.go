package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/partnerdesk/inventory_ingest_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	companyRepo := newPgxCompanyRepository(dbPool)
	inventoryRepo := newPgxInventoryRepository(dbPool)
	uploadRepo := newPgxUploadJobRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CompanyRepo:   companyRepo,
		InventoryRepo: inventoryRepo,
		UploadRepo:    uploadRepo,
	}
}
