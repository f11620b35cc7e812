package repositories

import (
	"context"

	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
)

// InventoryReader defines read operations for inventory data
type InventoryReader interface {
	// FindItemByID retrieves a specific inventory item by its unique identifier.
	FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error)

	// FindItemByCompanyAndName retrieves the item owned by a company with the
	// given name. Name comparison is case-insensitive.
	FindItemByCompanyAndName(ctx context.Context, companyID string, name string) (*domain.InventoryItem, error)

	// ListTransactionsByItemID retrieves a paginated list of transactions for an
	// item using token-based pagination, newest first.
	// It returns the transactions, a token for the next page, and an error.
	ListTransactionsByItemID(ctx context.Context, itemID string, limit int, nextToken *string) ([]domain.InventoryTransaction, *string, error)
}

// InventoryWriter defines write operations for inventory data
type InventoryWriter interface {
	// ApplyTransaction atomically applies one stock movement: it locks the item
	// row identified by (companyID, itemName), adjusts the on-hand quantity by
	// the transaction's signed delta, appends the transaction and an audit
	// entry, and commits everything in a single database transaction.
	//
	// When the item does not exist and newItem is non-nil, the item is created
	// from the template first. When the item does not exist and newItem is nil,
	// apperrors.ErrNotFound is returned. When the adjustment would drive the
	// quantity negative, apperrors.ErrInsufficientStock is returned and nothing
	// is written.
	//
	// The returned transaction carries the repository-filled ItemID,
	// PreviousQuantity and NewQuantity.
	ApplyTransaction(ctx context.Context, companyID string, itemName string, txn domain.InventoryTransaction, newItem *domain.InventoryItem) (*domain.InventoryItem, *domain.InventoryTransaction, error)
}

// InventoryRepositoryFacade combines all inventory-related repository interfaces
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryWriter
}
