package services

import (
	"context"

	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
	"github.com/partnerdesk/inventory_ingest_app/internal/dto"
)

// InventoryReaderSvc defines read operations for inventory data
type InventoryReaderSvc interface {
	// GetItemByID retrieves a specific inventory item.
	GetItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error)

	// ListTransactionsByItem retrieves an item's movement history, newest first.
	ListTransactionsByItem(ctx context.Context, itemID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// InventorySvcFacade combines all inventory-related service interfaces
type InventorySvcFacade interface {
	InventoryReaderSvc
}
