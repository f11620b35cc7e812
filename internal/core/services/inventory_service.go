package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/partnerdesk/inventory_ingest_app/internal/apperrors"
	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
	portsrepo "github.com/partnerdesk/inventory_ingest_app/internal/core/ports/repositories"
	portssvc "github.com/partnerdesk/inventory_ingest_app/internal/core/ports/services"
	"github.com/partnerdesk/inventory_ingest_app/internal/dto"
)

const defaultTransactionPageSize = 50

// inventoryService provides read access to items and their movement history.
type inventoryService struct {
	inventoryRepo portsrepo.InventoryRepositoryFacade
}

// NewInventoryService creates a new InventorySvcFacade.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryFacade) portssvc.InventorySvcFacade {
	return &inventoryService{inventoryRepo: inventoryRepo}
}

// Ensure inventoryService implements the portssvc.InventorySvcFacade interface
var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// GetItemByID retrieves a specific inventory item.
// Implements portssvc.InventorySvcFacade
func (s *inventoryService) GetItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inventory item: %w", err)
	}
	return item, nil
}

// ListTransactionsByItem retrieves an item's movement history, newest first.
// Implements portssvc.InventorySvcFacade
func (s *inventoryService) ListTransactionsByItem(ctx context.Context, itemID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	// Ensure the item exists so a bad ID reads as 404, not an empty page.
	if _, err := s.GetItemByID(ctx, itemID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultTransactionPageSize
	}

	txns, nextToken, err := s.inventoryRepo.ListTransactionsByItemID(ctx, itemID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	resp := dto.ToListTransactionsResponse(txns, nextToken)
	return &resp, nil
}
