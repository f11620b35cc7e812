package services

import (
	"context"

	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
)

// LedgerSvc commits validated records against inventory state.
type LedgerSvc interface {
	// CommitRecord applies one candidate record as an inventory transaction.
	// The match must be resolved or apperrors.ErrUnresolvedCompany is
	// returned. Purchases create the item on first sight; sales against an
	// unknown item return apperrors.ErrUnknownItem and sales exceeding stock
	// return apperrors.ErrInsufficientStock. A failed commit writes nothing.
	CommitRecord(ctx context.Context, candidate domain.CandidateRecord, match domain.CompanyMatch, uploadJobID string, actorUserID string) (*domain.InventoryTransaction, error)
}

// LowStockNotifier receives a signal whenever a commit leaves an item at or
// below its minimum stock level. Implementations must not block the commit.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, item domain.InventoryItem)
}
