package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/partnerdesk/inventory_ingest_app/internal/apperrors"
	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
	portsrepo "github.com/partnerdesk/inventory_ingest_app/internal/core/ports/repositories"
	portssvc "github.com/partnerdesk/inventory_ingest_app/internal/core/ports/services"
	"github.com/partnerdesk/inventory_ingest_app/internal/middleware"
)

// LedgerConfig carries the stock thresholds applied to items created on
// first purchase.
type LedgerConfig struct {
	DefaultMinStockLevel int64
	DefaultMaxStockLevel int64
}

// ledgerService turns candidate records into committed inventory transactions.
type ledgerService struct {
	inventoryRepo portsrepo.InventoryRepositoryFacade
	notifier      portssvc.LowStockNotifier
	cfg           LedgerConfig
}

// NewLedgerService creates a new LedgerSvc. notifier may be nil when no
// low stock signal is wanted.
func NewLedgerService(inventoryRepo portsrepo.InventoryRepositoryFacade, notifier portssvc.LowStockNotifier, cfg LedgerConfig) portssvc.LedgerSvc {
	return &ledgerService{
		inventoryRepo: inventoryRepo,
		notifier:      notifier,
		cfg:           cfg,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvc interface
var _ portssvc.LedgerSvc = (*ledgerService)(nil)

// transactionTypeFor maps a record kind to the ledger transaction type.
func transactionTypeFor(kind domain.RecordKind) (domain.TransactionType, error) {
	switch kind {
	case domain.RecordPurchase:
		return domain.TxnPurchase, nil
	case domain.RecordSale:
		return domain.TxnSale, nil
	default:
		return "", fmt.Errorf("%w: unknown record kind %q", apperrors.ErrValidation, kind)
	}
}

// CommitRecord applies one candidate record against inventory state.
// Implements portssvc.LedgerSvc
func (s *ledgerService) CommitRecord(ctx context.Context, candidate domain.CandidateRecord, match domain.CompanyMatch, uploadJobID string, actorUserID string) (*domain.InventoryTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !match.Resolved() {
		return nil, fmt.Errorf("%w: %q (best confidence %.2f)", apperrors.ErrUnresolvedCompany, candidate.CompanyName, match.Confidence)
	}
	companyID := *match.CompanyID

	txnType, err := transactionTypeFor(candidate.Kind)
	if err != nil {
		return nil, err
	}

	if candidate.SuppliedTotal != nil {
		logger.Warn("supplied total differs from computed total, computed value kept",
			slog.Int("row_index", candidate.RowIndex),
			slog.String("supplied", candidate.SuppliedTotal.String()),
			slog.String("computed", candidate.Total.String()))
	}

	now := time.Now().UTC()
	txn := domain.InventoryTransaction{
		TransactionID: uuid.NewString(),
		Type:          txnType,
		Quantity:      candidate.Quantity,
		UnitPrice:     candidate.UnitPrice,
		Total:         candidate.Total,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if uploadJobID != "" {
		txn.UploadJobID = &uploadJobID
	}
	if candidate.RowIndex > 0 {
		rowIndex := candidate.RowIndex
		txn.SourceRowIndex = &rowIndex
	}

	// Purchases create the item on first sight; sales never do.
	var newItem *domain.InventoryItem
	if txnType == domain.TxnPurchase {
		newItem = &domain.InventoryItem{
			ItemID:        uuid.NewString(),
			CompanyID:     companyID,
			Name:          candidate.ItemName,
			Quantity:      0,
			MinStockLevel: s.cfg.DefaultMinStockLevel,
			MaxStockLevel: s.cfg.DefaultMaxStockLevel,
			UnitPrice:     candidate.UnitPrice,
			Status:        domain.ItemActive,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorUserID,
			},
		}
	}

	item, committed, err := s.inventoryRepo.ApplyTransaction(ctx, companyID, candidate.ItemName, txn, newItem)
	if err != nil {
		if txnType == domain.TxnSale && errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownItem, candidate.ItemName)
		}
		if errors.Is(err, apperrors.ErrInsufficientStock) {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrInsufficientStock, candidate.ItemName)
		}
		logger.Error("Failed to apply inventory transaction",
			slog.String("company_id", companyID),
			slog.String("item_name", candidate.ItemName),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to apply inventory transaction: %w", err)
	}

	if s.notifier != nil && item.MinStockLevel > 0 && item.Quantity <= item.MinStockLevel {
		s.notifier.NotifyLowStock(ctx, *item)
	}

	return committed, nil
}
