// Package notify carries outbound signals raised by the ledger. The only
// implementation today logs the event; a queue-backed notifier can replace it
// without touching the core.
package notify

import (
	"context"
	"log/slog"

	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
	portssvc "github.com/partnerdesk/inventory_ingest_app/internal/core/ports/services"
	"github.com/partnerdesk/inventory_ingest_app/internal/middleware"
)

// SlogLowStockNotifier emits low stock signals to the request-scoped logger.
type SlogLowStockNotifier struct{}

// NewSlogLowStockNotifier creates a logging LowStockNotifier.
func NewSlogLowStockNotifier() portssvc.LowStockNotifier {
	return &SlogLowStockNotifier{}
}

// Ensure SlogLowStockNotifier implements portssvc.LowStockNotifier
var _ portssvc.LowStockNotifier = (*SlogLowStockNotifier)(nil)

// NotifyLowStock logs the item that dropped to or below its minimum level.
func (n *SlogLowStockNotifier) NotifyLowStock(ctx context.Context, item domain.InventoryItem) {
	middleware.GetLoggerFromCtx(ctx).Warn("Item stock at or below minimum level",
		slog.String("item_id", item.ItemID),
		slog.String("company_id", item.CompanyID),
		slog.String("name", item.Name),
		slog.Int64("quantity", item.Quantity),
		slog.Int64("min_stock_level", item.MinStockLevel))
}
