package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem mirrors the inventory_items table.
type InventoryItem struct {
	ItemID        string          `db:"item_id"`
	CompanyID     string          `db:"company_id"`
	Name          string          `db:"name"`
	SKU           string          `db:"sku"`
	Category      string          `db:"category"`
	Quantity      int64           `db:"quantity"`
	MinStockLevel int64           `db:"min_stock_level"`
	MaxStockLevel int64           `db:"max_stock_level"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	Status        string          `db:"status"`
	AuditFields
}

// InventoryTransaction mirrors the append-only inventory_transactions table.
type InventoryTransaction struct {
	TransactionID    string          `db:"transaction_id"`
	ItemID           string          `db:"item_id"`
	Type             string          `db:"transaction_type"`
	Quantity         int64           `db:"quantity"`
	UnitPrice        decimal.Decimal `db:"unit_price"`
	Total            decimal.Decimal `db:"total"`
	PreviousQuantity int64           `db:"previous_quantity"`
	NewQuantity      int64           `db:"new_quantity"`
	UploadJobID      *string         `db:"upload_job_id"`
	SourceRowIndex   *int            `db:"source_row_index"`
	AuditFields
}

// AuditEntry mirrors the append-only audit_trail table.
type AuditEntry struct {
	AuditID    string    `db:"audit_id"`
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	Action     string    `db:"action"`
	Actor      string    `db:"actor"`
	OccurredAt time.Time `db:"occurred_at"`
	Before     []byte    `db:"before_snapshot"`
	After      []byte    `db:"after_snapshot"`
}
