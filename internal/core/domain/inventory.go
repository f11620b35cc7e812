package domain

import (
	"github.com/shopspring/decimal"
)

// ItemStatus is the lifecycle flag of an inventory item.
type ItemStatus string

const (
	ItemActive       ItemStatus = "ACTIVE"
	ItemInactive     ItemStatus = "INACTIVE"
	ItemDiscontinued ItemStatus = "DISCONTINUED"
)

// InventoryItem is a company-scoped stock-keeping entity. Its quantity is
// the single source of truth and is only ever advanced through a committed
// InventoryTransaction. Invariant: Quantity >= 0.
type InventoryItem struct {
	ItemID        string          `json:"itemID"` // Primary Key (UUID)
	CompanyID     string          `json:"companyID"`
	Name          string          `json:"name"` // unique per company (case-insensitive)
	SKU           string          `json:"sku,omitempty"`
	Category      string          `json:"category,omitempty"`
	Quantity      int64           `json:"quantity"`
	MinStockLevel int64           `json:"minStockLevel"`
	MaxStockLevel int64           `json:"maxStockLevel"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Status        ItemStatus      `json:"status"`
	AuditFields
}

// TransactionType classifies an inventory quantity mutation.
type TransactionType string

const (
	TxnPurchase   TransactionType = "PURCHASE"
	TxnSale       TransactionType = "SALE"
	TxnAdjustment TransactionType = "ADJUSTMENT"
	TxnTransfer   TransactionType = "TRANSFER"
)

// QuantityDelta returns the signed stock effect of a transaction type for
// the given (positive) quantity.
func (t TransactionType) QuantityDelta(quantity int64) int64 {
	switch t {
	case TxnSale:
		return -quantity
	default:
		return quantity
	}
}

// InventoryTransaction is an immutable ledger entry. Invariant:
// NewQuantity = PreviousQuantity + signed delta, and NewQuantity equals the
// item's quantity at the instant of commit.
type InventoryTransaction struct {
	TransactionID    string          `json:"transactionID"` // Primary Key (UUID)
	ItemID           string          `json:"itemID"`
	Type             TransactionType `json:"type"`
	Quantity         int64           `json:"quantity"` // positive magnitude
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	Total            decimal.Decimal `json:"total"`
	PreviousQuantity int64           `json:"previousQuantity"`
	NewQuantity      int64           `json:"newQuantity"`
	// Reference links the entry back to its source upload row, when the
	// mutation came from a file ingestion.
	UploadJobID    *string `json:"uploadJobID,omitempty"`
	SourceRowIndex *int    `json:"sourceRowIndex,omitempty"`
	AuditFields
}
