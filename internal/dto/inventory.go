package dto

import (
	"time"

	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ItemResponse defines the data returned for an inventory item.
type ItemResponse struct {
	ItemID        string          `json:"itemID"`
	CompanyID     string          `json:"companyID"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku,omitempty"`
	Category      string          `json:"category,omitempty"`
	Quantity      int64           `json:"quantity"`
	MinStockLevel int64           `json:"minStockLevel"`
	MaxStockLevel int64           `json:"maxStockLevel"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// InventoryTransactionResponse defines the data returned for a stock movement.
type InventoryTransactionResponse struct {
	TransactionID    string          `json:"transactionID"`
	ItemID           string          `json:"itemID"`
	Type             string          `json:"type"`
	Quantity         int64           `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	Total            decimal.Decimal `json:"total"`
	PreviousQuantity int64           `json:"previousQuantity"`
	NewQuantity      int64           `json:"newQuantity"`
	UploadJobID      *string         `json:"uploadJobID,omitempty"`
	SourceRowIndex   *int            `json:"sourceRowIndex,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// ListTransactionsParams defines pagination parameters for transaction listing.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []InventoryTransactionResponse `json:"transactions"`
	NextToken    *string                        `json:"nextToken,omitempty"`
}

// ToItemResponse converts a domain.InventoryItem to ItemResponse DTO
func ToItemResponse(item *domain.InventoryItem) ItemResponse {
	return ItemResponse{
		ItemID:        item.ItemID,
		CompanyID:     item.CompanyID,
		Name:          item.Name,
		SKU:           item.SKU,
		Category:      item.Category,
		Quantity:      item.Quantity,
		MinStockLevel: item.MinStockLevel,
		MaxStockLevel: item.MaxStockLevel,
		UnitPrice:     item.UnitPrice,
		Status:        string(item.Status),
		CreatedAt:     item.CreatedAt,
		LastUpdatedAt: item.LastUpdatedAt,
	}
}

// ToInventoryTransactionResponse converts a domain.InventoryTransaction to its DTO
func ToInventoryTransactionResponse(txn *domain.InventoryTransaction) InventoryTransactionResponse {
	return InventoryTransactionResponse{
		TransactionID:    txn.TransactionID,
		ItemID:           txn.ItemID,
		Type:             string(txn.Type),
		Quantity:         txn.Quantity,
		UnitPrice:        txn.UnitPrice,
		Total:            txn.Total,
		PreviousQuantity: txn.PreviousQuantity,
		NewQuantity:      txn.NewQuantity,
		UploadJobID:      txn.UploadJobID,
		SourceRowIndex:   txn.SourceRowIndex,
		CreatedAt:        txn.CreatedAt,
		CreatedBy:        txn.CreatedBy,
	}
}

// ToListTransactionsResponse converts a page of domain transactions to the list DTO
func ToListTransactionsResponse(txns []domain.InventoryTransaction, nextToken *string) ListTransactionsResponse {
	responses := make([]InventoryTransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToInventoryTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: responses, NextToken: nextToken}
}
