package mapping

import (
	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
	"github.com/partnerdesk/inventory_ingest_app/internal/models"
)

// ToModelInventoryItem converts a domain InventoryItem to a model InventoryItem
func ToModelInventoryItem(d domain.InventoryItem) models.InventoryItem {
	return models.InventoryItem{
		ItemID:        d.ItemID,
		CompanyID:     d.CompanyID,
		Name:          d.Name,
		SKU:           d.SKU,
		Category:      d.Category,
		Quantity:      d.Quantity,
		MinStockLevel: d.MinStockLevel,
		MaxStockLevel: d.MaxStockLevel,
		UnitPrice:     d.UnitPrice,
		Status:        string(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInventoryItem converts a model InventoryItem to a domain InventoryItem
func ToDomainInventoryItem(m models.InventoryItem) domain.InventoryItem {
	return domain.InventoryItem{
		ItemID:        m.ItemID,
		CompanyID:     m.CompanyID,
		Name:          m.Name,
		SKU:           m.SKU,
		Category:      m.Category,
		Quantity:      m.Quantity,
		MinStockLevel: m.MinStockLevel,
		MaxStockLevel: m.MaxStockLevel,
		UnitPrice:     m.UnitPrice,
		Status:        domain.ItemStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTransaction converts a domain InventoryTransaction to a model InventoryTransaction
func ToModelTransaction(d domain.InventoryTransaction) models.InventoryTransaction {
	return models.InventoryTransaction{
		TransactionID:    d.TransactionID,
		ItemID:           d.ItemID,
		Type:             string(d.Type),
		Quantity:         d.Quantity,
		UnitPrice:        d.UnitPrice,
		Total:            d.Total,
		PreviousQuantity: d.PreviousQuantity,
		NewQuantity:      d.NewQuantity,
		UploadJobID:      d.UploadJobID,
		SourceRowIndex:   d.SourceRowIndex,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model InventoryTransaction to a domain InventoryTransaction
func ToDomainTransaction(m models.InventoryTransaction) domain.InventoryTransaction {
	return domain.InventoryTransaction{
		TransactionID:    m.TransactionID,
		ItemID:           m.ItemID,
		Type:             domain.TransactionType(m.Type),
		Quantity:         m.Quantity,
		UnitPrice:        m.UnitPrice,
		Total:            m.Total,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		UploadJobID:      m.UploadJobID,
		SourceRowIndex:   m.SourceRowIndex,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model InventoryTransactions to domain InventoryTransactions
func ToDomainTransactionSlice(ms []models.InventoryTransaction) []domain.InventoryTransaction {
	ds := make([]domain.InventoryTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// ToModelAuditEntry converts a domain AuditEntry to a model AuditEntry
func ToModelAuditEntry(d domain.AuditEntry) models.AuditEntry {
	return models.AuditEntry{
		AuditID:    d.AuditID,
		EntityType: d.EntityType,
		EntityID:   d.EntityID,
		Action:     string(d.Action),
		Actor:      d.Actor,
		OccurredAt: d.OccurredAt,
		Before:     d.Before,
		After:      d.After,
	}
}
