package pgsql

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/partnerdesk/inventory_ingest_app/internal/apperrors"
	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
	portsrepo "github.com/partnerdesk/inventory_ingest_app/internal/core/ports/repositories"
	"github.com/partnerdesk/inventory_ingest_app/internal/models"
	"github.com/partnerdesk/inventory_ingest_app/internal/utils/mapping"
	"github.com/partnerdesk/inventory_ingest_app/internal/utils/pagination"
)

const itemColumns = `item_id, company_id, name, sku, category, quantity, min_stock_level, max_stock_level, unit_price, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for inventory data.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxInventoryRepository implements portsrepo.InventoryRepositoryFacade
var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

// scanItem scans one inventory item row in itemColumns order.
func scanItem(row pgx.Row) (models.InventoryItem, error) {
	var m models.InventoryItem
	err := row.Scan(
		&m.ItemID,
		&m.CompanyID,
		&m.Name,
		&m.SKU,
		&m.Category,
		&m.Quantity,
		&m.MinStockLevel,
		&m.MaxStockLevel,
		&m.UnitPrice,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindItemByID retrieves an inventory item by its ID.
func (r *PgxInventoryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE item_id = $1;`
	m, err := scanItem(r.Pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find item by ID "+itemID, err)
	}
	domainItem := mapping.ToDomainInventoryItem(m)
	return &domainItem, nil
}

// FindItemByCompanyAndName retrieves the item owned by a company with the
// given name, case-insensitively.
func (r *PgxInventoryRepository) FindItemByCompanyAndName(ctx context.Context, companyID string, name string) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE company_id = $1 AND lower(name) = lower($2);`
	m, err := scanItem(r.Pool.QueryRow(ctx, query, companyID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find item by name for company "+companyID, err)
	}
	domainItem := mapping.ToDomainInventoryItem(m)
	return &domainItem, nil
}

// ApplyTransaction applies one stock movement atomically: it locks the item
// row, adjusts the quantity, and appends the transaction and an audit entry
// within a single database transaction.
func (r *PgxInventoryRepository) ApplyTransaction(ctx context.Context, companyID string, itemName string, txn domain.InventoryTransaction, newItem *domain.InventoryItem) (*domain.InventoryItem, *domain.InventoryTransaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	// Defer rollback in case of error
	defer r.Rollback(ctx, tx)

	// 1. Lock the item row for the duration of the transaction.
	lockQuery := `SELECT ` + itemColumns + ` FROM inventory_items WHERE company_id = $1 AND lower(name) = lower($2) FOR UPDATE;`
	m, err := scanItem(tx.QueryRow(ctx, lockQuery, companyID, itemName))

	var before []byte
	action := domain.AuditUpdate
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		if newItem == nil {
			return nil, nil, apperrors.ErrNotFound
		}
		// 1b. First sight of this item: create it with zero stock.
		m = mapping.ToModelInventoryItem(*newItem)
		insertItemQuery := `
			INSERT INTO inventory_items (` + itemColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
		`
		_, err = tx.Exec(ctx, insertItemQuery,
			m.ItemID, m.CompanyID, m.Name, m.SKU, m.Category,
			m.Quantity, m.MinStockLevel, m.MaxStockLevel, m.UnitPrice, m.Status,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to insert item "+m.ItemID, err)
		}
		action = domain.AuditCreate
	case err != nil:
		return nil, nil, apperrors.NewAppError(500, "failed to lock item for update", err)
	default:
		snapshot := mapping.ToDomainInventoryItem(m)
		before, err = json.Marshal(snapshot)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to snapshot item "+m.ItemID, err)
		}
	}

	// 2. Adjust the quantity, refusing to go negative.
	delta := txn.Type.QuantityDelta(txn.Quantity)
	newQuantity := m.Quantity + delta
	if newQuantity < 0 {
		return nil, nil, apperrors.ErrInsufficientStock
	}

	updateQuery := `
		UPDATE inventory_items
		SET quantity = $1, last_updated_at = $2, last_updated_by = $3
		WHERE item_id = $4;
	`
	_, err = tx.Exec(ctx, updateQuery, newQuantity, txn.CreatedAt, txn.CreatedBy, m.ItemID)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to update quantity for item "+m.ItemID, err)
	}
	m.Quantity = newQuantity
	m.LastUpdatedAt = txn.CreatedAt
	m.LastUpdatedBy = txn.CreatedBy

	// 3. Append the ledger entry.
	txn.ItemID = m.ItemID
	txn.PreviousQuantity = newQuantity - delta
	txn.NewQuantity = newQuantity
	modelTxn := mapping.ToModelTransaction(txn)
	insertTxnQuery := `
		INSERT INTO inventory_transactions (
			transaction_id, item_id, transaction_type, quantity, unit_price, total,
			previous_quantity, new_quantity, upload_job_id, source_row_index,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, insertTxnQuery,
		modelTxn.TransactionID, modelTxn.ItemID, modelTxn.Type, modelTxn.Quantity,
		modelTxn.UnitPrice, modelTxn.Total, modelTxn.PreviousQuantity, modelTxn.NewQuantity,
		modelTxn.UploadJobID, modelTxn.SourceRowIndex,
		modelTxn.CreatedAt, modelTxn.CreatedBy, modelTxn.LastUpdatedAt, modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to insert transaction "+modelTxn.TransactionID, err)
	}

	// 4. Append the audit trail entry in the same transaction.
	domainItem := mapping.ToDomainInventoryItem(m)
	after, err := json.Marshal(domainItem)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to snapshot item "+m.ItemID, err)
	}
	entry := mapping.ToModelAuditEntry(domain.AuditEntry{
		AuditID:    uuid.NewString(),
		EntityType: "inventory_item",
		EntityID:   m.ItemID,
		Action:     action,
		Actor:      txn.CreatedBy,
		OccurredAt: txn.CreatedAt,
		Before:     before,
		After:      after,
	})
	insertAuditQuery := `
		INSERT INTO audit_trail (audit_id, entity_type, entity_id, action, actor, occurred_at, before_snapshot, after_snapshot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, insertAuditQuery,
		entry.AuditID, entry.EntityType, entry.EntityID, entry.Action,
		entry.Actor, entry.OccurredAt, entry.Before, entry.After,
	)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to insert audit entry for item "+m.ItemID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	return &domainItem, &txn, nil
}

// ListTransactionsByItemID retrieves a paginated list of transactions for an
// item using token-based pagination, newest first.
func (r *PgxInventoryRepository) ListTransactionsByItemID(ctx context.Context, itemID string, limit int, nextToken *string) ([]domain.InventoryTransaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT transaction_id, item_id, transaction_type, quantity, unit_price, total,
		       previous_quantity, new_quantity, upload_job_id, source_row_index,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM inventory_transactions
		WHERE item_id = $1
	`
	orderByClause := `ORDER BY created_at DESC, transaction_id DESC`

	var rows pgx.Rows
	var err error
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", decodeErr)
		}
		query := baseQuery + ` AND (created_at, transaction_id) < ($2, $3) ` + orderByClause + ` LIMIT $4;`
		rows, err = r.Pool.Query(ctx, query, itemID, lastCreatedAt, lastID, fetchLimit)
	} else {
		query := baseQuery + orderByClause + ` LIMIT $2;`
		rows, err = r.Pool.Query(ctx, query, itemID, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for item "+itemID, err)
	}
	defer rows.Close()

	transactions := []models.InventoryTransaction{}
	for rows.Next() {
		var t models.InventoryTransaction
		err := rows.Scan(
			&t.TransactionID,
			&t.ItemID,
			&t.Type,
			&t.Quantity,
			&t.UnitPrice,
			&t.Total,
			&t.PreviousQuantity,
			&t.NewQuantity,
			&t.UploadJobID,
			&t.SourceRowIndex,
			&t.CreatedAt,
			&t.CreatedBy,
			&t.LastUpdatedAt,
			&t.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row for item "+itemID, err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows for item "+itemID, err)
	}

	var newNextToken *string
	if len(transactions) > limit {
		last := transactions[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		newNextToken = &token
		transactions = transactions[:limit]
	}

	return mapping.ToDomainTransactionSlice(transactions), newNextToken, nil
}
