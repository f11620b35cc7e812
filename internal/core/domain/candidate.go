package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordKind distinguishes purchase rows from sale rows.
type RecordKind string

const (
	RecordPurchase RecordKind = "PURCHASE"
	RecordSale     RecordKind = "SALE"
)

// CandidateRecord is a normalized, not-yet-committed purchase/sale row
// extracted from an uploaded file. It lives only for the duration of one
// ingestion run and is never persisted standalone.
type CandidateRecord struct {
	Kind        RecordKind
	CompanyName string // free text, resolved by the matcher
	ItemName    string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal // always quantity * unitPrice, never the supplied value

	// Optional columns.
	Date          *time.Time
	InvoiceNumber string
	Counterparty  string // supplier (purchase) or customer (sale)

	// SuppliedTotal holds a total column value that differed from the
	// recomputed one; kept only so the discrepancy can be logged.
	SuppliedTotal *decimal.Decimal

	RowIndex int // 1-based source row, for error reporting
}
