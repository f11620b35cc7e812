// Package normalize maps parser rows into typed candidate purchase/sale
// records using a configurable column mapping, validating as it goes. One
// bad row fails only that row; the caller keeps processing.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
	"github.com/partnerdesk/inventory_ingest_app/internal/parser"
)

// Field names a logical column of a purchase/sale record.
type Field string

const (
	FieldCompany      Field = "company"
	FieldItem         Field = "item"
	FieldQuantity     Field = "quantity"
	FieldUnitPrice    Field = "unit_price"
	FieldTotal        Field = "total"
	FieldDate         Field = "date"
	FieldInvoice      Field = "invoice"
	FieldCounterparty Field = "counterparty"
)

// ColumnMapping describes where each field lives in a file. Headers map a
// field to a header cell text (matched case-insensitively against the
// header row); Positions map a field to a 0-based column index and are used
// when the file has no header row. Headers win when both are set.
type ColumnMapping struct {
	Headers    map[Field]string `json:"headers,omitempty"`
	Positions  map[Field]int    `json:"positions,omitempty"`
	DateLayout string           `json:"dateLayout,omitempty"` // Go layout, default 2006-01-02
}

// HasHeaderRow reports whether the first parsed row is a header to bind
// against rather than data.
func (m ColumnMapping) HasHeaderRow() bool {
	return len(m.Headers) > 0
}

// ValidationError reports why one row failed normalization.
type ValidationError struct {
	RowIndex int
	Field    Field
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %d: field %s: %s", e.RowIndex, e.Field, e.Reason)
}

// totalTolerance is the absolute rounding slack allowed between a supplied
// total and the recomputed quantity * unitPrice before the supplied value is
// flagged as a discrepancy.
var totalTolerance = decimal.NewFromFloat(0.01)

// Binder resolves a ColumnMapping to concrete column indexes for one file.
type Binder struct {
	columns    map[Field]int
	dateLayout string
}

// NewBinder binds the mapping against the file's header row. headerRow may
// be nil for purely positional mappings.
func NewBinder(mapping ColumnMapping, headerRow []string) (*Binder, error) {
	columns := make(map[Field]int, len(mapping.Headers)+len(mapping.Positions))
	for field, idx := range mapping.Positions {
		if idx < 0 {
			return nil, fmt.Errorf("negative column index %d for field %s", idx, field)
		}
		columns[field] = idx
	}
	if len(mapping.Headers) > 0 {
		normalized := make(map[string]int, len(headerRow))
		for idx, cell := range headerRow {
			normalized[normalizeHeader(cell)] = idx
		}
		for field, header := range mapping.Headers {
			idx, ok := normalized[normalizeHeader(header)]
			if !ok {
				return nil, fmt.Errorf("header %q for field %s not found in file", header, field)
			}
			columns[field] = idx
		}
	}
	for _, required := range []Field{FieldCompany, FieldItem, FieldQuantity, FieldUnitPrice} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("column mapping missing required field %s", required)
		}
	}
	layout := mapping.DateLayout
	if layout == "" {
		layout = "2006-01-02"
	}
	return &Binder{columns: columns, dateLayout: layout}, nil
}

// Normalize converts one raw row into a CandidateRecord or fails with a
// *ValidationError scoped to that row.
func (b *Binder) Normalize(row parser.RawRow, kind domain.RecordKind) (*domain.CandidateRecord, error) {
	company := strings.TrimSpace(b.cell(row.Cells, FieldCompany))
	if company == "" {
		return nil, &ValidationError{RowIndex: row.Index, Field: FieldCompany, Reason: "company name is empty"}
	}
	item := strings.TrimSpace(b.cell(row.Cells, FieldItem))
	if item == "" {
		return nil, &ValidationError{RowIndex: row.Index, Field: FieldItem, Reason: "item name is empty"}
	}

	quantity, err := parseQuantity(b.cell(row.Cells, FieldQuantity))
	if err != nil {
		return nil, &ValidationError{RowIndex: row.Index, Field: FieldQuantity, Reason: err.Error()}
	}
	unitPrice, err := parsePrice(b.cell(row.Cells, FieldUnitPrice))
	if err != nil {
		return nil, &ValidationError{RowIndex: row.Index, Field: FieldUnitPrice, Reason: err.Error()}
	}

	record := &domain.CandidateRecord{
		Kind:        kind,
		CompanyName: company,
		ItemName:    item,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       unitPrice.Mul(decimal.NewFromInt(quantity)),
		RowIndex:    row.Index,
	}

	// The supplied total is never trusted; a value outside rounding
	// tolerance of the recomputed one is kept only as a discrepancy.
	if idx, ok := b.columns[FieldTotal]; ok {
		raw := strings.TrimSpace(cellAt(row.Cells, idx))
		if raw != "" {
			supplied, err := parsePrice(raw)
			if err != nil {
				return nil, &ValidationError{RowIndex: row.Index, Field: FieldTotal, Reason: err.Error()}
			}
			if supplied.Sub(record.Total).Abs().GreaterThan(totalTolerance) {
				record.SuppliedTotal = &supplied
			}
		}
	}

	if idx, ok := b.columns[FieldDate]; ok {
		raw := strings.TrimSpace(cellAt(row.Cells, idx))
		if raw != "" {
			parsed, err := time.ParseInLocation(b.dateLayout, raw, time.UTC)
			if err != nil {
				return nil, &ValidationError{RowIndex: row.Index, Field: FieldDate, Reason: fmt.Sprintf("date %q does not match layout %s", raw, b.dateLayout)}
			}
			record.Date = &parsed
		}
	}
	if idx, ok := b.columns[FieldInvoice]; ok {
		record.InvoiceNumber = strings.TrimSpace(cellAt(row.Cells, idx))
	}
	if idx, ok := b.columns[FieldCounterparty]; ok {
		record.Counterparty = strings.TrimSpace(cellAt(row.Cells, idx))
	}

	return record, nil
}

func (b *Binder) cell(cells []string, field Field) string {
	idx, ok := b.columns[field]
	if !ok {
		return ""
	}
	return cellAt(cells, idx)
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

func normalizeHeader(raw string) string {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "\ufeff")
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, "_", " ")
	return strings.Join(strings.Fields(value), " ")
}

func parseQuantity(raw string) (int64, error) {
	value := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if value == "" {
		return 0, fmt.Errorf("quantity is empty")
	}
	asFloat, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("quantity %q is not a number", raw)
	}
	if asFloat < 0 {
		return 0, fmt.Errorf("quantity must not be negative")
	}
	if math.Mod(asFloat, 1) != 0 {
		return 0, fmt.Errorf("quantity must be a whole number")
	}
	return int64(asFloat), nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	value := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if value == "" {
		return decimal.Zero, fmt.Errorf("value is empty")
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("value %q is not a number", raw)
	}
	if parsed.IsNegative() {
		return decimal.Zero, fmt.Errorf("value must not be negative")
	}
	return parsed, nil
}
