package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
	"github.com/partnerdesk/inventory_ingest_app/internal/parser"
)

// invoiceLinePattern captures company, item, quantity and unit price from a
// typical extracted invoice line.
const invoiceLinePattern = `^(.+?)\s*\|\s*(.+?)\s*\|\s*(\d+)\s*\|\s*([\d.]+)$`

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParse_EmptyFileIsCorrupt(t *testing.T) {
	_, err := parser.Parse(nil, domain.FileKindSpreadsheet, parser.Options{})
	require.Error(t, err)
	var parseErr *parser.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, parser.CorruptFile, parseErr.Kind)
}

func TestParse_UnknownKind(t *testing.T) {
	_, err := parser.Parse([]byte("x"), domain.FileKind("TARBALL"), parser.Options{})
	var parseErr *parser.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, parser.UnsupportedFormat, parseErr.Kind)
}

func TestParse_SpreadsheetYieldsRowsInOrder(t *testing.T) {
	fileBytes := buildWorkbook(t, [][]interface{}{
		{"company", "item", "quantity", "unit_price"},
		{"Acme Corp", "Widget", 5, 2.50},
		{"Globex", "Gadget", 3, 10},
	})

	reader, err := parser.Parse(fileBytes, domain.FileKindSpreadsheet, parser.Options{})
	require.NoError(t, err)
	defer reader.Close()

	var rows []parser.RawRow
	for reader.Next() {
		rows = append(rows, reader.Row())
	}
	require.NoError(t, reader.Err())
	require.Len(t, rows, 3)
	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, "company", rows[0].Cells[0])
	assert.Equal(t, 3, rows[2].Index)
	assert.Equal(t, "Globex", rows[2].Cells[0])
	assert.Zero(t, reader.Skipped())
}

func TestParse_SpreadsheetGarbageIsCorrupt(t *testing.T) {
	_, err := parser.Parse([]byte("definitely not a zip archive"), domain.FileKindSpreadsheet, parser.Options{})
	var parseErr *parser.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, parser.CorruptFile, parseErr.Kind)
}

func TestParse_SpreadsheetRowLimitFailsMidStream(t *testing.T) {
	fileBytes := buildWorkbook(t, [][]interface{}{
		{"Acme", "Widget", 1, 1},
		{"Acme", "Widget", 2, 1},
		{"Acme", "Widget", 3, 1},
	})

	reader, err := parser.Parse(fileBytes, domain.FileKindSpreadsheet, parser.Options{MaxRows: 2})
	require.NoError(t, err)
	defer reader.Close()

	count := 0
	for reader.Next() {
		count++
	}
	assert.Equal(t, 2, count)
	var parseErr *parser.ParseError
	require.ErrorAs(t, reader.Err(), &parseErr)
	assert.Equal(t, parser.TooManyRows, parseErr.Kind)
}

func TestParse_DocumentCapturesCells(t *testing.T) {
	text := strings.Join([]string{
		"INVOICE 2024-07-01",
		"Acme Corp | Widget | 5 | 2.50",
		"",
		"Globex | Gadget | 3 | 10.00",
		"Subtotal: 22.50",
	}, "\n")

	reader, err := parser.Parse([]byte(text), domain.FileKindDocument, parser.Options{
		RowPatterns: []string{invoiceLinePattern},
	})
	require.NoError(t, err)
	defer reader.Close()

	var rows []parser.RawRow
	for reader.Next() {
		rows = append(rows, reader.Row())
	}
	require.NoError(t, reader.Err())
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Acme Corp", "Widget", "5", "2.50"}, rows[0].Cells)
	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, []string{"Globex", "Gadget", "3", "10.00"}, rows[1].Cells)
	// Header and subtotal lines match no pattern.
	assert.Equal(t, 2, reader.Skipped())
}

func TestParse_DocumentWithoutPatterns(t *testing.T) {
	_, err := parser.Parse([]byte("some text"), domain.FileKindDocument, parser.Options{})
	var parseErr *parser.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, parser.UnsupportedFormat, parseErr.Kind)
}

func TestParse_DocumentInvalidPattern(t *testing.T) {
	_, err := parser.Parse([]byte("some text"), domain.FileKindDocument, parser.Options{
		RowPatterns: []string{"(unclosed"},
	})
	var parseErr *parser.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, parser.UnsupportedFormat, parseErr.Kind)
}

func TestParse_DocumentBinaryPayloadRejected(t *testing.T) {
	_, err := parser.Parse([]byte{0x00, 0x01, 0x02}, domain.FileKindDocument, parser.Options{
		RowPatterns: []string{invoiceLinePattern},
	})
	var parseErr *parser.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, parser.UnsupportedFormat, parseErr.Kind)
}

func TestParse_DocumentRowLimit(t *testing.T) {
	text := "A | W | 1 | 1.00\nB | W | 2 | 1.00\nC | W | 3 | 1.00"
	reader, err := parser.Parse([]byte(text), domain.FileKindDocument, parser.Options{
		MaxRows:     2,
		RowPatterns: []string{invoiceLinePattern},
	})
	require.NoError(t, err)

	count := 0
	for reader.Next() {
		count++
	}
	assert.Equal(t, 2, count)
	var parseErr *parser.ParseError
	require.ErrorAs(t, reader.Err(), &parseErr)
	assert.Equal(t, parser.TooManyRows, parseErr.Kind)
	// A reader in error state stays exhausted.
	assert.False(t, reader.Next())
	require.NoError(t, reader.Close())
}
