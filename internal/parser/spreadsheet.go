package parser

import (
	"bytes"

	"github.com/xuri/excelize/v2"
)

// spreadsheetReader streams rows out of an xlsx workbook, sheet by sheet,
// using excelize's row iterator so large files are not held in memory twice.
type spreadsheetReader struct {
	file    *excelize.File
	sheets  []string
	sheetIx int
	rows    *excelize.Rows

	current RawRow
	index   int // running 1-based row index across the workbook
	maxRows int
	err     error
	done    bool
}

func newSpreadsheetReader(fileBytes []byte, opts Options) (RowReader, error) {
	f, err := excelize.OpenReader(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, &ParseError{Kind: CorruptFile, Msg: "open spreadsheet", Err: err}
	}
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return nil, &ParseError{Kind: CorruptFile, Msg: "spreadsheet has no sheets"}
	}
	return &spreadsheetReader{file: f, sheets: sheets, maxRows: opts.MaxRows}, nil
}

func (r *spreadsheetReader) Next() bool {
	if r.done || r.err != nil {
		return false
	}
	for {
		if r.rows == nil {
			if r.sheetIx >= len(r.sheets) {
				r.done = true
				return false
			}
			rows, err := r.file.Rows(r.sheets[r.sheetIx])
			if err != nil {
				r.err = &ParseError{Kind: CorruptFile, Msg: "read sheet " + r.sheets[r.sheetIx], Err: err}
				return false
			}
			r.rows = rows
			r.sheetIx++
		}
		if !r.rows.Next() {
			if err := r.rows.Error(); err != nil {
				r.err = &ParseError{Kind: CorruptFile, Msg: "iterate sheet rows", Err: err}
				return false
			}
			r.rows.Close()
			r.rows = nil
			continue
		}
		cells, err := r.rows.Columns()
		if err != nil {
			r.err = &ParseError{Kind: CorruptFile, Msg: "read row cells", Err: err}
			return false
		}
		r.index++
		if r.maxRows > 0 && r.index > r.maxRows {
			r.err = &ParseError{Kind: TooManyRows, Msg: "row limit exceeded"}
			return false
		}
		r.current = RawRow{Index: r.index, Cells: cells}
		return true
	}
}

func (r *spreadsheetReader) Row() RawRow { return r.current }

func (r *spreadsheetReader) Err() error { return r.err }

func (r *spreadsheetReader) Skipped() int { return 0 }

func (r *spreadsheetReader) Close() error {
	if r.rows != nil {
		r.rows.Close()
		r.rows = nil
	}
	return r.file.Close()
}
