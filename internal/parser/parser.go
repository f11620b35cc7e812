// Package parser converts raw upload payloads (spreadsheets, pre-extracted
// PDF text) into an ordered sequence of untyped rows. It assigns no business
// meaning to cells; that is the normalizer's job.
package parser

import (
	"fmt"

	"github.com/partnerdesk/inventory_ingest_app/internal/core/domain"
)

// ParseErrorKind classifies file-level parse failures. Any ParseError is
// fatal to the whole upload job.
type ParseErrorKind string

const (
	UnsupportedFormat ParseErrorKind = "UNSUPPORTED_FORMAT"
	CorruptFile       ParseErrorKind = "CORRUPT_FILE"
	TooManyRows       ParseErrorKind = "TOO_MANY_ROWS"
)

// ParseError is a fatal file-level failure.
type ParseError struct {
	Kind ParseErrorKind
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RawRow is one extracted row: ordered cell values plus the 1-based index of
// the row in its source (sheet row or text line).
type RawRow struct {
	Index int
	Cells []string
}

// Options tunes parsing for one upload.
type Options struct {
	// MaxRows caps the number of data rows a file may yield. Exceeding it
	// fails with TooManyRows rather than truncating silently.
	MaxRows int

	// RowPatterns are caller-supplied regular expressions used to segment
	// document (PDF text) payloads into rows; each pattern's capture groups
	// become the row's cells. Ignored for spreadsheets.
	RowPatterns []string
}

// RowReader is a lazy, finite, single-pass cursor over parsed rows, in
// source order. There is no restart guarantee; callers buffer if they need
// replay. After Next returns false, Err distinguishes normal exhaustion from
// a mid-stream failure (e.g. TooManyRows).
type RowReader interface {
	Next() bool
	Row() RawRow
	Err() error
	Close() error

	// Skipped reports how many candidate rows were examined but did not
	// match any pattern (document payloads only; zero for spreadsheets).
	Skipped() int
}

// Parse validates the payload header eagerly and returns a row cursor.
// Malformed input fails fast with a ParseError before any row is yielded.
func Parse(fileBytes []byte, kind domain.FileKind, opts Options) (RowReader, error) {
	if len(fileBytes) == 0 {
		return nil, &ParseError{Kind: CorruptFile, Msg: "file is empty"}
	}
	switch kind {
	case domain.FileKindSpreadsheet:
		return newSpreadsheetReader(fileBytes, opts)
	case domain.FileKindDocument:
		return newDocumentReader(fileBytes, opts)
	default:
		return nil, &ParseError{Kind: UnsupportedFormat, Msg: fmt.Sprintf("unknown file kind %q", kind)}
	}
}
