package parser

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
	"unicode/utf8"
)

// documentReader segments pre-extracted PDF text into rows using the
// caller-supplied patterns. Each pattern's capture groups become the cells
// of a row; lines matching no pattern are skipped and counted, not fatal.
type documentReader struct {
	scanner  *bufio.Scanner
	patterns []*regexp.Regexp

	current RawRow
	index   int // running 1-based index of yielded rows
	line    int
	skipped int
	maxRows int
	err     error
}

func newDocumentReader(fileBytes []byte, opts Options) (RowReader, error) {
	if !utf8.Valid(fileBytes) || bytes.ContainsRune(fileBytes, 0) {
		return nil, &ParseError{Kind: UnsupportedFormat, Msg: "document payload is not extracted text"}
	}
	if len(opts.RowPatterns) == 0 {
		return nil, &ParseError{Kind: UnsupportedFormat, Msg: "no row patterns configured for document input"}
	}
	patterns := make([]*regexp.Regexp, 0, len(opts.RowPatterns))
	for _, p := range opts.RowPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, &ParseError{Kind: UnsupportedFormat, Msg: "invalid row pattern " + p, Err: err}
		}
		patterns = append(patterns, re)
	}
	scanner := bufio.NewScanner(bytes.NewReader(fileBytes))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &documentReader{scanner: scanner, patterns: patterns, maxRows: opts.MaxRows}, nil
}

func (r *documentReader) Next() bool {
	if r.err != nil {
		return false
	}
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		cells, ok := r.matchLine(line)
		if !ok {
			r.skipped++
			continue
		}
		r.index++
		if r.maxRows > 0 && r.index > r.maxRows {
			r.err = &ParseError{Kind: TooManyRows, Msg: "row limit exceeded"}
			return false
		}
		r.current = RawRow{Index: r.index, Cells: cells}
		return true
	}
	if err := r.scanner.Err(); err != nil {
		r.err = &ParseError{Kind: CorruptFile, Msg: "scan document text", Err: err}
	}
	return false
}

// matchLine returns the capture groups of the first matching pattern. A
// pattern without groups yields the whole match as a single cell.
func (r *documentReader) matchLine(line string) ([]string, bool) {
	for _, re := range r.patterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if len(m) == 1 {
			return []string{m[0]}, true
		}
		cells := make([]string, len(m)-1)
		for i, g := range m[1:] {
			cells[i] = strings.TrimSpace(g)
		}
		return cells, true
	}
	return nil, false
}

func (r *documentReader) Row() RawRow { return r.current }

func (r *documentReader) Err() error { return r.err }

func (r *documentReader) Skipped() int { return r.skipped }

func (r *documentReader) Close() error { return nil }
