package material

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file type (want .csv or .xlsx)")
	ErrEmptyFile         = errors.New("file has no header row")
)

// ParseError wraps anything that went wrong reading an upload. The message
// is the underlying parser's, unchanged.
type ParseError struct{ Err error }

func (e *ParseError) Error() string { return e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

// Table is an uploaded sheet: header names plus string cells, every row as
// wide as Columns.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Parse reads a .xlsx workbook (first sheet) or delimited text.
func Parse(filename string, r io.Reader) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return parseXLSX(r)
	case ".csv", ".txt", ".tsv":
		return parseDelimited(r)
	default:
		return nil, &ParseError{Err: ErrUnsupportedFormat}
	}
}

func parseXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Err: ErrEmptyFile}
	}
	// raw values: "1234.5" instead of the cell's display format ("1.234,50")
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return buildTable(rows)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func parseDelimited(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = sniffDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return buildTable(records)
}

var delimiterCandidates = []rune{',', ';', '\t', '|'}

// sniffDelimiter picks the candidate occurring most often on the first
// non-blank line; ties go to the earlier candidate, no hit means ','.
func sniffDelimiter(data []byte) rune {
	var header string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			header = line
			break
		}
	}
	best, bestN := ',', 0
	for _, d := range delimiterCandidates {
		if n := strings.Count(header, string(d)); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}

// buildTable takes the first non-blank record as the header, drops blank
// records and pads short ones. Rows wider than the header extend it with
// unnamed columns, which the column mapping then drops.
func buildTable(records [][]string) (*Table, error) {
	start := -1
	for i, rec := range records {
		if !blank(rec) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, &ParseError{Err: ErrEmptyFile}
	}

	t := &Table{Columns: append([]string(nil), records[start]...)}
	for _, rec := range records[start+1:] {
		if blank(rec) {
			continue
		}
		for len(t.Columns) < len(rec) {
			t.Columns = append(t.Columns, "")
		}
		t.Rows = append(t.Rows, rec)
	}
	for i, rec := range t.Rows {
		if len(rec) < len(t.Columns) {
			padded := make([]string, len(t.Columns))
			copy(padded, rec)
			t.Rows[i] = padded
		}
	}
	return t, nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func (t *Table) String() string {
	return fmt.Sprintf("table(%d columns, %d rows)", len(t.Columns), len(t.Rows))
}
