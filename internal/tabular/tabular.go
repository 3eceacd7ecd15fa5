// Package tabular reads delimited text and spreadsheet files into a header
// row plus string cells, the common shape the importer and the reference
// catalog work from.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/msomdec/moviedb/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Table is a parsed tabular file. Rows are padded or truncated to the
// header width.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Value returns the trimmed cell of row at column, or "" when the column
// is absent.
func (t *Table) Value(row []string, column string) string {
	i := t.Index(column)
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Open reads the file at path, choosing a reader from its extension.
func Open(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
		}
		defer f.Close()
		return ReadDelimited(f)
	case ".xlsx", ".xlsm":
		return readWorkbook(path)
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, filepath.Base(path))
}

// ReadDelimited parses comma, semicolon or tab separated text. The
// delimiter is sniffed from the header line.
func ReadDelimited(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = sniffDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse delimited: %w", err)
	}
	return fromRecords(records)
}

func readWorkbook(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if err := isoDateCells(f, sheets[0], rows); err != nil {
		return nil, err
	}
	return fromRecords(rows)
}

// Built-in number formats that render a calendar date. Time-only formats
// are left out.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// isoDateCells replaces the display text of date-formatted cells with an
// ISO date. GetRows renders them with the cell's number format, which is
// usually month first.
func isoDateCells(f *excelize.File, sheet string, rows [][]string) error {
	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	isDate := make(map[int]bool)
	for r, row := range rows {
		for c, text := range row {
			if text == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			styleID, err := f.GetCellStyle(sheet, cell)
			if err != nil || styleID == 0 {
				continue
			}
			dated, ok := isDate[styleID]
			if !ok {
				dated = dateStyle(f, styleID)
				isDate[styleID] = dated
			}
			if !dated {
				continue
			}

			raw, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
			if err != nil {
				continue
			}
			serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				continue
			}
			t, err := excelize.ExcelDateToTime(serial, date1904)
			if err != nil {
				continue
			}
			row[c] = t.Format("2006-01-02")
		}
	}
	return nil
}

func dateStyle(f *excelize.File, styleID int) bool {
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return customDateFormat(*style.CustomNumFmt)
	}
	return builtinDateFormats[style.NumFmt]
}

// customDateFormat reports whether a number format code has day or year
// tokens outside quoted literals and bracketed sections.
func customDateFormat(code string) bool {
	var quoted, bracket bool
	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			bracket = true
		case r == ']':
			bracket = false
		case bracket:
		case r == 'd' || r == 'y':
			return true
		}
	}
	return false
}

func fromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, errors.New("file is empty")
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}

	t := &Table{Columns: header}
	for i, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		if len(rec) > len(header) && !blank(rec[len(header):]) {
			slog.Debug("dropping cells beyond the header", "row", i+1, "cells", len(rec), "columns", len(header))
		}
		row := make([]string, len(header))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	best, bestCount := ',', bytes.Count(line, []byte{','})
	for _, d := range []rune{';', '\t'} {
		if n := bytes.Count(line, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
