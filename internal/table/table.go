// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package table loads delimited benchmark result tables into column-major form.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// placeholderPrefix marks auto-generated names for headers that were left empty.
const placeholderPrefix = "Unnamed"

// Table holds a header row and the data cells of every column.
// Columns[c][r] is data row r (the first line after the header is row 0) of column c.
type Table struct {
	Header  []string
	Columns [][]string
	rows    int
}

// Load reads a table from a .csv or .xlsx file, chosen by extension.
func Load(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadXlsx(path)
	default:
		return loadCSV(path)
	}
}

func loadCSV(path string) (*Table, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open input table %s", path)
	}
	defer f.Close()
	t, err := ReadCSV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read input table %s", path)
	}
	slog.Debug("loaded table", slog.String("path", path), slog.Int("columns", t.NumColumns()), slog.Int("rows", t.NumRows()))
	return t, nil
}

func loadXlsx(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open input workbook %s", path)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s of %s", sheets[0], path)
	}
	t, err := FromRows(padRows(rows, sheetWidth(f, sheets[0])))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read input workbook %s", path)
	}
	slog.Debug("loaded workbook", slog.String("path", path), slog.String("sheet", sheets[0]), slog.Int("columns", t.NumColumns()), slog.Int("rows", t.NumRows()))
	return t, nil
}

// sheetWidth returns the column count of the sheet's used range, or 0 when the
// workbook does not record one.
func sheetWidth(f *excelize.File, sheet string) int {
	ref, err := f.GetSheetDimension(sheet)
	if err != nil || ref == "" {
		return 0
	}
	parts := strings.Split(ref, ":")
	col, _, err := excelize.CellNameToCoordinates(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return col
}

// padRows restores the layout of a CSV export. GetRows drops trailing empty
// cells, so the header is widened to the sheet width and the widest row, and a
// trailing empty column is appended when the last header is a device name.
func padRows(rows [][]string, width int) [][]string {
	if len(rows) == 0 {
		return rows
	}
	for _, row := range rows {
		width = max(width, len(row))
	}
	header := rows[0]
	for len(header) < width {
		header = append(header, "")
	}
	if len(header) > 0 && header[len(header)-1] != "" {
		header = append(header, "")
	}
	rows[0] = header
	return rows
}

// ReadCSV parses comma separated records. Rows may be ragged.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return FromRows(records)
}

// FromRows builds a table from row-major records, the first of which is the header.
// The header fixes the column count: short rows are padded with empty cells and
// cells beyond the header are dropped. Rows made only of empty cells are kept.
// Data cells are trimmed so numbers parse; headers are not.
func FromRows(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, errors.New("table has no header row")
	}
	header := normalizeHeader(records[0])
	t := &Table{
		Header:  header,
		Columns: make([][]string, len(header)),
		rows:    len(records) - 1,
	}
	for c := range t.Columns {
		t.Columns[c] = make([]string, t.rows)
	}
	for r, record := range records[1:] {
		for c := 0; c < len(header) && c < len(record); c++ {
			t.Columns[c][r] = strings.TrimSpace(record[c])
		}
	}
	return t, nil
}

// normalizeHeader keeps header text verbatim, names empty headers "Unnamed: <index>" and suffixes repeated
// names with ".<n>" so that every column name is unique.
func normalizeHeader(raw []string) []string {
	header := make([]string, len(raw))
	seen := mapset.NewThreadUnsafeSet[string]()
	for i, name := range raw {
		if name == "" {
			name = fmt.Sprintf("%s: %d", placeholderPrefix, i)
		}
		if seen.Contains(name) {
			base := name
			for n := 1; seen.Contains(name); n++ {
				name = fmt.Sprintf("%s.%d", base, n)
			}
			slog.Warn("renamed duplicate column header", slog.String("header", base), slog.String("renamed", name))
		}
		seen.Add(name)
		header[i] = name
	}
	return header
}

// IsPlaceholder reports whether a header continues the previous device group.
func IsPlaceholder(header string) bool {
	return header == "" || strings.HasPrefix(header, placeholderPrefix)
}

// NumColumns returns the number of columns, including metadata columns.
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// NumRows returns the number of data rows below the header.
func (t *Table) NumRows() int {
	return t.rows
}

// Cell returns the cell at column col, data row row, or "" when out of range.
func (t *Table) Cell(col, row int) string {
	if col < 0 || col >= len(t.Columns) || row < 0 || row >= t.rows {
		return ""
	}
	return t.Columns[col][row]
}

// Column returns the data cells of column col.
func (t *Table) Column(col int) []string {
	if col < 0 || col >= len(t.Columns) {
		return nil
	}
	return t.Columns[col]
}
