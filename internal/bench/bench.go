// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package bench interprets the columns of a benchmark results table.
//
// Each data column describes one (device, configuration) run. Its first data
// rows carry the configuration; the rest carry the measurements:
//
//	row 0      renderer (only on the first column of a group)
//	row 1      mode (same rule)
//	rows 2-7   particle count, resolution width, resolution height,
//	           particle complexity, particle density, particle spread
//	row 9      precomputed average
//	rows 17..  raw samples, excluding the last row
package bench

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"benchcharts/internal/table"
)

// FirstDataColumn is the index of the first column that holds a benchmark run.
// Columns before it describe the rows.
const FirstDataColumn = 4

// Row indices of the configuration and measurement fields.
const (
	RowRenderer         = 0
	RowMode             = 1
	RowParticleCount    = 2
	RowResolutionWidth  = 3
	RowResolutionHeight = 4
	RowComplexity       = 5
	RowDensity          = 6
	RowSpread           = 7
	RowAverage          = 9
	RowFirstSample      = 17
)

// Params are the configuration parameters of one column.
type Params struct {
	Renderer         string
	Mode             string
	ParticleCount    int
	ResolutionWidth  int
	ResolutionHeight int
	Complexity       int
	Density          int
	Spread           int
}

// Carry holds the renderer and mode last given explicitly. Columns that leave
// those cells empty inherit the carried values.
type Carry struct {
	Renderer string
	Mode     string
}

// Update replaces the carried values with any non-empty cell.
func (c *Carry) Update(rendererCell, modeCell string) {
	if rendererCell != "" {
		c.Renderer = rendererCell
	}
	if modeCell != "" {
		c.Mode = modeCell
	}
}

// Column is one scanned data column.
type Column struct {
	Index   int
	Header  string
	Device  string
	Params  Params
	Average float64 // NaN when the cell is empty
	cells   []string
}

// Samples returns the raw measurements of the column, skipping empty cells.
// The last row of the table is not part of the samples.
func (c Column) Samples() ([]float64, error) {
	end := len(c.cells) - 1
	if end <= RowFirstSample {
		return nil, nil
	}
	samples := make([]float64, 0, end-RowFirstSample)
	for row := RowFirstSample; row < end; row++ {
		cell := c.cells[row]
		if cell == "" {
			continue
		}
		value, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("column %d (%s) row %d: invalid sample %q", c.Index, c.Device, row, cell)
		}
		samples = append(samples, value)
	}
	return samples, nil
}

// ParseParams reads the configuration rows of a column. The carry is updated
// from the renderer and mode cells before it supplies the values.
func ParseParams(cells []string, carry *Carry) (Params, error) {
	cell := func(row int) string {
		if row < len(cells) {
			return cells[row]
		}
		return ""
	}
	carry.Update(cell(RowRenderer), cell(RowMode))
	p := Params{
		Renderer: carry.Renderer,
		Mode:     carry.Mode,
	}
	fields := []struct {
		row  int
		name string
		dst  *int
	}{
		{RowParticleCount, "particle count", &p.ParticleCount},
		{RowResolutionWidth, "resolution width", &p.ResolutionWidth},
		{RowResolutionHeight, "resolution height", &p.ResolutionHeight},
		{RowComplexity, "particle complexity", &p.Complexity},
		{RowDensity, "particle density", &p.Density},
		{RowSpread, "particle spread", &p.Spread},
	}
	for _, field := range fields {
		value, err := parseInt(cell(field.row))
		if err != nil {
			return Params{}, fmt.Errorf("row %d (%s): %w", field.row, field.name, err)
		}
		*field.dst = value
	}
	return p, nil
}

// parseInt accepts integers and integral-looking floats such as "400.0".
// Fractions are truncated toward zero.
func parseInt(cell string) (int, error) {
	if cell == "" {
		return 0, fmt.Errorf("missing integer value")
	}
	if v, err := strconv.Atoi(cell); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid integer value %q", cell)
	}
	return int(f), nil
}

func parseAverage(cell string) (float64, error) {
	if cell == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, fmt.Errorf("row %d (average): invalid value %q", RowAverage, cell)
	}
	return v, nil
}

// Visitor receives the device groups and columns of a table in order.
type Visitor interface {
	// BeginDevice is called for every non-placeholder header, before the
	// column that carries it is parsed.
	BeginDevice(name string) error
	VisitColumn(col Column) error
}

// Scan walks the data columns of t. The metadata columns and the final column
// are skipped. Renderer and mode carry forward across columns, including across
// device boundaries.
func Scan(t *table.Table, v Visitor) error {
	var carry Carry
	device := ""
	for col := FirstDataColumn; col < t.NumColumns()-1; col++ {
		header := t.Header[col]
		if !table.IsPlaceholder(header) {
			device = header
			if err := v.BeginDevice(device); err != nil {
				return err
			}
		}
		cells := t.Column(col)
		params, err := ParseParams(cells, &carry)
		if err != nil {
			return fmt.Errorf("column %d (%s): %w", col, header, err)
		}
		var average float64
		if RowAverage < len(cells) {
			average, err = parseAverage(cells[RowAverage])
		} else {
			average = math.NaN()
		}
		if err != nil {
			return fmt.Errorf("column %d (%s): %w", col, header, err)
		}
		err = v.VisitColumn(Column{
			Index:   col,
			Header:  header,
			Device:  device,
			Params:  params,
			Average: average,
			cells:   cells,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
