// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package benchtest builds benchmark result tables for tests.
package benchtest

import (
	"strconv"
	"strings"

	"benchcharts/internal/bench"
	"benchcharts/internal/table"
)

// Column describes one data column of a fixture table. An empty Renderer or
// Mode leaves the cell empty so the value carries forward.
type Column struct {
	Header     string
	Renderer   string
	Mode       string
	Count      int
	Width      int
	Height     int
	Complexity int
	Density    int
	Spread     int
	Average    string
	Samples    []string
}

// Matching returns a column that satisfies the default filter.
func Matching(header, renderer string, spread int, average string) Column {
	return Column{
		Header:     header,
		Renderer:   renderer,
		Mode:       "VertVert",
		Count:      1048576,
		Width:      1024,
		Height:     768,
		Complexity: 2,
		Density:    400,
		Spread:     spread,
		Average:    average,
	}
}

var rowLabels = map[int]string{
	bench.RowRenderer:         "Renderer",
	bench.RowMode:             "Mode",
	bench.RowParticleCount:    "ParticleCount",
	bench.RowResolutionWidth:  "ResolutionWidth",
	bench.RowResolutionHeight: "ResolutionHeight",
	bench.RowComplexity:       "ParticleComplexity",
	bench.RowDensity:          "ParticleDensity",
	bench.RowSpread:           "ParticleSpread",
	bench.RowAverage:          "Average",
}

// Rows lays the columns out the way the benchmark's CSV writer does: four
// metadata columns first and a trailing empty column on every row.
func Rows(columns []Column) [][]string {
	numRows := bench.RowFirstSample + 1
	for _, col := range columns {
		if n := bench.RowFirstSample + len(col.Samples) + 1; n > numRows {
			numRows = n
		}
	}
	width := bench.FirstDataColumn + len(columns) + 1
	records := make([][]string, numRows+1)
	records[0] = make([]string, width)
	records[0][0] = "Setting"
	for r := 1; r <= numRows; r++ {
		records[r] = make([]string, width)
		records[r][0] = rowLabels[r-1]
	}
	for i, col := range columns {
		c := bench.FirstDataColumn + i
		records[0][c] = col.Header
		set := func(row int, value string) { records[row+1][c] = value }
		set(bench.RowRenderer, col.Renderer)
		set(bench.RowMode, col.Mode)
		set(bench.RowParticleCount, strconv.Itoa(col.Count))
		set(bench.RowResolutionWidth, strconv.Itoa(col.Width))
		set(bench.RowResolutionHeight, strconv.Itoa(col.Height))
		set(bench.RowComplexity, strconv.Itoa(col.Complexity))
		set(bench.RowDensity, strconv.Itoa(col.Density))
		set(bench.RowSpread, strconv.Itoa(col.Spread))
		set(bench.RowAverage, col.Average)
		for s, sample := range col.Samples {
			set(bench.RowFirstSample+s, sample)
		}
	}
	return records
}

// Table builds an in-memory table from the columns.
func Table(columns []Column) *table.Table {
	t, err := table.FromRows(Rows(columns))
	if err != nil {
		panic(err)
	}
	return t
}

// CSV renders the columns as CSV text.
func CSV(columns []Column) string {
	var sb strings.Builder
	for _, record := range Rows(columns) {
		sb.WriteString(strings.Join(record, ","))
		sb.WriteString("\n")
	}
	return sb.String()
}
