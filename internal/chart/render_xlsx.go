// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package chart

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/xuri/excelize/v2"
)

// DataSheet is the name of the worksheet holding the chart data.
const DataSheet = "Data"

const (
	xlsxTitleRow  = 1
	xlsxHeaderRow = 2
	xlsxFirstRow  = 3
)

var boxHeader = []string{"Series", "Count", "Min", "Lower Whisker", "Q1", "Median", "Q3", "Upper Whisker", "Max", "Mean", "Outliers"}

// the column charted for each style; box charts plot the median
const (
	barValueColumn = 2
	boxValueColumn = 6
)

// cellValue maps NaN to an empty cell.
func cellValue(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func renderXlsx(c *Chart) (out []byte, err error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("failed to close workbook", slog.String("error", err.Error()))
		}
	}()
	if err = f.SetSheetName(f.GetSheetName(0), DataSheet); err != nil {
		return
	}
	if err = f.SetCellValue(DataSheet, cell(1, xlsxTitleRow), c.Title); err != nil {
		return
	}
	valueColumn := barValueColumn
	header := []string{"Series", c.YAxisTitle}
	if c.Style == Box {
		valueColumn = boxValueColumn
		header = boxHeader
	}
	if err = f.SetSheetRow(DataSheet, cell(1, xlsxHeaderRow), &header); err != nil {
		return
	}
	for i, series := range c.Series {
		row := []any{series.Name, cellValue(series.Value)}
		if c.Style == Box {
			s := BoxStats(series.Samples)
			row = []any{series.Name, s.Count, cellValue(s.Min), cellValue(s.LowerWhisker), cellValue(s.Q1),
				cellValue(s.Median), cellValue(s.Q3), cellValue(s.UpperWhisker), cellValue(s.Max), cellValue(s.Mean), s.Outliers}
		}
		if err = f.SetSheetRow(DataSheet, cell(1, xlsxFirstRow+i), &row); err != nil {
			return
		}
	}
	if err = f.SetColWidth(DataSheet, "A", "A", 40); err != nil {
		return
	}
	if len(c.Series) > 0 {
		if err = f.AddChart(DataSheet, cell(len(header)+2, xlsxHeaderRow), newXlsxChart(c, valueColumn)); err != nil {
			err = fmt.Errorf("failed to add chart %s: %w", c.Title, err)
			return
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return
	}
	out = buf.Bytes()
	return
}

// newXlsxChart builds a clustered column chart with one colored series per row.
func newXlsxChart(c *Chart, valueColumn int) *excelize.Chart {
	series := make([]excelize.ChartSeries, len(c.Series))
	for i, s := range c.Series {
		row := xlsxFirstRow + i
		series[i] = excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!%s", DataSheet, absCell(1, row)),
			Categories: fmt.Sprintf("%s!%s", DataSheet, absCell(1, row)),
			Values:     fmt.Sprintf("%s!%s", DataSheet, absCell(valueColumn, row)),
			Fill:       solidFill(s.Color.Hex()),
		}
	}
	return &excelize.Chart{
		Type:         excelize.Col,
		Series:       series,
		Title:        []excelize.RichTextRun{{Text: c.Title}},
		YAxis:        excelize.ChartAxis{MajorGridLines: true, Title: []excelize.RichTextRun{{Text: c.YAxisTitle}}},
		Legend:       excelize.ChartLegend{Position: "bottom"},
		Dimension:    excelize.ChartDimension{Width: 960, Height: 540},
		Fill:         solidFill(c.Background.Hex()),
		ShowBlanksAs: "gap",
	}
}

func solidFill(hex string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#" + hex}}
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func absCell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row, true)
	return name
}
