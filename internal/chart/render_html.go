// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package chart

import (
	"bytes"
	"fmt"
	"math"
	"regexp"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// missingValue is how echarts marks an absent data point.
const missingValue = "-"

const (
	htmlWidth  = "1000px"
	htmlHeight = "600px"
	// series share one stack so that each category shows only its own bar or box
	seriesStack = "device"
)

var rxNonIdentifier = regexp.MustCompile(`[^A-Za-z0-9_]`)

// chartID derives a stable identifier from the title so that rendering the
// same chart twice yields identical files.
func chartID(title string) string {
	return "benchcharts_" + rxNonIdentifier.ReplaceAllString(title, "_")
}

func globalOptions(c *Chart) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       c.Title,
			ChartID:         chartID(c.Title),
			BackgroundColor: c.Background.String(),
			Width:           htmlWidth,
			Height:          htmlHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: c.Title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "30",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "category",
			AxisLabel: &opts.AxisLabel{
				Rotate: 30,
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: c.YAxisTitle,
			Type: "value",
		}),
		charts.WithGridOpts(opts.Grid{
			Top:    "90",
			Bottom: "120",
		}),
	}
}

func renderHtml(c *Chart) ([]byte, error) {
	buf := new(bytes.Buffer)
	var err error
	if c.Style == Box {
		err = newBoxPlot(c).Render(buf)
	} else {
		err = newBar(c).Render(buf)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render chart %s: %w", c.Title, err)
	}
	return buf.Bytes(), nil
}

// newBar places series i in category i; the other categories of the series
// are left empty.
func newBar(c *Chart) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(c)...)
	bar.SetXAxis(c.Labels())
	for i, series := range c.Series {
		data := make([]opts.BarData, len(c.Series))
		for j := range data {
			data[j] = opts.BarData{Value: missingValue}
		}
		if !math.IsNaN(series.Value) {
			data[i] = opts.BarData{Name: series.Name, Value: series.Value}
		}
		bar.AddSeries(series.Name, data,
			charts.WithBarChartOpts(opts.BarChart{
				Stack: seriesStack,
			}),
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: series.Color.String(),
			}),
		)
	}
	return bar
}

// newBoxPlot draws each series from its box statistics: lower whisker, Q1,
// median, Q3, upper whisker.
func newBoxPlot(c *Chart) *charts.BoxPlot {
	box := charts.NewBoxPlot()
	box.SetGlobalOptions(globalOptions(c)...)
	box.SetXAxis(c.Labels())
	for i, series := range c.Series {
		data := make([]opts.BoxPlotData, len(c.Series))
		for j := range data {
			data[j] = opts.BoxPlotData{Value: missingValue}
		}
		stats := BoxStats(series.Samples)
		if stats.Count > 0 {
			data[i] = opts.BoxPlotData{
				Name:  series.Name,
				Value: []float64{stats.LowerWhisker, stats.Q1, stats.Median, stats.Q3, stats.UpperWhisker},
			}
		}
		box.AddSeries(series.Name, data,
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color:       "transparent",
				BorderColor: series.Color.String(),
			}),
		)
	}
	return box
}
