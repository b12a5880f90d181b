// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package chart

import (
	"bytes"
	"fmt"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	pngHeight      = 720
	pngMinWidth    = 1024
	pngBarWidth    = 40
	pngBarSpacing  = 20
	pngAxisPadding = 1.1
)

// renderPng draws one bar per series. Box series are drawn at their median.
// Series without a value are left out.
func renderPng(c *Chart) ([]byte, error) {
	var bars []gochart.Value
	top := 0.0
	for _, series := range c.Series {
		v := series.representative()
		if math.IsNaN(v) {
			continue
		}
		top = math.Max(top, v)
		bars = append(bars, gochart.Value{
			Label: series.Name,
			Value: v,
			Style: gochart.Style{
				FillColor:   hexColor(series.Color.Hex()),
				StrokeColor: hexColor(series.Color.Hex()),
			},
		})
	}
	if len(bars) == 0 {
		return nil, ErrEmptyChart
	}
	if top <= 0 {
		top = 1
	}
	graph := gochart.BarChart{
		Title:      c.Title,
		Width:      max(pngMinWidth, len(bars)*(pngBarWidth+pngBarSpacing)+200),
		Height:     pngHeight,
		BarWidth:   pngBarWidth,
		BarSpacing: pngBarSpacing,
		Background: gochart.Style{
			FillColor: hexColor(c.Background.Hex()),
			Padding:   gochart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		YAxis: gochart.YAxis{
			Name:  c.YAxisTitle,
			Range: &gochart.ContinuousRange{Min: 0, Max: top * pngAxisPadding},
		},
		Bars: bars,
	}
	buf := new(bytes.Buffer)
	if err := graph.Render(gochart.PNG, buf); err != nil {
		return nil, fmt.Errorf("failed to render chart %s: %w", c.Title, err)
	}
	return buf.Bytes(), nil
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(hex)
}
