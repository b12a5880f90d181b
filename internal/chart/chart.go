// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package chart accumulates the series of one device chart and renders it in
// various formats such as html, xlsx, png.
package chart

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"benchcharts/internal/palette"
	"benchcharts/internal/util"
)

const (
	FormatHtml = "html"
	FormatXlsx = "xlsx"
	FormatPng  = "png"
	FormatAll  = "all"
)

// FormatOptions lists the formats a chart can be rendered in. HTML is always written.
var FormatOptions = []string{FormatHtml, FormatXlsx, FormatPng}

// ErrEmptyChart is returned by renderers that cannot draw a chart without series.
var ErrEmptyChart = errors.New("chart has no series to draw")

// Style selects how each series is drawn.
type Style int

const (
	// Bar draws one bar per series from its precomputed average.
	Bar Style = iota
	// Box draws one box-and-whisker per series from its raw samples.
	Box
)

func (s Style) String() string {
	if s == Box {
		return "box"
	}
	return "bar"
}

// Series is one bar or box within a chart.
type Series struct {
	Name    string
	Color   palette.HSL
	Value   float64   // bar height, NaN when missing
	Samples []float64 // box samples
}

// Chart is the in-progress chart of one device group.
type Chart struct {
	Title      string
	YAxisTitle string
	Background palette.HSL
	Style      Style
	Series     []Series
}

// New returns an empty chart of the given style.
func New(style Style) *Chart {
	return &Chart{Style: style, Background: palette.Background()}
}

// AddBar appends a bar series.
func (c *Chart) AddBar(name string, value float64, color palette.HSL) {
	c.Series = append(c.Series, Series{Name: name, Color: color, Value: value})
}

// AddBox appends a box-and-whisker series.
func (c *Chart) AddBox(name string, samples []float64, color palette.HSL) {
	c.Series = append(c.Series, Series{Name: name, Color: color, Value: math.NaN(), Samples: samples})
}

// SetLayout sets the title and the value axis title.
func (c *Chart) SetLayout(title, yAxisTitle string) {
	c.Title = title
	c.YAxisTitle = yAxisTitle
}

// Len returns the number of series.
func (c *Chart) Len() int {
	return len(c.Series)
}

// Labels returns the series names in order.
func (c *Chart) Labels() []string {
	labels := make([]string, len(c.Series))
	for i, s := range c.Series {
		labels[i] = s.Name
	}
	return labels
}

// representative returns the single value used where a format can only draw
// bars: the bar height, or the median of a box.
func (s Series) representative() float64 {
	if len(s.Samples) == 0 {
		return s.Value
	}
	return BoxStats(s.Samples).Median
}

// Render renders the chart in the specified format.
func Render(format string, c *Chart) (out []byte, err error) {
	switch format {
	case FormatHtml:
		return renderHtml(c)
	case FormatXlsx:
		return renderXlsx(c)
	case FormatPng:
		return renderPng(c)
	}
	return nil, fmt.Errorf("expected one of %s, got %s", strings.Join(FormatOptions, ", "), format)
}

// ValidateFormats expands "all" and rejects unknown formats. HTML is always
// included and comes first.
func ValidateFormats(formats []string) ([]string, error) {
	result := []string{FormatHtml}
	for _, format := range formats {
		format = strings.ToLower(strings.TrimSpace(format))
		if format == FormatAll {
			return slices.Clone(FormatOptions), nil
		}
		if !slices.Contains(FormatOptions, format) {
			return nil, fmt.Errorf("format options are: %s", strings.Join(append([]string{FormatAll}, FormatOptions...), ", "))
		}
		result = util.UniqueAppend(result, format)
	}
	return result, nil
}
