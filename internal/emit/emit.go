// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package emit turns the scanned columns of a benchmark table into one chart
// file per device group.
package emit

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	mapset "github.com/deckarep/golang-set/v2"

	"benchcharts/internal/bench"
	"benchcharts/internal/chart"
	"benchcharts/internal/palette"
	"benchcharts/internal/runstats"
	"benchcharts/internal/selection"
	"benchcharts/internal/table"
	"benchcharts/internal/util"
)

// SettingsFileName is written next to the charts and records the filter.
const SettingsFileName = ".settings.txt"

// ErrNoDevice is returned when a chart is flushed before any device header
// was seen.
var ErrNoDevice = errors.New("no device header precedes the data columns")

// Options configures an Emitter.
type Options struct {
	Filter     selection.Filter
	Style      chart.Style
	YAxisTitle string
	GraphsDir  string   // root of all chart directories
	OutputDir  string   // directory name below GraphsDir
	Formats    []string // defaults to html only
	Open       bool     // open each html file after it is written
	Stats      *runstats.Stats
	// Opener opens a written html file. Defaults to util.OpenInBrowser.
	Opener func(path string) error
}

// Emitter receives the columns of a scan and writes one chart per device.
// It implements bench.Visitor.
type Emitter struct {
	opts    Options
	device  string
	chart   *chart.Chart
	written mapset.Set[string]
	files   []string
	flushes int
}

// New validates the options and returns an idle emitter.
func New(opts Options) (*Emitter, error) {
	if err := opts.Filter.Compile(); err != nil {
		return nil, err
	}
	formats, err := chart.ValidateFormats(opts.Formats)
	if err != nil {
		return nil, err
	}
	opts.Formats = formats
	if !util.IsValidDirectoryName(opts.OutputDir) {
		return nil, fmt.Errorf("invalid output directory name: %q", opts.OutputDir)
	}
	if opts.GraphsDir == "" {
		return nil, fmt.Errorf("graphs directory is required")
	}
	if opts.Opener == nil {
		opts.Opener = util.OpenInBrowser
	}
	return &Emitter{
		opts:    opts,
		chart:   chart.New(opts.Style),
		written: mapset.NewThreadUnsafeSet[string](),
	}, nil
}

// OutputPath is the directory the charts and the settings file are written to.
func (e *Emitter) OutputPath() string {
	return filepath.Join(e.opts.GraphsDir, e.opts.OutputDir)
}

// Files lists the written chart files in order.
func (e *Emitter) Files() []string {
	return e.files
}

// Flushes is the number of device charts flushed so far.
func (e *Emitter) Flushes() int {
	return e.flushes
}

// Device is the device group currently accumulating, empty before the first
// device header.
func (e *Emitter) Device() string {
	return e.device
}

// BeginDevice flushes the chart of the previous device, if any, and starts a
// new one.
func (e *Emitter) BeginDevice(name string) error {
	if e.device != "" {
		if err := e.Flush(); err != nil {
			return err
		}
	}
	e.device = name
	slog.Debug("device group", slog.String("device", name))
	return nil
}

// VisitColumn adds the column to the current chart when the filter includes it.
func (e *Emitter) VisitColumn(col bench.Column) error {
	box := e.opts.Style == chart.Box
	color := palette.Color(col.Params, box)
	name, included, err := e.opts.Filter.Name(col.Params)
	if err != nil {
		return fmt.Errorf("column %d (%s): %w", col.Index, col.Device, err)
	}
	e.opts.Stats.ColumnScanned(included)
	if !included {
		slog.Debug("column excluded", slog.Int("column", col.Index), slog.String("device", col.Device))
		return nil
	}
	if box {
		samples, err := col.Samples()
		if err != nil {
			return err
		}
		e.chart.AddBox(name, samples, color)
	} else {
		e.chart.AddBar(name, col.Average, color)
	}
	return nil
}

// Flush writes the current chart in every requested format and starts an
// empty one. A chart without series is still written when the format can
// draw it.
func (e *Emitter) Flush() error {
	if e.device == "" {
		return ErrNoDevice
	}
	e.chart.SetLayout(e.device, e.opts.YAxisTitle)
	util.MkdirQuiet(e.opts.GraphsDir)
	dir := e.OutputPath()
	util.MkdirQuiet(dir)
	base := util.SafeFileName(e.device)
	for _, format := range e.opts.Formats {
		out, err := chart.Render(format, e.chart)
		if errors.Is(err, chart.ErrEmptyChart) {
			slog.Warn("skipping empty chart", slog.String("device", e.device), slog.String("format", format))
			continue
		}
		if err != nil {
			return err
		}
		path := filepath.Join(dir, base+"."+format)
		if e.written.Contains(path) {
			slog.Warn("overwriting chart of an earlier device", slog.String("device", e.device), slog.String("path", path))
		}
		if err := util.WriteFile(path, out); err != nil {
			return err
		}
		e.written.Add(path)
		e.files = append(e.files, path)
		e.opts.Stats.FileWritten(format)
		if format == chart.FormatHtml && e.opts.Open {
			if err := e.opts.Opener(path); err != nil {
				slog.Warn("failed to open chart", slog.String("path", path), slog.String("error", err.Error()))
			}
		}
	}
	slog.Info("wrote device chart", slog.String("device", e.device), slog.Int("series", e.chart.Len()), slog.String("dir", dir))
	e.opts.Stats.DeviceFlushed(e.device, e.chart.Len())
	e.flushes++
	e.chart = chart.New(e.opts.Style)
	return nil
}

// Finish flushes the chart of the last device.
func (e *Emitter) Finish() error {
	return e.Flush()
}

// WriteSettings writes the filter summary to the output directory.
func (e *Emitter) WriteSettings() (string, error) {
	util.MkdirQuiet(e.opts.GraphsDir)
	util.MkdirQuiet(e.OutputPath())
	path := filepath.Join(e.OutputPath(), SettingsFileName)
	if err := util.WriteFile(path, []byte(e.opts.Filter.Settings(e.opts.OutputDir))); err != nil {
		return "", err
	}
	return path, nil
}

// Generate scans the table, flushes the last device and writes the settings
// file.
func Generate(t *table.Table, e *Emitter) error {
	slog.Info("generating charts", slog.String("filter", e.opts.Filter.String()), slog.String("style", e.opts.Style.String()))
	if err := bench.Scan(t, e); err != nil {
		return err
	}
	if err := e.Finish(); err != nil {
		return err
	}
	path, err := e.WriteSettings()
	if err != nil {
		return err
	}
	slog.Info("wrote settings", slog.String("path", path))
	return nil
}
