// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package runstats counts what a chart run scanned and wrote. The counters
// can be written in the Prometheus text format for node_exporter's textfile
// collector.
package runstats

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

const promMetricPrefix = "benchcharts_"

// Stats holds the counters of one run in a private registry.
type Stats struct {
	registry        *prometheus.Registry
	columnsScanned  prometheus.Counter
	columnsIncluded prometheus.Counter
	devices         prometheus.Counter
	filesWritten    *prometheus.CounterVec
	deviceSeries    *prometheus.GaugeVec
}

// New creates and registers the run counters.
func New() *Stats {
	s := &Stats{
		registry: prometheus.NewRegistry(),
		columnsScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: promMetricPrefix + "columns_scanned_total",
			Help: "Data columns read from the input table",
		}),
		columnsIncluded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: promMetricPrefix + "columns_included_total",
			Help: "Data columns that passed the filter and became a series",
		}),
		devices: prometheus.NewCounter(prometheus.CounterOpts{
			Name: promMetricPrefix + "devices_total",
			Help: "Device charts flushed",
		}),
		filesWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: promMetricPrefix + "files_written_total",
			Help: "Chart files written",
		}, []string{"format"}),
		deviceSeries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: promMetricPrefix + "device_series",
			Help: "Series in the chart of a device",
		}, []string{"device"}),
	}
	s.registry.MustRegister(s.columnsScanned, s.columnsIncluded, s.devices, s.filesWritten, s.deviceSeries)
	return s
}

// ColumnScanned counts a data column, included or not.
func (s *Stats) ColumnScanned(included bool) {
	if s == nil {
		return
	}
	s.columnsScanned.Inc()
	if included {
		s.columnsIncluded.Inc()
	}
}

// DeviceFlushed records a flushed device chart and its series count.
func (s *Stats) DeviceFlushed(device string, series int) {
	if s == nil {
		return
	}
	s.devices.Inc()
	s.deviceSeries.WithLabelValues(device).Set(float64(series))
}

// FileWritten counts a chart file of the given format.
func (s *Stats) FileWritten(format string) {
	if s == nil {
		return
	}
	s.filesWritten.WithLabelValues(format).Inc()
}

// Registry exposes the underlying registry.
func (s *Stats) Registry() *prometheus.Registry {
	return s.registry
}

// WriteTextfile writes all counters to path in the Prometheus text format.
func (s *Stats) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, s.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	slog.Info("wrote run metrics", slog.String("path", path))
	return nil
}
