// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package runstats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	s := New()
	s.ColumnScanned(true)
	s.ColumnScanned(false)
	s.ColumnScanned(true)
	s.DeviceFlushed("Device A", 2)
	s.FileWritten("html")
	s.FileWritten("html")
	s.FileWritten("png")

	assert.Equal(t, 3.0, testutil.ToFloat64(s.columnsScanned))
	assert.Equal(t, 2.0, testutil.ToFloat64(s.columnsIncluded))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.devices))
	assert.Equal(t, 2.0, testutil.ToFloat64(s.filesWritten.WithLabelValues("html")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.filesWritten.WithLabelValues("png")))
	assert.Equal(t, 2.0, testutil.ToFloat64(s.deviceSeries.WithLabelValues("Device A")))
}

func TestNilStatsIsNoop(t *testing.T) {
	var s *Stats
	assert.NotPanics(t, func() {
		s.ColumnScanned(true)
		s.DeviceFlushed("x", 1)
		s.FileWritten("html")
	})
}

func TestWriteTextfile(t *testing.T) {
	s := New()
	s.ColumnScanned(true)
	s.DeviceFlushed("Device A", 1)
	path := filepath.Join(t.TempDir(), "benchcharts.prom")
	require.NoError(t, s.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "benchcharts_columns_scanned_total 1")
	assert.Contains(t, text, `benchcharts_device_series{device="Device A"} 1`)
}

func TestWriteTextfileBadPath(t *testing.T) {
	s := New()
	err := s.WriteTextfile(filepath.Join(t.TempDir(), "missing", "run.prom"))
	assert.Error(t, err)
}
