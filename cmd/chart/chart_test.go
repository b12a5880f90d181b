package chart

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchcharts/internal/app"
	"benchcharts/internal/bench/benchtest"
	"benchcharts/internal/emit"
	"benchcharts/internal/selection"
)

func resetFlags() {
	Cmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	flagInput = DefaultInput
	flagName = DefaultOutputDir
	flagTitle = DefaultDataTitle
	flagBox = false
	flagFormat = []string{"html"}
	flagPreset = ""
	flagOpen = false
	flagMetrics = ""
	flagFilter = selection.DefaultFilter()
}

// execute runs the chart command below a bare root that carries the app context.
func execute(t *testing.T, graphs string, args ...string) (string, error) {
	t.Helper()
	return executeWithContext(t, app.Context{GraphsDir: graphs}, args...)
}

func executeWithContext(t *testing.T, appContext app.Context, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	root := &cobra.Command{Use: "test"}
	root.AddGroup(&cobra.Group{ID: "primary", Title: "Commands:"})
	root.AddCommand(Cmd)
	defer root.RemoveCommand(Cmd)
	root.SetContext(context.WithValue(context.Background(), app.Context{}, appContext))
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(append([]string{cmdName, "--open=false"}, args...))
	err := root.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, columns []benchtest.Column) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Frametime-Full.csv")
	require.NoError(t, os.WriteFile(path, []byte(benchtest.CSV(columns)), 0644))
	return path
}

func sampleColumns() []benchtest.Column {
	samples := []string{"16.1", "16.4", "17.0", "16.8"}
	columns := []benchtest.Column{
		benchtest.Matching("Pixel 7", "Forward", 29, "16.5"),
		benchtest.Matching("", "GBuffer3", 3, "14.2"),
		benchtest.Matching("Galaxy S23", "VBuffer", 100, "11.0"),
	}
	for i := range columns {
		columns[i].Samples = samples
	}
	return columns
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestChartDefaults(t *testing.T) {
	graphs := filepath.Join(t.TempDir(), "graphs")
	out, err := execute(t, graphs, "--input", writeInput(t, sampleColumns()))
	require.NoError(t, err)
	assert.Contains(t, out, "Charts for 2 device(s)")

	dir := filepath.Join(graphs, DefaultOutputDir)
	pixel := readFile(t, filepath.Join(dir, "Pixel 7.html"))
	assert.Contains(t, pixel, "Forward, 0.03")
	assert.Contains(t, pixel, "GBuffer3, 0.003")
	assert.Contains(t, pixel, DefaultDataTitle)
	galaxy := readFile(t, filepath.Join(dir, "Galaxy S23.html"))
	assert.Contains(t, galaxy, "VBuffer, 0.1")
	filter := selection.DefaultFilter()
	assert.Equal(t, filter.Settings(DefaultOutputDir), readFile(t, filepath.Join(dir, emit.SettingsFileName)))
}

func TestChartBoxFormatsAndMetrics(t *testing.T) {
	graphs := filepath.Join(t.TempDir(), "graphs")
	metrics := filepath.Join(t.TempDir(), "run.prom")
	_, err := execute(t, graphs,
		"--input", writeInput(t, sampleColumns()),
		"--box", "--format", "all", "--metrics", metrics, "--name", "Box-OUTPUT")
	require.NoError(t, err)
	dir := filepath.Join(graphs, "Box-OUTPUT")
	for _, file := range []string{"Pixel 7.html", "Pixel 7.xlsx", "Pixel 7.png", "Galaxy S23.png"} {
		assert.FileExists(t, filepath.Join(dir, file))
	}
	assert.Contains(t, readFile(t, filepath.Join(dir, "Pixel 7.html")), "boxplot")
	text := readFile(t, metrics)
	assert.Contains(t, text, "benchcharts_devices_total 2")
	assert.Contains(t, text, "benchcharts_columns_included_total 3")
}

func TestChartFilterFlags(t *testing.T) {
	graphs := filepath.Join(t.TempDir(), "graphs")
	_, err := execute(t, graphs, "--input", writeInput(t, sampleColumns()), "--renderer", "GBuffer3", "--where", "spread < 10")
	require.NoError(t, err)
	dir := filepath.Join(graphs, DefaultOutputDir)
	pixel := readFile(t, filepath.Join(dir, "Pixel 7.html"))
	assert.Contains(t, pixel, "GBuffer3, 0.003")
	assert.NotContains(t, pixel, "Forward, 0.03")
	settings := readFile(t, filepath.Join(dir, emit.SettingsFileName))
	assert.Contains(t, settings, "Renderer: GBuffer3\n")
	assert.Contains(t, settings, "Where: spread < 10\n")
}

func TestChartPreset(t *testing.T) {
	input := writeInput(t, sampleColumns())
	preset := filepath.Join(t.TempDir(), "preset.yaml")
	content := "input: " + input + "\n" +
		"name: Preset-OUTPUT\n" +
		"title: Frame time\n" +
		"filter:\n" +
		"  renderer: VBuffer\n"
	require.NoError(t, os.WriteFile(preset, []byte(content), 0644))

	graphs := filepath.Join(t.TempDir(), "graphs")
	_, err := execute(t, graphs, "--preset", preset, "--name", "Flag-OUTPUT")
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(graphs, "Preset-OUTPUT"))
	dir := filepath.Join(graphs, "Flag-OUTPUT")
	galaxy := readFile(t, filepath.Join(dir, "Galaxy S23.html"))
	assert.Contains(t, galaxy, "VBuffer, 0.1")
	assert.Contains(t, galaxy, "Frame time")
	assert.NotContains(t, readFile(t, filepath.Join(dir, "Pixel 7.html")), "Forward, 0.03")
	assert.Contains(t, readFile(t, filepath.Join(dir, emit.SettingsFileName)), "Renderer: VBuffer\n")
}

func TestLoadPresetRejectsUnknownKeys(t *testing.T) {
	preset := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(preset, []byte("colour: red\n"), 0644))
	_, err := LoadPreset(preset)
	assert.Error(t, err)
}

func TestLoadPresetKeepsDefaults(t *testing.T) {
	preset := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(preset, []byte("box: true\nfilter:\n  particle_spread: 29\n"), 0644))
	settings, err := LoadPreset(preset)
	require.NoError(t, err)
	assert.True(t, settings.Box)
	assert.Equal(t, DefaultInput, settings.Input)
	assert.Equal(t, selection.IntOf(29), settings.Filter.Spread)
	assert.Equal(t, selection.IntOf(400), settings.Filter.Density)
}

func TestChartErrors(t *testing.T) {
	input := writeInput(t, sampleColumns())
	tests := []struct {
		name string
		args []string
	}{
		{"missing input", []string{"--input", filepath.Join(t.TempDir(), "missing.csv")}},
		{"bad format", []string{"--input", input, "--format", "pdf"}},
		{"bad name", []string{"--input", input, "--name", "../up"}},
		{"bad where", []string{"--input", input, "--where", "spread >"}},
		{"bad count", []string{"--input", input, "--count", "many"}},
		{"missing preset", []string{"--preset", filepath.Join(t.TempDir(), "missing.yaml")}},
		{"no device", []string{"--input", writeInput(t, []benchtest.Column{benchtest.Matching("", "Forward", 29, "1")})}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := execute(t, filepath.Join(t.TempDir(), "graphs"), test.args...)
			assert.Error(t, err)
		})
	}
}

func TestChartErrorNamesLogFile(t *testing.T) {
	appContext := app.Context{
		GraphsDir:   filepath.Join(t.TempDir(), "graphs"),
		LogFilePath: "/var/log/benchcharts.log",
		Version:     "1.2.3",
	}
	out, err := executeWithContext(t, appContext, "--input", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, out, "Error: ")
	assert.Contains(t, out, "See /var/log/benchcharts.log for details.")
}
