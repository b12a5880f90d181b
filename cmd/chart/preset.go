package chart

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"benchcharts/internal/selection"
)

// Settings is the resolved configuration of one chart run. A preset file has
// the same layout, e.g.
//
//	input: src/Frametime-Mobile.csv
//	name: Mobile-OUTPUT
//	box: true
//	format: [html, png]
//	filter:
//	  renderer: GBuffer3
//	  particle_spread: any
type Settings struct {
	Input  string           `yaml:"input"`
	Name   string           `yaml:"name"`
	Title  string           `yaml:"title"`
	Box    bool             `yaml:"box"`
	Format []string         `yaml:"format"`
	Filter selection.Filter `yaml:"filter"`
}

// defaultSettings returns the settings used when neither a preset nor a flag
// provides a value.
func defaultSettings() Settings {
	return Settings{
		Input:  DefaultInput,
		Name:   DefaultOutputDir,
		Title:  DefaultDataTitle,
		Filter: selection.DefaultFilter(),
	}
}

// LoadPreset reads a preset file over the defaults. Keys missing from the
// file keep their default value.
func LoadPreset(path string) (Settings, error) {
	settings := defaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return settings, err
	}
	if err := yaml.UnmarshalStrict(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse preset %s: %w", path, err)
	}
	return settings, nil
}

// resolveSettings layers the explicitly set flags over the preset, or over
// the defaults when no preset is given.
func resolveSettings(cmd *cobra.Command) (Settings, error) {
	settings := defaultSettings()
	if flagPreset != "" {
		var err error
		if settings, err = LoadPreset(flagPreset); err != nil {
			return settings, err
		}
	}
	flags := cmd.Flags()
	if flagPreset == "" || flags.Changed(flagInputName) {
		settings.Input = flagInput
	}
	if flagPreset == "" || flags.Changed(flagNameName) {
		settings.Name = flagName
	}
	if flagPreset == "" || flags.Changed(flagTitleName) {
		settings.Title = flagTitle
	}
	if flagPreset == "" || flags.Changed(flagBoxName) {
		settings.Box = flagBox
	}
	if flagPreset == "" || flags.Changed(flagFormatName) {
		settings.Format = flagFormat
	}
	if flagPreset == "" {
		settings.Filter = flagFilter
	} else if err := selection.ApplyChanged(flags, &flagFilter, &settings.Filter); err != nil {
		return settings, err
	}
	return settings, nil
}
