// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package selection

import (
	"fmt"

	"github.com/spf13/pflag"

	"benchcharts/internal/app"
)

// filter flag names
const (
	FlagRendererName   = "renderer"
	FlagModeName       = "mode"
	FlagCountName      = "count"
	FlagWidthName      = "width"
	FlagHeightName     = "height"
	FlagComplexityName = "complexity"
	FlagDensityName    = "density"
	FlagSpreadName     = "spread"
	FlagWhereName      = "where"
)

type filterFlag struct {
	name  string
	help  string
	value func(*Filter) pflag.Value
}

var filterFlags = []filterFlag{
	{FlagRendererName, "renderer, e.g. Forward, GBuffer3, GBuffer6", func(f *Filter) pflag.Value { return &f.Renderer }},
	{FlagModeName, "render mode", func(f *Filter) pflag.Value { return &f.Mode }},
	{FlagCountName, "particle count", func(f *Filter) pflag.Value { return &f.ParticleCount }},
	{FlagWidthName, "resolution width", func(f *Filter) pflag.Value { return &f.ResolutionWidth }},
	{FlagHeightName, "resolution height", func(f *Filter) pflag.Value { return &f.ResolutionHeight }},
	{FlagComplexityName, "particle complexity", func(f *Filter) pflag.Value { return &f.Complexity }},
	{FlagDensityName, "particle density", func(f *Filter) pflag.Value { return &f.Density }},
	{FlagSpreadName, "particle spread", func(f *Filter) pflag.Value { return &f.Spread }},
}

// AddFlags registers one flag per constraint on fs, bound to f. The current
// values of f become the flag defaults.
func AddFlags(fs *pflag.FlagSet, f *Filter) {
	for _, ff := range filterFlags {
		fs.Var(ff.value(f), ff.name, "")
	}
	fs.StringVar(&f.Where, FlagWhereName, f.Where, "")
}

// ApplyChanged copies the constraints whose flags were set on the command
// line from src to dst.
func ApplyChanged(fs *pflag.FlagSet, src, dst *Filter) error {
	for _, ff := range filterFlags {
		if !fs.Changed(ff.name) {
			continue
		}
		if err := ff.value(dst).Set(ff.value(src).String()); err != nil {
			return fmt.Errorf("--%s: %w", ff.name, err)
		}
	}
	if fs.Changed(FlagWhereName) {
		dst.Where = src.Where
	}
	return nil
}

// GetFlagGroup describes the filter flags for command usage output.
func GetFlagGroup() app.FlagGroup {
	var flags []app.Flag
	for _, ff := range filterFlags {
		flags = append(flags, app.Flag{
			Name: ff.name,
			Help: fmt.Sprintf("%s to include, or %q for all", ff.help, Any),
		})
	}
	flags = append(flags, app.Flag{
		Name: FlagWhereName,
		Help: fmt.Sprintf("boolean expression a column must also satisfy, over: %v", ExpressionVariables),
	})
	return app.FlagGroup{
		GroupName: "Filter Options",
		Flags:     flags,
	}
}
