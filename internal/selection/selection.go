// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package selection decides which benchmark columns are charted and how their
// series are labeled.
package selection

import (
	"fmt"
	"strconv"
	"strings"

	"benchcharts/internal/bench"
)

// Spread label scaling: the spread parameter is stored in thousandths.
const (
	spreadScale      = 0.001
	spreadAliasFrom  = 29
	spreadAliasTo    = 30
	labelSeparator   = ", "
	settingSeparator = ": "
)

// Filter holds the parameter constraints a column must satisfy to be charted.
type Filter struct {
	Renderer         StringConstraint `yaml:"renderer"`
	Mode             StringConstraint `yaml:"mode"`
	ParticleCount    IntConstraint    `yaml:"particle_count"`
	ResolutionWidth  IntConstraint    `yaml:"resolution_width"`
	ResolutionHeight IntConstraint    `yaml:"resolution_height"`
	Complexity       IntConstraint    `yaml:"particle_complexity"`
	Density          IntConstraint    `yaml:"particle_density"`
	Spread           IntConstraint    `yaml:"particle_spread"`
	Where            string           `yaml:"where"`

	where *Expression
}

// DefaultFilter returns the constraints of the reference frametime comparison:
// every renderer and spread at 1M particles, 1024x768, complexity 2, density 400.
func DefaultFilter() Filter {
	return Filter{
		Mode:             StringOf("VertVert"),
		ParticleCount:    IntOf(1048576),
		ResolutionWidth:  IntOf(1024),
		ResolutionHeight: IntOf(768),
		Complexity:       IntOf(2),
		Density:          IntOf(400),
	}
}

// Compile prepares the Where expression. It must be called after Where changes.
func (f *Filter) Compile() error {
	f.where = nil
	if strings.TrimSpace(f.Where) == "" {
		return nil
	}
	expr, err := NewExpression(f.Where)
	if err != nil {
		return err
	}
	f.where = expr
	return nil
}

// Matches reports whether the parameters satisfy every active constraint.
func (f *Filter) Matches(p bench.Params) (bool, error) {
	ok := f.Renderer.Matches(p.Renderer) &&
		f.Mode.Matches(p.Mode) &&
		f.ParticleCount.Matches(p.ParticleCount) &&
		f.ResolutionWidth.Matches(p.ResolutionWidth) &&
		f.ResolutionHeight.Matches(p.ResolutionHeight) &&
		f.Complexity.Matches(p.Complexity) &&
		f.Density.Matches(p.Density) &&
		f.Spread.Matches(p.Spread)
	if !ok || f.where == nil {
		return ok, nil
	}
	return f.where.Matches(p)
}

// Name returns the series label of an included column, or false when the
// column is excluded.
func (f *Filter) Name(p bench.Params) (string, bool, error) {
	ok, err := f.Matches(p)
	if err != nil || !ok {
		return "", false, err
	}
	return Label(p), true, nil
}

// Label combines the renderer with the scaled spread, e.g. "VBuffer, 0.03".
func Label(p bench.Params) string {
	spread := p.Spread
	if spread == spreadAliasFrom {
		spread = spreadAliasTo
	}
	return p.Renderer + labelSeparator + formatFloat(float64(spread)*spreadScale)
}

// formatFloat formats v in its shortest round-trip form, always with a decimal
// point or exponent, e.g. 0.03, 1.0, 1e-05.
func formatFloat(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Settings returns the summary written next to the charts: the output
// directory name followed by one "Key: value" line per active constraint.
func (f *Filter) Settings(outputDir string) string {
	var sb strings.Builder
	sb.WriteString(outputDir + "\n\n")
	for _, setting := range f.activeSettings() {
		sb.WriteString(setting[0] + settingSeparator + setting[1] + "\n")
	}
	return sb.String()
}

// activeSettings lists the active constraints in their fixed order.
func (f *Filter) activeSettings() [][2]string {
	var settings [][2]string
	addString := func(key string, c StringConstraint) {
		if c.Active {
			settings = append(settings, [2]string{key, c.Value})
		}
	}
	addInt := func(key string, c IntConstraint) {
		if c.Active {
			settings = append(settings, [2]string{key, strconv.Itoa(c.Value)})
		}
	}
	addString("Renderer", f.Renderer)
	addString("Mode", f.Mode)
	addInt("ParticleCount", f.ParticleCount)
	addInt("ResolutionWidth", f.ResolutionWidth)
	addInt("ResolutionHeight", f.ResolutionHeight)
	addInt("ParticleComplexity", f.Complexity)
	addInt("ParticleDensity", f.Density)
	addInt("ParticleSpread", f.Spread)
	if strings.TrimSpace(f.Where) != "" {
		settings = append(settings, [2]string{"Where", strings.TrimSpace(f.Where)})
	}
	return settings
}

// String is a one-line summary used in log messages.
func (f *Filter) String() string {
	var parts []string
	for _, setting := range f.activeSettings() {
		parts = append(parts, fmt.Sprintf("%s=%s", setting[0], setting[1]))
	}
	if len(parts) == 0 {
		return "all columns"
	}
	return strings.Join(parts, " ")
}
