// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package selection

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"benchcharts/internal/bench"
)

func matchingParams(renderer string, spread int) bench.Params {
	return bench.Params{
		Renderer:         renderer,
		Mode:             "VertVert",
		ParticleCount:    1048576,
		ResolutionWidth:  1024,
		ResolutionHeight: 768,
		Complexity:       2,
		Density:          400,
		Spread:           spread,
	}
}

func TestDefaultFilterName(t *testing.T) {
	f := DefaultFilter()
	tests := []struct {
		name     string
		params   bench.Params
		expected string
		ok       bool
	}{
		{"spread 29 is shown as 30", matchingParams("VBuffer", 29), "VBuffer, 0.03", true},
		{"spread 3", matchingParams("Forward", 3), "Forward, 0.003", true},
		{"spread 100", matchingParams("GBuffer3", 100), "GBuffer3, 0.1", true},
		{"spread 1000 keeps a decimal point", matchingParams("GBuffer6", 1000), "GBuffer6, 1.0", true},
		{"spread 0", matchingParams("VBuffer", 0), "VBuffer, 0.0", true},
		{"wrong mode", func() bench.Params { p := matchingParams("VBuffer", 3); p.Mode = "CompComp"; return p }(), "", false},
		{"wrong count", func() bench.Params { p := matchingParams("VBuffer", 3); p.ParticleCount = 65536; return p }(), "", false},
		{"wrong width", func() bench.Params { p := matchingParams("VBuffer", 3); p.ResolutionWidth = 1920; return p }(), "", false},
		{"wrong height", func() bench.Params { p := matchingParams("VBuffer", 3); p.ResolutionHeight = 1080; return p }(), "", false},
		{"wrong complexity", func() bench.Params { p := matchingParams("VBuffer", 3); p.Complexity = 29; return p }(), "", false},
		{"wrong density", func() bench.Params { p := matchingParams("VBuffer", 3); p.Density = 100; return p }(), "", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			name, ok, err := f.Name(test.params)
			require.NoError(t, err)
			assert.Equal(t, test.ok, ok)
			assert.Equal(t, test.expected, name)
		})
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{0.03, "0.03"},
		{0.3, "0.3"},
		{300 * 0.001, "0.3"},
		{7 * 0.001, "0.007"},
		{2, "2.0"},
		{0, "0.0"},
		{0.00001, "1e-05"},
		{-0.5, "-0.5"},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, formatFloat(test.in))
	}
}

func TestDefaultSettings(t *testing.T) {
	f := DefaultFilter()
	expected := "Frametime-OUTPUT\n\n" +
		"Mode: VertVert\n" +
		"ParticleCount: 1048576\n" +
		"ResolutionWidth: 1024\n" +
		"ResolutionHeight: 768\n" +
		"ParticleComplexity: 2\n" +
		"ParticleDensity: 400\n"
	assert.Equal(t, expected, f.Settings("Frametime-OUTPUT"))
}

func TestSettingsListsRendererSpreadAndWhere(t *testing.T) {
	f := Filter{
		Renderer: StringOf("VBuffer"),
		Spread:   IntOf(29),
		Where:    " complexity > 1 ",
	}
	require.NoError(t, f.Compile())
	assert.Equal(t, "out\n\nRenderer: VBuffer\nParticleSpread: 29\nWhere: complexity > 1\n", f.Settings("out"))
	assert.Equal(t, "Renderer=VBuffer ParticleSpread=29 Where=complexity > 1", f.String())
}

func TestEmptyFilterMatchesEverything(t *testing.T) {
	f := Filter{}
	name, ok, err := f.Name(bench.Params{Renderer: "X", Spread: 5})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "X, 0.005", name)
	assert.Equal(t, "all columns", f.String())
	assert.Equal(t, "out\n\n", f.Settings("out"))
}

func TestWhereExpression(t *testing.T) {
	f := DefaultFilter()
	f.Where = "spread >= 29 && renderer != 'Forward'"
	require.NoError(t, f.Compile())

	ok, err := f.Matches(matchingParams("VBuffer", 29))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.Matches(matchingParams("Forward", 29))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.Matches(matchingParams("VBuffer", 3))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWhereExpressionFunctions(t *testing.T) {
	f := Filter{Where: "hasPrefix(renderer, 'GBuffer') && contains(mode, 'Vert')"}
	require.NoError(t, f.Compile())
	ok, err := f.Matches(matchingParams("GBuffer3", 3))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = f.Matches(matchingParams("VBuffer", 3))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWhereExpressionErrors(t *testing.T) {
	f := Filter{Where: "spread >"}
	assert.Error(t, f.Compile())

	f = Filter{Where: "speed > 3"}
	err := f.Compile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown parameter")

	f = Filter{Where: "spread + 1"}
	require.NoError(t, f.Compile())
	_, _, err = f.Name(matchingParams("VBuffer", 3))
	assert.Error(t, err)
}

func TestConstraintFlags(t *testing.T) {
	var count IntConstraint
	var mode StringConstraint
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Var(&count, "count", "")
	flags.Var(&mode, "mode", "")
	require.NoError(t, flags.Parse([]string{"--count", "65536", "--mode", "CompComp"}))
	assert.Equal(t, IntOf(65536), count)
	assert.Equal(t, StringOf("CompComp"), mode)
	assert.Equal(t, "65536", count.String())

	require.NoError(t, flags.Parse([]string{"--count", "any", "--mode", "ANY"}))
	assert.False(t, count.Active)
	assert.False(t, mode.Active)
	assert.Equal(t, Any, count.String())
	assert.Equal(t, Any, mode.String())

	assert.Error(t, flags.Parse([]string{"--count", "lots"}))
}

func TestFilterFromYAML(t *testing.T) {
	input := `
renderer: VBuffer
mode: any
particle_count: 65536
particle_spread: "29"
where: "density == 400"
`
	f := DefaultFilter()
	require.NoError(t, yaml.Unmarshal([]byte(input), &f))
	assert.Equal(t, StringOf("VBuffer"), f.Renderer)
	assert.False(t, f.Mode.Active)
	assert.Equal(t, IntOf(65536), f.ParticleCount)
	assert.Equal(t, IntOf(29), f.Spread)
	assert.Equal(t, IntOf(1024), f.ResolutionWidth, "unlisted keys keep their defaults")
	require.NoError(t, f.Compile())
	ok, err := f.Matches(bench.Params{Renderer: "VBuffer", ParticleCount: 65536, ResolutionWidth: 1024, ResolutionHeight: 768, Complexity: 2, Density: 400, Spread: 29})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestApplyChangedFlags(t *testing.T) {
	fromFlags := DefaultFilter()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(flags, &fromFlags)
	assert.Equal(t, "VertVert", flags.Lookup(FlagModeName).DefValue)
	assert.Equal(t, Any, flags.Lookup(FlagSpreadName).DefValue)
	require.NoError(t, flags.Parse([]string{"--renderer", "GBuffer3", "--count", "any", "--where", "spread > 3"}))

	fromPreset := Filter{Density: IntOf(100), Mode: StringOf("CompComp")}
	require.NoError(t, ApplyChanged(flags, &fromFlags, &fromPreset))
	assert.Equal(t, StringOf("GBuffer3"), fromPreset.Renderer)
	assert.False(t, fromPreset.ParticleCount.Active)
	assert.Equal(t, IntOf(100), fromPreset.Density, "flags left alone keep the preset value")
	assert.Equal(t, StringOf("CompComp"), fromPreset.Mode)
	assert.Equal(t, "spread > 3", fromPreset.Where)
}

func TestFilterFlagGroup(t *testing.T) {
	group := GetFlagGroup()
	assert.Len(t, group.Flags, 9)
	assert.Equal(t, FlagRendererName, group.Flags[0].Name)
	assert.Equal(t, FlagWhereName, group.Flags[8].Name)
}
