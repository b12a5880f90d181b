// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package palette assigns series colors from benchmark parameters.
package palette

import (
	"fmt"
	"math"

	"benchcharts/internal/bench"
)

// Hues by renderer; renderers not listed share OtherHue.
var rendererHues = map[string]int{
	"Forward":  0,
	"GBuffer3": 90,
	"GBuffer6": 180,
}

// OtherHue is the hue of every renderer without its own entry.
const OtherHue = 270

const (
	boxSaturation = 73
	barSaturation = 40

	defaultLightness = 50
	brightLightness  = 65
	darkLightness    = 35

	brightSpread     = 3
	mediumComplexity = 29
	darkComplexity   = 300
)

// Background is the plot background color.
func Background() HSL {
	return HSL{H: 180, S: 20, L: 98}
}

// HSL is a color in hue (degrees), saturation and lightness (percent).
type HSL struct {
	H int
	S int
	L int
}

func (c HSL) String() string {
	return fmt.Sprintf("hsl(%d,%d%%,%d%%)", c.H, c.S, c.L)
}

// Color derives the series color of a column. Hue follows the renderer,
// saturation the chart style and lightness the spread and complexity.
// A spread of 3 takes precedence over the complexity tiers.
func Color(p bench.Params, box bool) HSL {
	hue, ok := rendererHues[p.Renderer]
	if !ok {
		hue = OtherHue
	}
	sat := barSaturation
	if box {
		sat = boxSaturation
	}
	light := defaultLightness
	switch {
	case p.Spread == brightSpread:
		light = brightLightness
	case p.Complexity == mediumComplexity:
		light = defaultLightness
	case p.Complexity == darkComplexity:
		light = darkLightness
	}
	return HSL{H: hue, S: sat, L: light}
}

// RGB converts the color to 8-bit red, green and blue components.
func (c HSL) RGB() (r, g, b uint8) {
	h := math.Mod(float64(c.H), 360)
	if h < 0 {
		h += 360
	}
	s := clamp(float64(c.S) / 100)
	l := clamp(float64(c.L) / 100)
	chroma := (1 - math.Abs(2*l-1)) * s
	x := chroma * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - chroma/2
	var rf, gf, bf float64
	switch int(h / 60) {
	case 0:
		rf, gf, bf = chroma, x, 0
	case 1:
		rf, gf, bf = x, chroma, 0
	case 2:
		rf, gf, bf = 0, chroma, x
	case 3:
		rf, gf, bf = 0, x, chroma
	case 4:
		rf, gf, bf = x, 0, chroma
	default:
		rf, gf, bf = chroma, 0, x
	}
	return to8(rf + m), to8(gf + m), to8(bf + m)
}

// Hex returns the color as RRGGBB.
func (c HSL) Hex() string {
	r, g, b := c.RGB()
	return fmt.Sprintf("%02X%02X%02X", r, g, b)
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp(v) * 255))
}
