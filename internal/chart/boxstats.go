// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package chart

import (
	"math"
	"slices"
)

// Stats summarizes a distribution the way a box-and-whisker plot draws it.
// Quartiles use linear interpolation; whiskers reach the furthest samples
// within 1.5 IQR of the box.
type Stats struct {
	Count        int
	Min          float64
	LowerWhisker float64
	Q1           float64
	Median       float64
	Q3           float64
	UpperWhisker float64
	Max          float64
	Mean         float64
	Outliers     int
}

// BoxStats computes the box plot statistics of samples. NaN values are ignored.
func BoxStats(samples []float64) Stats {
	sorted := make([]float64, 0, len(samples))
	sum := 0.0
	for _, v := range samples {
		if math.IsNaN(v) {
			continue
		}
		sorted = append(sorted, v)
		sum += v
	}
	if len(sorted) == 0 {
		nan := math.NaN()
		return Stats{Min: nan, LowerWhisker: nan, Q1: nan, Median: nan, Q3: nan, UpperWhisker: nan, Max: nan, Mean: nan}
	}
	slices.Sort(sorted)
	s := Stats{
		Count:  len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Mean:   sum / float64(len(sorted)),
	}
	iqr := s.Q3 - s.Q1
	lowFence := s.Q1 - 1.5*iqr
	highFence := s.Q3 + 1.5*iqr
	s.LowerWhisker = s.Max
	s.UpperWhisker = s.Min
	for _, v := range sorted {
		if v < lowFence || v > highFence {
			s.Outliers++
			continue
		}
		s.LowerWhisker = math.Min(s.LowerWhisker, v)
		s.UpperWhisker = math.Max(s.UpperWhisker, v)
	}
	return s
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}
