// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataframe

import (
	"math"
	"sort"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

// ForwardFill propagates the last known value of each column over NaN runs
// and returns a new dataframe. Leading NaNs (no prior release) are left as-is.
func (df *DataFrame) ForwardFill() *DataFrame {
	df = df.Copy()

	for colIdx := range df.Vals {
		last := math.NaN()
		for rowIdx, val := range df.Vals[colIdx] {
			if math.IsNaN(val) {
				df.Vals[colIdx][rowIdx] = last
			} else {
				last = val
			}
		}
	}

	return df
}

// PctChange computes the percent change vs the value n periods earlier,
// (v_t / v_{t-n} - 1) * 100, for every column and returns a new dataframe.
// The first n rows are NaN; a zero or NaN base value produces NaN.
func (df *DataFrame) PctChange(n int) *DataFrame {
	if n <= 0 {
		log.Panic().Int("N", n).Msg("pct change period must be positive")
	}

	df2 := df.Copy()
	for colIdx := range df2.Vals {
		col := df2.Vals[colIdx]
		for rowIdx := len(col) - 1; rowIdx >= 0; rowIdx-- {
			if rowIdx < n {
				col[rowIdx] = math.NaN()
				continue
			}
			base := df.Vals[colIdx][rowIdx-n]
			if base == 0 || math.IsNaN(base) {
				col[rowIdx] = math.NaN()
				continue
			}
			col[rowIdx] = (df.Vals[colIdx][rowIdx]/base - 1) * 100
		}
	}
	return df2
}

// LogReturns computes ln(p_t / p_{t-1}) * 100 for every column and returns a
// new dataframe. The first row is NaN; non-positive prices produce NaN.
func (df *DataFrame) LogReturns() *DataFrame {
	df2 := df.Copy()
	for colIdx := range df2.Vals {
		col := df2.Vals[colIdx]
		for rowIdx := len(col) - 1; rowIdx >= 0; rowIdx-- {
			if rowIdx == 0 {
				col[rowIdx] = math.NaN()
				continue
			}
			prev := df.Vals[colIdx][rowIdx-1]
			cur := df.Vals[colIdx][rowIdx]
			if prev <= 0 || cur <= 0 || math.IsNaN(prev) || math.IsNaN(cur) {
				col[rowIdx] = math.NaN()
				continue
			}
			col[rowIdx] = math.Log(cur/prev) * 100
		}
	}
	return df2
}

// RollingApply reduces a trailing window of `lookback` rows to a single value
// via fn for every column and returns a new dataframe. Rows inside the
// warm-up period and windows containing NaN produce NaN.
func (df *DataFrame) RollingApply(lookback int, fn func(window []float64) float64) *DataFrame {
	if (lookback > df.Len()) || (lookback <= 0) {
		log.Error().Stack().Int("Lookback", lookback).Int("NRows", df.Len()).Msg("lookback must be: 0 < lookback <= NRows")
		lookback = df.Len() + 1 // force all NaN below
	}

	df2 := df.Copy()
	for colIdx := range df2.Vals {
		col := df2.Vals[colIdx]
		for rowIdx := len(col) - 1; rowIdx >= 0; rowIdx-- {
			if rowIdx < lookback-1 {
				col[rowIdx] = math.NaN()
				continue
			}
			window := df.Vals[colIdx][rowIdx-lookback+1 : rowIdx+1]
			hasNaN := false
			for _, v := range window {
				if math.IsNaN(v) {
					hasNaN = true
					break
				}
			}
			if hasNaN {
				col[rowIdx] = math.NaN()
				continue
			}
			col[rowIdx] = fn(window)
		}
	}
	return df2
}

// RollingStdDev computes the sample standard deviation over a trailing window
// for every column and returns a new dataframe.
func (df *DataFrame) RollingStdDev(lookback int) *DataFrame {
	return df.RollingApply(lookback, func(window []float64) float64 {
		return stat.StdDev(window, nil)
	})
}

// ZScore computes (x - rolling mean) / rolling stddev over a trailing window
// for every column and returns a new dataframe.
func (df *DataFrame) ZScore(lookback int) *DataFrame {
	return df.RollingApply(lookback, func(window []float64) float64 {
		mean, std := stat.MeanStdDev(window, nil)
		if std == 0 {
			return math.NaN()
		}
		return (window[len(window)-1] - mean) / std
	})
}

// ExpandingRank computes the expanding-window percentile rank in [0, 1] of
// each value relative to all observations up to and including it. Rows with
// fewer than minPeriods prior observations are NaN. NaN observations do not
// participate in the ranking.
func (df *DataFrame) ExpandingRank(minPeriods int) *DataFrame {
	df2 := df.Copy()
	for colIdx := range df2.Vals {
		col := df2.Vals[colIdx]
		seen := make([]float64, 0, len(col))
		for rowIdx := range col {
			cur := df.Vals[colIdx][rowIdx]
			if !math.IsNaN(cur) {
				seen = append(seen, cur)
			}
			if math.IsNaN(cur) || len(seen) < minPeriods {
				col[rowIdx] = math.NaN()
				continue
			}
			col[rowIdx] = percentileOfScore(seen, cur)
		}
	}
	return df2
}

// percentileOfScore returns the fraction of values in xs that are <= score,
// counting ties at half weight (the mean rank convention)
func percentileOfScore(xs []float64, score float64) float64 {
	var below, equal float64
	for _, v := range xs {
		switch {
		case v < score:
			below++
		case v == score:
			equal++
		}
	}
	return (below + 0.5*equal) / float64(len(xs))
}

// Winsorize clips every column at its lo and hi quantiles (e.g. 0.01 and
// 0.99) and returns a new dataframe. NaN values are left untouched.
func (df *DataFrame) Winsorize(lo, hi float64) *DataFrame {
	if lo < 0 || hi > 1 || lo >= hi {
		log.Panic().Float64("Lo", lo).Float64("Hi", hi).Msg("winsorize bounds must satisfy 0 <= lo < hi <= 1")
	}

	df2 := df.Copy()
	for colIdx := range df2.Vals {
		col := df2.Vals[colIdx]

		sorted := make([]float64, 0, len(col))
		for _, v := range df.Vals[colIdx] {
			if !math.IsNaN(v) {
				sorted = append(sorted, v)
			}
		}
		if len(sorted) == 0 {
			continue
		}
		sort.Float64s(sorted)

		lower := stat.Quantile(lo, stat.Empirical, sorted, nil)
		upper := stat.Quantile(hi, stat.Empirical, sorted, nil)

		for rowIdx, v := range col {
			switch {
			case math.IsNaN(v):
			case v < lower:
				col[rowIdx] = lower
			case v > upper:
				col[rowIdx] = upper
			}
		}
	}
	return df2
}
