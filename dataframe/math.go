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

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// AddScalar adds the scalar value to all columns in dataframe df and returns a new dataframe
func (df *DataFrame) AddScalar(scalar float64) *DataFrame {
	df = df.Copy()

	for colIdx := range df.ColNames {
		for rowIdx := range df.Vals[colIdx] {
			df.Vals[colIdx][rowIdx] += scalar
		}
	}
	return df
}

// MulScalar multiplies all columns in dataframe df by the scalar and returns a new dataframe
func (df *DataFrame) MulScalar(scalar float64) *DataFrame {
	df = df.Copy()

	for colIdx := range df.ColNames {
		for rowIdx := range df.Vals[colIdx] {
			df.Vals[colIdx][rowIdx] *= scalar
		}
	}
	return df
}

// Div divides all columns in `df` by the corresponding column in `other` and returns a new dataframe.
// Columns without a counterpart in `other` are left unchanged. Division by zero produces NaN.
func (df *DataFrame) Div(other *DataFrame) *DataFrame {
	df = df.Copy()

	otherMap := make(map[string]int, len(other.ColNames))
	for idx, val := range other.ColNames {
		otherMap[val] = idx
	}

	for idx, colName := range df.ColNames {
		if otherIdx, ok := otherMap[colName]; ok {
			for rowIdx := range df.Vals[idx] {
				denom := other.Vals[otherIdx][rowIdx]
				if denom == 0 {
					df.Vals[idx][rowIdx] = math.NaN()
					continue
				}
				df.Vals[idx][rowIdx] /= denom
			}
		}
	}
	return df
}

// Count creates a new dataframe with the number of columns where the expression lambda func(float64) bool evaluates to true is placed
// in the `count` column
func (df *DataFrame) Count(lambda func(x float64) bool) *DataFrame {
	res := &DataFrame{
		Dates:    df.Dates,
		Vals:     [][]float64{make([]float64, df.Len())},
		ColNames: []string{"count"},
	}

	for rowIdx := range df.Dates {
		cnt := 0
		for _, col := range df.Vals {
			if lambda(col[rowIdx]) {
				cnt++
			}
		}
		res.Vals[0][rowIdx] = float64(cnt)
	}

	return res
}

// Mean calculates the row-wise mean over all columns, skipping NaN values, and
// returns a new single-column dataframe. Rows where every column is NaN
// produce NaN.
func (df *DataFrame) Mean() *DataFrame {
	res := &DataFrame{
		Dates:    df.Dates,
		Vals:     [][]float64{make([]float64, df.Len())},
		ColNames: []string{"mean"},
	}

	for rowIdx := range df.Dates {
		sum := 0.0
		cnt := 0.0
		for _, col := range df.Vals {
			if !math.IsNaN(col[rowIdx]) {
				sum += col[rowIdx]
				cnt++
			}
		}
		if cnt == 0 {
			res.Vals[0][rowIdx] = math.NaN()
		} else {
			res.Vals[0][rowIdx] = sum / cnt
		}
	}

	return res
}

// Max selects the max value for each row and returns a new dataframe
func (df *DataFrame) Max() *DataFrame {
	maxDf := &DataFrame{
		ColNames: []string{"max"},
		Dates:    df.Dates,
		Vals:     [][]float64{make([]float64, len(df.Dates))},
	}

	for rowIdx := range df.Dates {
		row := make([]float64, 0, len(df.ColNames))
		for colIdx := range df.ColNames {
			row = append(row, df.Vals[colIdx][rowIdx])
		}
		maxDf.Vals[0][rowIdx] = floats.Max(row)
	}

	return maxDf
}

// Min selects the min value for each row and returns a new dataframe
func (df *DataFrame) Min() *DataFrame {
	minDf := &DataFrame{
		ColNames: []string{"min"},
		Dates:    df.Dates,
		Vals:     [][]float64{make([]float64, len(df.Dates))},
	}

	for rowIdx := range df.Dates {
		row := make([]float64, 0, len(df.ColNames))
		for colIdx := range df.ColNames {
			row = append(row, df.Vals[colIdx][rowIdx])
		}
		minDf.Vals[0][rowIdx] = floats.Min(row)
	}

	return minDf
}

// SMA computes the simple moving average of all the columns in df for the specified
// lookback period. The length of the resulting dataframe equals that of the input with NaNs during the warm-up period.
// Invalid lookback periods result in a dataframe of all NaN.
// NOTE: lookback is in terms of date periods. if the dataframe is sampled monthly then SMA is monthly,
func (df *DataFrame) SMA(lookback int) *DataFrame {
	// check that lookback is a valid period
	if (lookback > df.Len()) || (lookback <= 0) {
		log.Error().Stack().Int("Lookback", lookback).Int("NRows", df.Len()).Msg("lookback must be: 0 < lookback <= NRows")
		nullDf := &DataFrame{
			Dates:    df.Dates,
			Vals:     make([][]float64, df.ColCount()),
			ColNames: df.ColNames,
		}
		for colIdx := range nullDf.Vals {
			nullDf.Vals[colIdx] = make([]float64, df.Len())
			for rowIdx := range nullDf.Vals[colIdx] {
				nullDf.Vals[colIdx][rowIdx] = math.NaN()
			}
		}
		return nullDf
	}

	filterBank := make([][]float64, df.ColCount())
	for idx := range filterBank {
		filterBank[idx] = make([]float64, lookback)
	}

	smaVals := make([][]float64, df.ColCount())
	for idx := range smaVals {
		smaVals[idx] = make([]float64, df.Len())
	}

	warmup := true

	for rowIdx := range df.Dates {
		// if we have seen at least lookback rows then we are out of the warmup period
		// NOTE: row is 0 based, lookback is 1 based; hence the test applied below
		if rowIdx == (lookback - 1) {
			warmup = false
		}

		filterBankIdx := rowIdx % lookback

		for colIdx := range df.Vals {
			filterBank[colIdx][filterBankIdx] = df.Vals[colIdx][rowIdx]
			if warmup {
				smaVals[colIdx][rowIdx] = math.NaN()
			} else {
				smaVals[colIdx][rowIdx] = stat.Mean(filterBank[colIdx], nil)
			}
		}
	}

	smaDf := &DataFrame{
		Dates:    df.Dates,
		Vals:     smaVals,
		ColNames: df.ColNames,
	}

	return smaDf
}

// Diff computes the first difference of every column; the first row is NaN
func (df *DataFrame) Diff() *DataFrame {
	df2 := df.Copy()
	for colIdx := range df2.Vals {
		col := df2.Vals[colIdx]
		prev := math.NaN()
		for rowIdx := range col {
			cur := df.Vals[colIdx][rowIdx]
			col[rowIdx] = cur - prev
			prev = cur
		}
	}
	return df2
}
