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

package bubble

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/bubble-watch/fbd-api/dataframe"
)

// Volatility windows in trading days (~1 month, ~3 months, ~1 year)
var VolatilityWindows = []int{21, 63, 252}

// Annualization factors for daily and monthly return volatility
const (
	TradingDaysPerYear = 252
	MonthsPerYear      = 12
)

// YoYGrowth computes year-over-year growth of a monthly series,
// (v_t / v_{t-12} - 1) * 100. The first twelve rows are NaN.
func YoYGrowth(df *dataframe.DataFrame) *dataframe.DataFrame {
	return df.PctChange(12)
}

// RollingVolatility computes annualized rolling volatility of the price
// columns: the standard deviation of per-period log returns over the window,
// scaled by the square root of periodsPerYear (TradingDaysPerYear for daily
// prices, MonthsPerYear for monthly). Log returns are computed in fractional
// (not percent) terms before annualization.
func RollingVolatility(prices *dataframe.DataFrame, window, periodsPerYear int) *dataframe.DataFrame {
	returns := prices.LogReturns().MulScalar(0.01)
	vol := returns.RollingStdDev(window).MulScalar(math.Sqrt(float64(periodsPerYear)))
	return vol
}

// ExpGrowth summarizes an exponential-growth test of a price series
type ExpGrowth struct {
	// Slope of the OLS fit of log prices against the observation index
	Slope float64

	// R2 is the coefficient of determination of the fit
	R2 float64

	// Score is slope * R² * 100; high values mean a steep, well-fitting
	// exponential trend
	Score float64

	IsExponential bool
}

// CheckExpGrowth fits log prices against time and reports whether the series
// exhibits exponential growth (score > 2 with R² > 0.9). Series with fewer
// than three valid points or non-positive prices produce a NaN score.
func CheckExpGrowth(prices []float64) ExpGrowth {
	xs := make([]float64, 0, len(prices))
	ys := make([]float64, 0, len(prices))
	for idx, p := range prices {
		if math.IsNaN(p) || p <= 0 {
			continue
		}
		xs = append(xs, float64(idx))
		ys = append(ys, math.Log(p))
	}

	if len(xs) < 3 {
		return ExpGrowth{Slope: math.NaN(), R2: math.NaN(), Score: math.NaN()}
	}

	alpha, slope := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, alpha, slope)

	score := slope * r2 * 100
	return ExpGrowth{
		Slope:         slope,
		R2:            r2,
		Score:         score,
		IsExponential: score > 2.0 && r2 > 0.9,
	}
}

// RollingExpTrend computes the annualized exponential trend growth over a
// trailing window: the OLS slope of log values vs index, times 12 * 100 for
// a monthly series. Warm-up rows are NaN.
func RollingExpTrend(df *dataframe.DataFrame, window int) *dataframe.DataFrame {
	return df.RollingApply(window, func(win []float64) float64 {
		xs := make([]float64, 0, len(win))
		ys := make([]float64, 0, len(win))
		for idx, v := range win {
			if v <= 0 {
				return math.NaN()
			}
			xs = append(xs, float64(idx))
			ys = append(ys, math.Log(v))
		}
		_, slope := stat.LinearRegression(xs, ys, nil, false)
		return slope * 12 * 100
	})
}

// Column names of the frame returned by DerivedIndicators
const (
	ColYoYGrowth   = "YoY_Growth"
	ColRealizedVol = "Realized_Volatility"
	ColExpTrend    = "Exp_Trend"
)

// DerivedIndicators computes the market-level series reported alongside the
// score from a single monthly price column: year-over-year growth in percent,
// annualized realized volatility in percent, and the rolling exponential
// trend, the latter two over the given window.
func DerivedIndicators(prices *dataframe.DataFrame, window int) *dataframe.DataFrame {
	yoy := YoYGrowth(prices)
	vol := RollingVolatility(prices, window, MonthsPerYear).MulScalar(100)
	trend := RollingExpTrend(prices, window)

	return &dataframe.DataFrame{
		Dates:    prices.Dates,
		ColNames: []string{ColYoYGrowth, ColRealizedVol, ColExpTrend},
		Vals:     [][]float64{yoy.Vals[0], vol.Vals[0], trend.Vals[0]},
	}
}

// RankDirection marks whether high raw values mean high risk (+1) or low
// values mean high risk (-1, rank is inverted)
type RankDirection int

const (
	HighIsRisk RankDirection = 1
	LowIsRisk  RankDirection = -1
)

// PercentileRanks computes the expanding percentile rank of every column.
// Columns listed in directions with LowIsRisk have their rank inverted.
// Ranks require at least minPeriods observations.
func PercentileRanks(df *dataframe.DataFrame, minPeriods int, directions map[string]RankDirection) *dataframe.DataFrame {
	ranks := df.ExpandingRank(minPeriods)
	for colIdx, colName := range ranks.ColNames {
		if directions[colName] != LowIsRisk {
			continue
		}
		for rowIdx, v := range ranks.Vals[colIdx] {
			if !math.IsNaN(v) {
				ranks.Vals[colIdx][rowIdx] = 1 - v
			}
		}
	}
	return ranks
}

// CompositeSeries derives the composite score time series and its dynamics
// from per-category score columns
type CompositeSeries struct {
	// Score is the raw weighted composite per row
	Score []float64

	// Smooth is the 3-period moving average of the composite
	Smooth []float64

	// Momentum is the 3-period smoothed first difference
	Momentum []float64

	// Acceleration is the smoothed difference of the smoothed momentum
	Acceleration []float64
}

// ComputeCompositeSeries builds the composite dynamics from a dataframe of
// category score columns using the given weights
func ComputeCompositeSeries(categories *dataframe.DataFrame, weights map[string]float64) *CompositeSeries {
	n := categories.Len()
	score := make([]float64, n)

	for rowIdx := 0; rowIdx < n; rowIdx++ {
		score[rowIdx] = Composite(categories.Row(rowIdx), weights)
	}

	scoreDf := &dataframe.DataFrame{
		Dates:    categories.Dates,
		ColNames: []string{"score"},
		Vals:     [][]float64{score},
	}

	smooth := scoreDf.SMA(3)
	momentum := scoreDf.Diff().SMA(3)
	acceleration := momentum.Diff().SMA(3)

	return &CompositeSeries{
		Score:        score,
		Smooth:       smooth.Vals[0],
		Momentum:     momentum.Vals[0],
		Acceleration: acceleration.Vals[0],
	}
}
