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

package bubble_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/bubble-watch/fbd-api/bubble"
	"github.com/bubble-watch/fbd-api/dataframe"
)

func seriesFrame(name string, vals []float64) *dataframe.DataFrame {
	dates := make([]time.Time, len(vals))
	for idx := range dates {
		dates[idx] = time.Date(2020, time.January, 31, 0, 0, 0, 0, time.UTC).AddDate(0, idx, 0)
	}
	return &dataframe.DataFrame{
		Dates:    dates,
		ColNames: []string{name},
		Vals:     [][]float64{vals},
	}
}

var _ = Describe("When computing year-over-year growth", func() {
	It("yields exactly one defined value from 13 monthly observations", func() {
		vals := make([]float64, 13)
		for idx := range vals {
			vals[idx] = 100 + float64(idx)
		}
		yoy := bubble.YoYGrowth(seriesFrame("price", vals))

		defined := 0
		for _, v := range yoy.Vals[0] {
			if !math.IsNaN(v) {
				defined++
			}
		}
		Expect(defined).To(Equal(1))
		Expect(yoy.Vals[0][12]).To(BeNumerically("~", 12.0, 1e-9))
	})
})

var _ = Describe("When testing for exponential growth", func() {
	It("detects a pure exponential series", func() {
		prices := make([]float64, 60)
		for idx := range prices {
			prices[idx] = 100 * math.Exp(0.05*float64(idx))
		}
		res := bubble.CheckExpGrowth(prices)
		Expect(res.Slope).To(BeNumerically("~", 0.05, 1e-9))
		Expect(res.R2).To(BeNumerically("~", 1.0, 1e-9))
		Expect(res.Score).To(BeNumerically("~", 5.0, 1e-6))
		Expect(res.IsExponential).To(BeTrue())
	})

	It("does not flag slow linear growth", func() {
		prices := make([]float64, 60)
		for idx := range prices {
			prices[idx] = 100 + float64(idx)
		}
		res := bubble.CheckExpGrowth(prices)
		Expect(res.IsExponential).To(BeFalse())
	})

	It("returns NaN for too few observations", func() {
		res := bubble.CheckExpGrowth([]float64{100, 105})
		Expect(math.IsNaN(res.Score)).To(BeTrue())
	})

	It("skips non-positive prices", func() {
		prices := []float64{100, -1, 110, 121, 133.1, 146.41}
		res := bubble.CheckExpGrowth(prices)
		Expect(math.IsNaN(res.Score)).To(BeFalse())
	})
})

var _ = Describe("When computing rolling volatility", func() {
	It("is zero for a constant-return daily series", func() {
		prices := make([]float64, 30)
		for idx := range prices {
			prices[idx] = 100 * math.Exp(0.01*float64(idx))
		}
		vol := bubble.RollingVolatility(seriesFrame("price", prices), 21, bubble.TradingDaysPerYear)

		col := vol.Vals[0]
		// one row lost to the return computation plus the window warm-up
		Expect(math.IsNaN(col[20])).To(BeTrue())
		Expect(col[21]).To(BeNumerically("~", 0.0, 1e-9))
	})

	It("annualizes monthly returns by the square root of twelve", func() {
		// alternating +2% / 0% monthly log returns
		prices := make([]float64, 26)
		prices[0] = 100
		for idx := 1; idx < len(prices); idx++ {
			step := 0.0
			if idx%2 == 1 {
				step = 0.02
			}
			prices[idx] = prices[idx-1] * math.Exp(step)
		}
		vol := bubble.RollingVolatility(seriesFrame("price", prices), 12, bubble.MonthsPerYear)

		// sample standard deviation of six 0.02s and six 0s, annualized
		want := math.Sqrt(12*0.0001/11) * math.Sqrt(12)
		Expect(vol.Vals[0][13]).To(BeNumerically("~", want, 1e-9))
	})
})

var _ = Describe("When fitting a rolling exponential trend", func() {
	It("recovers the annualized growth of an exponential series", func() {
		prices := make([]float64, 24)
		for idx := range prices {
			prices[idx] = 100 * math.Exp(0.01*float64(idx))
		}
		trend := bubble.RollingExpTrend(seriesFrame("price", prices), 12)

		col := trend.Vals[0]
		Expect(math.IsNaN(col[10])).To(BeTrue())
		Expect(col[11]).To(BeNumerically("~", 12.0, 1e-6))
		Expect(col[23]).To(BeNumerically("~", 12.0, 1e-6))
	})
})

var _ = Describe("When deriving market indicators", func() {
	It("reports growth, volatility, and trend for an exponential series", func() {
		prices := make([]float64, 30)
		for idx := range prices {
			prices[idx] = 100 * math.Exp(0.01*float64(idx))
		}
		derived := bubble.DerivedIndicators(seriesFrame("price", prices), 12)

		Expect(derived.ColNames).To(Equal([]string{
			bubble.ColYoYGrowth, bubble.ColRealizedVol, bubble.ColExpTrend,
		}))

		yoy := derived.Col(bubble.ColYoYGrowth)
		Expect(math.IsNaN(yoy[11])).To(BeTrue())
		Expect(yoy[12]).To(BeNumerically("~", (math.Exp(0.12)-1)*100, 1e-9))

		// constant log returns carry no volatility once the window fills
		vol := derived.Col(bubble.ColRealizedVol)
		Expect(math.IsNaN(vol[11])).To(BeTrue())
		Expect(vol[12]).To(BeNumerically("~", 0.0, 1e-9))

		trend := derived.Col(bubble.ColExpTrend)
		Expect(trend[11]).To(BeNumerically("~", 12.0, 1e-6))
	})
})

var _ = Describe("When ranking metrics", func() {
	It("inverts the rank of low-is-risk columns", func() {
		df := &dataframe.DataFrame{
			Dates:    seriesFrame("x", make([]float64, 5)).Dates,
			ColNames: []string{"up", "down"},
			Vals: [][]float64{
				{1, 2, 3, 4, 5},
				{1, 2, 3, 4, 5},
			},
		}
		ranks := bubble.PercentileRanks(df, 3, map[string]bubble.RankDirection{
			"up":   bubble.HighIsRisk,
			"down": bubble.LowIsRisk,
		})

		up := ranks.Vals[0]
		down := ranks.Vals[1]
		for idx := 2; idx < 5; idx++ {
			Expect(up[idx] + down[idx]).To(BeNumerically("~", 1.0, 1e-9))
		}
	})
})

var _ = Describe("When deriving composite dynamics", func() {
	It("keeps a constant composite flat with zero momentum", func() {
		n := 8
		dates := seriesFrame("x", make([]float64, n)).Dates
		categories := &dataframe.DataFrame{
			Dates:    dates,
			ColNames: []string{bubble.Valuation, bubble.Momentum},
			Vals: [][]float64{
				repeat(40, n),
				repeat(60, n),
			},
		}
		weights := map[string]float64{bubble.Valuation: 0.5, bubble.Momentum: 0.5}

		series := bubble.ComputeCompositeSeries(categories, weights)
		Expect(series.Score[0]).To(BeNumerically("~", 50.0, 1e-9))
		Expect(series.Score[n-1]).To(BeNumerically("~", 50.0, 1e-9))
		Expect(series.Smooth[n-1]).To(BeNumerically("~", 50.0, 1e-9))
		Expect(series.Momentum[n-1]).To(BeNumerically("~", 0.0, 1e-9))
		Expect(series.Acceleration[n-1]).To(BeNumerically("~", 0.0, 1e-9))
	})

	It("derives acceleration from the smoothed momentum", func() {
		// a quadratic composite t^2 has smoothed momentum 2t-3 and constant
		// acceleration 2 once both smoothing windows fill
		n := 10
		vals := make([]float64, n)
		for idx := range vals {
			vals[idx] = float64(idx * idx)
		}
		categories := &dataframe.DataFrame{
			Dates:    seriesFrame("x", vals).Dates,
			ColNames: []string{bubble.Valuation},
			Vals:     [][]float64{vals},
		}
		weights := map[string]float64{bubble.Valuation: 1.0}

		series := bubble.ComputeCompositeSeries(categories, weights)
		Expect(series.Momentum[9]).To(BeNumerically("~", 15.0, 1e-9))
		Expect(math.IsNaN(series.Acceleration[5])).To(BeTrue())
		Expect(series.Acceleration[6]).To(BeNumerically("~", 2.0, 1e-9))
		Expect(series.Acceleration[9]).To(BeNumerically("~", 2.0, 1e-9))
	})
})

func repeat(val float64, n int) []float64 {
	out := make([]float64, n)
	for idx := range out {
		out[idx] = val
	}
	return out
}
