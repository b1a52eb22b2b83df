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

package stats_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/bubble-watch/fbd-api/stats"
)

var _ = Describe("When fitting ordinary least squares", func() {
	Context("on a noise-free line", func() {
		It("recovers the coefficients exactly", func() {
			x := make([]float64, 10)
			y := make([]float64, 10)
			for idx := range x {
				x[idx] = float64(idx)
				y[idx] = 2 + 3*x[idx]
			}

			fit, err := stats.OLS(y, x)
			Expect(err).To(BeNil())
			Expect(fit.Coef[0]).To(BeNumerically("~", 2.0, 1e-9))
			Expect(fit.Coef[1]).To(BeNumerically("~", 3.0, 1e-9))
			Expect(fit.R2).To(BeNumerically("~", 1.0, 1e-9))
			Expect(fit.N).To(Equal(10))
			Expect(fit.K).To(Equal(2))
		})
	})

	Context("with alternating disturbances", func() {
		It("estimates a strongly significant slope", func() {
			x := make([]float64, 20)
			y := make([]float64, 20)
			for idx := range x {
				x[idx] = float64(idx)
				noise := 0.1
				if idx%2 == 1 {
					noise = -0.1
				}
				y[idx] = 1 + 2*x[idx] + noise
			}

			fit, err := stats.OLS(y, x)
			Expect(err).To(BeNil())
			Expect(fit.Coef[1]).To(BeNumerically("~", 2.0, 0.01))
			Expect(fit.R2).To(BeNumerically(">", 0.99))
			Expect(fit.TStat[1]).To(BeNumerically(">", 10))
			Expect(fit.PValue(1)).To(BeNumerically("<", 0.001))
		})
	})

	Context("with missing observations", func() {
		It("drops rows containing NaN", func() {
			x := []float64{0, 1, math.NaN(), 3, 4, 5}
			y := []float64{1, 3, 5, math.NaN(), 9, 11}

			fit, err := stats.OLS(y, x)
			Expect(err).To(BeNil())
			Expect(fit.N).To(Equal(4))
			Expect(fit.Coef[1]).To(BeNumerically("~", 2.0, 1e-9))
		})
	})

	Context("with degenerate inputs", func() {
		It("rejects mismatched lengths", func() {
			_, err := stats.OLS([]float64{1, 2}, []float64{1, 2, 3})
			Expect(err).To(MatchError(stats.ErrLengthMismatch))
		})

		It("rejects too few observations", func() {
			_, err := stats.OLS([]float64{1, 2}, []float64{1, 2})
			Expect(err).To(MatchError(stats.ErrTooFewObservations))
		})
	})
})

var _ = Describe("When regressing forward returns on the score", func() {
	It("finds the negative relation built into the sample", func() {
		n := 60
		score := make([]float64, n)
		forward := make([]float64, n)
		for idx := range score {
			score[idx] = 30 + 40*math.Abs(math.Sin(0.3*float64(idx)))
			wiggle := 0.2 * math.Sin(3.7*float64(idx))
			forward[idx] = 10 - 0.5*score[idx] + wiggle
		}

		res, err := stats.PredictiveRegression(score, forward, 6)
		Expect(err).To(BeNil())
		Expect(res.HorizonMonths).To(Equal(6))
		Expect(res.Beta).To(BeNumerically("~", -0.5, 0.02))
		Expect(res.TStat).To(BeNumerically("<", -10))
		Expect(res.R2).To(BeNumerically(">", 0.9))
	})
})

var _ = Describe("When computing forward returns", func() {
	It("measures the cumulative forward change in percent", func() {
		prices := []float64{100, 110, 121, 133.1}
		forward := stats.ForwardReturn(prices, 2)
		Expect(forward[0]).To(BeNumerically("~", 21.0, 1e-9))
		Expect(forward[1]).To(BeNumerically("~", 21.0, 1e-9))
		Expect(math.IsNaN(forward[2])).To(BeTrue())
		Expect(math.IsNaN(forward[3])).To(BeTrue())
	})
})

var _ = Describe("When lagging a series", func() {
	It("shifts values forward with NaN padding", func() {
		lagged := stats.Lagged([]float64{1, 2, 3, 4}, 2)
		Expect(math.IsNaN(lagged[0])).To(BeTrue())
		Expect(math.IsNaN(lagged[1])).To(BeTrue())
		Expect(lagged[2]).To(Equal(1.0))
		Expect(lagged[3]).To(Equal(2.0))
	})
})
