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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/bubble-watch/fbd-api/stats"
)

var _ = Describe("When forecasting out of sample", func() {
	Context("on a linear trend", func() {
		It("beats the naive no-change benchmark", func() {
			series := make([]float64, 50)
			for idx := range series {
				series[idx] = float64(idx)
			}

			res, err := stats.OOSForecast(series, 1, 0.5)
			Expect(err).To(BeNil())

			// an AR(1) fit reproduces the trend exactly; the naive forecast
			// is always one step behind
			Expect(res.ModelMAE).To(BeNumerically("~", 0.0, 1e-6))
			Expect(res.NaiveMAE).To(BeNumerically("~", 1.0, 1e-9))
			Expect(res.ModelRMSE).To(BeNumerically("~", 0.0, 1e-6))
			Expect(res.NaiveRMSE).To(BeNumerically("~", 1.0, 1e-9))
			Expect(res.ImprovementPct).To(BeNumerically("~", 100.0, 1e-4))
			Expect(res.Forecasts).To(HaveLen(25))
		})
	})

	Context("with degenerate inputs", func() {
		It("rejects a non-positive order", func() {
			_, err := stats.OOSForecast([]float64{1, 2, 3}, 0, 0.5)
			Expect(err).To(MatchError(stats.ErrInvalidLag))
		})

		It("rejects series with too little training data", func() {
			_, err := stats.OOSForecast([]float64{1, 2, 3, 4}, 1, 0.5)
			Expect(err).To(MatchError(stats.ErrTooFewObservations))
		})
	})
})
