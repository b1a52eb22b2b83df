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

// leadLagSample builds a pair of series where cause leads effect by one
// period with a small disturbance
func leadLagSample(n int) (cause, effect []float64) {
	cause = make([]float64, n)
	effect = make([]float64, n)
	for t := 0; t < n; t++ {
		cause[t] = math.Sin(0.7*float64(t)) + 0.3*math.Sin(2.3*float64(t))
		if t == 0 {
			effect[t] = 0
			continue
		}
		effect[t] = 0.5*effect[t-1] + cause[t-1] + 0.05*math.Sin(5.1*float64(t))
	}
	return cause, effect
}

var _ = Describe("When testing Granger causality", func() {
	Context("with a genuine lead-lag relation", func() {
		It("finds the causal direction significant at lag 1", func() {
			cause, effect := leadLagSample(120)
			res, err := stats.GrangerTest(cause, effect, 1)
			Expect(err).To(BeNil())
			Expect(res.F).To(BeNumerically(">", 0))
			Expect(res.PValue).To(BeNumerically(">=", 0))
			Expect(res.PValue).To(BeNumerically("<", 0.01))
			Expect(res.Significant).To(BeTrue())
		})

		It("produces a well-formed statistic at every lag", func() {
			cause, effect := leadLagSample(150)
			results, err := stats.GrangerAtLags(cause, effect, []int{1, 3, 6, 12})
			Expect(err).To(BeNil())
			Expect(results).To(HaveLen(4))

			for _, res := range results {
				Expect(res.F).To(BeNumerically(">=", 0))
				Expect(res.PValue).To(BeNumerically(">=", 0))
				Expect(res.PValue).To(BeNumerically("<=", 1))
				Expect(res.NumDF).To(Equal(res.Lag))
				Expect(res.DenomDF).To(BeNumerically(">", 0))
			}
		})
	})

	Context("with degenerate inputs", func() {
		It("rejects a non-positive lag", func() {
			_, err := stats.GrangerTest([]float64{1, 2}, []float64{1, 2}, 0)
			Expect(err).To(MatchError(stats.ErrInvalidLag))
		})

		It("rejects mismatched series", func() {
			_, err := stats.GrangerTest([]float64{1, 2, 3}, []float64{1, 2}, 1)
			Expect(err).To(MatchError(stats.ErrLengthMismatch))
		})

		It("rejects series shorter than the lag structure", func() {
			_, err := stats.GrangerTest([]float64{1, 2, 3}, []float64{1, 2, 3}, 2)
			Expect(err).To(MatchError(stats.ErrTooFewObservations))
		})
	})
})
