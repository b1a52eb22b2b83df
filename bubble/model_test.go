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

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/bubble-watch/fbd-api/bubble"
)

var _ = Describe("When normalizing indicator values", func() {
	DescribeTable("min-max normalization",
		func(value, lo, hi float64, invert bool, want float64) {
			Expect(bubble.Normalize(value, lo, hi, invert)).To(BeNumerically("~", want, 1e-9))
		},
		Entry("at the lower bound", 10.0, 10.0, 40.0, false, 0.0),
		Entry("at the upper bound", 40.0, 10.0, 40.0, false, 1.0),
		Entry("at the midpoint", 25.0, 10.0, 40.0, false, 0.5),
		Entry("clipped below", 5.0, 10.0, 40.0, false, 0.0),
		Entry("clipped above", 55.0, 10.0, 40.0, false, 1.0),
		Entry("inverted midpoint", 25.0, 10.0, 40.0, true, 0.5),
		Entry("inverted at the lower bound", 10.0, 10.0, 40.0, true, 1.0),
	)

	It("propagates NaN", func() {
		Expect(math.IsNaN(bubble.Normalize(math.NaN(), 0, 1, false))).To(BeTrue())
	})
})

var _ = Describe("The default model", func() {
	var model *bubble.Model

	BeforeEach(func() {
		model = bubble.DefaultModel()
	})

	It("has five categories with weights summing to one", func() {
		Expect(model.Categories).To(HaveLen(5))

		sum := 0.0
		for _, w := range model.Weights() {
			sum += w
		}
		Expect(sum).To(BeNumerically("~", 1.0, 1e-9))
	})

	It("weights valuation the highest", func() {
		weights := model.Weights()
		Expect(weights[bubble.Valuation]).To(Equal(0.25))
		Expect(weights[bubble.Economy]).To(Equal(0.15))
	})

	It("orders the category names", func() {
		Expect(model.CategoryNames()).To(Equal([]string{
			bubble.Valuation, bubble.Momentum, bubble.Credit,
			bubble.Economy, bubble.Sentiment,
		}))
	})
})

var _ = Describe("When classifying risk levels", func() {
	DescribeTable("risk bands",
		func(score float64, want bubble.RiskLevel) {
			Expect(bubble.RiskLevelFor(score)).To(Equal(want))
		},
		Entry("minimal", 10.0, bubble.RiskMinimal),
		Entry("low-moderate", 25.0, bubble.RiskLowModerate),
		Entry("moderate", 36.75, bubble.RiskModerate),
		Entry("elevated", 55.0, bubble.RiskElevated),
		Entry("high", 78.0, bubble.RiskHigh),
		Entry("extreme", 85.0, bubble.RiskExtreme),
		Entry("boundary at 20", 20.0, bubble.RiskLowModerate),
		Entry("boundary at 80", 80.0, bubble.RiskExtreme),
	)
})
