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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/bubble-watch/fbd-api/bubble"
)

var _ = Describe("When benchmarking detection methods", func() {
	var results []bubble.MethodResult

	BeforeEach(func() {
		results = bubble.Benchmark(bubble.DefaultModel())
	})

	It("evaluates the composite model plus four alternatives", func() {
		Expect(results).To(HaveLen(5))
		Expect(results[0].Method.Name).To(Equal("Bubble Risk Score"))
	})

	It("classifies all five episodes correctly with the composite model", func() {
		model := results[0]
		Expect(model.Correct).To(Equal(5))
		Expect(model.Total).To(Equal(5))
		Expect(model.Accuracy).To(Equal(100.0))
	})

	DescribeTable("alternative method accuracy",
		func(name string, correct int) {
			for _, res := range results {
				if res.Method.Name == name {
					Expect(res.Correct).To(Equal(correct), "method %s", name)
					return
				}
			}
			Fail("method not found: " + name)
		},
		Entry("CAPE thresholds misfire outside extremes", "CAPE-Based", 2),
		Entry("GSADF misses slow build-ups", "Phillips GSADF", 3),
		Entry("VIX thresholds trigger on any turbulence", "VIX Threshold", 2),
		Entry("a naive composite does better but not perfectly", "Composite Average", 4),
	)

	It("outperforms every alternative", func() {
		model := results[0]
		for _, alt := range results[1:] {
			Expect(model.Accuracy).To(BeNumerically(">", alt.Accuracy), "vs %s", alt.Method.Name)
		}
	})

	It("scores every event against its criterion band", func() {
		for _, res := range results {
			Expect(res.Results).To(HaveLen(5))
		}
	})
})
