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

package dataframe_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("When forward filling", func() {
	It("propagates the last known value over NaN runs", func() {
		filled := monthlyFrame(math.NaN(), math.NaN(), 1, math.NaN(), 2, math.NaN()).ForwardFill()
		col := filled.Vals[0]
		Expect(math.IsNaN(col[0])).To(BeTrue())
		Expect(math.IsNaN(col[1])).To(BeTrue())
		Expect(col[2]).To(Equal(1.0))
		Expect(col[3]).To(Equal(1.0))
		Expect(col[4]).To(Equal(2.0))
		Expect(col[5]).To(Equal(2.0))
	})

	It("does not modify the input frame", func() {
		df := monthlyFrame(1, math.NaN())
		df.ForwardFill()
		Expect(math.IsNaN(df.Vals[0][1])).To(BeTrue())
	})
})

var _ = Describe("When computing percent change", func() {
	It("computes the change vs n periods earlier", func() {
		pct := monthlyFrame(100, 110, 121).PctChange(1)
		col := pct.Vals[0]
		Expect(math.IsNaN(col[0])).To(BeTrue())
		Expect(col[1]).To(BeNumerically("~", 10.0, 1e-9))
		Expect(col[2]).To(BeNumerically("~", 10.0, 1e-9))
	})

	It("produces NaN on a zero base", func() {
		pct := monthlyFrame(0, 5).PctChange(1)
		Expect(math.IsNaN(pct.Vals[0][1])).To(BeTrue())
	})

	Context("with 13 monthly observations and a 12-month period", func() {
		It("yields exactly one defined value", func() {
			vals := make([]float64, 13)
			for idx := range vals {
				vals[idx] = float64(idx + 1)
			}
			yoy := monthlyFrame(vals...).PctChange(12)

			defined := 0
			for _, v := range yoy.Vals[0] {
				if !math.IsNaN(v) {
					defined++
				}
			}
			Expect(defined).To(Equal(1))
			Expect(yoy.Vals[0][12]).To(BeNumerically("~", 1200.0, 1e-9))
		})
	})
})

var _ = Describe("When computing log returns", func() {
	It("is additive over periods", func() {
		rets := monthlyFrame(100, 120, 90).LogReturns()
		col := rets.Vals[0]
		Expect(math.IsNaN(col[0])).To(BeTrue())
		Expect(col[1] + col[2]).To(BeNumerically("~", math.Log(90.0/100.0)*100, 1e-9))
	})

	It("produces NaN for non-positive prices", func() {
		rets := monthlyFrame(100, -5, 50).LogReturns()
		Expect(math.IsNaN(rets.Vals[0][1])).To(BeTrue())
		Expect(math.IsNaN(rets.Vals[0][2])).To(BeTrue())
	})
})

var _ = Describe("When computing rolling statistics", func() {
	It("computes the rolling sample standard deviation", func() {
		std := monthlyFrame(1, 2, 3, 4).RollingStdDev(3)
		col := std.Vals[0]
		Expect(math.IsNaN(col[0])).To(BeTrue())
		Expect(math.IsNaN(col[1])).To(BeTrue())
		Expect(col[2]).To(BeNumerically("~", 1.0, 1e-9))
		Expect(col[3]).To(BeNumerically("~", 1.0, 1e-9))
	})

	It("produces NaN for windows containing NaN", func() {
		std := monthlyFrame(1, math.NaN(), 3, 4, 5).RollingStdDev(3)
		Expect(math.IsNaN(std.Vals[0][2])).To(BeTrue())
		Expect(math.IsNaN(std.Vals[0][3])).To(BeTrue())
		Expect(math.IsNaN(std.Vals[0][4])).To(BeFalse())
	})

	It("computes the rolling z-score", func() {
		z := monthlyFrame(1, 2, 3, 4).ZScore(3)
		Expect(z.Vals[0][2]).To(BeNumerically("~", 1.0, 1e-9))
	})
})

var _ = Describe("When computing expanding percentile ranks", func() {
	It("stays within [0, 1] and respects the minimum period", func() {
		ranks := monthlyFrame(1, 2, 3, 4, 5).ExpandingRank(3)
		col := ranks.Vals[0]
		Expect(math.IsNaN(col[0])).To(BeTrue())
		Expect(math.IsNaN(col[1])).To(BeTrue())
		for _, v := range col[2:] {
			Expect(v).To(BeNumerically(">=", 0))
			Expect(v).To(BeNumerically("<=", 1))
		}
	})

	It("ranks a new maximum near the top", func() {
		ranks := monthlyFrame(1, 2, 3, 4, 5).ExpandingRank(3)
		col := ranks.Vals[0]
		Expect(col[2]).To(BeNumerically("~", 2.5/3.0, 1e-9))
		Expect(col[4]).To(BeNumerically("~", 4.5/5.0, 1e-9))
	})
})

var _ = Describe("When winsorizing", func() {
	It("clips values at the requested quantiles", func() {
		df := monthlyFrame(1, 2, 3, 4, 5, 6, 7, 8, 9, 100)
		clipped := df.Winsorize(0.2, 0.8)
		col := clipped.Vals[0]
		Expect(col[0]).To(Equal(2.0))
		Expect(col[9]).To(Equal(8.0))
		Expect(col[4]).To(Equal(5.0))
	})

	It("leaves NaN values untouched", func() {
		df := monthlyFrame(1, math.NaN(), 3, 4, 5, 6, 7, 8, 9, 100)
		clipped := df.Winsorize(0.2, 0.8)
		Expect(math.IsNaN(clipped.Vals[0][1])).To(BeTrue())
	})
})
