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
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/bubble-watch/fbd-api/dataframe"
)

var _ = Describe("DataFrame", func() {
	var df *dataframe.DataFrame

	BeforeEach(func() {
		df = &dataframe.DataFrame{
			Dates: []time.Time{
				time.Date(2021, time.January, 31, 0, 0, 0, 0, time.UTC),
				time.Date(2021, time.February, 28, 0, 0, 0, 0, time.UTC),
				time.Date(2021, time.March, 31, 0, 0, 0, 0, time.UTC),
				time.Date(2021, time.April, 30, 0, 0, 0, 0, time.UTC),
				time.Date(2021, time.May, 31, 0, 0, 0, 0, time.UTC),
			},
			ColNames: []string{"a", "b"},
			Vals: [][]float64{
				{1, 2, 3, 4, 5},
				{10, 20, 30, 40, 50},
			},
		}
	})

	Context("with no values", func() {
		It("has zero length", func() {
			empty := &dataframe.DataFrame{}
			Expect(empty.Len()).To(Equal(0))
		})

		It("returns the zero time for start and end", func() {
			empty := &dataframe.DataFrame{}
			Expect(empty.Start().IsZero()).To(BeTrue())
			Expect(empty.End().IsZero()).To(BeTrue())
		})
	})

	Context("when accessing columns", func() {
		It("finds the index of existing columns", func() {
			Expect(df.ColIndex("a")).To(Equal(0))
			Expect(df.ColIndex("b")).To(Equal(1))
		})

		It("returns -1 for unknown columns", func() {
			Expect(df.ColIndex("missing")).To(Equal(-1))
		})

		It("returns the column values", func() {
			Expect(df.Col("b")).To(Equal([]float64{10, 20, 30, 40, 50}))
		})

		It("returns nil for unknown columns", func() {
			Expect(df.Col("missing")).To(BeNil())
		})
	})

	Context("when selecting columns", func() {
		It("keeps only the requested columns", func() {
			sub := df.Select("b")
			Expect(sub.ColNames).To(Equal([]string{"b"}))
			Expect(sub.Len()).To(Equal(5))
		})

		It("skips columns that do not exist", func() {
			sub := df.Select("b", "missing")
			Expect(sub.ColNames).To(Equal([]string{"b"}))
		})
	})

	Context("when copying", func() {
		It("does not share value storage with the original", func() {
			df2 := df.Copy()
			df2.Vals[0][0] = 99
			Expect(df.Vals[0][0]).To(Equal(1.0))
		})
	})

	Context("when trimming", func() {
		It("keeps the inclusive date range", func() {
			sub := df.Trim(
				time.Date(2021, time.February, 28, 0, 0, 0, 0, time.UTC),
				time.Date(2021, time.April, 30, 0, 0, 0, 0, time.UTC))
			Expect(sub.Len()).To(Equal(3))
			Expect(sub.Vals[0]).To(Equal([]float64{2, 3, 4}))
		})

		It("returns an empty frame for a non-overlapping range", func() {
			sub := df.Trim(
				time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2031, time.January, 1, 0, 0, 0, 0, time.UTC))
			Expect(sub.Len()).To(Equal(0))
		})
	})

	Context("when lagging", func() {
		It("shifts values and pads with NaN", func() {
			lagged := df.Lag(2)
			Expect(math.IsNaN(lagged.Vals[0][0])).To(BeTrue())
			Expect(math.IsNaN(lagged.Vals[0][1])).To(BeTrue())
			Expect(lagged.Vals[0][2]).To(Equal(1.0))
			Expect(lagged.Vals[0][4]).To(Equal(3.0))
		})
	})

	Context("when building a row map", func() {
		It("keys values by column name", func() {
			row := df.Row(2)
			Expect(row).To(HaveKeyWithValue("a", 3.0))
			Expect(row).To(HaveKeyWithValue("b", 30.0))
		})
	})

	Context("when filtering to a frequency", func() {
		It("keeps the last observation of each month", func() {
			daily := &dataframe.DataFrame{
				Dates: []time.Time{
					time.Date(2021, time.January, 29, 0, 0, 0, 0, time.UTC),
					time.Date(2021, time.January, 30, 0, 0, 0, 0, time.UTC),
					time.Date(2021, time.February, 1, 0, 0, 0, 0, time.UTC),
					time.Date(2021, time.February, 2, 0, 0, 0, 0, time.UTC),
				},
				ColNames: []string{"a"},
				Vals:     [][]float64{{1, 2, 3, 4}},
			}
			monthly := daily.Frequency(dataframe.Monthly)
			Expect(monthly.Len()).To(Equal(2))
			Expect(monthly.Vals[0]).To(Equal([]float64{2, 4}))
		})
	})
})
