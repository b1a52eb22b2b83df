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
	"github.com/bubble-watch/fbd-api/data"
	"github.com/bubble-watch/fbd-api/dataframe"
)

func eventByKey(key string) bubble.Event {
	for _, event := range bubble.Events() {
		if event.Key == key {
			return event
		}
	}
	Fail("unknown event key " + key)
	return bubble.Event{}
}

var _ = Describe("When scoring historical episodes", func() {
	var model *bubble.Model

	BeforeEach(func() {
		model = bubble.DefaultModel()
	})

	It("reproduces the June 2015 crash peak within 1%", func() {
		card := model.Score(eventByKey("2015_peak").Indicators)
		Expect(card.Composite).To(BeNumerically("~", 85.0, 85.0*0.01))
		Expect(card.Level).To(Equal(bubble.RiskExtreme))
	})

	It("reproduces the October 2022 bottom within 1%", func() {
		card := model.Score(eventByKey("2022_bottom").Indicators)
		Expect(card.Composite).To(BeNumerically("~", 25.0, 25.0*0.01))
		Expect(card.Level).To(Equal(bubble.RiskLowModerate))
	})

	It("reproduces the October 2025 reading within 0.5%", func() {
		card := model.Score(eventByKey("2025_current").Indicators)
		Expect(card.Composite).To(BeNumerically("~", 36.75, 36.75*0.005))
		Expect(card.Level).To(Equal(bubble.RiskModerate))
	})

	It("reproduces the documented score of every labeled episode", func() {
		for _, event := range bubble.Events() {
			card := model.Score(event.Indicators)
			Expect(card.Composite).To(BeNumerically("~", event.DocumentedScore, event.DocumentedScore*0.01),
				"episode %s", event.Key)
		}
	})

	It("keeps every category and the composite within [0, 100]", func() {
		for _, event := range bubble.Events() {
			card := model.Score(event.Indicators)
			Expect(card.Composite).To(BeNumerically(">=", 0))
			Expect(card.Composite).To(BeNumerically("<=", 100))
			for name, score := range card.Category {
				Expect(score).To(BeNumerically(">=", 0), "category %s", name)
				Expect(score).To(BeNumerically("<=", 100), "category %s", name)
			}
		}
	})

	It("reports category contributions that sum to the composite", func() {
		card := model.Score(eventByKey("2015_peak").Indicators)
		sum := 0.0
		for _, contribution := range card.Contribution {
			sum += contribution
		}
		Expect(sum).To(BeNumerically("~", card.Composite, 1e-9))
	})
})

var _ = Describe("When indicators are missing", func() {
	var model *bubble.Model

	BeforeEach(func() {
		model = bubble.DefaultModel()
	})

	It("excludes NaN indicators from the category mean", func() {
		row := eventByKey("2015_peak").Indicators
		withMissing := make(map[string]float64, len(row))
		for k, v := range row {
			withMissing[k] = v
		}
		// all momentum indicators at their highest reading; dropping one
		// leaves the mean unchanged
		delete(withMissing, "RSI")

		full := model.Score(row)
		partial := model.Score(withMissing)
		Expect(partial.Category[bubble.Momentum]).To(BeNumerically("~", full.Category[bubble.Momentum], 1e-9))
	})

	It("scores an empty category NaN and renormalizes the composite", func() {
		row := eventByKey("2025_current").Indicators
		withMissing := make(map[string]float64, len(row))
		for k, v := range row {
			withMissing[k] = v
		}
		delete(withMissing, "GDP_Growth")
		delete(withMissing, "CPI")
		delete(withMissing, "PMI")
		delete(withMissing, "Unemployment")

		card := model.Score(withMissing)
		Expect(math.IsNaN(card.Category[bubble.Economy])).To(BeTrue())

		// remaining categories: (35*.25 + 60*.2 + 30*.2 + 35*.2) / 0.85
		Expect(card.Composite).To(BeNumerically("~", 33.75/0.85, 1e-9))
	})

	It("returns NaN when every category is empty", func() {
		card := model.Score(map[string]float64{})
		Expect(math.IsNaN(card.Composite)).To(BeTrue())
	})
})

var _ = Describe("When keying weights by score column", func() {
	It("maps every category weight onto its score column", func() {
		model := bubble.DefaultModel()
		weights := model.ColumnWeights()

		Expect(weights).To(HaveLen(5))
		Expect(weights[data.ColValuationScore]).To(BeNumerically("~", 0.25, 1e-9))
		Expect(weights[data.ColEconomyScore]).To(BeNumerically("~", 0.15, 1e-9))

		sum := 0.0
		for _, w := range weights {
			sum += w
		}
		Expect(sum).To(BeNumerically("~", 1.0, 1e-9))
	})

	It("combines score-column frames into the composite", func() {
		df := &dataframe.DataFrame{
			Dates: seriesFrame("x", make([]float64, 3)).Dates,
			ColNames: []string{
				data.ColValuationScore, data.ColMomentumScore, data.ColCreditScore,
				data.ColEconomyScore, data.ColSentimentScore,
			},
			Vals: [][]float64{
				repeat(35, 3), repeat(60, 3), repeat(30, 3), repeat(20, 3), repeat(35, 3),
			},
		}

		series := bubble.ComputeCompositeSeries(df, bubble.DefaultModel().ColumnWeights())
		Expect(series.Score[2]).To(BeNumerically("~", 36.75, 1e-9))
	})
})
