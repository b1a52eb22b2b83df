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

	"github.com/rs/zerolog/log"

	"github.com/bubble-watch/fbd-api/data"
	"github.com/bubble-watch/fbd-api/dataframe"
)

// RiskLevel classifies a composite score into the bands used in the paper
type RiskLevel string

const (
	RiskMinimal     RiskLevel = "Minimal Risk"
	RiskLowModerate RiskLevel = "Low-Moderate Risk"
	RiskModerate    RiskLevel = "Moderate Risk"
	RiskElevated    RiskLevel = "Elevated Risk"
	RiskHigh        RiskLevel = "High Risk"
	RiskExtreme     RiskLevel = "Extreme Risk"
)

// RiskLevelFor returns the band a composite score falls into
func RiskLevelFor(score float64) RiskLevel {
	switch {
	case score < 20:
		return RiskMinimal
	case score < 35:
		return RiskLowModerate
	case score < 50:
		return RiskModerate
	case score < 65:
		return RiskElevated
	case score < 80:
		return RiskHigh
	default:
		return RiskExtreme
	}
}

// Scorecard is the full output of the model for a single observation
type Scorecard struct {
	// Category scores in [0, 100], keyed by category name
	Category map[string]float64

	// Contribution of each category to the composite (score * weight)
	Contribution map[string]float64

	// Composite bubble risk score in [0, 100]
	Composite float64

	Level RiskLevel
}

// Score computes the layered bubble risk score for one row of raw indicator
// values. Missing (NaN) indicators are excluded from their category mean; a
// category with no available indicator scores NaN and is excluded from the
// composite with its weight redistributed.
func (m *Model) Score(row map[string]float64) *Scorecard {
	card := &Scorecard{
		Category:     make(map[string]float64, len(m.Categories)),
		Contribution: make(map[string]float64, len(m.Categories)),
	}

	for _, cat := range m.Categories {
		sum := 0.0
		cnt := 0.0
		for _, ind := range cat.Indicators {
			val, ok := row[ind.Column]
			if !ok {
				val = math.NaN()
			}

			var risk float64
			if ind.Risk != nil {
				risk = ind.Risk(val)
			} else {
				risk = Normalize(val, ind.Lo, ind.Hi, ind.Invert)
			}

			if math.IsNaN(risk) {
				continue
			}
			sum += risk
			cnt++
		}

		if cnt == 0 {
			card.Category[cat.Name] = math.NaN()
			continue
		}
		card.Category[cat.Name] = sum / cnt * 100
	}

	card.Composite = Composite(card.Category, m.Weights())
	for _, cat := range m.Categories {
		score := card.Category[cat.Name]
		if math.IsNaN(score) {
			card.Contribution[cat.Name] = math.NaN()
			continue
		}
		card.Contribution[cat.Name] = score * cat.Weight
	}
	card.Level = RiskLevelFor(card.Composite)

	return card
}

// Composite combines category scores with the given weights. Weights are
// renormalized over the categories that are present and not NaN, so a
// missing category redistributes its weight proportionally.
func Composite(categories, weights map[string]float64) float64 {
	var score, weightSum float64
	for name, w := range weights {
		cat, ok := categories[name]
		if !ok || math.IsNaN(cat) {
			continue
		}
		score += cat * w
		weightSum += w
	}

	if weightSum == 0 {
		return math.NaN()
	}
	return score / weightSum
}

// Score columns appended by ScoreFrame
var scoreColumns = []string{
	data.ColValuationScore,
	data.ColMomentumScore,
	data.ColCreditScore,
	data.ColEconomyScore,
	data.ColSentimentScore,
	data.ColBubbleRiskScore,
}

var categoryToColumn = map[string]string{
	Valuation: data.ColValuationScore,
	Momentum:  data.ColMomentumScore,
	Credit:    data.ColCreditScore,
	Economy:   data.ColEconomyScore,
	Sentiment: data.ColSentimentScore,
}

// ColumnWeights returns the category weights keyed by the score column each
// category is written to, for combining score-column frames
func (m *Model) ColumnWeights() map[string]float64 {
	weights := make(map[string]float64, len(m.Categories))
	for _, cat := range m.Categories {
		weights[categoryToColumn[cat.Name]] = cat.Weight
	}
	return weights
}

// ScoreFrame scores every row of the dataframe and returns a new dataframe
// containing the five category score columns and the composite. The input
// should already be forward-filled; raw values are winsorized at the 1st and
// 99th percentile before scoring.
func (m *Model) ScoreFrame(df *dataframe.DataFrame) *dataframe.DataFrame {
	rawCols := make([]string, 0, 24)
	for _, cat := range m.Categories {
		for _, ind := range cat.Indicators {
			if df.ColIndex(ind.Column) != -1 {
				rawCols = append(rawCols, ind.Column)
			}
		}
	}

	raw := df.Select(rawCols...).Winsorize(0.01, 0.99)

	res := &dataframe.DataFrame{
		Dates:    df.Dates,
		ColNames: scoreColumns,
		Vals:     make([][]float64, len(scoreColumns)),
	}
	for colIdx := range res.Vals {
		res.Vals[colIdx] = make([]float64, df.Len())
	}

	for rowIdx := range df.Dates {
		card := m.Score(raw.Row(rowIdx))
		for catName, colName := range categoryToColumn {
			res.Vals[res.ColIndex(colName)][rowIdx] = card.Category[catName]
		}
		res.Vals[res.ColIndex(data.ColBubbleRiskScore)][rowIdx] = card.Composite
	}

	return res
}

// VerifyStored recomputes the composite for every row that carries a stored
// score and reports the largest relative deviation. Returns true when all
// stored scores are reproduced within the tolerance (a fraction, e.g. 0.01
// for ±1%).
func (m *Model) VerifyStored(df *dataframe.DataFrame, recomputed *dataframe.DataFrame, tolerance float64) bool {
	stored := df.Col(data.ColBubbleRiskScore)
	if stored == nil {
		log.Info().Msg("dataset carries no stored scores; skipping verification")
		return true
	}

	computed := recomputed.Col(data.ColBubbleRiskScore)
	ok := true
	worst := 0.0
	for rowIdx, want := range stored {
		if math.IsNaN(want) || math.IsNaN(computed[rowIdx]) {
			continue
		}

		dev := math.Abs(computed[rowIdx]-want) / math.Abs(want)
		if dev > worst {
			worst = dev
		}
		if dev > tolerance {
			ok = false
			log.Warn().Time("Date", df.Dates[rowIdx]).Float64("Stored", want).
				Float64("Recomputed", computed[rowIdx]).Float64("Deviation", dev).
				Msg("stored score outside tolerance")
		}
	}

	log.Info().Float64("WorstDeviation", worst).Float64("Tolerance", tolerance).Bool("OK", ok).
		Msg("verified stored scores against recomputation")
	return ok
}
