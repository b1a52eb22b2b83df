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

// Package bubble implements the multi-factor bubble risk model: raw market
// indicators are normalized against historical ranges, aggregated into five
// category risk scores, and combined into a weighted composite in [0, 100].
package bubble

import (
	"math"

	"github.com/bubble-watch/fbd-api/data"
)

// Category names
const (
	Valuation = "Valuation"
	Momentum  = "Momentum"
	Credit    = "Credit"
	Economy   = "Economy"
	Sentiment = "Sentiment"
)

// Indicator maps one raw input column onto a risk in [0, 1]
type Indicator struct {
	// Column is the dataset column the indicator reads
	Column string

	// Lo and Hi bound the historical range used for min-max normalization
	Lo float64
	Hi float64

	// Invert flips the risk for indicators where low values mean high risk
	// (e.g. dividend yield, GDP growth)
	Invert bool

	// Risk overrides min-max normalization with a custom mapping when set
	// (e.g. inflation deviation from target)
	Risk func(val float64) float64
}

// Category is a weighted group of indicators; its score is the mean of the
// member indicator risks scaled to [0, 100]
type Category struct {
	Name       string
	Weight     float64
	Indicators []Indicator
}

// Model is the full layered scoring specification
type Model struct {
	Categories []Category
}

// Normalize maps value onto its percentile within [lo, hi], clipped to
// [0, 1]. NaN propagates.
func Normalize(value, lo, hi float64, invert bool) float64 {
	if math.IsNaN(value) {
		return math.NaN()
	}

	pct := (value - lo) / (hi - lo)
	pct = math.Max(0, math.Min(1, pct))
	if invert {
		pct = 1 - pct
	}
	return pct
}

// inflationRisk measures deviation of CPI from the 2% target; both deflation
// and runaway inflation raise risk
func inflationRisk(cpi float64) float64 {
	if math.IsNaN(cpi) {
		return math.NaN()
	}
	risk := math.Abs(cpi-0.02) / 0.05 * 0.7
	return math.Min(1, risk)
}

// DefaultModel returns the scoring specification used throughout the paper:
// valuation 25%, momentum 20%, credit 20%, economy 15%, sentiment 20%, with
// the historical normalization ranges documented for each indicator.
func DefaultModel() *Model {
	return &Model{
		Categories: []Category{
			{
				Name:   Valuation,
				Weight: 0.25,
				Indicators: []Indicator{
					{Column: data.ColPERatio, Lo: 10, Hi: 40},
					{Column: data.ColCAPE, Lo: 10, Hi: 35},
					{Column: data.ColPBRatio, Lo: 1.0, Hi: 5.0},
					{Column: data.ColMarketCapGDP, Lo: 0.40, Hi: 1.40},
					{Column: data.ColDividendYield, Lo: 0.015, Hi: 0.040, Invert: true},
				},
			},
			{
				Name:   Momentum,
				Weight: 0.20,
				Indicators: []Indicator{
					{Column: data.ColYTDReturn, Lo: -0.30, Hi: 0.60},
					{Column: data.ColRSI, Lo: 30, Hi: 80},
					{Column: data.ColVolatility, Lo: 15, Hi: 45},
					{Column: data.ColMarginBalance, Lo: 800, Hi: 2500},
				},
			},
			{
				Name:   Credit,
				Weight: 0.20,
				Indicators: []Indicator{
					{Column: data.ColTotalDebtGDP, Lo: 2.00, Hi: 3.50},
					{Column: data.ColTSFGrowth, Lo: 0.05, Hi: 0.15},
					{Column: data.ColCreditImpulse, Lo: -0.05, Hi: 0.05},
				},
			},
			{
				Name:   Economy,
				Weight: 0.15,
				Indicators: []Indicator{
					{Column: data.ColGDPGrowth, Lo: 2.0, Hi: 8.0, Invert: true},
					{Column: data.ColCPI, Risk: inflationRisk},
					{Column: data.ColPMI, Lo: 45, Hi: 55, Invert: true},
					{Column: data.ColUnemployment, Lo: 4.0, Hi: 8.0},
				},
			},
			{
				Name:   Sentiment,
				Weight: 0.20,
				Indicators: []Indicator{
					{Column: data.ColRetailParticipation, Lo: 0.60, Hi: 0.90},
					{Column: data.ColNorthboundFlow, Lo: -200, Hi: 500},
					{Column: data.ColForeignOwnership, Lo: 0.02, Hi: 0.10},
				},
			},
		},
	}
}

// Weights returns the category weights keyed by name
func (m *Model) Weights() map[string]float64 {
	w := make(map[string]float64, len(m.Categories))
	for _, cat := range m.Categories {
		w[cat.Name] = cat.Weight
	}
	return w
}

// CategoryNames returns category names in model order
func (m *Model) CategoryNames() []string {
	names := make([]string, 0, len(m.Categories))
	for _, cat := range m.Categories {
		names = append(names, cat.Name)
	}
	return names
}
