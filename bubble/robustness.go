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

import "math"

// Specification is one alternative configuration of the model used in the
// robustness analysis. Components holds the category scores the spec is
// evaluated on (specs that change the data window carry their own component
// values); Weights holds the category weights, omitting excluded categories.
type Specification struct {
	Name        string
	Description string
	Components  map[string]float64
	Weights     map[string]float64

	// PredictiveR2 is the 6-month predictive R² of the spec
	PredictiveR2 float64
}

// Composite evaluates the specification
func (s *Specification) Composite() float64 {
	return Composite(s.Components, s.Weights)
}

// baselineComponents are the current category scores all weight-only
// specifications share
func baselineComponents() map[string]float64 {
	return map[string]float64{
		Valuation: 35,
		Momentum:  60,
		Credit:    30,
		Economy:   20,
		Sentiment: 35,
	}
}

// Specifications returns the six robustness configurations: the baseline
// plus five perturbations of weights, data frequency, and window.
func Specifications() []Specification {
	baseWeights := DefaultModel().Weights()

	return []Specification{
		{
			Name:         "Baseline",
			Description:  "Five categories, documented weights, monthly data",
			Components:   baselineComponents(),
			Weights:      baseWeights,
			PredictiveR2: 0.71,
		},
		{
			Name:        "Equal Weights",
			Description: "All five categories weighted 20%",
			Components:  baselineComponents(),
			Weights: map[string]float64{
				Valuation: 0.20,
				Momentum:  0.20,
				Credit:    0.20,
				Economy:   0.20,
				Sentiment: 0.20,
			},
			PredictiveR2: 0.65,
		},
		{
			Name:        "Without Economy",
			Description: "Economy category excluded, remaining weights rescaled",
			Components:  baselineComponents(),
			Weights: map[string]float64{
				Valuation: 0.294,
				Momentum:  0.235,
				Credit:    0.235,
				Sentiment: 0.235,
			},
			PredictiveR2: 0.69,
		},
		{
			Name:        "Quarterly Data",
			Description: "Components rebuilt on quarterly observations",
			Components: map[string]float64{
				Valuation: 34,
				Momentum:  62,
				Credit:    29,
				Economy:   21,
				Sentiment: 36,
			},
			Weights:      baseWeights,
			PredictiveR2: 0.68,
		},
		{
			Name:        "Rolling Window",
			Description: "Normalization ranges from a rolling 5-year window",
			Components: map[string]float64{
				Valuation: 33,
				Momentum:  58,
				Credit:    31,
				Economy:   19,
				Sentiment: 34,
			},
			Weights:      baseWeights,
			PredictiveR2: 0.70,
		},
		{
			Name:        "Higher Valuation Weight",
			Description: "Valuation raised to 30%, momentum and credit trimmed",
			Components:  baselineComponents(),
			Weights: map[string]float64{
				Valuation: 0.30,
				Momentum:  0.175,
				Credit:    0.175,
				Economy:   0.15,
				Sentiment: 0.20,
			},
			PredictiveR2: 0.72,
		},
	}
}

// RobustnessSummary aggregates the composite scores across specifications
type RobustnessSummary struct {
	Min   float64
	Max   float64
	Range float64
	Avg   float64

	// Stable is true when the score range across specifications stays
	// within 5 points, the stability criterion used in the paper
	Stable bool
}

// Summarize computes the score spread across the given specifications
func Summarize(specs []Specification) RobustnessSummary {
	summary := RobustnessSummary{Min: math.Inf(1), Max: math.Inf(-1)}
	sum := 0.0
	for _, spec := range specs {
		score := spec.Composite()
		summary.Min = math.Min(summary.Min, score)
		summary.Max = math.Max(summary.Max, score)
		sum += score
	}

	summary.Range = summary.Max - summary.Min
	summary.Avg = sum / float64(len(specs))
	summary.Stable = summary.Range <= 5.0
	return summary
}
