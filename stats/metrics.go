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

package stats

import (
	"math"
	"sort"
)

// Confusion is a binary classification confusion matrix
type Confusion struct {
	TruePositive  int
	FalsePositive int
	TrueNegative  int
	FalseNegative int
}

// Classify thresholds scores against truth labels. NaN scores are skipped.
func Classify(scores []float64, truth []bool, threshold float64) Confusion {
	var c Confusion
	for idx, score := range scores {
		if math.IsNaN(score) {
			continue
		}
		positive := score >= threshold
		switch {
		case positive && truth[idx]:
			c.TruePositive++
		case positive && !truth[idx]:
			c.FalsePositive++
		case !positive && truth[idx]:
			c.FalseNegative++
		default:
			c.TrueNegative++
		}
	}
	return c
}

// Total observations in the matrix
func (c Confusion) Total() int {
	return c.TruePositive + c.FalsePositive + c.TrueNegative + c.FalseNegative
}

// Accuracy is the share of correct classifications
func (c Confusion) Accuracy() float64 {
	total := c.Total()
	if total == 0 {
		return math.NaN()
	}
	return float64(c.TruePositive+c.TrueNegative) / float64(total)
}

// Sensitivity is the true positive rate
func (c Confusion) Sensitivity() float64 {
	denom := c.TruePositive + c.FalseNegative
	if denom == 0 {
		return math.NaN()
	}
	return float64(c.TruePositive) / float64(denom)
}

// Specificity is the true negative rate
func (c Confusion) Specificity() float64 {
	denom := c.TrueNegative + c.FalsePositive
	if denom == 0 {
		return math.NaN()
	}
	return float64(c.TrueNegative) / float64(denom)
}

// Precision is the positive predictive value
func (c Confusion) Precision() float64 {
	denom := c.TruePositive + c.FalsePositive
	if denom == 0 {
		return math.NaN()
	}
	return float64(c.TruePositive) / float64(denom)
}

// RankAUC computes the area under the ROC curve with the rank-sum
// formulation: the probability that a random positive scores above a random
// negative, with ties counted at half weight
func RankAUC(scores []float64, truth []bool) float64 {
	type obs struct {
		score float64
		pos   bool
	}

	data := make([]obs, 0, len(scores))
	var nPos, nNeg float64
	for idx, score := range scores {
		if math.IsNaN(score) {
			continue
		}
		data = append(data, obs{score, truth[idx]})
		if truth[idx] {
			nPos++
		} else {
			nNeg++
		}
	}
	if nPos == 0 || nNeg == 0 {
		return math.NaN()
	}

	sort.Slice(data, func(i, j int) bool { return data[i].score < data[j].score })

	// average ranks, ties shared
	ranks := make([]float64, len(data))
	for i := 0; i < len(data); {
		j := i
		for j < len(data) && data[j].score == data[i].score {
			j++
		}
		avg := float64(i+j+1) / 2 // ranks are 1-based
		for k := i; k < j; k++ {
			ranks[k] = avg
		}
		i = j
	}

	var rankSum float64
	for idx, o := range data {
		if o.pos {
			rankSum += ranks[idx]
		}
	}

	return (rankSum - nPos*(nPos+1)/2) / (nPos * nNeg)
}

// MAE is the mean absolute error between forecasts and actuals, skipping
// pairs with a NaN
func MAE(forecast, actual []float64) float64 {
	var sum, cnt float64
	for idx := range forecast {
		if math.IsNaN(forecast[idx]) || math.IsNaN(actual[idx]) {
			continue
		}
		sum += math.Abs(forecast[idx] - actual[idx])
		cnt++
	}
	if cnt == 0 {
		return math.NaN()
	}
	return sum / cnt
}

// RMSE is the root mean squared error between forecasts and actuals
func RMSE(forecast, actual []float64) float64 {
	var sum, cnt float64
	for idx := range forecast {
		if math.IsNaN(forecast[idx]) || math.IsNaN(actual[idx]) {
			continue
		}
		diff := forecast[idx] - actual[idx]
		sum += diff * diff
		cnt++
	}
	if cnt == 0 {
		return math.NaN()
	}
	return math.Sqrt(sum / cnt)
}
