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

// Percentile-rank thresholds that put a metric into the warning or danger
// zone of the early-warning index
const (
	warnRank   = 0.7
	dangerRank = 0.9
)

// WarningLevel grades the early-warning index
type WarningLevel string

const (
	WarningNormal  WarningLevel = "Normal"
	WarningWatch   WarningLevel = "Watch"
	WarningWarning WarningLevel = "Warning"
	WarningAlert   WarningLevel = "Alert"
)

// WarningState is the early-warning reading for one observation. Ranks and
// the composite are expanding percentile ranks in [0, 1].
type WarningState struct {
	// WarnShare is the fraction of available metric ranks above the warning
	// threshold; DangerShare the fraction above danger
	WarnShare   float64
	DangerShare float64

	// Index combines the two shares, weighting danger more heavily
	Index float64

	Level WarningLevel

	// Accelerating is set when the risk composite is high and still rising
	// faster; Reversal when a stretched composite has started to roll over
	Accelerating bool
	Reversal     bool
}

// WarningIndex computes the early-warning index from one row of metric
// percentile ranks: 40% weight on the share of metrics in the warning zone,
// 60% on the share in the danger zone. NaN ranks are excluded.
func WarningIndex(ranks []float64) *WarningState {
	var warn, danger, total float64
	for _, rank := range ranks {
		if math.IsNaN(rank) {
			continue
		}
		total++
		if rank > warnRank {
			warn++
		}
		if rank > dangerRank {
			danger++
		}
	}

	state := &WarningState{}
	if total == 0 {
		state.WarnShare = math.NaN()
		state.DangerShare = math.NaN()
		state.Index = math.NaN()
		state.Level = WarningNormal
		return state
	}

	state.WarnShare = warn / total
	state.DangerShare = danger / total
	state.Index = 0.4*state.WarnShare + 0.6*state.DangerShare
	state.Level = warningLevelFor(state.Index)
	return state
}

func warningLevelFor(index float64) WarningLevel {
	switch {
	case index < 0.3:
		return WarningNormal
	case index < 0.6:
		return WarningWatch
	case index < 0.8:
		return WarningWarning
	default:
		return WarningAlert
	}
}

// AttachDynamics fills the acceleration and reversal signals from the
// rank-composite value and its smoothed acceleration
func (state *WarningState) AttachDynamics(composite, acceleration float64) {
	if math.IsNaN(composite) || math.IsNaN(acceleration) {
		return
	}

	state.Accelerating = acceleration > 0 && composite > 0.5
	state.Reversal = acceleration < 0 && composite > 0.7
}
