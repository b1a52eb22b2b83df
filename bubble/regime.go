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

	"github.com/bubble-watch/fbd-api/dataframe"
)

// Regime labels a market phase
type Regime string

const (
	RegimeCrisis      Regime = "Crisis"
	RegimeBubble      Regime = "Bubble"
	RegimeOverheating Regime = "Overheating"
	RegimeBull        Regime = "Bull"
	RegimeBear        Regime = "Bear"
	RegimeStagnation  Regime = "Stagnation"
	RegimeNormal      Regime = "Normal"
	RegimeUnknown     Regime = "Unknown"
)

// Regime classification thresholds, in percent for returns and annualized
// percent for volatility
const (
	crisisReturn   = -30.0
	crisisVol      = 40.0
	bubbleScore    = 65.0
	bubbleReturn   = 20.0
	overheatScore  = 50.0
	bullReturn     = 15.0
	bearReturn     = -15.0
	stagnantReturn = 5.0
	stagnantVol    = 20.0
)

// ClassifyRegime assigns a market regime from the composite score, trailing
// year-over-year return, and annualized volatility. Rules are checked in
// order of severity; any NaN input yields RegimeUnknown.
func ClassifyRegime(score, yoyReturn, volatility float64) Regime {
	if math.IsNaN(score) || math.IsNaN(yoyReturn) || math.IsNaN(volatility) {
		return RegimeUnknown
	}

	switch {
	case yoyReturn <= crisisReturn && volatility >= crisisVol:
		return RegimeCrisis
	case score >= bubbleScore && yoyReturn >= bubbleReturn:
		return RegimeBubble
	case score >= overheatScore && yoyReturn > 0:
		return RegimeOverheating
	case yoyReturn >= bullReturn:
		return RegimeBull
	case yoyReturn <= bearReturn:
		return RegimeBear
	case math.Abs(yoyReturn) < stagnantReturn && volatility < stagnantVol:
		return RegimeStagnation
	default:
		return RegimeNormal
	}
}

// RegimeSpan is a contiguous run of observations in the same regime
type RegimeSpan struct {
	Regime Regime
	Start  int
	End    int
	Months int
}

// RegimeSeries classifies every observation and collapses the result into
// contiguous spans. scores, returns and vols must share the frame's index.
func RegimeSeries(df *dataframe.DataFrame, scores, returns, vols []float64) []RegimeSpan {
	spans := make([]RegimeSpan, 0, 16)
	for idx := range df.Dates {
		regime := ClassifyRegime(scores[idx], returns[idx], vols[idx])
		if len(spans) > 0 && spans[len(spans)-1].Regime == regime {
			last := &spans[len(spans)-1]
			last.End = idx
			last.Months++
			continue
		}
		spans = append(spans, RegimeSpan{Regime: regime, Start: idx, End: idx, Months: 1})
	}
	return spans
}
