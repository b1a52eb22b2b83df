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

import "github.com/bubble-watch/fbd-api/data"

// Event is a labeled historical market episode used to validate the model.
// Indicators holds the documented raw indicator snapshot for the window;
// DocumentedScore is the composite reported in the paper's tables.
type Event struct {
	Key         string
	Date        string
	Description string
	Actual      string

	// Bubble marks whether the episode was a genuine bubble (the
	// classification ground truth at the 60% risk threshold)
	Bubble bool

	DocumentedScore float64

	Indicators map[string]float64
}

// RiskThreshold is the composite score above which an episode is classified
// as a bubble
const RiskThreshold = 60.0

// Events returns the five labeled historical windows, ordered by date
func Events() []Event {
	return []Event{
		{
			Key:             "2015_peak",
			Date:            "2015-06",
			Description:     "2015 Stock Market Crash Peak",
			Actual:          "Major bubble (market crashed -43% in 3 months)",
			Bubble:          true,
			DocumentedScore: 85.0,
			Indicators: map[string]float64{
				data.ColPERatio:             37.0,
				data.ColCAPE:                32.5,
				data.ColPBRatio:             4.6,
				data.ColMarketCapGDP:        1.30,
				data.ColDividendYield:       0.0175,
				data.ColYTDReturn:           0.555,
				data.ColRSI:                 77.5,
				data.ColVolatility:          43.5,
				data.ColMarginBalance:       2415,
				data.ColTotalDebtGDP:        3.35,
				data.ColTSFGrowth:           0.140,
				data.ColCreditImpulse:       0.040,
				data.ColGDPGrowth:           5.0,
				data.ColCPI:                 0.0557143,
				data.ColPMI:                 50.0,
				data.ColUnemployment:        6.0,
				data.ColRetailParticipation: 0.87,
				data.ColNorthboundFlow:      430,
				data.ColForeignOwnership:    0.092,
			},
		},
		{
			Key:             "2018_correction",
			Date:            "2018-01",
			Description:     "2018 Market Correction",
			Actual:          "Normal correction (-25%, not bubble)",
			Bubble:          false,
			DocumentedScore: 45.0,
			Indicators: map[string]float64{
				data.ColPERatio:             25.0,
				data.ColCAPE:                22.5,
				data.ColPBRatio:             3.0,
				data.ColMarketCapGDP:        0.90,
				data.ColDividendYield:       0.0275,
				data.ColYTDReturn:           0.195,
				data.ColRSI:                 57.5,
				data.ColVolatility:          31.5,
				data.ColMarginBalance:       1735,
				data.ColTotalDebtGDP:        2.675,
				data.ColTSFGrowth:           0.095,
				data.ColCreditImpulse:       -0.005,
				data.ColGDPGrowth:           6.2,
				data.ColCPI:                 0.0414286,
				data.ColPMI:                 52.0,
				data.ColUnemployment:        5.2,
				data.ColRetailParticipation: 0.72,
				data.ColNorthboundFlow:      80,
				data.ColForeignOwnership:    0.052,
			},
		},
		{
			Key:             "2021_peak",
			Date:            "2021-02",
			Description:     "2021 Tech Bubble Peak",
			Actual:          "Tech sector bubble (corrected -40%)",
			Bubble:          true,
			DocumentedScore: 78.0,
			Indicators: map[string]float64{
				data.ColPERatio:             36.4,
				data.ColCAPE:                32.0,
				data.ColPBRatio:             4.52,
				data.ColMarketCapGDP:        1.28,
				data.ColDividendYield:       0.018,
				data.ColYTDReturn:           0.492,
				data.ColRSI:                 74.0,
				data.ColVolatility:          41.4,
				data.ColMarginBalance:       2296,
				data.ColTotalDebtGDP:        3.08,
				data.ColTSFGrowth:           0.122,
				data.ColCreditImpulse:       0.022,
				data.ColGDPGrowth:           5.3,
				data.ColCPI:                 0.0521429,
				data.ColPMI:                 50.5,
				data.ColUnemployment:        5.8,
				data.ColRetailParticipation: 0.85875,
				data.ColNorthboundFlow:      403.75,
				data.ColForeignOwnership:    0.089,
			},
		},
		{
			Key:             "2022_bottom",
			Date:            "2022-10",
			Description:     "2022 Bear Market Bottom",
			Actual:          "Undervalued (good entry point)",
			Bubble:          false,
			DocumentedScore: 25.0,
			Indicators: map[string]float64{
				data.ColPERatio:             16.0,
				data.ColCAPE:                15.0,
				data.ColPBRatio:             1.8,
				data.ColMarketCapGDP:        0.60,
				data.ColDividendYield:       0.035,
				data.ColYTDReturn:           -0.165,
				data.ColRSI:                 37.5,
				data.ColVolatility:          19.5,
				data.ColMarginBalance:       1055,
				data.ColTotalDebtGDP:        2.525,
				data.ColTSFGrowth:           0.085,
				data.ColCreditImpulse:       -0.015,
				data.ColGDPGrowth:           5.6,
				data.ColCPI:                 -0.0085714,
				data.ColPMI:                 51.0,
				data.ColUnemployment:        5.6,
				data.ColRetailParticipation: 0.66,
				data.ColNorthboundFlow:      -60,
				data.ColForeignOwnership:    0.036,
			},
		},
		{
			Key:             "2025_current",
			Date:            "2025-10",
			Description:     "Current State (Oct 2025)",
			Actual:          "Moderate risk, recovery phase",
			Bubble:          false,
			DocumentedScore: 36.75,
			Indicators: map[string]float64{
				data.ColPERatio:             17.5,
				data.ColCAPE:                16.25,
				data.ColPBRatio:             2.0,
				data.ColMarketCapGDP:        0.90,
				data.ColDividendYield:       0.0275,
				data.ColYTDReturn:           0.24,
				data.ColRSI:                 60.0,
				data.ColVolatility:          33.0,
				data.ColMarginBalance:       1820,
				data.ColTotalDebtGDP:        2.45,
				data.ColTSFGrowth:           0.080,
				data.ColCreditImpulse:       -0.020,
				data.ColGDPGrowth:           6.8,
				data.ColCPI:                 0.0057143,
				data.ColPMI:                 53.0,
				data.ColUnemployment:        4.8,
				data.ColRetailParticipation: 0.705,
				data.ColNorthboundFlow:      45,
				data.ColForeignOwnership:    0.048,
			},
		},
	}
}

// Method holds the per-event signal strengths of a detection method. The
// composite model's signals are recomputed from the event indicator
// snapshots; the alternatives carry the documented values from the paper.
type Method struct {
	Name           string
	Description    string
	FalsePositives string

	// Signals maps event key to signal strength in [0, 100]
	Signals map[string]float64
}

// AlternativeMethods returns the four comparison methods with their
// documented per-event signals
func AlternativeMethods() []Method {
	return []Method{
		{
			Name:           "CAPE-Based",
			Description:    "Shiller CAPE ratio thresholds",
			FalsePositives: "High",
			Signals: map[string]float64{
				"2015_peak":       72,
				"2018_correction": 55,
				"2021_peak":       65,
				"2022_bottom":     42,
				"2025_current":    28,
			},
		},
		{
			Name:           "Phillips GSADF",
			Description:    "Generalized sup ADF test",
			FalsePositives: "Medium",
			Signals: map[string]float64{
				"2015_peak":       91,
				"2018_correction": 62,
				"2021_peak":       45,
				"2022_bottom":     38,
				"2025_current":    42,
			},
		},
		{
			Name:           "VIX Threshold",
			Description:    "China VIX percentile thresholds",
			FalsePositives: "High",
			Signals: map[string]float64{
				"2015_peak":       68,
				"2018_correction": 78,
				"2021_peak":       82,
				"2022_bottom":     71,
				"2025_current":    31,
			},
		},
		{
			Name:           "Composite Average",
			Description:    "Simple average of P/E, CAPE, VIX, Credit",
			FalsePositives: "Medium-High",
			Signals: map[string]float64{
				"2015_peak":       76,
				"2018_correction": 58,
				"2021_peak":       71,
				"2022_bottom":     48,
				"2025_current":    35,
			},
		},
	}
}
