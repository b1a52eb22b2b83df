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

import "math"

// ForecastResult compares expanding-window model forecasts against the naive
// no-change benchmark on the held-out portion of a series
type ForecastResult struct {
	ModelMAE  float64
	ModelRMSE float64
	NaiveMAE  float64
	NaiveRMSE float64

	// ImprovementPct is the reduction of the model MAE relative to the
	// naive MAE, in percent
	ImprovementPct float64

	// Forecasts and Actuals cover the evaluation window
	Forecasts []float64
	Actuals   []float64
}

// OOSForecast evaluates one-step-ahead autoregressive forecasts of a series
// out of sample. For each t past the initial training fraction it refits an
// AR(order) model on observations up to t-1 and forecasts t; the naive
// benchmark forecasts no change from t-1.
func OOSForecast(series []float64, order int, trainFrac float64) (*ForecastResult, error) {
	if order < 1 {
		return nil, ErrInvalidLag
	}

	start := int(float64(len(series)) * trainFrac)
	if start <= order+2 {
		return nil, ErrTooFewObservations
	}

	lags := make([][]float64, order)
	for l := 1; l <= order; l++ {
		lags[l-1] = Lagged(series, l)
	}

	res := &ForecastResult{}
	naive := make([]float64, 0, len(series)-start)

	for t := start; t < len(series); t++ {
		if math.IsNaN(series[t]) {
			continue
		}

		trainLags := make([][]float64, order)
		for l := range lags {
			trainLags[l] = lags[l][:t]
		}
		fit, err := OLS(series[:t], trainLags...)
		if err != nil {
			return nil, err
		}

		forecast := fit.Coef[0]
		for l := 0; l < order; l++ {
			forecast += fit.Coef[l+1] * series[t-1-l]
		}

		res.Forecasts = append(res.Forecasts, forecast)
		res.Actuals = append(res.Actuals, series[t])
		naive = append(naive, series[t-1])
	}

	res.ModelMAE = MAE(res.Forecasts, res.Actuals)
	res.ModelRMSE = RMSE(res.Forecasts, res.Actuals)
	res.NaiveMAE = MAE(naive, res.Actuals)
	res.NaiveRMSE = RMSE(naive, res.Actuals)
	if res.NaiveMAE > 0 {
		res.ImprovementPct = (1 - res.ModelMAE/res.NaiveMAE) * 100
	}

	return res, nil
}
