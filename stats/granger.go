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
	"errors"

	"gonum.org/v1/gonum/stat/distuv"
)

var ErrInvalidLag = errors.New("granger lag must be positive")

// GrangerResult is the outcome of one Granger causality test
type GrangerResult struct {
	Lag    int
	F      float64
	PValue float64

	// NumDF and DenomDF are the F distribution degrees of freedom
	NumDF   int
	DenomDF int

	// Significant at the 1% level
	Significant bool
}

// GrangerTest asks whether lagged values of cause improve the prediction of
// effect beyond effect's own lags. It fits the restricted model (effect on
// its own lags) and the unrestricted model (adding the cause lags) and
// compares residual sums of squares with an F-test.
func GrangerTest(cause, effect []float64, lag int) (*GrangerResult, error) {
	if lag < 1 {
		return nil, ErrInvalidLag
	}
	if len(cause) != len(effect) {
		return nil, ErrLengthMismatch
	}

	ownLags := make([][]float64, 0, lag)
	causeLags := make([][]float64, 0, lag)
	for l := 1; l <= lag; l++ {
		ownLags = append(ownLags, Lagged(effect, l))
		causeLags = append(causeLags, Lagged(cause, l))
	}

	restricted, err := OLS(effect, ownLags...)
	if err != nil {
		return nil, err
	}

	unrestricted, err := OLS(effect, append(append([][]float64{}, ownLags...), causeLags...)...)
	if err != nil {
		return nil, err
	}

	numDF := lag
	denomDF := unrestricted.N - unrestricted.K
	f := ((restricted.RSS - unrestricted.RSS) / float64(numDF)) /
		(unrestricted.RSS / float64(denomDF))
	if f < 0 {
		f = 0
	}

	dist := distuv.F{D1: float64(numDF), D2: float64(denomDF)}
	p := dist.Survival(f)

	return &GrangerResult{
		Lag:         lag,
		F:           f,
		PValue:      p,
		NumDF:       numDF,
		DenomDF:     denomDF,
		Significant: p < 0.01,
	}, nil
}

// GrangerAtLags runs the test at each requested lag
func GrangerAtLags(cause, effect []float64, lags []int) ([]*GrangerResult, error) {
	results := make([]*GrangerResult, 0, len(lags))
	for _, lag := range lags {
		res, err := GrangerTest(cause, effect, lag)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}
