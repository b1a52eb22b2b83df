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

// Package stats implements the econometric machinery behind the validation
// analysis: ordinary least squares, Granger causality F-tests, predictive
// regressions, and classification / forecast accuracy metrics.
package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	ErrTooFewObservations = errors.New("too few observations for regression")
	ErrSingularDesign     = errors.New("design matrix is singular")
	ErrLengthMismatch     = errors.New("series lengths do not match")
)

// OLSResult holds a fitted least-squares regression. Coef[0] is the
// intercept; Coef[1:] follow the predictor order of the design matrix.
type OLSResult struct {
	Coef      []float64
	StdErr    []float64
	TStat     []float64
	Residuals []float64
	RSS       float64
	TSS       float64
	R2        float64
	AdjR2     float64
	N         int
	K         int // number of estimated coefficients, intercept included
}

// OLS fits y on the predictor columns xs with an intercept. Rows containing
// a NaN in y or any predictor are dropped before fitting.
func OLS(y []float64, xs ...[]float64) (*OLSResult, error) {
	for _, x := range xs {
		if len(x) != len(y) {
			return nil, ErrLengthMismatch
		}
	}

	rows := make([]int, 0, len(y))
	for idx := range y {
		if math.IsNaN(y[idx]) {
			continue
		}
		ok := true
		for _, x := range xs {
			if math.IsNaN(x[idx]) {
				ok = false
				break
			}
		}
		if ok {
			rows = append(rows, idx)
		}
	}

	n := len(rows)
	k := len(xs) + 1
	if n <= k {
		return nil, ErrTooFewObservations
	}

	design := mat.NewDense(n, k, nil)
	resp := mat.NewVecDense(n, nil)
	for i, rowIdx := range rows {
		design.Set(i, 0, 1)
		for j, x := range xs {
			design.Set(i, j+1, x[rowIdx])
		}
		resp.SetVec(i, y[rowIdx])
	}

	var qr mat.QR
	qr.Factorize(design)

	coefVec := mat.NewVecDense(k, nil)
	if err := qr.SolveVecTo(coefVec, false, resp); err != nil {
		return nil, ErrSingularDesign
	}

	res := &OLSResult{
		Coef:      make([]float64, k),
		StdErr:    make([]float64, k),
		TStat:     make([]float64, k),
		Residuals: make([]float64, n),
		N:         n,
		K:         k,
	}
	for j := 0; j < k; j++ {
		res.Coef[j] = coefVec.AtVec(j)
	}

	fitted := mat.NewVecDense(n, nil)
	fitted.MulVec(design, coefVec)

	yMean := mat.Sum(resp) / float64(n)
	for i := 0; i < n; i++ {
		resid := resp.AtVec(i) - fitted.AtVec(i)
		res.Residuals[i] = resid
		res.RSS += resid * resid
		dev := resp.AtVec(i) - yMean
		res.TSS += dev * dev
	}

	if res.TSS > 0 {
		res.R2 = 1 - res.RSS/res.TSS
		res.AdjR2 = 1 - (1-res.R2)*float64(n-1)/float64(n-k)
	}

	// standard errors from sigma^2 * (X'X)^-1
	sigma2 := res.RSS / float64(n-k)
	var xtx mat.SymDense
	xtx.SymOuterK(1, design.T())

	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, ErrSingularDesign
	}
	for j := 0; j < k; j++ {
		res.StdErr[j] = math.Sqrt(sigma2 * xtxInv.At(j, j))
		if res.StdErr[j] > 0 {
			res.TStat[j] = res.Coef[j] / res.StdErr[j]
		}
	}

	return res, nil
}

// PValue returns the two-sided p-value of the coefficient at index j using
// the Student's t distribution with n-k degrees of freedom
func (r *OLSResult) PValue(j int) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(r.N - r.K)}
	return 2 * dist.Survival(math.Abs(r.TStat[j]))
}

// PredictiveResult summarizes a regression of future returns on the current
// score at one horizon
type PredictiveResult struct {
	HorizonMonths int
	Beta          float64
	TStat         float64
	PValue        float64
	R2            float64
	AdjR2         float64
	N             int
}

// PredictiveRegression regresses the forward h-month return on the current
// score: return(t, t+h) = alpha + beta * score(t). Returns at the end of the
// sample that have no h-month forward window are dropped.
func PredictiveRegression(score, forwardReturn []float64, horizonMonths int) (*PredictiveResult, error) {
	if len(score) != len(forwardReturn) {
		return nil, ErrLengthMismatch
	}

	fit, err := OLS(forwardReturn, score)
	if err != nil {
		return nil, err
	}

	return &PredictiveResult{
		HorizonMonths: horizonMonths,
		Beta:          fit.Coef[1],
		TStat:         fit.TStat[1],
		PValue:        fit.PValue(1),
		R2:            fit.R2,
		AdjR2:         fit.AdjR2,
		N:             fit.N,
	}, nil
}

// ForwardReturn computes the forward h-period cumulative return of a price
// series in percent. The last h entries are NaN.
func ForwardReturn(prices []float64, horizon int) []float64 {
	out := make([]float64, len(prices))
	for idx := range prices {
		if idx+horizon >= len(prices) || math.IsNaN(prices[idx]) ||
			math.IsNaN(prices[idx+horizon]) || prices[idx] == 0 {
			out[idx] = math.NaN()
			continue
		}
		out[idx] = (prices[idx+horizon]/prices[idx] - 1) * 100
	}
	return out
}

// Lagged returns a copy of the series shifted forward by lag positions; the
// first lag entries are NaN
func Lagged(series []float64, lag int) []float64 {
	out := make([]float64, len(series))
	for idx := range out {
		if idx < lag {
			out[idx] = math.NaN()
			continue
		}
		out[idx] = series[idx-lag]
	}
	return out
}
