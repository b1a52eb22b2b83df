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

package reports

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/bubble-watch/fbd-api/bubble"
	"github.com/bubble-watch/fbd-api/stats"
)

// LatexTable renders a booktabs-style table environment
func LatexTable(caption, label, colSpec string, header []string, rows [][]string) string {
	var sb strings.Builder

	sb.WriteString("\\begin{table}[htbp]\n\\centering\n")
	fmt.Fprintf(&sb, "\\caption{%s}\n\\label{%s}\n", caption, label)
	fmt.Fprintf(&sb, "\\begin{tabular}{%s}\n\\toprule\n", colSpec)
	sb.WriteString(strings.Join(header, " & "))
	sb.WriteString(" \\\\\n\\midrule\n")
	for _, row := range rows {
		sb.WriteString(strings.Join(row, " & "))
		sb.WriteString(" \\\\\n")
	}
	sb.WriteString("\\bottomrule\n\\end{tabular}\n\\end{table}\n")

	return sb.String()
}

// BenchmarkLatex renders the method comparison table
func BenchmarkLatex(results []bubble.MethodResult) string {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, []string{
			res.Method.Name,
			fmt.Sprintf("%d/%d", res.Correct, res.Total),
			fmt.Sprintf("%.0f\\%%", res.Accuracy),
			res.Method.FalsePositives,
		})
	}

	return LatexTable(
		"Detection accuracy over historical market episodes",
		"tab:benchmark", "lccc",
		[]string{"Method", "Correct", "Accuracy", "False Positives"},
		rows)
}

// GrangerLatex renders the Granger causality table
func GrangerLatex(results []*stats.GrangerResult) string {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		sig := ""
		if res.Significant {
			sig = "***"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", res.Lag),
			fmt.Sprintf("%.2f%s", res.F, sig),
			fmt.Sprintf("%.4f", res.PValue),
			fmt.Sprintf("(%d, %d)", res.NumDF, res.DenomDF),
		})
	}

	return LatexTable(
		"Granger causality of the risk score for market returns",
		"tab:granger", "cccc",
		[]string{"Lag (months)", "F-statistic", "p-value", "d.f."},
		rows)
}

// RegressionLatex renders the predictive regression table
func RegressionLatex(results []*stats.PredictiveResult) string {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, []string{
			fmt.Sprintf("%d", res.HorizonMonths),
			fmt.Sprintf("%.2f", res.Beta),
			fmt.Sprintf("%.2f", res.TStat),
			fmt.Sprintf("%.4f", res.PValue),
			fmt.Sprintf("%.2f", res.R2),
			fmt.Sprintf("%d", res.N),
		})
	}

	return LatexTable(
		"Predictive regressions of forward returns on the risk score",
		"tab:regression", "cccccc",
		[]string{"Horizon", "$\\beta$", "t-stat", "p-value", "$R^2$", "N"},
		rows)
}

// RobustnessLatex renders the specification comparison table with the
// summary row appended
func RobustnessLatex(specs []bubble.Specification, summary bubble.RobustnessSummary) string {
	rows := make([][]string, 0, len(specs)+1)
	for _, spec := range specs {
		rows = append(rows, []string{
			spec.Name,
			fmt.Sprintf("%.2f", spec.Composite()),
			fmt.Sprintf("%.2f", spec.PredictiveR2),
		})
	}
	rows = append(rows, []string{
		"Range",
		fmt.Sprintf("%.2f", summary.Range),
		"",
	})

	return LatexTable(
		"Composite score under alternative specifications",
		"tab:robustness", "lcc",
		[]string{"Specification", "Score", "6m $R^2$"},
		rows)
}

// WriteLatex writes one or more LaTeX blocks to path, separated by blank
// lines
func WriteLatex(path string, blocks ...string) error {
	content := strings.Join(blocks, "\n")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("could not write latex file: %w", err)
	}

	log.Info().Str("FileName", path).Int("NumTables", len(blocks)).Msg("wrote latex report")
	return nil
}
