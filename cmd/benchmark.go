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

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bubble-watch/fbd-api/bubble"
	"github.com/bubble-watch/fbd-api/common"
	"github.com/bubble-watch/fbd-api/reports"
)

func init() {
	rootCmd.AddCommand(benchmarkCmd)
}

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Compare the risk score against alternative bubble detection methods",
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		outDir := common.EnsureOutputDir()

		model := bubble.DefaultModel()
		results := bubble.Benchmark(model)

		rows := make([][]string, 0, len(results))
		for _, res := range results {
			rows = append(rows, []string{
				res.Method.Name,
				fmt.Sprintf("%d/%d", res.Correct, res.Total),
				fmt.Sprintf("%.0f%%", res.Accuracy),
				res.Method.FalsePositives,
			})
		}
		reports.RenderTable([]string{"Method", "Correct", "Accuracy", "False Positives"}, rows)

		// per-event detail for the composite model
		fmt.Println()
		detail := make([][]string, 0, len(results[0].Results))
		for _, evt := range results[0].Results {
			verdict := "MISS"
			if evt.Correct {
				verdict = "OK"
			}
			detail = append(detail, []string{
				evt.Event.Date,
				evt.Event.Description,
				fmt.Sprintf("%.1f", evt.Signal),
				fmt.Sprintf("%.1f", evt.Event.DocumentedScore),
				verdict,
			})
		}
		reports.RenderTable([]string{"Date", "Episode", "Score", "Published", "Result"}, detail)

		csvRows := make([][]string, 0, len(results))
		for _, res := range results {
			csvRows = append(csvRows, []string{
				res.Method.Name,
				fmt.Sprintf("%d", res.Correct),
				fmt.Sprintf("%d", res.Total),
				fmt.Sprintf("%.1f", res.Accuracy),
				res.Method.FalsePositives,
			})
		}
		if err := reports.WriteCSV(filepath.Join(outDir, "benchmark.csv"),
			[]string{"method", "correct", "total", "accuracy_pct", "false_positives"}, csvRows); err != nil {
			log.Fatal().Err(err).Msg("could not write benchmark csv")
		}

		if err := reports.WriteLatex(filepath.Join(outDir, "benchmark.tex"),
			reports.BenchmarkLatex(results)); err != nil {
			log.Fatal().Err(err).Msg("could not write benchmark latex")
		}

		if err := reports.SaveJSON(filepath.Join(outDir, "benchmark.json"), results); err != nil {
			log.Fatal().Err(err).Msg("could not write benchmark json")
		}
	},
}
