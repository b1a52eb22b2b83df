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
	rootCmd.AddCommand(robustnessCmd)
}

var robustnessCmd = &cobra.Command{
	Use:   "robustness",
	Short: "Recompute the composite score under alternative specifications",
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		outDir := common.EnsureOutputDir()

		specs := bubble.Specifications()
		summary := bubble.Summarize(specs)

		rows := make([][]string, 0, len(specs))
		for _, spec := range specs {
			rows = append(rows, []string{
				spec.Name,
				fmt.Sprintf("%.2f", spec.Composite()),
				fmt.Sprintf("%.2f", spec.PredictiveR2),
				spec.Description,
			})
		}
		reports.RenderTable([]string{"Specification", "Score", "6m R2", "Description"}, rows)

		fmt.Printf("\nScore range across specifications: %.2f (min %.2f, max %.2f, avg %.2f)\n",
			summary.Range, summary.Min, summary.Max, summary.Avg)
		if summary.Stable {
			fmt.Println("Conclusion: the composite is robust to the specification choice")
		} else {
			fmt.Println("Conclusion: the composite is sensitive to the specification choice")
		}

		if err := reports.WriteCSV(filepath.Join(outDir, "robustness.csv"),
			[]string{"specification", "score", "predictive_r2", "description"}, rows); err != nil {
			log.Fatal().Err(err).Msg("could not write robustness csv")
		}

		if err := reports.WriteLatex(filepath.Join(outDir, "robustness.tex"),
			reports.RobustnessLatex(specs, summary)); err != nil {
			log.Fatal().Err(err).Msg("could not write robustness latex")
		}

		if err := reports.SaveJSON(filepath.Join(outDir, "robustness.json"), map[string]any{
			"specifications": specs,
			"summary":        summary,
		}); err != nil {
			log.Fatal().Err(err).Msg("could not write robustness json")
		}
	},
}
