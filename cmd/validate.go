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
	"github.com/bubble-watch/fbd-api/data"
	"github.com/bubble-watch/fbd-api/reports"
	"github.com/bubble-watch/fbd-api/stats"
)

// Lag and horizon grid of the validation analysis, in months
var validationHorizons = []int{1, 3, 6, 12}

var (
	forecastOrder     int
	forecastTrainFrac float64
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().IntVar(&forecastOrder, "forecast-order", 3, "autoregressive order of the out-of-sample forecast")
	validateCmd.Flags().Float64Var(&forecastTrainFrac, "train-frac", 0.7, "fraction of the sample used as the initial training window")
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run the statistical validation of the risk score",
	Long:  `Granger causality tests, predictive regressions, out-of-sample forecast accuracy, and event classification metrics for the bubble risk score.`,
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		outDir := common.EnsureOutputDir()
		verifyManifest()

		df := loadChina()
		model := bubble.DefaultModel()
		scores := model.ScoreFrame(df)

		composite := scores.Col(data.ColBubbleRiskScore)
		prices := df.Col(data.ColSSEC)
		returns := df.Select(data.ColSSEC).PctChange(1).Col(data.ColSSEC)

		// Granger causality: does the score lead returns?
		granger, err := stats.GrangerAtLags(composite, returns, validationHorizons)
		if err != nil {
			log.Fatal().Err(err).Msg("granger test failed")
		}

		grangerRows := make([][]string, 0, len(granger))
		for _, res := range granger {
			grangerRows = append(grangerRows, []string{
				fmt.Sprintf("%d", res.Lag),
				fmt.Sprintf("%.2f", res.F),
				fmt.Sprintf("%.4f", res.PValue),
				fmt.Sprintf("%t", res.Significant),
			})
		}
		fmt.Println("Granger causality (score -> returns):")
		reports.RenderTable([]string{"Lag", "F", "p-value", "Significant (1%)"}, grangerRows)

		// Predictive regressions of forward returns on the score
		regressions := make([]*stats.PredictiveResult, 0, len(validationHorizons))
		regressRows := make([][]string, 0, len(validationHorizons))
		for _, horizon := range validationHorizons {
			forward := stats.ForwardReturn(prices, horizon)
			res, err := stats.PredictiveRegression(composite, forward, horizon)
			if err != nil {
				log.Fatal().Err(err).Int("Horizon", horizon).Msg("predictive regression failed")
			}
			regressions = append(regressions, res)
			regressRows = append(regressRows, []string{
				fmt.Sprintf("%d", res.HorizonMonths),
				fmt.Sprintf("%.2f", res.Beta),
				fmt.Sprintf("%.2f", res.TStat),
				fmt.Sprintf("%.2f", res.R2),
				fmt.Sprintf("%d", res.N),
			})
		}
		fmt.Println("\nPredictive regressions:")
		reports.RenderTable([]string{"Horizon", "Beta", "t-stat", "R2", "N"}, regressRows)

		// Out-of-sample forecast vs naive no-change benchmark
		forecast, err := stats.OOSForecast(composite, forecastOrder, forecastTrainFrac)
		if err != nil {
			log.Fatal().Err(err).Msg("out-of-sample forecast failed")
		}
		fmt.Printf("\nOut-of-sample forecast: MAE %.2f (naive %.2f, %.1f%% improvement), RMSE %.2f (naive %.2f)\n",
			forecast.ModelMAE, forecast.NaiveMAE, forecast.ImprovementPct,
			forecast.ModelRMSE, forecast.NaiveRMSE)

		// Event classification at the bubble threshold
		events := bubble.Events()
		signals := make([]float64, 0, len(events))
		truth := make([]bool, 0, len(events))
		for _, event := range events {
			signals = append(signals, model.Score(event.Indicators).Composite)
			truth = append(truth, event.Bubble)
		}
		confusion := stats.Classify(signals, truth, bubble.RiskThreshold)
		auc := stats.RankAUC(signals, truth)
		fmt.Printf("\nEvent classification at threshold %.0f: accuracy %.0f%%, sensitivity %.2f, specificity %.2f, AUC %.2f\n",
			bubble.RiskThreshold, confusion.Accuracy()*100, confusion.Sensitivity(), confusion.Specificity(), auc)

		if err := reports.WriteCSV(filepath.Join(outDir, "granger.csv"),
			[]string{"lag", "f", "p_value", "significant"}, grangerRows); err != nil {
			log.Fatal().Err(err).Msg("could not write granger csv")
		}

		if err := reports.WriteLatex(filepath.Join(outDir, "validation.tex"),
			reports.GrangerLatex(granger), reports.RegressionLatex(regressions)); err != nil {
			log.Fatal().Err(err).Msg("could not write validation latex")
		}

		summary := map[string]any{
			"granger":     granger,
			"regressions": regressions,
			"forecast":    forecast,
			"classification": map[string]any{
				"confusion":   confusion,
				"accuracy":    confusion.Accuracy(),
				"sensitivity": confusion.Sensitivity(),
				"specificity": confusion.Specificity(),
				"auc":         auc,
			},
		}
		if err := reports.SaveJSON(filepath.Join(outDir, "validation.json"), summary); err != nil {
			log.Fatal().Err(err).Msg("could not write validation json")
		}
	},
}
