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
	"github.com/spf13/viper"

	"github.com/bubble-watch/fbd-api/bubble"
	"github.com/bubble-watch/fbd-api/common"
	"github.com/bubble-watch/fbd-api/data"
	"github.com/bubble-watch/fbd-api/reports"
)

var scoreTolerance float64

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().Float64Var(&scoreTolerance, "tolerance", 0.01, "relative tolerance when checking stored scores")
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute the bubble risk score series for the China dataset",
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		outDir := common.EnsureOutputDir()
		verifyManifest()

		df := loadChina()
		model := bubble.DefaultModel()
		scores := model.ScoreFrame(df)

		if !model.VerifyStored(df, scores, scoreTolerance) {
			log.Warn().Msg("recomputed scores deviate from stored scores beyond tolerance")
		}

		// current state summary
		last := scores.Len() - 1
		card := model.Score(df.Row(last))
		fmt.Printf("As of %s: Bubble Risk Score %.2f (%s)\n\n",
			df.Dates[last].Format("2006-01-02"), card.Composite, card.Level)

		rows := make([][]string, 0, len(model.Categories))
		for _, cat := range model.Categories {
			rows = append(rows, []string{
				cat.Name,
				fmt.Sprintf("%.1f", card.Category[cat.Name]),
				fmt.Sprintf("%.0f%%", cat.Weight*100),
				fmt.Sprintf("%.2f", card.Contribution[cat.Name]),
			})
		}
		reports.RenderTable([]string{"Category", "Score", "Weight", "Contribution"}, rows)

		composite := scores.Col(data.ColBubbleRiskScore)
		reports.Sparkline(composite, "Bubble Risk Score")

		categoryCols := scores.Select(
			data.ColValuationScore, data.ColMomentumScore, data.ColCreditScore,
			data.ColEconomyScore, data.ColSentimentScore,
		)

		// composite dynamics: smoothed level, momentum, acceleration
		dynamics := bubble.ComputeCompositeSeries(categoryCols, model.ColumnWeights())
		fmt.Printf("\nComposite momentum %+.2f, acceleration %+.2f (3-month smoothed)\n",
			dynamics.Momentum[last], dynamics.Acceleration[last])

		// early warning off the expanding percentile ranks of the category
		// scores; acceleration/reversal signals come off the rank composite
		ranks := bubble.PercentileRanks(categoryCols, 12, nil)
		rankRow := ranks.Row(last)
		rankVals := make([]float64, 0, len(rankRow))
		for _, v := range rankRow {
			rankVals = append(rankVals, v)
		}
		warning := bubble.WarningIndex(rankVals)
		rankDynamics := bubble.ComputeCompositeSeries(ranks, model.ColumnWeights())
		warning.AttachDynamics(rankDynamics.Smooth[last], rankDynamics.Acceleration[last])
		fmt.Printf("Early warning index: %.2f (%s)\n", warning.Index, warning.Level)
		if warning.Accelerating {
			fmt.Println("Risk is elevated and still accelerating")
		}
		if warning.Reversal {
			fmt.Println("A stretched risk reading has started to roll over")
		}

		// derived market indicators off the index level
		market := df.Select(data.ColSSEC)
		derived := bubble.DerivedIndicators(market, 12)

		growth := bubble.CheckExpGrowth(df.Col(data.ColSSEC))
		if growth.IsExponential {
			fmt.Printf("Exponential price growth detected: %.1f%%/yr trend (R2 %.2f)\n",
				growth.Slope*12*100, growth.R2)
		}

		spans := bubble.RegimeSeries(df, composite,
			derived.Col(bubble.ColYoYGrowth), df.Col(data.ColVolatility))
		current := spans[len(spans)-1]
		fmt.Printf("Market regime: %s (%d months, since %s)\n",
			current.Regime, current.Months, df.Dates[current.Start].Format("2006-01"))

		if err := reports.WriteFrameCSV(scores, common.DateIdx, filepath.Join(outDir, "bubble_scores.csv")); err != nil {
			log.Fatal().Err(err).Msg("could not write score csv")
		}

		derived = derived.Insert("Score_Momentum", dynamics.Momentum).
			Insert("Score_Acceleration", dynamics.Acceleration)
		if err := reports.WriteFrameCSV(derived, common.DateIdx, filepath.Join(outDir, "derived_indicators.csv")); err != nil {
			log.Fatal().Err(err).Msg("could not write derived indicator csv")
		}

		if err := reports.ScoreChart(scores.Dates, composite, "China Bubble Risk Score",
			filepath.Join(outDir, "bubble_scores.png")); err != nil {
			log.Fatal().Err(err).Msg("could not render score chart")
		}

		categoryVals := make([]float64, 0, len(model.Categories))
		for _, name := range model.CategoryNames() {
			categoryVals = append(categoryVals, card.Category[name])
		}
		if err := reports.CategoryBars(model.CategoryNames(), categoryVals, "Category Risk Scores",
			filepath.Join(outDir, "category_scores.png")); err != nil {
			log.Fatal().Err(err).Msg("could not render category chart")
		}

		log.Info().Str("OutputDir", viper.GetString("output.dir")).Msg("score analysis complete")
	},
}
