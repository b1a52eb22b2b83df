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
	"math"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bubble-watch/fbd-api/common"
	"github.com/bubble-watch/fbd-api/data"
	"github.com/bubble-watch/fbd-api/dataframe"
	"github.com/bubble-watch/fbd-api/reports"
)

func init() {
	rootCmd.AddCommand(compareCmd)
}

// compareMetrics lists the indicators present in both datasets, with the
// direction a lower Chinese reading should be interpreted in
var compareMetrics = []struct {
	column  string
	label   string
	cheaper string
	format  string
}{
	{data.ColPERatio, "P/E Ratio", "discount", "%.1f"},
	{data.ColCAPE, "CAPE", "discount", "%.1f"},
	{data.ColPBRatio, "P/B Ratio", "discount", "%.2f"},
	{data.ColDividendYield, "Dividend Yield", "premium", "%.3f"},
	{data.ColGDPGrowth, "GDP Growth", "premium", "%.1f"},
	{data.ColCPI, "CPI", "", "%.3f"},
	{data.ColUnemployment, "Unemployment", "", "%.1f"},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare Chinese and US market conditions",
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		outDir := common.EnsureOutputDir()
		verifyManifest()

		china := loadChina()
		usa := loadUsa()

		chinaLast := china.Row(china.Len() - 1)
		usaLast := usa.Row(usa.Len() - 1)

		rows := make([][]string, 0, len(compareMetrics)+1)
		csvRows := make([][]string, 0, len(compareMetrics)+1)
		for _, metric := range compareMetrics {
			cn := chinaLast[metric.column]
			us := usaLast[metric.column]

			gap := ""
			if !math.IsNaN(cn) && !math.IsNaN(us) && us != 0 && metric.cheaper != "" {
				pct := (cn/us - 1) * 100
				gap = fmt.Sprintf("%+.0f%% (%s)", pct, metric.cheaper)
			}

			rows = append(rows, []string{
				metric.label,
				fmt.Sprintf(metric.format, cn),
				fmt.Sprintf(metric.format, us),
				gap,
			})
			csvRows = append(csvRows, []string{
				metric.column,
				reports.FormatCell(cn),
				reports.FormatCell(us),
			})
		}

		// the Buffett indicator and market-cap/GDP measure the same thing
		// under different column names
		cnCap := chinaLast[data.ColMarketCapGDP]
		usCap := usaLast[data.ColBuffettIndicator]
		rows = append(rows, []string{
			"Market Cap / GDP",
			fmt.Sprintf("%.2f", cnCap),
			fmt.Sprintf("%.2f", usCap),
			fmt.Sprintf("%+.0f%% (discount)", (cnCap/usCap-1)*100),
		})
		csvRows = append(csvRows, []string{
			"Market_Cap_GDP",
			reports.FormatCell(cnCap),
			reports.FormatCell(usCap),
		})

		fmt.Printf("China (%s) vs USA (%s):\n",
			china.End().Format("2006-01-02"), usa.End().Format("2006-01-02"))
		reports.RenderTable([]string{"Metric", "China", "USA", "Gap"}, rows)

		if err := reports.WriteCSV(filepath.Join(outDir, "comparison.csv"),
			[]string{"metric", "china", "usa"}, csvRows); err != nil {
			log.Fatal().Err(err).Msg("could not write comparison csv")
		}

		// valuation panel over the overlapping sample
		chinaPE := china.Select(data.ColPERatio)
		usaPE := usa.Select(data.ColPERatio)
		begin := chinaPE.Start()
		if usaPE.Start().After(begin) {
			begin = usaPE.Start()
		}
		chinaPE = chinaPE.Trim(begin, chinaPE.End())
		usaPE = usaPE.Trim(begin, usaPE.End())

		if err := reports.ComparisonChart(chinaPE.Dates,
			chinaPE.Col(data.ColPERatio), alignTo(chinaPE, usaPE, data.ColPERatio),
			"China P/E", "USA P/E", "Valuation Comparison",
			filepath.Join(outDir, "comparison.png")); err != nil {
			log.Fatal().Err(err).Msg("could not render comparison chart")
		}
	},
}

// alignTo resamples a column of other onto the date index of base, taking
// the most recent observation at or before each base date
func alignTo(base, other *dataframe.DataFrame, column string) []float64 {
	vals := other.Col(column)
	out := make([]float64, len(base.Dates))

	cursor := 0
	for idx, date := range base.Dates {
		for cursor < len(other.Dates) && !other.Dates[cursor].After(date) {
			cursor++
		}
		if cursor == 0 {
			out[idx] = math.NaN()
			continue
		}
		out[idx] = vals[cursor-1]
	}
	return out
}
