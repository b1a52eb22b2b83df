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

package data

// Column headers shared by the bundled datasets. Macro release series (GDP,
// CPI, PMI, debt ratios) are published monthly or quarterly and forward-filled
// over the daily/monthly market rows.
const (
	ColSSEC                = "SSE_Composite"
	ColCSI300              = "CSI_300"
	ColSPX                 = "SPX"
	ColVIX                 = "VIX"
	ColPERatio             = "PE_Ratio"
	ColPBRatio             = "PB_Ratio"
	ColCAPE                = "CAPE"
	ColDividendYield       = "Dividend_Yield"
	ColMarketCapGDP        = "Market_Cap_GDP"
	ColYTDReturn           = "YTD_Return"
	ColRSI                 = "RSI"
	ColVolatility          = "Volatility"
	ColMarginBalance       = "Margin_Balance"
	ColTotalDebtGDP        = "Total_Debt_GDP"
	ColTSFGrowth           = "TSF_Growth"
	ColCreditImpulse       = "Credit_Impulse"
	ColGDPGrowth           = "GDP_Growth"
	ColCPI                 = "CPI"
	ColPMI                 = "PMI"
	ColUnemployment        = "Unemployment"
	ColRetailParticipation = "Retail_Participation"
	ColNorthboundFlow      = "Northbound_Flow"
	ColForeignOwnership    = "Foreign_Ownership"
	ColBuffettIndicator    = "Buffett_Indicator"

	ColValuationScore  = "Valuation_Score"
	ColMomentumScore   = "Momentum_Score"
	ColCreditScore     = "Credit_Score"
	ColEconomyScore    = "Economy_Score"
	ColSentimentScore  = "Sentiment_Score"
	ColBubbleRiskScore = "Bubble_Risk_Score"
)

// ChinaFileName and UsaFileName are the bundled dataset files, resolved
// against the configured data directory.
const (
	ChinaFileName    = "china_market.csv"
	UsaFileName      = "usa_market.csv"
	ManifestFileName = "manifest.json"
)

// ChinaSchema describes the Chinese equity market dataset
func ChinaSchema() *Schema {
	return &Schema{
		Name:       "china",
		DateColumn: "Date",
		DateFormat: "2006-01-02",
		Columns: []ColumnSpec{
			{Name: ColSSEC, Required: true},
			{Name: ColCSI300, Required: true},
			{Name: ColPERatio, Required: true},
			{Name: ColPBRatio, Required: true},
			{Name: ColCAPE, Required: true},
			{Name: ColDividendYield, Required: true},
			{Name: ColMarketCapGDP, Required: true, ForwardFill: true},
			{Name: ColYTDReturn, Required: true},
			{Name: ColRSI, Required: true},
			{Name: ColVolatility, Required: true},
			{Name: ColMarginBalance, Required: true},
			{Name: ColTotalDebtGDP, Required: true, ForwardFill: true},
			{Name: ColTSFGrowth, Required: true, ForwardFill: true},
			{Name: ColCreditImpulse, Required: true, ForwardFill: true},
			{Name: ColGDPGrowth, Required: true, ForwardFill: true},
			{Name: ColCPI, Required: true, ForwardFill: true},
			{Name: ColPMI, Required: true, ForwardFill: true},
			{Name: ColUnemployment, Required: true, ForwardFill: true},
			{Name: ColRetailParticipation, Required: true, ForwardFill: true},
			{Name: ColNorthboundFlow, Required: true},
			{Name: ColForeignOwnership, Required: true, ForwardFill: true},
			{Name: ColValuationScore},
			{Name: ColMomentumScore},
			{Name: ColCreditScore},
			{Name: ColEconomyScore},
			{Name: ColSentimentScore},
			{Name: ColBubbleRiskScore},
		},
	}
}

// UsaSchema describes the US equity market dataset
func UsaSchema() *Schema {
	return &Schema{
		Name:       "usa",
		DateColumn: "Date",
		DateFormat: "2006-01-02",
		Columns: []ColumnSpec{
			{Name: ColSPX, Required: true},
			{Name: ColVIX, Required: true},
			{Name: ColPERatio, Required: true},
			{Name: ColPBRatio, Required: true},
			{Name: ColCAPE, Required: true},
			{Name: ColDividendYield, Required: true},
			{Name: ColBuffettIndicator, Required: true, ForwardFill: true},
			{Name: ColGDPGrowth, Required: true, ForwardFill: true},
			{Name: ColCPI, Required: true, ForwardFill: true},
			{Name: ColUnemployment, Required: true, ForwardFill: true},
			{Name: ColBubbleRiskScore},
		},
	}
}
