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
	"math"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Risk band boundaries drawn as gridlines on score charts
var riskBands = []float64{20, 35, 50, 65, 80}

// dropNaN filters out points whose value is NaN; go-chart cannot render them
func dropNaN(dates []time.Time, values []float64) ([]time.Time, []float64) {
	outDates := make([]time.Time, 0, len(dates))
	outValues := make([]float64, 0, len(values))
	for idx, v := range values {
		if math.IsNaN(v) {
			continue
		}
		outDates = append(outDates, dates[idx])
		outValues = append(outValues, v)
	}
	return outDates, outValues
}

// ScoreChart renders the composite score time series with the risk band
// boundaries as horizontal gridlines
func ScoreChart(dates []time.Time, scores []float64, title, path string) error {
	xs, ys := dropNaN(dates, scores)
	if len(xs) == 0 {
		return fmt.Errorf("no defined scores to chart")
	}

	gridLines := make([]chart.GridLine, 0, len(riskBands))
	for _, band := range riskBands {
		gridLines = append(gridLines, chart.GridLine{Value: band})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1024,
		Height: 512,
		YAxis: chart.YAxis{
			Name:           "Bubble Risk Score",
			Range:          &chart.ContinuousRange{Min: 0, Max: 100},
			GridMajorStyle: chart.Style{StrokeColor: drawing.ColorFromHex("cccccc"), StrokeWidth: 1},
			GridLines:      gridLines,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Composite",
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
			},
		},
	}

	return renderPNG(&graph, path)
}

// CategoryBars renders the per-category contribution to the composite as a
// bar chart. Categories and values share an index.
func CategoryBars(categories []string, values []float64, title, path string) error {
	bars := make([]chart.Value, 0, len(categories))
	for idx, name := range categories {
		val := values[idx]
		if math.IsNaN(val) {
			val = 0
		}
		bars = append(bars, chart.Value{Label: name, Value: val})
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    1024,
		Height:   512,
		BarWidth: 80,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}

	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create chart file: %w", err)
	}
	defer fh.Close()

	if err := graph.Render(chart.PNG, fh); err != nil {
		return fmt.Errorf("could not render chart: %w", err)
	}

	log.Info().Str("FileName", path).Msg("wrote chart")
	return nil
}

// ComparisonChart overlays two market series on one time axis
func ComparisonChart(dates []time.Time, first, second []float64, firstName, secondName, title, path string) error {
	firstX, firstY := dropNaN(dates, first)
	secondX, secondY := dropNaN(dates, second)

	graph := chart.Chart{
		Title:  title,
		Width:  1024,
		Height: 512,
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    firstName,
				XValues: firstX,
				YValues: firstY,
				Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2},
			},
			chart.TimeSeries{
				Name:    secondName,
				XValues: secondX,
				YValues: secondY,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(&graph, path)
}

func renderPNG(graph *chart.Chart, path string) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create chart file: %w", err)
	}
	defer fh.Close()

	if err := graph.Render(chart.PNG, fh); err != nil {
		return fmt.Errorf("could not render chart: %w", err)
	}

	log.Info().Str("FileName", path).Msg("wrote chart")
	return nil
}
