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

package bubble

import "github.com/rs/zerolog/log"

// eventCriteria maps each validation event to the signal range a correct
// method must produce for it. Bubbles demand a strong signal, the 2022
// bottom a weak one, and the corrections a calibrated middle reading.
var eventCriteria = map[string]struct{ lo, hi float64 }{
	"2015_peak":       {70, 100},
	"2018_correction": {40, 60},
	"2021_peak":       {70, 100},
	"2022_bottom":     {0, 40},
	"2025_current":    {30, 50},
}

// EventResult records how one method scored one event
type EventResult struct {
	Event   Event
	Signal  float64
	Correct bool
}

// MethodResult is one method's performance over all validation events
type MethodResult struct {
	Method   Method
	Results  []EventResult
	Correct  int
	Total    int
	Accuracy float64
}

// ModelMethod recomputes the composite model's signal for each event from
// its indicator snapshot and wraps it as a Method for benchmarking
func ModelMethod(m *Model) Method {
	signals := make(map[string]float64, 5)
	for _, event := range Events() {
		card := m.Score(event.Indicators)
		signals[event.Key] = card.Composite
	}

	return Method{
		Name:           "Bubble Risk Score",
		Description:    "Five-category weighted composite",
		FalsePositives: "Low",
		Signals:        signals,
	}
}

// Evaluate scores a method against the per-event criteria
func Evaluate(method Method) MethodResult {
	events := Events()
	res := MethodResult{Method: method, Total: len(events)}

	for _, event := range events {
		crit := eventCriteria[event.Key]
		signal := method.Signals[event.Key]
		correct := signal >= crit.lo && signal <= crit.hi

		if correct {
			res.Correct++
		}
		res.Results = append(res.Results, EventResult{
			Event:   event,
			Signal:  signal,
			Correct: correct,
		})
	}

	res.Accuracy = float64(res.Correct) / float64(res.Total) * 100
	log.Debug().Str("Method", method.Name).Int("Correct", res.Correct).
		Int("Total", res.Total).Msg("evaluated detection method")
	return res
}

// Benchmark evaluates the composite model alongside the alternative
// detection methods, model first
func Benchmark(m *Model) []MethodResult {
	results := []MethodResult{Evaluate(ModelMethod(m))}
	for _, alt := range AlternativeMethods() {
		results = append(results, Evaluate(alt))
	}
	return results
}
