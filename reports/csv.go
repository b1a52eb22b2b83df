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

// Package reports renders analysis results as CSV, LaTeX, JSON, PNG charts,
// and terminal tables.
package reports

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/bubble-watch/fbd-api/dataframe"
)

// WriteCSV writes a header row followed by the data rows to path
func WriteCSV(path string, header []string, rows [][]string) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create csv file: %w", err)
	}
	defer fh.Close()

	w := csv.NewWriter(fh)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()

	log.Info().Str("FileName", path).Int("NumRows", len(rows)).Msg("wrote csv report")
	return w.Error()
}

// WriteFrameCSV writes a dataframe to a CSV file with the date index as the
// first column. NaN cells are written empty.
func WriteFrameCSV(df *dataframe.DataFrame, dateColumn, path string) error {
	header := append([]string{dateColumn}, df.ColNames...)
	rows := make([][]string, 0, df.Len())

	for rowIdx, date := range df.Dates {
		row := make([]string, 0, len(header))
		row = append(row, date.Format("2006-01-02"))
		for colIdx := range df.ColNames {
			row = append(row, FormatCell(df.Vals[colIdx][rowIdx]))
		}
		rows = append(rows, row)
	}

	return WriteCSV(path, header, rows)
}

// FormatCell renders a float for CSV output; NaN becomes the empty string
func FormatCell(val float64) string {
	if math.IsNaN(val) {
		return ""
	}
	return strconv.FormatFloat(val, 'f', 4, 64)
}
