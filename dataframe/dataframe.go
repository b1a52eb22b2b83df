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

package dataframe

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
)

// ColIndex gets the index of the specified column; returns -1 if column doesn't exist
func (df *DataFrame) ColIndex(colName string) int {
	for idx, val := range df.ColNames {
		if colName == val {
			return idx
		}
	}

	return -1
}

// ColCount returns the number of columns in the dataframe
func (df *DataFrame) ColCount() int {
	return len(df.ColNames)
}

// Col returns the value slice for the named column, or nil if it doesn't exist
func (df *DataFrame) Col(colName string) []float64 {
	colIdx := df.ColIndex(colName)
	if colIdx == -1 {
		return nil
	}
	return df.Vals[colIdx]
}

// Copy creates a copy of the dataframe
func (df *DataFrame) Copy() *DataFrame {
	df2 := &DataFrame{
		ColNames: make([]string, len(df.ColNames)),
		Dates:    make([]time.Time, len(df.Dates)),
		Vals:     make([][]float64, len(df.Vals)),
	}

	copy(df2.ColNames, df.ColNames)
	copy(df2.Dates, df.Dates)

	for idx := range df2.Vals {
		df2.Vals[idx] = make([]float64, len(df.Vals[idx]))
		copy(df2.Vals[idx], df.Vals[idx])
	}

	return df2
}

// Drop removes rows that contain the value `val` in any column from the dataframe
func (df *DataFrame) Drop(val float64) *DataFrame {
	isNA := math.IsNaN(val)
	newVals := make([][]float64, len(df.Vals))
	newDates := make([]time.Time, 0, len(df.Dates))

	for idx, rowDate := range df.Dates {
		keep := true
		for _, col := range df.Vals {
			rowVal := col[idx]
			keep = keep && !(rowVal == val || (isNA && math.IsNaN(rowVal)))
			if !keep {
				break
			}
		}

		if keep {
			newDates = append(newDates, rowDate)
			for colIdx, col := range df.Vals {
				rowVal := col[idx]
				newVals[colIdx] = append(newVals[colIdx], rowVal)
			}
		}
	}

	df.Vals = newVals
	df.Dates = newDates
	return df
}

// End returns the last date in the DataFrame
func (df *DataFrame) End() time.Time {
	if len(df.Dates) == 0 {
		return time.Time{}
	}

	return df.Dates[len(df.Dates)-1]
}

// ForEach takes a lambda function of prototype func(rowIdx int, rowDate time.Time, vals map[string]float64) map[string]float64
// and updates the row with the returned values; columns not present in the returned map are left unchanged
func (df *DataFrame) ForEach(lambda func(int, time.Time, map[string]float64) map[string]float64) {
	colMap := make(map[string]int, len(df.ColNames))
	for colIdx, colName := range df.ColNames {
		colMap[colName] = colIdx
	}

	res := make(map[string]float64, len(df.ColNames))
	for idx, rowDate := range df.Dates {
		for colIdx, colName := range df.ColNames {
			res[colName] = df.Vals[colIdx][idx]
		}
		ret := lambda(idx, rowDate, res)
		for colName, val := range ret {
			if colIdx, ok := colMap[colName]; ok {
				df.Vals[colIdx][idx] = val
			}
		}
	}
}

// Row returns the values of row `idx` keyed by column name
func (df *DataFrame) Row(idx int) map[string]float64 {
	row := make(map[string]float64, len(df.ColNames))
	for colIdx, colName := range df.ColNames {
		row[colName] = df.Vals[colIdx][idx]
	}
	return row
}

// Insert a new column to the end of the dataframe
func (df *DataFrame) Insert(name string, col []float64) *DataFrame {
	if len(df.Dates) != len(col) {
		log.Panic().Int("NumRows", len(df.Dates)).Int("LenCol", len(col)).Msg("column length must equal number of rows")
	}
	df.ColNames = append(df.ColNames, name)
	df.Vals = append(df.Vals, col)
	return df
}

// InsertMap adds a new row to the dataframe. Date must be after the last date in the dataframe otherwise panic.
// all columns must already exist in the dataframe, any additional columns in vals are ignored
func (df *DataFrame) InsertMap(date time.Time, vals map[string]float64) *DataFrame {
	if len(df.Dates) != 0 {
		last := df.Dates[len(df.Dates)-1]
		if !last.Before(date) {
			log.Panic().Time("lastDate", last).Time("newDate", date).Msg("newDate must be after lastDate")
		}
	}

	df.Dates = append(df.Dates, date)
	for colIdx, colName := range df.ColNames {
		if val, ok := vals[colName]; ok {
			df.Vals[colIdx] = append(df.Vals[colIdx], val)
		} else {
			df.Vals[colIdx] = append(df.Vals[colIdx], math.NaN())
		}
	}

	return df
}

// Lag shifts the dataframe by the specified number of rows, replacing shifted values by math.NaN() and returns a new dataframe
func (df *DataFrame) Lag(n int) *DataFrame {
	df = df.Copy()
	prepend := make([]float64, n)
	for idx := range prepend {
		prepend[idx] = math.NaN()
	}

	for idx := range df.Vals {
		l := len(df.Vals[idx])
		df.Vals[idx] = append(prepend, df.Vals[idx]...)[:l] //nolint:makezero
	}
	return df
}

// Last returns a new dataframe with only the last item of the current dataframe
func (df *DataFrame) Last() *DataFrame {
	if df.Len() == 0 {
		return df
	}

	lastVals := make([][]float64, len(df.ColNames))
	lastRow := len(df.Dates) - 1
	for idx, col := range df.Vals {
		lastVals[idx] = []float64{col[lastRow]}
	}

	newDf := &DataFrame{
		ColNames: df.ColNames,
		Dates:    []time.Time{df.Dates[lastRow]},
		Vals:     lastVals,
	}

	return newDf
}

// Len returns the number of rows in the dataframe
func (df *DataFrame) Len() int {
	return len(df.Dates)
}

// Select returns a new dataframe containing only the requested columns;
// columns that do not exist are skipped
func (df *DataFrame) Select(columns ...string) *DataFrame {
	newDf := &DataFrame{
		Dates:    df.Dates,
		ColNames: []string{},
		Vals:     [][]float64{},
	}

	for _, col := range columns {
		colIdx := df.ColIndex(col)
		if colIdx == -1 {
			continue
		}
		newDf.ColNames = append(newDf.ColNames, col)
		newDf.Vals = append(newDf.Vals, df.Vals[colIdx])
	}

	return newDf
}

// Start returns the first date of the dataframe
func (df *DataFrame) Start() time.Time {
	if len(df.Dates) == 0 {
		return time.Time{}
	}

	return df.Dates[0]
}

// Table prints an ASCII formatted table to stdout
func (df *DataFrame) Table() string {
	if len(df.Dates) == 0 {
		return "<NO DATA>" // nothing to do as there is no data available in the dataframe
	}

	// construct table header
	tableCols := append([]string{"Date"}, df.ColNames...)

	// initialize table
	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader(tableCols)
	footer := make([]string, len(tableCols))
	footer[0] = "Num Rows"
	footer[1] = fmt.Sprintf("%d", df.Len())
	table.SetFooter(footer)
	table.SetBorder(false) // Set Border to false

	for idx, rowDate := range df.Dates {
		row := make([]string, 0, len(df.Vals)+1)
		row = append(row, rowDate.Format("2006-01-02"))

		for _, col := range df.Vals {
			row = append(row, fmt.Sprintf("%.4f", col[idx]))
		}

		table.Append(row)
	}

	table.Render()
	return s.String()
}

// Trim the dataframe to the specified date range (inclusive)
func (df *DataFrame) Trim(begin, end time.Time) *DataFrame {
	df2 := &DataFrame{
		ColNames: df.ColNames,
		Dates:    df.Dates,
		Vals:     df.Vals,
	}

	// special case 0: requested range is invalid
	if end.Before(begin) {
		df2.Dates = []time.Time{}
		df2.Vals = make([][]float64, len(df.Vals))
		return df2
	}

	// special case 1: data frame is empty
	if df.Len() == 0 {
		return df2
	}

	// special case 2: requested range does not overlap with the dataframe
	if end.Before(df.Dates[0]) || begin.After(df.Dates[len(df.Dates)-1]) {
		df2.Dates = []time.Time{}
		df2.Vals = make([][]float64, len(df.Vals))
		return df2
	}

	// Use binary search to find the index corresponding to the start and end times
	beginIdx := sort.Search(len(df.Dates), func(i int) bool {
		idxVal := df.Dates[i]
		return (idxVal.After(begin) || idxVal.Equal(begin))
	})

	endIdx := sort.Search(len(df.Dates), func(i int) bool {
		idxVal := df.Dates[i]
		return (idxVal.After(end) || idxVal.Equal(end))
	})

	if endIdx != len(df.Dates) && (df.Dates[endIdx].Equal(end) || df.Dates[endIdx].Before(end)) {
		endIdx++
	}

	df2.Dates = df.Dates[beginIdx:endIdx]
	df2.Vals = make([][]float64, len(df.Vals))
	for colIdx, col := range df.Vals {
		df2.Vals[colIdx] = col[beginIdx:endIdx]
	}

	return df2
}

// Frequency returns a data frame filtered to the requested frequency; note this is not
// an in-place function but creates a copy of the data. Monthly keeps the last
// observation of each month; Annually the last observation of each year.
func (df *DataFrame) Frequency(frequency Frequency) *DataFrame {
	keep := make([]bool, df.Len())

	switch frequency {
	case Daily:
		for idx := range keep {
			keep[idx] = true
		}
	case Monthly:
		for idx, dt := range df.Dates {
			if idx == len(df.Dates)-1 {
				keep[idx] = true
				continue
			}
			next := df.Dates[idx+1]
			keep[idx] = next.Month() != dt.Month() || next.Year() != dt.Year()
		}
	case Annually:
		for idx, dt := range df.Dates {
			if idx == len(df.Dates)-1 {
				keep[idx] = true
				continue
			}
			keep[idx] = df.Dates[idx+1].Year() != dt.Year()
		}
	default:
		log.Panic().Str("Frequency", string(frequency)).Msg("unknown frequency provided to dataframe frequency function")
	}

	newDates := make([]time.Time, 0, df.Len())
	newVals := make([][]float64, len(df.ColNames))
	for idx, dt := range df.Dates {
		if keep[idx] {
			newDates = append(newDates, dt)
			for colIdx := range newVals {
				newVals[colIdx] = append(newVals[colIdx], df.Vals[colIdx][idx])
			}
		}
	}

	return &DataFrame{
		Dates:    newDates,
		ColNames: df.ColNames,
		Vals:     newVals,
	}
}
