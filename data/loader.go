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

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	rdf "github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/imports"
	"github.com/rs/zerolog/log"

	"github.com/bubble-watch/fbd-api/dataframe"
)

// Load reads the CSV dataset at path, validates it against the schema, and
// returns an in-memory dataframe. Columns flagged ForwardFill in the schema
// have their last released value propagated over missing rows; all other
// missing cells remain NaN.
func Load(path string, schema *Schema) (*dataframe.DataFrame, error) {
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	defer fh.Close()

	dictate := map[string]interface{}{
		schema.DateColumn: imports.Converter{
			ConcreteType: time.Time{},
			ConverterFunc: func(in interface{}) (interface{}, error) {
				return time.Parse(schema.DateFormat, strings.TrimSpace(in.(string)))
			},
		},
	}

	for _, col := range schema.Columns {
		col := col
		dictate[col.Name] = imports.Converter{
			ConcreteType: float64(0),
			ConverterFunc: func(in interface{}) (interface{}, error) {
				raw := strings.TrimSpace(in.(string))
				// empty cells and FRED-style placeholders are missing, not malformed
				if raw == "" || raw == "." || raw == "NA" || raw == "NaN" {
					return math.NaN(), nil
				}
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					if col.Required {
						return nil, fmt.Errorf("%w: column %s value %q", ErrMalformedValue, col.Name, raw)
					}
					return math.NaN(), nil
				}
				return v, nil
			},
		}
	}

	res, err := imports.LoadFromCSV(context.Background(), fh, imports.CSVLoadOptions{
		DictateDataType: dictate,
	})
	if err != nil {
		return nil, fmt.Errorf("could not parse %s dataset: %w", schema.Name, err)
	}

	df, err := convert(res, schema)
	if err != nil {
		return nil, err
	}

	if df.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDataset, path)
	}

	if err := checkDates(df); err != nil {
		return nil, err
	}

	if err := checkRequired(df, schema); err != nil {
		return nil, err
	}

	df = forwardFill(df, schema)

	log.Info().Str("Dataset", schema.Name).Int("NumRows", df.Len()).Int("NumCols", df.ColCount()).
		Time("Begin", df.Start()).Time("End", df.End()).Msg("loaded dataset")

	return df, nil
}

// convert maps the imported dataframe-go table onto the local column-major
// dataframe type
func convert(res *rdf.DataFrame, schema *Schema) (*dataframe.DataFrame, error) {
	var dates []time.Time
	colNames := make([]string, 0, len(res.Series))
	vals := make([][]float64, 0, len(res.Series))

	for _, series := range res.Series {
		name := series.Name()
		nRows := series.NRows()

		if name == schema.DateColumn {
			dates = make([]time.Time, nRows)
			for row := 0; row < nRows; row++ {
				dt, ok := series.Value(row).(time.Time)
				if !ok {
					return nil, fmt.Errorf("%w: row %d", ErrNoDateColumn, row)
				}
				dates[row] = dt
			}
			continue
		}

		// skip columns that are not part of the schema
		if schema.Column(name) == nil {
			log.Debug().Str("Column", name).Str("Dataset", schema.Name).Msg("ignoring column not in schema")
			continue
		}

		col := make([]float64, nRows)
		for row := 0; row < nRows; row++ {
			switch v := series.Value(row).(type) {
			case float64:
				col[row] = v
			case nil:
				col[row] = math.NaN()
			default:
				return nil, fmt.Errorf("%w: column %s row %d", ErrMalformedValue, name, row)
			}
		}

		colNames = append(colNames, name)
		vals = append(vals, col)
	}

	if dates == nil {
		return nil, fmt.Errorf("%w: expected column %s", ErrNoDateColumn, schema.DateColumn)
	}

	return &dataframe.DataFrame{
		Dates:    dates,
		ColNames: colNames,
		Vals:     vals,
	}, nil
}

func checkDates(df *dataframe.DataFrame) error {
	for idx := 1; idx < len(df.Dates); idx++ {
		if !df.Dates[idx-1].Before(df.Dates[idx]) {
			return fmt.Errorf("%w: row %d (%s) >= row %d (%s)", ErrDatesNotSorted,
				idx-1, df.Dates[idx-1].Format("2006-01-02"), idx, df.Dates[idx].Format("2006-01-02"))
		}
	}
	return nil
}

func checkRequired(df *dataframe.DataFrame, schema *Schema) error {
	for _, name := range schema.RequiredColumns() {
		if df.ColIndex(name) == -1 {
			return fmt.Errorf("%w: %s (dataset %s)", ErrMissingColumn, name, schema.Name)
		}
	}
	return nil
}

func forwardFill(df *dataframe.DataFrame, schema *Schema) *dataframe.DataFrame {
	ffill := make([]string, 0, len(schema.Columns))
	for _, col := range schema.Columns {
		if col.ForwardFill && df.ColIndex(col.Name) != -1 {
			ffill = append(ffill, col.Name)
		}
	}

	if len(ffill) == 0 {
		return df
	}

	filled := df.Select(ffill...).ForwardFill()
	for idx, name := range filled.ColNames {
		df.Vals[df.ColIndex(name)] = filled.Vals[idx]
	}

	return df
}
