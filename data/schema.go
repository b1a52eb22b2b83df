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

// ColumnSpec describes one column of a market dataset
type ColumnSpec struct {
	// Name is the CSV header of the column
	Name string

	// Required columns cause a load failure when absent
	Required bool

	// ForwardFill marks lower-frequency release series whose last known value
	// is propagated across all rows until the next release
	ForwardFill bool
}

// Schema describes the tabular layout of a market dataset
type Schema struct {
	// Name of the dataset, used in log and error messages
	Name string

	// DateColumn is the header of the observation-date column
	DateColumn string

	// DateFormat is the time layout dates are stored in
	DateFormat string

	Columns []ColumnSpec
}

// Column returns the spec for the named column, or nil if it is not part of
// the schema
func (s *Schema) Column(name string) *ColumnSpec {
	for idx := range s.Columns {
		if s.Columns[idx].Name == name {
			return &s.Columns[idx]
		}
	}
	return nil
}

// RequiredColumns lists the headers of all required columns
func (s *Schema) RequiredColumns() []string {
	cols := make([]string, 0, len(s.Columns))
	for _, col := range s.Columns {
		if col.Required {
			cols = append(cols, col.Name)
		}
	}
	return cols
}
