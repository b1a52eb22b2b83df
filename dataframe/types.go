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
	"errors"
	"time"
)

// DataFrame stores a table of values organized by date
// the vals array is column major - e.g.,
// SSEC   CSI300
// 1      4
// 2      5
// 3      6
//
// Vals[0][0] = 1
// Vals[0][1] = 2
//
// Missing observations are stored as math.NaN(); every transform in this
// package propagates NaN rather than fabricating a value.
type DataFrame struct {
	Dates    []time.Time
	ColNames []string
	Vals     [][]float64
}

// Defines a time period - typically used to filter a dataframe
type Frequency string

const (
	Daily    Frequency = "Daily"
	Monthly  Frequency = "Monthly"
	Annually Frequency = "Annually"
)

var (
	ErrDateIndexNotAligned = errors.New("date index does not align")
)
