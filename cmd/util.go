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
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/bubble-watch/fbd-api/common"
	"github.com/bubble-watch/fbd-api/data"
	"github.com/bubble-watch/fbd-api/dataframe"
)

// verifyManifest checks dataset checksums when a manifest is bundled.
// Mismatches warn but do not abort; results on modified data are still
// meaningful, just not comparable to the published tables.
func verifyManifest() {
	manifest, err := data.ReadManifest(viper.GetString("data.dir"))
	if err != nil {
		log.Warn().Err(err).Msg("could not read dataset manifest")
		return
	}
	if manifest != nil {
		manifest.VerifyAll(viper.GetString("data.dir"))
	}
}

func loadChina() *dataframe.DataFrame {
	fn := common.DataPath(data.ChinaFileName)
	df, err := data.Load(fn, data.ChinaSchema())
	if err != nil {
		log.Fatal().Err(err).Str("FileName", fn).
			Msg("could not load china dataset; copy the replication CSVs into the data directory (--data-dir)")
	}
	return df
}

func loadUsa() *dataframe.DataFrame {
	fn := common.DataPath(data.UsaFileName)
	df, err := data.Load(fn, data.UsaSchema())
	if err != nil {
		log.Fatal().Err(err).Str("FileName", fn).
			Msg("could not load usa dataset; copy the replication CSVs into the data directory (--data-dir)")
	}
	return df
}
