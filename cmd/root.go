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
	"os"

	"github.com/bubble-watch/fbd-api/common"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Data and output locations
	viper.BindEnv("data.dir", "FBD_DATA_DIR")
	rootCmd.PersistentFlags().String("data-dir", "./data", "Directory containing the market datasets")
	viper.BindPFlag("data.dir", rootCmd.PersistentFlags().Lookup("data-dir"))

	viper.BindEnv("output.dir", "FBD_OUTPUT_DIR")
	rootCmd.PersistentFlags().String("output-dir", "./output", "Directory to write results to")
	viper.BindPFlag("output.dir", rootCmd.PersistentFlags().Lookup("output-dir"))

	// Logging configuration
	viper.BindEnv("log.level", "FBD_LOG_LEVEL")
	rootCmd.PersistentFlags().String("log-level", "warning", "Logging level")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.BindEnv("log.report_caller", "FBD_LOG_REPORT_CALLER")
	rootCmd.PersistentFlags().Bool("log-report-caller", false, "Log function name that called log statement")
	viper.BindPFlag("log.report_caller", rootCmd.PersistentFlags().Lookup("log-report-caller"))

	viper.BindEnv("log.output", "FBD_LOG_OUTPUT")
	rootCmd.PersistentFlags().String("log-output", "stderr", "Write logs to specified output one of: file path, `stdout`, or `stderr`")
	viper.BindPFlag("log.output", rootCmd.PersistentFlags().Lookup("log-output"))

	viper.BindEnv("log.pretty", "FBD_LOG_PRETTY")
	rootCmd.PersistentFlags().Bool("log-pretty", false, "Print console-formatted log messages")
	viper.BindPFlag("log.pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))
}

var rootCmd = &cobra.Command{
	Use:     "fbd",
	Version: common.CurrentVersion.String(),
	Short:   "Financial bubble detection toolkit",
	Long:    `Compute layered bubble risk scores for equity markets and reproduce the benchmark, validation, and robustness analyses of the accompanying paper.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
