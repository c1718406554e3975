// Copyright 2024 Google Inc. All Rights Reserved.
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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tecnicofs/tfs/cfg"
	"github.com/tecnicofs/tfs/internal/logger"
	"github.com/tecnicofs/tfs/internal/metrics"
	"github.com/tecnicofs/tfs/internal/tfs"
)

var (
	cfgFile    string
	bindErr    error
	loadedCfg  cfg.Config
	loadErr    error
)

var rootCmd = &cobra.Command{
	Use:   "tfsctl",
	Short: "Exercise TecnicoFS's open/read/write/link/symlink/unlink/stat API",
	Long: `tfsctl is a test-driver CLI for TecnicoFS, an in-memory,
single-level file system. Every invocation starts a fresh, empty
filesystem instance (TecnicoFS keeps no state across process restarts) —
use the "demo" subcommand to see a full read/write/link/symlink sequence
against one instance in a single process.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if bindErr != nil {
			return bindErr
		}
		if loadErr != nil {
			return loadErr
		}
		return logger.Init(loadedCfg.Logging)
	},
}

// Execute runs the root command, exiting with status 1 on failure —
// mirroring the teacher's cmd.Execute.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "Path to a YAML config file")
	bindErr = cfg.BindFlags(rootCmd.PersistentFlags())
}

func initConfig() {
	loadedCfg, loadErr = cfg.Load(viper.GetViper(), cfgFile)
}

// newState builds a fresh TecnicoFS instance from the loaded configuration,
// with a no-op metrics handle (tfsctl is a demo driver, not a long-running
// service with a scrape endpoint).
func newState() (*tfs.State, error) {
	return tfs.New(loadedCfg.Params, metrics.NewNoopHandle())
}
