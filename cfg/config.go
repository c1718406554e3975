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

// Package cfg holds the process-wide, immutable-once-loaded configuration for
// a TecnicoFS instance: the fixed table sizes (Params) and the logging setup.
package cfg

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Params are the sizing parameters described by spec §3: fixed, process-wide,
// and immutable once the filesystem has been initialized.
type Params struct {
	MaxInodeCount     int `yaml:"max-inode-count" mapstructure:"max-inode-count"`
	MaxBlockCount     int `yaml:"max-block-count" mapstructure:"max-block-count"`
	MaxOpenFilesCount int `yaml:"max-open-files-count" mapstructure:"max-open-files-count"`
	BlockSize         int `yaml:"block-size" mapstructure:"block-size"`
}

// MaxFileName is the maximum length of a directory-entry name, including the
// terminating NUL (spec §3: "source uses 40").
const MaxFileName = 40

// DefaultParams returns the spec §3 defaults: 64 inodes, 1024 blocks, 16 open
// files, 1024-byte blocks.
func DefaultParams() Params {
	return Params{
		MaxInodeCount:     64,
		MaxBlockCount:     1024,
		MaxOpenFilesCount: 16,
		BlockSize:         1024,
	}
}

// Config is the top-level, yaml-serializable configuration for a TecnicoFS
// instance.
type Config struct {
	Params  Params        `yaml:"params"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig mirrors the teacher's own logging configuration shape:
// a severity threshold, an output format, and a rotation policy for the
// optional async file sink.
type LoggingConfig struct {
	Severity  string                 `yaml:"severity" mapstructure:"severity"`
	Format    string                 `yaml:"format" mapstructure:"format"`
	FilePath  string                 `yaml:"file-path" mapstructure:"file-path"`
	LogRotate LogRotateLoggingConfig `yaml:"log-rotate" mapstructure:"log-rotate"`
}

// LogRotateLoggingConfig configures the lumberjack-backed rotation policy
// used by internal/logger's AsyncLogger.
type LogRotateLoggingConfig struct {
	MaxFileSizeMB   int  `yaml:"max-file-size-mb" mapstructure:"max-file-size-mb"`
	BackupFileCount int  `yaml:"backup-file-count" mapstructure:"backup-file-count"`
	Compress        bool `yaml:"compress" mapstructure:"compress"`
}

// DefaultConfig returns the default Config: spec-default Params plus
// INFO-level text logging to stderr.
func DefaultConfig() Config {
	return Config{
		Params:  DefaultParams(),
		Logging: GetDefaultLoggingConfig(),
	}
}

// BindFlags registers command-line flags for the four Params fields and for
// the logging severity, format and file path onto flagSet (the log-rotate
// fields have no flags) and binds each one into the global viper instance,
// the way the teacher's
// cfg.BindFlags binds gcsfuse's mount flags.
func BindFlags(flagSet *pflag.FlagSet) error {
	d := DefaultConfig()

	flagSet.Int("max-inodes", d.Params.MaxInodeCount, "Maximum number of inodes, including the root.")
	if err := viper.BindPFlag("params.max-inode-count", flagSet.Lookup("max-inodes")); err != nil {
		return err
	}

	flagSet.Int("max-blocks", d.Params.MaxBlockCount, "Maximum number of data blocks.")
	if err := viper.BindPFlag("params.max-block-count", flagSet.Lookup("max-blocks")); err != nil {
		return err
	}

	flagSet.Int("max-open-files", d.Params.MaxOpenFilesCount, "Maximum number of simultaneously open files.")
	if err := viper.BindPFlag("params.max-open-files-count", flagSet.Lookup("max-open-files")); err != nil {
		return err
	}

	flagSet.Int("block-size", d.Params.BlockSize, "Size in bytes of a single data block.")
	if err := viper.BindPFlag("params.block-size", flagSet.Lookup("block-size")); err != nil {
		return err
	}

	flagSet.String("log-severity", d.Logging.Severity, "Minimum severity logged: TRACE, DEBUG, INFO, WARNING, ERROR, or OFF.")
	if err := viper.BindPFlag("logging.severity", flagSet.Lookup("log-severity")); err != nil {
		return err
	}

	flagSet.String("log-format", d.Logging.Format, "Log line format: text or json.")
	if err := viper.BindPFlag("logging.format", flagSet.Lookup("log-format")); err != nil {
		return err
	}

	flagSet.String("log-file", d.Logging.FilePath, "Path to a log file. Empty means stderr.")
	if err := viper.BindPFlag("logging.file-path", flagSet.Lookup("log-file")); err != nil {
		return err
	}

	return nil
}
