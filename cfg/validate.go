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

package cfg

import "fmt"

const (
	MaxInodeCountInvalidValueError     = "max-inode-count must be at least 1 (the root directory)"
	MaxBlockCountInvalidValueError     = "max-block-count must be at least 1"
	MaxOpenFilesCountInvalidValueError = "max-open-files-count must be at least 1"
	BlockSizeInvalidValueError         = "block-size must be at least 1"
	LogSeverityInvalidValueError       = "logging.severity must be one of TRACE, DEBUG, INFO, WARNING, ERROR, OFF"
	LogFormatInvalidValueError         = "logging.format must be one of text, json"
)

var validSeverities = map[string]bool{
	"TRACE": true, "DEBUG": true, "INFO": true, "WARNING": true, "ERROR": true, "OFF": true,
}

var validFormats = map[string]bool{"text": true, "json": true}

// Validate checks that p describes a usable set of fixed-capacity tables.
func (p Params) Validate() error {
	if p.MaxInodeCount < 1 {
		return fmt.Errorf(MaxInodeCountInvalidValueError)
	}
	if p.MaxBlockCount < 1 {
		return fmt.Errorf(MaxBlockCountInvalidValueError)
	}
	if p.MaxOpenFilesCount < 1 {
		return fmt.Errorf(MaxOpenFilesCountInvalidValueError)
	}
	if p.BlockSize < 1 {
		return fmt.Errorf(BlockSizeInvalidValueError)
	}
	return nil
}

// Validate checks both the Params and the logging configuration.
func (c Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if !validSeverities[c.Logging.Severity] {
		return fmt.Errorf(LogSeverityInvalidValueError)
	}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf(LogFormatInvalidValueError)
	}
	if c.Logging.LogRotate.MaxFileSizeMB <= 0 {
		return fmt.Errorf("logging.log-rotate.max-file-size-mb should be at least 1")
	}
	if c.Logging.LogRotate.BackupFileCount < 0 {
		return fmt.Errorf("logging.log-rotate.backup-file-count should be 0 (retain all) or positive")
	}
	return nil
}
