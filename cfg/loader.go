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

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load resolves a Config from whatever BindFlags bound into v, applying
// flags, then TFS_-prefixed environment variables, then an optional YAML
// config file, then the hard-coded defaults, in that order of precedence —
// the same flags-env-file-defaults order the teacher's cmd.initConfig uses.
func Load(v *viper.Viper, configFile string) (Config, error) {
	d := DefaultConfig()
	v.SetDefault("params.max-inode-count", d.Params.MaxInodeCount)
	v.SetDefault("params.max-block-count", d.Params.MaxBlockCount)
	v.SetDefault("params.max-open-files-count", d.Params.MaxOpenFilesCount)
	v.SetDefault("params.block-size", d.Params.BlockSize)
	v.SetDefault("logging.severity", d.Logging.Severity)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.log-rotate.max-file-size-mb", d.Logging.LogRotate.MaxFileSizeMB)
	v.SetDefault("logging.log-rotate.backup-file-count", d.Logging.LogRotate.BackupFileCount)
	v.SetDefault("logging.log-rotate.compress", d.Logging.LogRotate.Compress)

	v.SetEnvPrefix("TFS")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %q: %w", configFile, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}
