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

package cfg_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tecnicofs/tfs/cfg"
)

func TestDefaultParamsAreValid(t *testing.T) {
	assert.NoError(t, cfg.DefaultParams().Validate())
	assert.NoError(t, cfg.DefaultConfig().Validate())
}

func TestParamsValidate_RejectsNonPositiveFields(t *testing.T) {
	base := cfg.DefaultParams()

	bad := base
	bad.MaxInodeCount = 0
	assert.EqualError(t, bad.Validate(), cfg.MaxInodeCountInvalidValueError)

	bad = base
	bad.MaxBlockCount = -1
	assert.EqualError(t, bad.Validate(), cfg.MaxBlockCountInvalidValueError)

	bad = base
	bad.MaxOpenFilesCount = 0
	assert.EqualError(t, bad.Validate(), cfg.MaxOpenFilesCountInvalidValueError)

	bad = base
	bad.BlockSize = 0
	assert.EqualError(t, bad.Validate(), cfg.BlockSizeInvalidValueError)
}

func TestConfigValidate_RejectsUnknownSeverityAndFormat(t *testing.T) {
	c := cfg.DefaultConfig()
	c.Logging.Severity = "VERBOSE"
	assert.EqualError(t, c.Validate(), cfg.LogSeverityInvalidValueError)

	c = cfg.DefaultConfig()
	c.Logging.Format = "xml"
	assert.EqualError(t, c.Validate(), cfg.LogFormatInvalidValueError)
}

func TestBindFlagsThenLoad_UsesFlagValues(t *testing.T) {
	// BindFlags binds the params.* keys into the global viper instance.
	v := viper.GetViper()
	fs := pflag.NewFlagSet("tfsctl", pflag.ContinueOnError)
	require.NoError(t, cfg.BindFlags(fs))
	require.NoError(t, v.BindPFlags(fs))
	require.NoError(t, fs.Parse([]string{"--max-inodes=8", "--block-size=256"}))

	c, err := cfg.Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, 8, c.Params.MaxInodeCount)
	assert.Equal(t, 256, c.Params.BlockSize)
	// Unset flags keep their defaults.
	assert.Equal(t, cfg.DefaultParams().MaxBlockCount, c.Params.MaxBlockCount)
}

func TestLoad_DefaultsWhenNothingBound(t *testing.T) {
	v := viper.New()
	c, err := cfg.Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, cfg.DefaultConfig(), c)
}
