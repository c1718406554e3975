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

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tecnicofs/tfs/cfg"
)

func TestAsyncLogger_WriteThenCloseFlushesToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tfs.log")

	a := NewAsyncLoggerToFile(path, cfg.LogRotateLoggingConfig{MaxFileSizeMB: 1, BackupFileCount: 1}, 4)

	n, err := a.Write([]byte("hello\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	require.NoError(t, a.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestAsyncLogger_WriteAfterCloseIsNoop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tfs.log")
	a := NewAsyncLoggerToFile(path, cfg.LogRotateLoggingConfig{}, 4)
	require.NoError(t, a.Close())

	n, err := a.Write([]byte("too late"))
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestAsyncLogger_CloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tfs.log")
	a := NewAsyncLoggerToFile(path, cfg.LogRotateLoggingConfig{}, 4)
	require.NoError(t, a.Close())
	assert.NoError(t, a.Close())
}
