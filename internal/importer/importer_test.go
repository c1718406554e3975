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

package importer_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tecnicofs/tfs/cfg"
	"github.com/tecnicofs/tfs/internal/importer"
	"github.com/tecnicofs/tfs/internal/tfs"
)

func TestCopyFromExternalFS_CopiesFullContents(t *testing.T) {
	ctx := context.Background()
	params := cfg.DefaultParams()
	params.BlockSize = 64
	s, err := tfs.New(params, nil)
	require.NoError(t, err)

	// TecnicoFS files never span more than one data block (spec Non-goal),
	// so the host file must fit within a single block.
	content := bytes.Repeat([]byte("0123456789abcdef"), 3)
	src := filepath.Join(t.TempDir(), "host.bin")
	require.NoError(t, os.WriteFile(src, content, 0o600))

	n, err := importer.CopyFromExternalFS(ctx, s, src, "/imported", params.BlockSize)
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), n)

	h, err := s.Open(ctx, "/imported", 0)
	require.NoError(t, err)
	buf := make([]byte, len(content))
	total := 0
	for total < len(content) {
		got, rerr := s.Read(ctx, h, buf[total:])
		require.NoError(t, rerr)
		if got == 0 {
			break
		}
		total += got
	}
	assert.Equal(t, content, buf[:total])
}

func TestCopyFromExternalFS_MissingSourceErrors(t *testing.T) {
	ctx := context.Background()
	s, err := tfs.New(cfg.DefaultParams(), nil)
	require.NoError(t, err)

	_, err = importer.CopyFromExternalFS(ctx, s, filepath.Join(t.TempDir(), "nope"), "/dst", 16)
	assert.Error(t, err)
}
