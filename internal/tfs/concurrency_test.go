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

package tfs_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tecnicofs/tfs/cfg"
	"github.com/tecnicofs/tfs/internal/tfs"
)

// Property 10: N threads creating distinct names in parallel all succeed up
// to table capacity, and each name ends up present exactly once.
func TestConcurrentCreate_DistinctNamesAllSucceed(t *testing.T) {
	ctx := context.Background()
	params := cfg.DefaultParams()
	params.MaxInodeCount = 17 // root + 16 files
	s := newTestState(t, params)

	const n = 16
	var wg sync.WaitGroup
	handles := make([]int, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handles[i], errs[i] = s.Open(ctx, fmt.Sprintf("/f%d", i), tfs.CREAT)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.GreaterOrEqual(t, handles[i], 0)
	}

	for i := 0; i < n; i++ {
		info, err := s.Stat(ctx, fmt.Sprintf("/f%d", i))
		require.NoError(t, err)
		assert.Equal(t, 0, info.Size)
	}
}

// Property 11: N threads reading non-overlapping W-sized slices of a file
// laid out as [block_of_0s | block_of_1s | ...] each observe uniform bytes,
// proving the offset cursor advances atomically in W-sized steps.
func TestConcurrentRead_OffsetAdvancesAtomically(t *testing.T) {
	ctx := context.Background()
	params := cfg.DefaultParams()
	s := newTestState(t, params)

	const width = 8
	const runs = 16
	content := make([]byte, width*runs)
	for r := 0; r < runs; r++ {
		for i := 0; i < width; i++ {
			content[r*width+i] = byte('a' + r)
		}
	}

	f, err := s.Open(ctx, "/f1", tfs.CREAT)
	require.NoError(t, err)
	_, err = s.Write(ctx, f, content)
	require.NoError(t, err)
	require.NoError(t, s.Close(ctx, f))

	reader, err := s.Open(ctx, "/f1", 0)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]byte, runs)
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			buf := make([]byte, width)
			n, err := s.Read(ctx, reader, buf)
			require.NoError(t, err)
			results[i] = buf[:n]
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.Len(t, got, width)
		for _, b := range got {
			assert.Equal(t, got[0], b, "expected a uniform W-sized run, got %q", got)
		}
	}
}

// Property 12: N threads each writing W bytes of a distinct character onto
// one handle produce W-sized runs of a single character each.
func TestConcurrentWrite_AtomicityAtWriteGranularity(t *testing.T) {
	ctx := context.Background()
	params := cfg.DefaultParams()
	s := newTestState(t, params)

	const width = 8
	const writers = 16

	f, err := s.Open(ctx, "/f1", tfs.CREAT)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			chunk := make([]byte, width)
			for j := range chunk {
				chunk[j] = byte('A' + i)
			}
			_, err := s.Write(ctx, f, chunk)
			require.NoError(t, err)
		}(i)
	}
	wg.Wait()
	require.NoError(t, s.Close(ctx, f))

	reader, err := s.Open(ctx, "/f1", 0)
	require.NoError(t, err)
	buf := make([]byte, width*writers)
	n, err := s.Read(ctx, reader, buf)
	require.NoError(t, err)
	buf = buf[:n]

	assert.Equal(t, 0, len(buf)%width, "total bytes written should be a multiple of the write width")
	for i := 0; i+width <= len(buf); i += width {
		run := buf[i : i+width]
		for _, b := range run {
			assert.Equal(t, run[0], b, "expected a uniform %d-byte run at offset %d, got %q", width, i, run)
		}
	}
}
