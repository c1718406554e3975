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

package alloc_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tecnicofs/tfs/internal/alloc"
)

func TestAlloc_FirstFitAndFullTable(t *testing.T) {
	tbl := alloc.New[int](2)

	i, ok := tbl.Alloc(func(v *int) { *v = 10 })
	require.True(t, ok)
	assert.Equal(t, 0, i)

	j, ok := tbl.Alloc(func(v *int) { *v = 20 })
	require.True(t, ok)
	assert.Equal(t, 1, j)

	_, ok = tbl.Alloc(nil)
	assert.False(t, ok, "third allocation on a 2-slot table must fail")

	tbl.Free(i)
	k, ok := tbl.Alloc(func(v *int) { *v = 30 })
	require.True(t, ok)
	assert.Equal(t, 0, k, "freed slot 0 must be reused by first-fit before growing")
}

func TestAlloc_GetReturnsStablePointer(t *testing.T) {
	tbl := alloc.New[int](1)
	i, _ := tbl.Alloc(func(v *int) { *v = 1 })
	p := tbl.Get(i)
	*p = 42
	assert.Equal(t, 42, *tbl.Get(i))
}

func TestAlloc_GetOutOfRange(t *testing.T) {
	tbl := alloc.New[int](1)
	assert.Nil(t, tbl.Get(5))
	assert.Nil(t, tbl.Get(-1))
	assert.False(t, tbl.IsTaken(5))
}

func TestAlloc_ConcurrentAllocDoesNotDoubleAssignASlot(t *testing.T) {
	const n = 64
	tbl := alloc.New[int](n)

	var wg sync.WaitGroup
	results := make(chan int, n)
	for g := 0; g < n; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			i, ok := tbl.Alloc(nil)
			if ok {
				results <- i
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int]bool)
	for i := range results {
		assert.False(t, seen[i], "slot %d allocated twice", i)
		seen[i] = true
	}
	assert.Len(t, seen, n)
	_, ok := tbl.Alloc(nil)
	assert.False(t, ok)
}
