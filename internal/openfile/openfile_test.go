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

package openfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tecnicofs/tfs/internal/openfile"
)

func TestTable_AddGetRemove(t *testing.T) {
	tbl := openfile.New(2)

	h := tbl.Add(3, 0)
	assert.GreaterOrEqual(t, h, 0)
	assert.True(t, tbl.IsOpen(3))

	e := tbl.Get(h)
	e.Mu.Lock()
	assert.Equal(t, 3, e.Inumber)
	assert.Equal(t, 0, e.Offset)
	e.Mu.Unlock()

	tbl.Remove(h)
	assert.False(t, tbl.IsOpen(3))
}

func TestTable_FullTableReturnsNone(t *testing.T) {
	tbl := openfile.New(1)
	h1 := tbl.Add(1, 0)
	assert.NotEqual(t, openfile.None, h1)
	h2 := tbl.Add(2, 0)
	assert.Equal(t, openfile.None, h2)
}

func TestTable_IsOpenFalseForUnreferencedInumber(t *testing.T) {
	tbl := openfile.New(1)
	tbl.Add(1, 0)
	assert.False(t, tbl.IsOpen(99))
}
