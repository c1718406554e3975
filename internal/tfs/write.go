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

package tfs

import (
	"context"
	"time"

	"github.com/tecnicofs/tfs/internal/block"
	"github.com/tecnicofs/tfs/internal/inode"
	"github.com/tecnicofs/tfs/internal/metrics"
	"github.com/tecnicofs/tfs/internal/openfile"
)

// Write implements tfs_write (spec §4.6). Per SPEC_FULL.md REDESIGN #2, the
// offset mutation is performed under the open-file entry's mutex (the
// source's version does not, and can race two concurrent writers on one
// handle).
func (s *State) Write(ctx context.Context, handle int, buf []byte) (n int, err error) {
	start := time.Now()
	defer func() { metrics.RecordOp(s.metrics, ctx, "write", start, &err) }()

	e := s.openFiles.Get(handle)
	if e == nil {
		return -1, ErrInvalidHandle
	}

	e.Mu.Lock()
	inum := e.Inumber
	e.Mu.Unlock()
	if inum == openfile.None {
		return -1, ErrInvalidHandle
	}

	in := s.inodes.Get(inum)
	if in == nil {
		return -1, ErrGone
	}

	in.Mu.Lock()
	defer in.Mu.Unlock()
	if !s.inodes.IsTaken(inum) {
		return -1, ErrGone
	}

	e.Mu.Lock()
	if e.Inumber != inum {
		e.Mu.Unlock()
		return -1, ErrInvalidHandle
	}

	toWrite := len(buf)
	if room := s.params.BlockSize - e.Offset; toWrite > room {
		toWrite = room
	}
	if toWrite < 0 {
		toWrite = 0
	}

	// Only a write that actually has bytes to place allocates a block: an
	// empty write on a still-empty file must leave DataBlock as None (spec
	// §3 invariant 2, "for size == 0, no block is referenced").
	if toWrite == 0 {
		e.Mu.Unlock()
		return 0, nil
	}

	if in.DataBlock == inode.None {
		bi, ok := s.blocks.Alloc(func(b *block.Block) { s.blockPool.Init(b) })
		if !ok {
			e.Mu.Unlock()
			return -1, ErrTableFull
		}
		in.DataBlock = bi
	}

	b := s.blocks.Get(in.DataBlock)
	copy(b.Data[e.Offset:e.Offset+toWrite], buf[:toWrite])
	e.Offset += toWrite
	newOffset := e.Offset
	e.Mu.Unlock()

	if newOffset > in.Size {
		in.Size = newOffset
	}

	return toWrite, nil
}
