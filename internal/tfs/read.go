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

	"github.com/tecnicofs/tfs/internal/metrics"
	"github.com/tecnicofs/tfs/internal/openfile"
)

// Read implements tfs_read (spec §4.6). It takes the inode's read lock so
// concurrent readers of the same file proceed in parallel, then re-checks
// is_inum_taken under that lock (spec §9's re-check-after-acquire idiom)
// before trusting the entry or the block.
//
// Lock order is normalized to inode-lock-then-entry-mutex in both Read and
// Write (an adaptation beyond the spec's per-operation description, needed
// to rule out an AB-BA deadlock between a concurrent reader and writer on
// the same handle once both take the entry mutex around the offset
// mutation — see SPEC_FULL.md REDESIGN #2).
func (s *State) Read(ctx context.Context, handle int, buf []byte) (n int, err error) {
	start := time.Now()
	defer func() { metrics.RecordOp(s.metrics, ctx, "read", start, &err) }()

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

	in.Mu.RLock()
	defer in.Mu.RUnlock()
	if !s.inodes.IsTaken(inum) {
		return -1, ErrGone
	}

	e.Mu.Lock()
	if e.Inumber != inum {
		// The handle was closed (or closed and reused) while this goroutine
		// waited for the inode's read lock; there's nothing left to read.
		e.Mu.Unlock()
		return -1, ErrInvalidHandle
	}

	toRead := in.Size - e.Offset
	if toRead > len(buf) {
		toRead = len(buf)
	}
	if toRead < 0 {
		toRead = 0
	}
	offsetSnapshot := e.Offset
	e.Offset += toRead
	e.Mu.Unlock()

	if toRead > 0 {
		b := s.blocks.Get(in.DataBlock)
		copy(buf[:toRead], b.Data[offsetSnapshot:offsetSnapshot+toRead])
	}

	return toRead, nil
}
