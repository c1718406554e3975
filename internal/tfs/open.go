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
	"github.com/tecnicofs/tfs/internal/dirent"
	"github.com/tecnicofs/tfs/internal/inode"
	"github.com/tecnicofs/tfs/internal/metrics"
	"github.com/tecnicofs/tfs/internal/openfile"
)

// Open implements tfs_open (spec §4.4). name must pass validatePath; mode is
// a bitmask of CREAT, TRUNC, and APPEND.
func (s *State) Open(ctx context.Context, name string, mode int) (handle int, err error) {
	start := time.Now()
	defer func() { metrics.RecordOp(s.metrics, ctx, "open", start, &err) }()
	return s.open(ctx, name, mode, 0)
}

func (s *State) open(ctx context.Context, name string, mode int, depth int) (int, error) {
	if depth > maxSymlinkDepth {
		return -1, ErrSymlinkLoop
	}

	rel, err := validatePath(name)
	if err != nil {
		return -1, err
	}

	inum := s.findInRoot(rel)
	if inum == dirent.None {
		if mode&CREAT == 0 {
			return -1, ErrNotFound
		}
		return s.createAndOpen(rel, mode)
	}

	return s.openExisting(ctx, inum, mode, depth)
}

func (s *State) openExisting(ctx context.Context, inum int, mode int, depth int) (int, error) {
	in := s.inodes.Get(inum)
	if in == nil {
		return -1, ErrGone
	}

	in.Mu.Lock()
	if !s.inodes.IsTaken(inum) {
		in.Mu.Unlock()
		return -1, ErrGone
	}

	if in.Kind == inode.Symlink {
		target := s.readSymlinkTargetLocked(in)
		in.Mu.Unlock()
		// Lock is released before the recursive call, per spec §5: "no lock
		// is allowed to be held across a recursive call into the top-level
		// operation API".
		return s.open(ctx, target, mode, depth+1)
	}

	if mode&TRUNC != 0 && in.Size > 0 {
		s.blocks.Free(in.DataBlock)
		in.DataBlock = inode.None
		in.Size = 0
	}

	offset := 0
	if mode&APPEND != 0 {
		offset = in.Size
	}
	in.Mu.Unlock()

	h := s.openFiles.Add(inum, offset)
	if h == openfile.None {
		return -1, ErrTableFull
	}
	return h, nil
}

// readSymlinkTargetLocked reads the path stored in a symlink's data block.
// REQUIRES: caller holds in.Mu and has verified in is still TAKEN.
func (s *State) readSymlinkTargetLocked(in *inode.Inode) string {
	if in.DataBlock == inode.None {
		return ""
	}
	b := s.blocks.Get(in.DataBlock)
	return string(b.Data[:in.Size])
}

func (s *State) createAndOpen(name string, mode int) (int, error) {
	inum, ok := s.inodes.Alloc(func(in *inode.Inode) { in.Init(inode.File) })
	if !ok {
		return -1, ErrTableFull
	}

	if err := s.addRootEntry(name, inum); err != nil {
		s.inodes.Free(inum)
		return -1, err
	}

	h := s.openFiles.Add(inum, 0)
	if h == openfile.None {
		// spec §4.4 step 5: "If that allocation fails after a fresh CREAT,
		// the file remains created (documented behavior, not rolled back)".
		return -1, ErrTableFull
	}
	return h, nil
}

// symlinkBlockContents is a small helper SymLink uses to size and fill a
// symlink's data block; kept here since it shares readSymlinkTargetLocked's
// layout convention (block holds exactly the path bytes, no NUL terminator
// needed because Go strings aren't NUL-terminated).
func symlinkBlockContents(target string) func(b *block.Block) {
	return func(b *block.Block) {
		b.Data = make([]byte, len(target))
		copy(b.Data, target)
	}
}
