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

	"github.com/tecnicofs/tfs/internal/dirent"
	"github.com/tecnicofs/tfs/internal/inode"
	"github.com/tecnicofs/tfs/internal/metrics"
)

// Unlink implements tfs_unlink (spec §4.9). A file that's currently open
// cannot be unlinked (invariant 3). hard_links reaching zero deletes the
// inode while still holding its write lock; any other thread blocked on the
// same lock will observe is_inum_taken == false on its re-check and bail
// out (spec §9's re-check-after-acquire idiom).
func (s *State) Unlink(ctx context.Context, path string) (err error) {
	start := time.Now()
	defer func() { metrics.RecordOp(s.metrics, ctx, "unlink", start, &err) }()

	rel, err := validatePath(path)
	if err != nil {
		return err
	}

	inum := s.findInRoot(rel)
	if inum == dirent.None {
		return ErrNotFound
	}

	if s.openFiles.IsOpen(inum) {
		return ErrFileOpen
	}

	in := s.inodes.Get(inum)
	if in == nil {
		return ErrGone
	}

	in.Mu.Lock()
	if !s.inodes.IsTaken(inum) {
		in.Mu.Unlock()
		return ErrGone
	}

	switch in.Kind {
	case inode.Symlink:
		// Symlinks have an implicit hard_links of 1 and no other directory
		// entry can reference one (Link refuses symlink targets), so unlink
		// always deletes it.
		if in.DataBlock != inode.None {
			s.blocks.Free(in.DataBlock)
		}
		s.inodes.Free(inum)
	default:
		if in.DecRefLocked() {
			if in.DataBlock != inode.None {
				s.blocks.Free(in.DataBlock)
			}
			s.inodes.Free(inum)
		}
	}
	in.Mu.Unlock()

	s.clearRootEntry(rel)
	return nil
}
