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

// SymLink implements tfs_sym_link (spec §4.7). target must already exist.
// Per SPEC_FULL.md REDESIGN #1, the data block is sized to exactly
// len(target) bytes and holds the target path itself — the source's bug of
// sizing the block to len(link_name)+1 while copying target is not
// reproduced.
func (s *State) SymLink(ctx context.Context, target, linkName string) (err error) {
	start := time.Now()
	defer func() { metrics.RecordOp(s.metrics, ctx, "symlink", start, &err) }()

	targetRel, err := validatePath(target)
	if err != nil {
		return err
	}
	linkRel, err := validatePath(linkName)
	if err != nil {
		return err
	}

	if s.findInRoot(targetRel) == dirent.None {
		return ErrNotFound
	}

	inum, ok := s.inodes.Alloc(func(in *inode.Inode) { in.Init(inode.Symlink) })
	if !ok {
		return ErrTableFull
	}
	in := s.inodes.Get(inum)

	targetPath := "/" + targetRel

	in.Mu.Lock()
	if !s.inodes.IsTaken(inum) {
		in.Mu.Unlock()
		s.inodes.Free(inum)
		return ErrGone
	}

	bi, bok := s.blocks.Alloc(symlinkBlockContents(targetPath))
	if !bok {
		in.Mu.Unlock()
		s.inodes.Free(inum)
		return ErrTableFull
	}
	in.DataBlock = bi
	in.Size = len(targetPath)
	in.Mu.Unlock()

	if err := s.addRootEntry(linkRel, inum); err != nil {
		in.Mu.Lock()
		s.blocks.Free(bi)
		in.Mu.Unlock()
		s.inodes.Free(inum)
		return err
	}

	return nil
}
