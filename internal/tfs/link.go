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

// Link implements tfs_link (spec §4.8): an additional directory entry
// pointing at an existing FILE inode, incrementing its hard-link count.
// Hard links to symlinks are disallowed.
func (s *State) Link(ctx context.Context, target, linkName string) (err error) {
	start := time.Now()
	defer func() { metrics.RecordOp(s.metrics, ctx, "link", start, &err) }()

	targetRel, err := validatePath(target)
	if err != nil {
		return err
	}
	linkRel, err := validatePath(linkName)
	if err != nil {
		return err
	}

	inum := s.findInRoot(targetRel)
	if inum == dirent.None {
		return ErrNotFound
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
	if in.Kind == inode.Symlink {
		in.Mu.Unlock()
		return ErrIsSymlink
	}
	in.IncRefLocked()
	in.Mu.Unlock()

	if err := s.addRootEntry(linkRel, inum); err != nil {
		// The bump only needs undoing, never a delete: it started at >= 1,
		// so decrementing it back can't reach zero.
		in.Mu.Lock()
		in.DecRefLocked()
		in.Mu.Unlock()
		return err
	}

	return nil
}
