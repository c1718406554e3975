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

// Info is the read-only snapshot Stat returns: a name's inumber, kind,
// size, and hard-link count, without opening it. This is a feature
// supplemented from the original C test harness (SPEC_FULL.md), not part
// of spec.md's public-verb table, but useful for asserting post-conditions
// the way the original's tests do.
type Info struct {
	Inumber   int
	Kind      inode.Kind
	Size      int
	HardLinks int
}

// Stat resolves name to its inode's current metadata without opening it.
func (s *State) Stat(ctx context.Context, name string) (info Info, err error) {
	start := time.Now()
	defer func() { metrics.RecordOp(s.metrics, ctx, "stat", start, &err) }()

	rel, err := validatePath(name)
	if err != nil {
		return Info{}, err
	}

	inum := s.findInRoot(rel)
	if inum == dirent.None {
		return Info{}, ErrNotFound
	}

	in := s.inodes.Get(inum)
	if in == nil {
		return Info{}, ErrGone
	}

	in.Mu.RLock()
	defer in.Mu.RUnlock()
	if !s.inodes.IsTaken(inum) {
		return Info{}, ErrGone
	}

	return Info{Inumber: inum, Kind: in.Kind, Size: in.Size, HardLinks: in.HardLinks}, nil
}
