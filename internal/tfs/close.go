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

// Close implements tfs_close (spec §4.5). Per SPEC_FULL.md REDESIGN #3, the
// handle is validated (Get's nil check, then the entry's Inumber) before
// anything is mutated — the source's dereference-before-check bug is not
// reproduced.
func (s *State) Close(ctx context.Context, handle int) (err error) {
	start := time.Now()
	defer func() { metrics.RecordOp(s.metrics, ctx, "close", start, &err) }()

	e := s.openFiles.Get(handle)
	if e == nil {
		return ErrInvalidHandle
	}

	e.Mu.Lock()
	defer e.Mu.Unlock()
	if e.Inumber == openfile.None {
		return ErrInvalidHandle
	}

	e.Inumber = openfile.None
	s.openFiles.Remove(handle)
	return nil
}
