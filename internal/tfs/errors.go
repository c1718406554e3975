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

import "errors"

// Every public verb's failures are attributable to user input or legitimate
// concurrent state (spec §7), so they're reported as a distinguishable
// sentinel error rather than a single flat "-1". A caller that wants the
// original flat return-code contract can test err != nil.
var (
	ErrTableFull     = errors.New("tfs: allocation table is full")
	ErrInvalidPath   = errors.New("tfs: invalid path")
	ErrNameTooLong   = errors.New("tfs: name exceeds the maximum file name length")
	ErrNameExists    = errors.New("tfs: a directory entry with that name already exists")
	ErrDirFull       = errors.New("tfs: root directory has no free entry slots")
	ErrNotFound      = errors.New("tfs: no such file")
	ErrFileOpen      = errors.New("tfs: file is currently open")
	ErrIsSymlink     = errors.New("tfs: cannot hard link a symlink")
	ErrInvalidHandle = errors.New("tfs: invalid or closed handle")
	ErrGone          = errors.New("tfs: inode was concurrently deleted")
	ErrSymlinkLoop   = errors.New("tfs: symlink resolution exceeded the maximum depth")
)

// Invariant violations (an impossible state, not attributable to the caller)
// panic rather than returning an error, mirroring the teacher's
// checkInvariants/syncutil.InvariantMutex idiom (spec §7: "Programming-
// invariant violations ... fail fatally").
func invariantViolation(msg string) {
	panic("tfs: invariant violation: " + msg)
}
