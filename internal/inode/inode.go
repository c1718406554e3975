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

// Package inode implements component C of the spec: the typed inode record
// with its own reader/writer lock, backing files, symlinks, and the single
// root directory.
package inode

import "sync"

// Kind tags which variant an Inode is. Fields meaningful only to one kind
// (HardLinks, for files) are part of that variant, per spec §9's "Tagged
// inode variants" design note.
type Kind int

const (
	File Kind = iota
	Directory
	Symlink
)

func (k Kind) String() string {
	switch k {
	case File:
		return "file"
	case Directory:
		return "directory"
	case Symlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// None is the sentinel DataBlock value meaning "no block referenced" (spec
// §3: "sentinel 'none' when size == 0").
const None = -1

// Inode is a single slot in the inode table (component C). Mu guards every
// field below it and the bytes of the data block it references — "a
// readers/writer lock governing the inode's fields and the bytes of its data
// block" (spec §3).
type Inode struct {
	Kind Kind

	Mu sync.RWMutex

	// GUARDED_BY(Mu)
	Size int
	// GUARDED_BY(Mu). Index into the data block pool, or None.
	DataBlock int
	// GUARDED_BY(Mu). Reference count; meaningful only for Kind == File.
	// Symlinks and the root have an implicit count of 1 (spec §3) and never
	// mutate HardLinks.
	HardLinks int
}

// Init resets in to a freshly allocated inode of the given kind: size 0, no
// data block, hard_links 1. It leaves Mu untouched, since a waiter may still
// hold a pointer to this slot's lock from before it was freed.
//
// REQUIRES: caller holds in.Mu for writing (or in is otherwise unshared, as
// during allocation).
func (in *Inode) Init(kind Kind) {
	in.Kind = kind
	in.Size = 0
	in.DataBlock = None
	in.HardLinks = 1
}

// IncRefLocked increments the file's hard-link count. Grounded on
// fs/inode/lookup_count.go's Inc, repurposed from FUSE lookup counting to
// hard-link counting (spec §4.8: tfs_link "Increment hard_links").
//
// EXCLUSIVE_LOCKS_REQUIRED(in.Mu)
func (in *Inode) IncRefLocked() {
	in.HardLinks++
}

// DecRefLocked decrements the file's hard-link count and reports whether it
// reached zero — at which point the caller must delete the inode (spec §3
// invariant 3, §4.9). Grounded on fs/inode/lookup_count.go's Dec(n), which
// calls a destroy callback at zero; here the caller (internal/tfs) performs
// the destroy step itself so it can do so while still holding in.Mu, as
// spec §4.9 requires.
//
// EXCLUSIVE_LOCKS_REQUIRED(in.Mu)
func (in *Inode) DecRefLocked() (reachedZero bool) {
	if in.HardLinks == 0 {
		panic("inode: HardLinks decremented below zero")
	}
	in.HardLinks--
	return in.HardLinks == 0
}
