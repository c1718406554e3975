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

// Package openfile implements component E: the open-file table. Grounded on
// fs/dir_handle.go/fs/file.go's per-handle mutex guarding a single handle's
// own mutable state, and on fs/fs.go's pattern of allocating a handle under
// the table lock and then operating on it under its own lock.
package openfile

import (
	"sync"

	"github.com/tecnicofs/tfs/internal/alloc"
)

// None marks a free or closed open-file entry (spec §3: "inumber == -1
// marks the slot free").
const None = -1

// Entry is one open-file handle: an inumber and a read/write cursor. Mu
// serializes the (Inumber, Offset) pair (spec §3).
type Entry struct {
	Inumber int
	Offset  int
	Mu      sync.Mutex
}

// Table is the fixed-capacity open-file table (spec §4.1:
// add_to_open_file_table / remove_from_open_file_table / get_open_file_entry
// / is_file_open).
type Table struct {
	slots *alloc.Table[Entry]
}

// New builds an open-file table with room for n simultaneously open files.
func New(n int) *Table {
	slots := alloc.New[Entry](n)
	for i := 0; i < n; i++ {
		slots.Get(i).Inumber = None
	}
	return &Table{slots: slots}
}

// Add allocates a handle for (inumber, offset). Returns -1 if the table is
// full (spec §4.1: add_to_open_file_table -> handle | -1).
func (t *Table) Add(inumber, offset int) int {
	h, ok := t.slots.Alloc(func(e *Entry) {
		e.Inumber = inumber
		e.Offset = offset
	})
	if !ok {
		return None
	}
	return h
}

// Remove frees handle h (spec §4.5: tfs_close).
func (t *Table) Remove(h int) {
	t.slots.Free(h)
}

// Get returns a stable pointer to handle h's entry, or nil if h is out of
// range. The caller must still confirm the handle is actually open (e.g. by
// taking e.Mu and checking e.Inumber != None) before trusting its contents.
func (t *Table) Get(h int) *Entry {
	return t.slots.Get(h)
}

// IsOpen reports whether some entry currently references inumber (spec
// §4.1: is_file_open). Range already holds the table's allocation lock for
// the whole scan, so this reads each entry's Inumber directly rather than
// also taking Entry.Mu, mirroring operations.c's is_file_open, which reads
// of_inumber under the allocation lock only, with no per-entry lock. Close
// takes Entry.Mu before the table lock (entry-then-table); an Inumber write
// it makes while holding only Entry.Mu is still visible here because that
// write precedes Close's own later Lock of the table mutex (inside Remove)
// in program order, and Go's memory model propagates everything
// sequenced-before an Unlock to the next Lock of that same mutex. Taking
// Entry.Mu here too, inside the table lock, would instead deadlock against
// Close's opposite acquisition order.
func (t *Table) IsOpen(inumber int) bool {
	open := false
	t.slots.Range(func(i int) bool {
		if e := t.slots.Get(i); e.Inumber == inumber {
			open = true
		}
		return !open
	})
	return open
}

// Count returns the number of currently open handles, for
// internal/metrics's allocation gauges.
func (t *Table) Count() int {
	return t.slots.Count()
}
