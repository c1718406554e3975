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

// Package dirent implements component D: the root inode's data block,
// reinterpreted as an array of fixed (name, inumber) slots. Grounded on
// fs/inode/dir.go's LookUpChild/AddChild/RemoveChild linear-scan shape,
// generalized from a Go map of child inodes to the spec's flat byte-slice
// slot array.
package dirent

import "strings"

// None marks a free directory-entry slot (spec §3: "FREE iff inumber ==
// -1").
const None = -1

// Entry is one (name, inumber) slot. Name is never longer than
// cfg.MaxFileName-1 plus its terminating NUL is implied by Go's native
// string handling (no embedded NUL bookkeeping is needed in this port).
type Entry struct {
	Name    string
	Inumber int
}

// SlotCount returns how many directory-entry slots fit in a block of the
// given size (spec §3: "⌊block_size / sizeof(directory_entry)⌋ slots").
// TecnicoFS's C layout reserved 40 bytes for a name plus 4 for the inumber;
// this port keeps that same per-slot budget so SlotCount matches the
// spec's sizing intent when a caller plugs in cfg.MaxFileName-based sizes.
func SlotCount(blockSize, maxFileName int) int {
	slotSize := maxFileName + 4
	if slotSize <= 0 {
		return 0
	}
	return blockSize / slotSize
}

// Dir is a view over a directory's slots. The caller (internal/tfs) decides
// which lock protects the slice it passes in — typically the owning
// inode's write lock (spec §4.2: "the caller decides which lock protects
// them").
type Dir struct {
	Slots []Entry
}

// NewDir builds an empty Dir with n free slots.
func NewDir(n int) *Dir {
	slots := make([]Entry, n)
	for i := range slots {
		slots[i].Inumber = None
	}
	return &Dir{Slots: slots}
}

// Add writes name -> inumber into the first free slot. It rejects a name
// containing '/', a name of length >= maxFileName, a full directory, and
// — per spec §9's REDESIGN #5, which the spec explicitly permits as a
// tightening of the source's caller-must-ensure-uniqueness contract — a
// name that already has a live entry.
func (d *Dir) Add(name string, inumber int, maxFileName int) bool {
	if strings.Contains(name, "/") {
		return false
	}
	if len(name) == 0 || len(name) >= maxFileName {
		return false
	}
	if d.Find(name) != None {
		return false
	}

	for i := range d.Slots {
		if d.Slots[i].Inumber == None {
			d.Slots[i] = Entry{Name: name, Inumber: inumber}
			return true
		}
	}
	return false
}

// Find returns the inumber bound to name, or None if no slot matches (spec
// §4.2: "linear scan by name equality").
func (d *Dir) Find(name string) int {
	for _, e := range d.Slots {
		if e.Inumber != None && e.Name == name {
			return e.Inumber
		}
	}
	return None
}

// Clear frees the slot matching name, returning false if none matched.
func (d *Dir) Clear(name string) bool {
	for i := range d.Slots {
		if d.Slots[i].Inumber != None && d.Slots[i].Name == name {
			d.Slots[i] = Entry{Inumber: None}
			return true
		}
	}
	return false
}
