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

// Package block holds the fixed-size data block pool (spec §3/§4.1): "a
// fixed-size byte buffer of length block_size". A file or symlink occupies
// at most one block; the root directory's single block is reinterpreted by
// internal/dirent as an array of directory entries.
package block

// Block is one slot of the data block pool. Its bytes are guarded by the
// owning inode's rwlock, never by a lock of their own (spec §3: the inode's
// rwlock governs "the inode's fields and the bytes of its data block").
type Block struct {
	Data []byte
}

// Pool records the fixed size of the pool's blocks; it does not hold the
// blocks themselves.
type Pool struct {
	size int
}

// NewPool describes a pool of blocks of the given size; the blocks
// themselves live in an alloc.Table[Block] owned by internal/tfs.State, so
// that allocation/freeing goes through the same first-fit table lock as
// inodes and open-file entries (spec §4.1).
func NewPool(size int) *Pool {
	return &Pool{size: size}
}

// Init zero-fills b so it is ready to hold size bytes (spec §4.1: a
// directory's block is "zero-filled" on creation; a file/symlink block
// starts zeroed too since Go's zero value for []byte already is).
func (p *Pool) Init(b *Block) {
	b.Data = make([]byte, p.size)
}

// Size returns the fixed size in bytes of every block in the pool.
func (p *Pool) Size() int {
	return p.size
}
