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

// Package importer implements copy_from_external_fs (spec §6): an external
// collaborator that streams a host file into a TFS file, strictly through
// the public internal/tfs API (spec §1 lists this as explicitly out of the
// core's scope). The chunked-copy loop is grounded on common/copy_whole.go's
// copyBuffer, adapted from an io.Writer destination to tfs.State.Write
// calls bounded by the filesystem's block size.
package importer

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/tecnicofs/tfs/internal/logger"
	"github.com/tecnicofs/tfs/internal/tfs"
)

// CopyFromExternalFS streams the contents of the host file at srcPath into
// a freshly created (or truncated) TFS file at dstPath, chunked to the
// filesystem's configured block size (every write is bounded to at most one
// data block, per spec §4.6's "no cross-block writes"). Returns the number
// of bytes copied.
func CopyFromExternalFS(ctx context.Context, s *tfs.State, srcPath, dstPath string, blockSize int) (int64, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	handle, err := s.Open(ctx, dstPath, tfs.CREAT|tfs.TRUNC)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := s.Close(ctx, handle); cerr != nil {
			logger.Warnf("importer: failed to close %s after copy: %v", dstPath, cerr)
		}
	}()

	if blockSize <= 0 {
		blockSize = 4096
	}

	var total int64
	buf := make([]byte, blockSize)
	for {
		nr, rerr := src.Read(buf)
		if nr > 0 {
			written, werr := copyChunk(ctx, s, handle, buf[:nr])
			total += int64(written)
			if werr != nil {
				return total, werr
			}
			if written != nr {
				return total, errors.New("importer: short write into tfs destination")
			}
		}
		if rerr != nil {
			if rerr == io.EOF {
				break
			}
			return total, rerr
		}
	}

	logger.Infof("importer: copied %d bytes from %s to %s", total, srcPath, dstPath)
	return total, nil
}

// copyChunk writes chunk to handle in sub-block_size pieces, since
// tfs.Write itself caps a single call at block_size - offset bytes.
func copyChunk(ctx context.Context, s *tfs.State, handle int, chunk []byte) (int, error) {
	written := 0
	for written < len(chunk) {
		n, err := s.Write(ctx, handle, chunk[written:])
		if err != nil {
			return written, err
		}
		if n == 0 {
			return written, errors.New("importer: tfs.Write made no progress")
		}
		written += n
	}
	return written, nil
}
