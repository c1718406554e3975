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

package logger

import (
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tecnicofs/tfs/cfg"
)

// AsyncLogger decouples slog's synchronous Write call from the disk: log
// lines are pushed onto a buffered channel and drained by a single
// background goroutine into a lumberjack.Logger, so a slow rotate does not
// block the goroutine that logs until the channel's buffer is full; from
// then on Write blocks until the drain goroutine catches up.
type AsyncLogger struct {
	out     *lumberjack.Logger
	lines   chan []byte
	done    chan struct{}
	closeMu sync.Mutex
	closed  bool
}

// NewAsyncLoggerToFile builds an AsyncLogger rotating through path per rc,
// buffering up to bufferSize pending log lines before Write starts blocking
// the caller.
func NewAsyncLoggerToFile(path string, rc cfg.LogRotateLoggingConfig, bufferSize int) *AsyncLogger {
	out := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    rc.MaxFileSizeMB,
		MaxBackups: rc.BackupFileCount,
		Compress:   rc.Compress,
	}
	return NewAsyncLogger(out, bufferSize)
}

// NewAsyncLogger wraps any io.WriteCloser-like sink (here, specifically a
// *lumberjack.Logger, since that's the only rotation policy TecnicoFS
// supports) in a buffered async writer.
func NewAsyncLogger(out *lumberjack.Logger, bufferSize int) *AsyncLogger {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	a := &AsyncLogger{
		out:   out,
		lines: make(chan []byte, bufferSize),
		done:  make(chan struct{}),
	}
	go a.drain()
	return a
}

func (a *AsyncLogger) drain() {
	defer close(a.done)
	for line := range a.lines {
		// Best effort: a rotation failure shouldn't crash the writer
		// goroutine or back-pressure the rest of the process.
		_, _ = a.out.Write(line)
	}
}

// Write implements io.Writer. p is copied before being queued, since slog
// reuses its formatting buffer across calls.
func (a *AsyncLogger) Write(p []byte) (int, error) {
	line := make([]byte, len(p))
	copy(line, p)

	a.closeMu.Lock()
	closed := a.closed
	a.closeMu.Unlock()
	if closed {
		return 0, nil
	}

	a.lines <- line
	return len(p), nil
}

// Close stops accepting new lines and blocks until every already-queued
// line has been flushed to the underlying lumberjack.Logger.
func (a *AsyncLogger) Close() error {
	a.closeMu.Lock()
	if a.closed {
		a.closeMu.Unlock()
		return nil
	}
	a.closed = true
	a.closeMu.Unlock()

	close(a.lines)
	<-a.done
	return a.out.Close()
}
