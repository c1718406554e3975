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

// Package logger is TecnicoFS's structured logger: a thin, leveled wrapper
// around log/slog with a TRACE level below slog's own Debug, a text or JSON
// line format, and an optional rotating file sink. It mirrors the shape
// observable in the teacher's internal/logger/logger_test.go: a
// loggerFactory holding the chosen format/level/output, a
// createJsonOrTextHandler constructor, and package-level severity functions.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/tecnicofs/tfs/cfg"
)

// Severity levels. slog reserves -4/0/4/8 for Debug/Info/Warn/Error; TRACE
// sits one notch below Debug and OFF sits above Error, disabling everything.
const (
	levelTrace = slog.Level(-8)
	levelOff   = slog.Level(12)
)

const (
	LevelTrace   = "TRACE"
	LevelDebug   = "DEBUG"
	LevelInfo    = "INFO"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
	LevelOff     = "OFF"
)

func severityOf(l slog.Level) string {
	switch {
	case l <= levelTrace:
		return "TRACE"
	case l <= slog.LevelDebug:
		return "DEBUG"
	case l <= slog.LevelInfo:
		return "INFO"
	case l <= slog.LevelWarn:
		return "WARNING"
	default:
		return "ERROR"
	}
}

// levelOfSeverity maps a configured severity name to the slog.Level below
// which records are dropped.
func levelOfSeverity(severity string) slog.Level {
	switch severity {
	case LevelTrace:
		return levelTrace
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelOff:
		return levelOff
	default:
		return slog.LevelInfo
	}
}

// setLoggingLevel updates programLevel to match the named severity.
func setLoggingLevel(severity string, programLevel *slog.LevelVar) {
	programLevel.Set(levelOfSeverity(severity))
}

// loggerFactory owns the writer and format a process-wide defaultLogger is
// built from, so that Init can be called again (e.g. after a config reload)
// without leaking the previous file handle.
type loggerFactory struct {
	format    string
	level     *slog.LevelVar
	file      *os.File
	sysWriter io.Writer
}

func (f *loggerFactory) createJsonOrTextHandler(w io.Writer, level *slog.LevelVar, prefix string) slog.Handler {
	replace := func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.LevelKey {
			a.Key = "severity"
			a.Value = slog.StringValue(severityOf(a.Value.Any().(slog.Level)))
		}
		if a.Key == slog.MessageKey && prefix != "" {
			a.Value = slog.StringValue(prefix + a.Value.String())
		}
		return a
	}

	opts := &slog.HandlerOptions{Level: level, ReplaceAttr: replace}
	if f.format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

var (
	defaultLoggerFactory = &loggerFactory{format: "text", level: new(slog.LevelVar)}
	defaultLogger        = slog.New(defaultLoggerFactory.createJsonOrTextHandler(os.Stderr, defaultLoggerFactory.level, ""))
)

// Init (re)configures the process-wide default logger from a
// cfg.LoggingConfig: severity threshold, text/json format, and either
// stderr or a rotating file sink (via AsyncLogger + lumberjack).
func Init(c cfg.LoggingConfig) error {
	factory := &loggerFactory{format: c.Format, level: new(slog.LevelVar)}
	setLoggingLevel(c.Severity, factory.level)

	var w io.Writer = os.Stderr
	if c.FilePath != "" {
		async := NewAsyncLoggerToFile(c.FilePath, c.LogRotate, 1024)
		factory.sysWriter = async
		w = async
	}

	prev := defaultLoggerFactory
	defaultLoggerFactory = factory
	defaultLogger = slog.New(factory.createJsonOrTextHandler(w, factory.level, ""))
	if c, ok := prev.sysWriter.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func log(ctx context.Context, level slog.Level, format string, args ...any) {
	if !defaultLogger.Enabled(ctx, level) {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	defaultLogger.Log(ctx, level, msg)
}

func Tracef(format string, args ...any) { log(context.Background(), levelTrace, format, args...) }
func Debugf(format string, args ...any) { log(context.Background(), slog.LevelDebug, format, args...) }
func Infof(format string, args ...any)  { log(context.Background(), slog.LevelInfo, format, args...) }
func Warnf(format string, args ...any)  { log(context.Background(), slog.LevelWarn, format, args...) }
func Errorf(format string, args ...any) { log(context.Background(), slog.LevelError, format, args...) }

// elapsedSince returns the time elapsed since start.
func elapsedSince(start time.Time) time.Duration {
	return time.Since(start)
}
