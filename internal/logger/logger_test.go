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
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelOfSeverity(t *testing.T) {
	assert.Equal(t, levelTrace, levelOfSeverity(LevelTrace))
	assert.Equal(t, slog.LevelDebug, levelOfSeverity(LevelDebug))
	assert.Equal(t, slog.LevelInfo, levelOfSeverity(LevelInfo))
	assert.Equal(t, slog.LevelWarn, levelOfSeverity(LevelWarning))
	assert.Equal(t, slog.LevelError, levelOfSeverity(LevelError))
	assert.Equal(t, levelOff, levelOfSeverity(LevelOff))
	assert.Equal(t, slog.LevelInfo, levelOfSeverity("nonsense"))
}

func TestSetLoggingLevel(t *testing.T) {
	var v slog.LevelVar
	setLoggingLevel(LevelError, &v)
	assert.Equal(t, slog.LevelError, v.Level())
}

func TestSeverityOf(t *testing.T) {
	assert.Equal(t, "TRACE", severityOf(levelTrace))
	assert.Equal(t, "DEBUG", severityOf(slog.LevelDebug))
	assert.Equal(t, "INFO", severityOf(slog.LevelInfo))
	assert.Equal(t, "WARNING", severityOf(slog.LevelWarn))
	assert.Equal(t, "ERROR", severityOf(slog.LevelError))
}

func TestCreateJsonOrTextHandler_FormatSelectsImplementation(t *testing.T) {
	textFactory := &loggerFactory{format: "text", level: new(slog.LevelVar)}
	jsonFactory := &loggerFactory{format: "json", level: new(slog.LevelVar)}

	_, textIsJSON := textFactory.createJsonOrTextHandler(nil, textFactory.level, "").(*slog.JSONHandler)
	assert.False(t, textIsJSON)

	_, jsonIsJSON := jsonFactory.createJsonOrTextHandler(nil, jsonFactory.level, "").(*slog.JSONHandler)
	assert.True(t, jsonIsJSON)
}

func TestDoesNotPanicWhenLoggingAtEachLevel(t *testing.T) {
	assert.NotPanics(t, func() {
		Tracef("trace %d", 1)
		Debugf("debug %d", 2)
		Infof("info %d", 3)
		Warnf("warn %d", 4)
		Errorf("error %d", 5)
	})
}
