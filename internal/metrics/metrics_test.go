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

package metrics

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopHandle_DoesNotPanic(t *testing.T) {
	h := NewNoopHandle()
	assert.NotPanics(t, func() {
		h.OpsCount(context.Background(), "write", 1)
		h.OpsErrorCount(context.Background(), "write", 1)
		h.OpsLatency(context.Background(), "write", time.Millisecond)
	})
}

func TestRecordOp_AcceptsNilAndNonNilErrors(t *testing.T) {
	h, _, shutdown, err := NewOTelHandle(Gauges{})
	require.NoError(t, err)
	defer shutdown(context.Background())

	var ok error
	RecordOp(h, context.Background(), "read", time.Now(), &ok)

	failing := errors.New("boom")
	RecordOp(h, context.Background(), "read", time.Now(), &failing)
}

func TestNewOTelHandle_ExposesPrometheusScrapeEndpoint(t *testing.T) {
	inodeCalls := 0
	h, handler, shutdown, err := NewOTelHandle(Gauges{
		Inodes: func() int64 { inodeCalls++; return 7 },
	})
	require.NoError(t, err)
	defer shutdown(context.Background())

	h.OpsCount(context.Background(), "stat", 3)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "fs_ops_count"))
	assert.True(t, strings.Contains(body, "fs_alloc_inodes_used"))
	assert.Greater(t, inodeCalls, 0)
}
