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

// Package metrics mirrors the teacher's common/otel_metrics.go: a small
// interface (Handle) with an OTel-backed implementation and a no-op one for
// tests, plus a Prometheus scrape endpoint via
// go.opentelemetry.io/otel/exporters/prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// FSOpKey annotates an operation counter/histogram with the verb that
// produced it (spec §4: open/close/read/write/link/symlink/unlink/stat).
const FSOpKey = "fs_op"

// GaugeReader lets the allocation tables (internal/alloc, via
// internal/tfs.State) report their current occupancy without internal/tfs
// importing the otel SDK directly.
type GaugeReader func() int64

// Handle is the interface internal/tfs calls on every operation. It mirrors
// the shape of the teacher's MetricHandle: OpsCount/OpsErrorCount/OpsLatency
// keyed by operation name.
type Handle interface {
	OpsCount(ctx context.Context, op string, inc int64)
	OpsErrorCount(ctx context.Context, op string, inc int64)
	OpsLatency(ctx context.Context, op string, latency time.Duration)
}

// RecordOp is a convenience wrapper the operation layer calls via defer:
// defer metrics.RecordOp(h, ctx, "write", time.Now(), &err)
func RecordOp(h Handle, ctx context.Context, op string, start time.Time, err *error) {
	h.OpsCount(ctx, op, 1)
	h.OpsLatency(ctx, op, time.Since(start))
	if err != nil && *err != nil {
		h.OpsErrorCount(ctx, op, 1)
	}
}

var opAttributeSets sync.Map

func getOpAttributeOption(op string) metric.MeasurementOption {
	if v, ok := opAttributeSets.Load(op); ok {
		return v.(metric.MeasurementOption)
	}
	opt := metric.WithAttributeSet(attribute.NewSet(attribute.String(FSOpKey, op)))
	v, _ := opAttributeSets.LoadOrStore(op, opt)
	return v.(metric.MeasurementOption)
}

// otelHandle is the real implementation, grounded on common/otel_metrics.go's
// otelMetrics: three otel instruments (a counter, an error counter, and a
// latency histogram), each broken down by the fs_op attribute.
type otelHandle struct {
	opsCount      metric.Int64Counter
	opsErrorCount metric.Int64Counter
	opsLatency    metric.Float64Histogram
}

func (o *otelHandle) OpsCount(ctx context.Context, op string, inc int64) {
	o.opsCount.Add(ctx, inc, getOpAttributeOption(op))
}

func (o *otelHandle) OpsErrorCount(ctx context.Context, op string, inc int64) {
	o.opsErrorCount.Add(ctx, inc, getOpAttributeOption(op))
}

func (o *otelHandle) OpsLatency(ctx context.Context, op string, latency time.Duration) {
	o.opsLatency.Record(ctx, float64(latency.Microseconds()), getOpAttributeOption(op))
}

// Gauges names the three occupancy callbacks NewOTelHandle wires into
// observable gauges (spec §3's three allocation tables).
type Gauges struct {
	Inodes    GaugeReader
	Blocks    GaugeReader
	OpenFiles GaugeReader
}

// NewOTelHandle builds a Handle backed by a fresh Prometheus registry. The
// returned http.Handler serves that registry's metrics for scraping; the
// returned shutdown function flushes the meter provider on process exit.
func NewOTelHandle(gauges Gauges) (Handle, http.Handler, func(context.Context) error, error) {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry), otelprom.WithoutTargetInfo())
	if err != nil {
		return nil, nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	meter := provider.Meter("tfs")

	opsCount, err1 := meter.Int64Counter("fs/ops_count", metric.WithDescription("Cumulative number of TecnicoFS operations processed."))
	opsErrorCount, err2 := meter.Int64Counter("fs/ops_error_count", metric.WithDescription("Cumulative number of TecnicoFS operations that returned an error."))
	opsLatency, err3 := meter.Float64Histogram("fs/ops_latency", metric.WithDescription("Distribution of TecnicoFS operation latencies."), metric.WithUnit("us"))

	_, err4 := meter.Int64ObservableGauge("fs/alloc_inodes_used", metric.WithDescription("Number of allocated inodes."),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			if gauges.Inodes != nil {
				o.Observe(gauges.Inodes())
			}
			return nil
		}))
	_, err5 := meter.Int64ObservableGauge("fs/alloc_blocks_used", metric.WithDescription("Number of allocated data blocks."),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			if gauges.Blocks != nil {
				o.Observe(gauges.Blocks())
			}
			return nil
		}))
	_, err6 := meter.Int64ObservableGauge("fs/alloc_open_files_used", metric.WithDescription("Number of open-file table entries in use."),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			if gauges.OpenFiles != nil {
				o.Observe(gauges.OpenFiles())
			}
			return nil
		}))

	if err := errors.Join(err1, err2, err3, err4, err5, err6); err != nil {
		return nil, nil, nil, err
	}

	h := &otelHandle{opsCount: opsCount, opsErrorCount: opsErrorCount, opsLatency: opsLatency}
	return h, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), provider.Shutdown, nil
}

// noopHandle discards everything; used by tests and by callers that don't
// configure a metrics endpoint (mirrors common/noop_metrics.go).
type noopHandle struct{}

// NewNoopHandle returns a Handle that does nothing.
func NewNoopHandle() Handle { return &noopHandle{} }

func (*noopHandle) OpsCount(context.Context, string, int64)              {}
func (*noopHandle) OpsErrorCount(context.Context, string, int64)         {}
func (*noopHandle) OpsLatency(context.Context, string, time.Duration)    {}
