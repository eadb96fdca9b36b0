package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
var (
	AttrOutcome   = attribute.Key("outcome")
	AttrErrorType = attribute.Key("error_code")
	AttrStage     = attribute.Key("stage")
)

// Outcomes recorded on render and fetch counters
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeNotFound = "not_found"
)

// RenderMetrics holds the render pipeline instruments.
type RenderMetrics struct {
	renderTotal   *Counter
	fetchTotal    *Counter
	stageDuration *Histogram
	documentSize  *Histogram
}

// NewRenderMetrics creates the pipeline instruments on meter.
func NewRenderMetrics(meter metric.Meter) (*RenderMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	renderTotal, err := NewCounter(meter,
		"docrender_render_jobs_total",
		"Render jobs finished, by outcome and error code",
		"{job}")
	if err != nil {
		return nil, err
	}

	fetchTotal, err := NewCounter(meter,
		"docrender_fetch_total",
		"Document fetches, by outcome",
		"{request}")
	if err != nil {
		return nil, err
	}

	stageDuration, err := NewHistogram(meter, HistogramOpts{
		Name:        "docrender_stage_duration_seconds",
		Description: "Latency of the compose and store stages",
		Unit:        "s",
		Boundaries:  RenderDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	documentSize, err := NewHistogram(meter, HistogramOpts{
		Name:        "docrender_document_size_bytes",
		Description: "Size of composed PDF documents",
		Unit:        "By",
		Boundaries:  DocumentSizeBuckets,
	})
	if err != nil {
		return nil, err
	}

	return &RenderMetrics{
		renderTotal:   renderTotal,
		fetchTotal:    fetchTotal,
		stageDuration: stageDuration,
		documentSize:  documentSize,
	}, nil
}

// RecordRender counts a finished render job. errorCode is empty on success.
func (m *RenderMetrics) RecordRender(ctx context.Context, errorCode string) {
	if m == nil {
		return
	}
	if errorCode == "" {
		m.renderTotal.Inc(ctx, AttrOutcome.String(OutcomeSuccess))
		return
	}
	m.renderTotal.Inc(ctx, AttrOutcome.String(OutcomeFailure), AttrErrorType.String(errorCode))
}

// RecordStage records the latency of a pipeline stage ("compose" or "store").
func (m *RenderMetrics) RecordStage(ctx context.Context, stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.RecordDuration(ctx, d, AttrStage.String(stage))
}

// RecordDocumentSize records the size of a composed document.
func (m *RenderMetrics) RecordDocumentSize(ctx context.Context, size int) {
	if m == nil {
		return
	}
	m.documentSize.Record(ctx, float64(size))
}

// RecordFetch counts a fetch by outcome.
func (m *RenderMetrics) RecordFetch(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.fetchTotal.Inc(ctx, AttrOutcome.String(outcome))
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewRenderMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
