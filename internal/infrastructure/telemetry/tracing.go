package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name for pipeline spans
const TracerName = "github.com/kitcha/docrender"

// Pipeline span names
const (
	SpanRender  = "document.render"
	SpanCompose = "document.compose"
	SpanStore   = "document.store"
	SpanFetch   = "document.fetch"
)

// Span attribute keys
var (
	AttrOwnerID    = attribute.Key("document.owner_id")
	AttrJobID      = attribute.Key("document.job_id")
	AttrStorageKey = attribute.Key("document.storage_key")
	AttrSizeBytes  = attribute.Key("document.size_bytes")
	AttrErrorCode  = attribute.Key("document.error_code")
)

// StartSpan starts an internal span from the global tracer provider.
// The caller must call span.End().
//
//	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanCompose, telemetry.AttrOwnerID.Int64(id))
//	defer span.End()
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	opts := []trace.SpanStartOption{trace.WithSpanKind(trace.SpanKindInternal)}
	if len(attrs) > 0 {
		opts = append(opts, trace.WithAttributes(attrs...))
	}
	return otel.GetTracerProvider().Tracer(TracerName).Start(ctx, name, opts...)
}

// RecordError records err on span and marks it failed. A nil err is ignored.
func RecordError(span trace.Span, err error, attrs ...attribute.KeyValue) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err, trace.WithAttributes(attrs...))
	span.SetStatus(codes.Error, err.Error())
}

// SetOK marks the span as successful.
func SetOK(span trace.Span) {
	if span == nil {
		return
	}
	span.SetStatus(codes.Ok, "")
}
