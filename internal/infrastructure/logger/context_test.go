package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func contextWithSpan() context.Context {
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10},
		SpanID:     trace.SpanID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), spanCtx)
}

func TestWithContext(t *testing.T) {
	log := zap.NewExample()
	ctx := WithContext(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))
}

func TestFromContext_NotFound(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestContextIdentifiers(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetJobID(ctx))
	_, ok := GetOwnerID(ctx)
	assert.False(t, ok)

	ctx = WithRequestID(ctx, "req-1")
	ctx = WithOwnerID(ctx, 7)
	ctx = WithJobID(ctx, "job-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "job-1", GetJobID(ctx))
	ownerID, ok := GetOwnerID(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(7), ownerID)
}

func TestGetTraceID(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", GetTraceID(contextWithSpan()))
}

func TestContextLogger_EnrichesEntries(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	ctx := WithContext(contextWithSpan(), zap.New(core))
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithOwnerID(ctx, 7)
	ctx = WithJobID(ctx, "job-1")

	L(ctx).Info("Render job completed", zap.String("storage_key", "pdfs/Report.pdf"))

	logs := recorded.All()
	require.Len(t, logs, 1)
	fields := logs[0].ContextMap()
	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", fields["trace_id"])
	assert.Equal(t, "0102030405060708", fields["span_id"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, int64(7), fields["owner_id"])
	assert.Equal(t, "job-1", fields["job_id"])
	assert.Equal(t, "pdfs/Report.pdf", fields["storage_key"])
}

func TestContextLogger_PlainContext(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)

	WithLogger(context.Background(), zap.New(core)).Warn("plain")

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Empty(t, logs[0].Context)
	assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
}

func TestContextLogger_LevelsAndWith(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	cl := WithLogger(context.Background(), zap.New(core)).With(zap.String("component", "pipeline"))

	cl.Debug("d")
	cl.Info("i")
	cl.Warn("w")
	cl.Error("e")

	logs := recorded.All()
	require.Len(t, logs, 4)
	for _, entry := range logs {
		assert.Equal(t, "pipeline", entry.ContextMap()["component"])
	}
	assert.NotNil(t, cl.Zap())
}

func TestContextLogger_NilLogger(t *testing.T) {
	cl := WithLogger(context.Background(), nil)
	assert.NotPanics(t, func() {
		cl.Info("dropped")
		cl.With(zap.Int("n", 1)).Error("dropped")
	})
}
