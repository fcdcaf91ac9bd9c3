package tracer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"healthsphere/internal/platform/tracer"
)

func TestNoopTracer(t *testing.T) {
	tr := tracer.NewNoop()
	ctx := context.Background()

	newCtx, span := tr.Start(ctx, tracer.SpanLookup, tracer.String(tracer.AttrRegistry, "PMDC"))
	assert.Equal(t, ctx, newCtx)
	require.NotNil(t, span)

	span.SetAttributes(tracer.Int(tracer.AttrScore, 95))
	span.AddEvent(tracer.EventAuditEmitted)
	span.End(errors.New("boom"))
}

func TestOTelTracerWithInjectedTracer(t *testing.T) {
	tr := tracer.NewOTel(tracer.WithOTelTracer(noop.NewTracerProvider().Tracer("test")))

	_, span := tr.Start(context.Background(), tracer.SpanAssessment,
		tracer.Bool(tracer.AttrRegistered, true),
		tracer.Duration("elapsed", 1500*time.Millisecond),
	)
	require.NotNil(t, span)
	span.SetAttributes(tracer.String(tracer.AttrBand, "verified"))
	span.End(nil)
}

func TestNewOTelDefaultsToGlobalProvider(t *testing.T) {
	tr := tracer.NewOTel()
	_, span := tr.Start(context.Background(), tracer.SpanPolicy)
	span.End(nil)
}

func TestToKeyValue(t *testing.T) {
	kv, ok := tracer.ExportToKeyValue(tracer.Attribute{Key: "flags", Value: []string{"blurry"}})
	require.True(t, ok)
	assert.Equal(t, "flags", string(kv.Key))
	assert.Equal(t, []string{"blurry"}, kv.Value.AsStringSlice())

	_, ok = tracer.ExportToKeyValue(tracer.Attribute{Key: "bad", Value: struct{}{}})
	assert.False(t, ok)
}
