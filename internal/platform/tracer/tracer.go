// Package tracer is the span API used by the verification pipeline and the
// assistant flows. Services depend on Tracer; only otel.go imports OpenTelemetry.
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, marking it failed when err is non-nil.
	// End must be called exactly once.
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool creates a boolean attribute.
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int creates an integer attribute.
func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names. Assistant flow spans are "flows." + the flow name.
const (
	SpanFlowPrefix   = "flows."
	SpanVerification = "verification.request"
	SpanLookup       = "verification.registry_lookup"
	SpanAssessment   = "verification.assessment"
	SpanPolicy       = "verification.policy"
)

// Attribute keys. License numbers are always hashed or redacted.
const (
	AttrLicenseHash = "license.hash"
	AttrRegistry    = "registry.name"
	AttrRegistered  = "registry.registered"
	AttrMIMEType    = "document.mime_type"
	AttrDocBytes    = "document.bytes"
	AttrScore       = "outcome.score"
	AttrBand        = "outcome.band"
	AttrFlagCount   = "assessment.flags"
	AttrFlow        = "flow.name"
	AttrOutcome     = "flow.outcome"
)

// Event names.
const (
	EventAuditEmitted = "audit.emitted"
)
