package audit

import (
	"context"
	"log/slog"

	"healthsphere/pkg/requestcontext"
)

// Emitter is the interface for audit event emission.
// Satisfied by publisher.Publisher.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// Logger writes an audit line to the structured log and emits the event.
// Services use it so audit calls look the same everywhere.
type Logger struct {
	textLogger *slog.Logger
	emitter    Emitter
}

// NewLogger creates an audit logger. emitter may be nil.
func NewLogger(textLogger *slog.Logger, emitter Emitter) *Logger {
	return &Logger{
		textLogger: textLogger,
		emitter:    emitter,
	}
}

// Record logs and emits event. Category, request ID and admin actor are filled in
// from action and ctx.
// Emission failures are logged, never returned.
func (l *Logger) Record(ctx context.Context, action AuditEvent, event Event) {
	if l == nil {
		return
	}
	event.Action = string(action)
	event.Category = action.Category()
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ActorID == "" {
		event.ActorID = requestcontext.AdminActorID(ctx)
	}

	l.logToText(ctx, event)

	if l.emitter == nil {
		return
	}
	if err := l.emitter.Emit(ctx, event); err != nil && l.textLogger != nil {
		l.textLogger.ErrorContext(ctx, "failed to emit audit event",
			"error", err,
			"event", event.Action,
		)
	}
}

func (l *Logger) logToText(ctx context.Context, event Event) {
	if l.textLogger == nil {
		return
	}
	args := []any{
		"event", event.Action,
		"log_type", "audit",
		"category", string(event.Category),
	}
	if event.DoctorID != "" {
		args = append(args, "doctor_id", event.DoctorID)
	}
	if event.LicenseNumber != "" {
		args = append(args, "license", event.LicenseNumber)
	}
	if event.Decision != "" {
		args = append(args, "decision", event.Decision)
	}
	if event.Score != nil {
		args = append(args, "score", *event.Score)
	}
	if event.ActorID != "" {
		args = append(args, "actor_id", event.ActorID)
	}
	if event.RequestID != "" {
		args = append(args, "request_id", event.RequestID)
	}
	l.textLogger.InfoContext(ctx, event.Action, args...)
}
