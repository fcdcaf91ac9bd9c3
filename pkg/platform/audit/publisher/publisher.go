package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	dErrors "healthsphere/pkg/domain-errors"
	audit "healthsphere/pkg/platform/audit"
	"healthsphere/pkg/platform/audit/metrics"
)

// NamedSink is a secondary destination that receives a copy of every event.
type NamedSink struct {
	Name string
	Sink audit.Sink
}

// Publisher captures structured audit events. It is append-only: the store is
// authoritative and sinks get best-effort copies.
type Publisher struct {
	store   audit.Store
	sinks   []NamedSink
	events  chan audit.Event
	wg      sync.WaitGroup
	logger  *slog.Logger
	metrics *metrics.Metrics
	async   bool
	now     func() time.Time

	// mu orders sends on events against Close; closed is guarded by mu.
	mu     sync.RWMutex
	closed bool
}

// PublisherOption configures the Publisher.
type PublisherOption func(*Publisher)

// WithAsyncBuffer enables async processing with the specified buffer size.
// Events are queued and persisted in a background goroutine.
func WithAsyncBuffer(size int) PublisherOption {
	return func(p *Publisher) {
		if size > 0 {
			p.events = make(chan audit.Event, size)
			p.async = true
		}
	}
}

// WithPublisherLogger sets a logger for async error reporting.
func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithSink mirrors every event to sink, for example a Kafka topic.
func WithSink(name string, sink audit.Sink) PublisherOption {
	return func(p *Publisher) {
		if sink != nil {
			p.sinks = append(p.sinks, NamedSink{Name: name, Sink: sink})
		}
	}
}

// WithMetrics records queue and persistence metrics.
func WithMetrics(m *metrics.Metrics) PublisherOption {
	return func(p *Publisher) {
		p.metrics = m
	}
}

func NewPublisher(store audit.Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{store: store, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	if p.async {
		p.wg.Add(1)
		go p.processEvents()
	}
	return p
}

// processEvents runs in a goroutine and persists events from the channel.
func (p *Publisher) processEvents() {
	defer p.wg.Done()
	for event := range p.events {
		if p.metrics != nil {
			p.metrics.QueueDepth.Set(float64(len(p.events)))
		}
		if err := p.persist(context.Background(), event); err != nil && p.logger != nil {
			p.logger.Error("failed to persist audit event",
				"error", err,
				"action", event.Action,
				"doctor_id", event.DoctorID,
			)
		}
	}
}

// persist writes to the store, then copies to each sink. Only a store failure
// is returned; sink failures are logged and counted.
func (p *Publisher) persist(ctx context.Context, event audit.Event) error {
	start := p.now()
	err := p.store.Append(ctx, event)
	if p.metrics != nil {
		p.metrics.PersistDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			p.metrics.PersistFailures.WithLabelValues("store").Inc()
		} else {
			p.metrics.EventsProcessed.Inc()
		}
	}

	for _, s := range p.sinks {
		if sinkErr := s.Sink.Append(ctx, event); sinkErr != nil {
			if p.metrics != nil {
				p.metrics.PersistFailures.WithLabelValues(s.Name).Inc()
			}
			if p.logger != nil {
				p.logger.Warn("failed to mirror audit event",
					"sink", s.Name,
					"error", sinkErr,
					"action", event.Action,
				)
			}
		}
	}
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// Close shuts down the async publisher and waits for pending events to drain.
// Emit calls after Close return an error instead of sending.
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.async && p.events != nil {
		close(p.events)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Publisher) Emit(ctx context.Context, base audit.Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = p.now().UTC()
	}
	if !p.async {
		return p.persist(ctx, base)
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		if p.metrics != nil {
			p.metrics.EventsDropped.Inc()
		}
		return dErrors.New(dErrors.CodeInternal, "audit publisher is closed")
	}
	// Non-blocking send with context cancellation support
	select {
	case p.events <- base:
		if p.metrics != nil {
			p.metrics.EventsEnqueued.Inc()
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		if p.metrics != nil {
			p.metrics.EventsDropped.Inc()
		}
		if p.logger != nil {
			p.logger.Warn("audit buffer full, event dropped",
				"action", base.Action,
				"doctor_id", base.DoctorID,
			)
		}
		return dErrors.New(dErrors.CodeInternal, "audit buffer full")
	}
}

// ListByDoctor returns a doctor's audit trail, newest first.
func (p *Publisher) ListByDoctor(ctx context.Context, doctorID string) ([]audit.Event, error) {
	return p.store.ListByDoctor(ctx, doctorID)
}

// ListRecent returns the most recent events across all doctors.
func (p *Publisher) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	return p.store.ListRecent(ctx, limit)
}
