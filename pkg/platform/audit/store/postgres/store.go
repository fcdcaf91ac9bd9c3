package postgres

import (
	"context"
	"database/sql"
	"fmt"

	audit "healthsphere/pkg/platform/audit"

	"github.com/google/uuid"
)

const selectColumns = `
		SELECT category, created_at, action, doctor_id, license_number,
			   actor_id, decision, reason, score, request_id
		FROM audit_events`

// Store implements audit.Store using PostgreSQL.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append inserts an audit event into the audit_events table.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	return s.AppendWithID(ctx, uuid.New(), event)
}

// AppendWithID inserts an audit event with a specific ID (for idempotent inserts).
func (s *Store) AppendWithID(ctx context.Context, eventID uuid.UUID, event audit.Event) error {
	query := `
		INSERT INTO audit_events (
			id, category, created_at, action, doctor_id, license_number,
			actor_id, decision, reason, score, request_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`

	var score sql.NullInt64
	if event.Score != nil {
		score = sql.NullInt64{Int64: int64(*event.Score), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		eventID,
		string(event.Category),
		event.Timestamp,
		event.Action,
		event.DoctorID,
		event.LicenseNumber,
		event.ActorID,
		event.Decision,
		event.Reason,
		score,
		event.RequestID,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByDoctor returns events for a specific doctor, newest first.
func (s *Store) ListByDoctor(ctx context.Context, doctorID string) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+`
		WHERE doctor_id = $1
		ORDER BY created_at DESC`, doctorID)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListRecent returns the N most recent events.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+`
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]audit.Event, error) {
	var events []audit.Event

	for rows.Next() {
		var (
			category string
			score    sql.NullInt64
			event    audit.Event
		)

		err := rows.Scan(
			&category,
			&event.Timestamp,
			&event.Action,
			&event.DoctorID,
			&event.LicenseNumber,
			&event.ActorID,
			&event.Decision,
			&event.Reason,
			&score,
			&event.RequestID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}

		event.Category = audit.EventCategory(category)
		if score.Valid {
			v := int(score.Int64)
			event.Score = &v
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}

	return events, nil
}
