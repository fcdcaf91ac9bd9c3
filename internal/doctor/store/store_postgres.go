package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	verification "healthsphere/contracts/verification"
	"healthsphere/internal/doctor/models"
	"healthsphere/internal/sentinel"
	id "healthsphere/pkg/domain"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

const doctorColumns = `id, full_name, email, phone, specialization, license_number,
	experience_years, clinic_name, is_verified, verification_status, created_at, updated_at`

// PostgresStore persists doctors and verification attempts in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed doctor store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *PostgresStore) Create(ctx context.Context, d *models.Doctor) error {
	return insertDoctor(ctx, s.db, d)
}

// CreateWithAttempt inserts the doctor and their first attempt in one
// transaction.
func (s *PostgresStore) CreateWithAttempt(ctx context.Context, d *models.Doctor, a *models.Attempt) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin signup tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertDoctor(ctx, tx, d); err != nil {
		return err
	}
	if err := insertAttempt(ctx, tx, a); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit signup tx: %w", err)
	}
	return nil
}

func insertDoctor(ctx context.Context, db execer, d *models.Doctor) error {
	query := `INSERT INTO doctors (` + doctorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := db.ExecContext(ctx, query,
		uuid.UUID(d.ID), d.FullName, d.Email, d.Phone, d.Specialization, string(d.LicenseNumber),
		d.ExperienceYears, d.ClinicName, d.IsVerified, string(d.VerificationStatus), d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert doctor: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, doctorID id.DoctorID) (*models.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = $1`
	d, err := scanDoctor(s.db.QueryRowContext(ctx, query, uuid.UUID(doctorID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find doctor: %w", err)
	}
	return d, nil
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE lower(email) = lower($1)`
	d, err := scanDoctor(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find doctor by email: %w", err)
	}
	return d, nil
}

func (s *PostgresStore) Update(ctx context.Context, d *models.Doctor) error {
	query := `
		UPDATE doctors
		SET full_name = $2, phone = $3, specialization = $4, license_number = $5,
			experience_years = $6, clinic_name = $7, is_verified = $8,
			verification_status = $9, updated_at = $10
		WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(d.ID), d.FullName, d.Phone, d.Specialization, string(d.LicenseNumber),
		d.ExperienceYears, d.ClinicName, d.IsVerified, string(d.VerificationStatus), d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update doctor: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update doctor: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CountAwaitingReview(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM doctors WHERE verification_status IN ($1, $2)`
	var n int
	if err := s.db.QueryRowContext(ctx, query, reviewStatusArgs()...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count doctors awaiting review: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) ListAwaitingReview(ctx context.Context, limit int) ([]*models.Doctor, error) {
	query := `SELECT ` + doctorColumns + `
		FROM doctors
		WHERE verification_status IN ($1, $2)
		ORDER BY created_at ASC
		LIMIT $3`
	rows, err := s.db.QueryContext(ctx, query, append(reviewStatusArgs(), limit)...)
	if err != nil {
		return nil, fmt.Errorf("list doctors awaiting review: %w", err)
	}
	defer rows.Close()

	var out []*models.Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate doctors: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) SaveAttempt(ctx context.Context, a *models.Attempt) error {
	return insertAttempt(ctx, s.db, a)
}

func insertAttempt(ctx context.Context, db execer, a *models.Attempt) error {
	query := `
		INSERT INTO verification_attempts (id, doctor_id, license_number, score, summary, band, accepted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := db.ExecContext(ctx, query,
		uuid.UUID(a.ID), uuid.UUID(a.DoctorID), string(a.LicenseNumber),
		a.Score, a.Summary, string(a.Band), a.Accepted, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert verification attempt: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListAttempts(ctx context.Context, doctorID id.DoctorID) ([]*models.Attempt, error) {
	query := `
		SELECT id, doctor_id, license_number, score, summary, band, accepted, created_at
		FROM verification_attempts
		WHERE doctor_id = $1
		ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(doctorID))
	if err != nil {
		return nil, fmt.Errorf("list verification attempts: %w", err)
	}
	defer rows.Close()

	var out []*models.Attempt
	for rows.Next() {
		var (
			a         models.Attempt
			attemptID uuid.UUID
			docID     uuid.UUID
			license   string
			band      string
		)
		if err := rows.Scan(&attemptID, &docID, &license, &a.Score, &a.Summary, &band, &a.Accepted, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan verification attempt: %w", err)
		}
		a.ID = id.AttemptID(attemptID)
		a.DoctorID = id.DoctorID(docID)
		a.LicenseNumber = id.LicenseNumber(license)
		a.Band = verification.Band(band)
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verification attempts: %w", err)
	}
	return out, nil
}

// reviewStatusArgs lists the statuses for which Status.AwaitingReview is true.
func reviewStatusArgs() []any {
	return []any{string(models.StatusVerificationFailed), string(models.StatusPendingReview)}
}

func scanDoctor(row rowScanner) (*models.Doctor, error) {
	var (
		d        models.Doctor
		doctorID uuid.UUID
		license  string
		status   string
	)
	err := row.Scan(&doctorID, &d.FullName, &d.Email, &d.Phone, &d.Specialization, &license,
		&d.ExperienceYears, &d.ClinicName, &d.IsVerified, &status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.ID = id.DoctorID(doctorID)
	d.LicenseNumber = id.LicenseNumber(license)
	d.VerificationStatus = models.Status(status)
	return &d, nil
}
