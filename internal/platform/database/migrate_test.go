package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsOrdered(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, "migrations/0001_doctors.sql", migrations[0].Name)
	assert.Contains(t, migrations[0].SQL, "CREATE TABLE IF NOT EXISTS doctors")
	assert.Contains(t, migrations[1].SQL, "audit_events")
}

func TestMigrate(t *testing.T) {
	t.Run("applies all scripts in one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS doctors")).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS audit_events")).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		require.NoError(t, Migrate(context.Background(), db))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))
		mock.ExpectRollback()

		err = Migrate(context.Background(), db)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "0001_doctors.sql")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPoolHealth(t *testing.T) {
	var nilPool *Pool
	assert.Error(t, nilPool.Health(context.Background()))
	assert.NoError(t, nilPool.Close())

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing()
	mock.ExpectClose()

	pool := FromDB(db)
	assert.NoError(t, pool.Health(context.Background()))
	assert.NoError(t, pool.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewWithoutURLZeroConfig(t *testing.T) {
	pool, err := New(context.Background(), Config{}, nil)
	assert.NoError(t, err)
	assert.Nil(t, pool)
}
