package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "healthsphere/pkg/platform/audit"
)

func TestFilter(t *testing.T) {
	event := audit.Event{DoctorID: "doc-1", Category: audit.CategoryCompliance}

	t.Run("empty filter matches everything", func(t *testing.T) {
		assert.True(t, filter{}.match(event))
	})
	t.Run("doctor filter", func(t *testing.T) {
		assert.True(t, filter{doctorID: "doc-1"}.match(event))
		assert.False(t, filter{doctorID: "doc-2"}.match(event))
	})
	t.Run("category filter", func(t *testing.T) {
		assert.True(t, filter{category: audit.CategoryCompliance}.match(event))
		assert.False(t, filter{category: audit.CategorySecurity}.match(event))
	})
}

func TestDecode(t *testing.T) {
	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	event, ok := decode([]byte(`{"action":"doctor_verified","doctor_id":"doc-1","category":"compliance"}`), log)
	require.True(t, ok)
	assert.Equal(t, "doctor_verified", event.Action)
	assert.Equal(t, "doc-1", event.DoctorID)

	_, ok = decode([]byte(`not json`), log)
	assert.False(t, ok)
}

func TestRunRequiresBrokers(t *testing.T) {
	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	err := run(context.Background(), options{topic: "healthsphere.audit"}, &bytes.Buffer{}, log)
	assert.ErrorContains(t, err, "no kafka brokers")
}
