package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistryServer(t *testing.T, status int, body string) (*httptest.Server, *http.Request) {
	t.Helper()
	var captured http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = *r.Clone(context.Background())
		var req lookupRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		captured.Header.Set("X-Test-License", req.LicenseNumber)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestHTTPRegistryLookup(t *testing.T) {
	t.Run("registered license", func(t *testing.T) {
		srv, captured := newRegistryServer(t, http.StatusOK,
			`{"license_number":"PMC-12345","doctor_name":" Dr. Ayesha Khan ","registered":true,"checked_at":"2026-01-02T03:04:05Z"}`)
		reg := NewHTTP(HTTPConfig{BaseURL: srv.URL + "/", APIKey: "secret"})

		res, err := reg.Lookup(context.Background(), "PMC-12345")
		require.NoError(t, err)
		assert.True(t, res.Registered)
		assert.Equal(t, "Dr. Ayesha Khan", res.MatchedName)
		assert.Equal(t, DefaultName, res.Registry)
		assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), res.CheckedAt)

		assert.Equal(t, http.MethodPost, captured.Method)
		assert.Equal(t, "/api/v1/licenses/lookup", captured.URL.Path)
		assert.Equal(t, "secret", captured.Header.Get("X-API-Key"))
		assert.Equal(t, "PMC-12345", captured.Header.Get("X-Test-License"))
	})

	t.Run("explicitly unregistered license drops any name", func(t *testing.T) {
		srv, _ := newRegistryServer(t, http.StatusOK, `{"license_number":"X","doctor_name":"ghost","registered":false}`)
		res, err := NewHTTP(HTTPConfig{BaseURL: srv.URL}).Lookup(context.Background(), "X")
		require.NoError(t, err)
		assert.False(t, res.Registered)
		assert.Empty(t, res.MatchedName)
	})

	t.Run("404 means not registered", func(t *testing.T) {
		srv, _ := newRegistryServer(t, http.StatusNotFound, `{"error":"not_found"}`)
		res, err := NewHTTP(HTTPConfig{BaseURL: srv.URL}).Lookup(context.Background(), "FAKE-000")
		require.NoError(t, err)
		assert.False(t, res.Registered)
		assert.Empty(t, res.MatchedName)
	})

	errorCases := []struct {
		name     string
		status   int
		body     string
		category Category
	}{
		{"unauthorized", http.StatusUnauthorized, ``, CategoryAuthentication},
		{"forbidden", http.StatusForbidden, ``, CategoryAuthentication},
		{"rate limited", http.StatusTooManyRequests, ``, CategoryRateLimited},
		{"unavailable", http.StatusServiceUnavailable, ``, CategoryOutage},
		{"gateway timeout", http.StatusGatewayTimeout, ``, CategoryOutage},
		{"server error", http.StatusInternalServerError, ``, CategoryInternal},
		{"malformed body", http.StatusOK, `<html>`, CategoryContractMismatch},
		{"missing registered field", http.StatusOK, `{"doctor_name":"x"}`, CategoryContractMismatch},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newRegistryServer(t, tc.status, tc.body)
			res, err := NewHTTP(HTTPConfig{BaseURL: srv.URL}).Lookup(context.Background(), "PMC-12345")
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Equal(t, tc.category, CategoryOf(err))
		})
	}
}

func TestHTTPRegistryTransportFailures(t *testing.T) {
	t.Run("unreachable host is an outage", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewHTTP(HTTPConfig{BaseURL: url}).Lookup(context.Background(), "PMC-12345")
		require.Error(t, err)
		assert.Equal(t, CategoryOutage, CategoryOf(err))
	})

	t.Run("deadline is a timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := NewHTTP(HTTPConfig{BaseURL: srv.URL}).Lookup(ctx, "PMC-12345")
		require.Error(t, err)
		assert.Equal(t, CategoryTimeout, CategoryOf(err))
	})
}

func TestHTTPRegistryHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	assert.NoError(t, NewHTTP(HTTPConfig{BaseURL: srv.URL}).Health(context.Background()))
	assert.Error(t, NewHTTP(HTTPConfig{BaseURL: srv.URL + "/down"}).Health(context.Background()))
}
