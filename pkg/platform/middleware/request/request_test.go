package request

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthsphere/pkg/requestcontext"
)

func TestRequestID(t *testing.T) {
	t.Run("generates UUID when no header provided", func(t *testing.T) {
		var capturedID string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			capturedID = requestcontext.RequestID(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.NotEmpty(t, capturedID)
		assert.Len(t, capturedID, 36) // UUID format
		assert.Equal(t, capturedID, w.Header().Get("X-Request-ID"))
	})

	t.Run("accepts valid client-provided ID", func(t *testing.T) {
		var capturedID string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			capturedID = requestcontext.RequestID(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Request-ID", "my-request-123")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "my-request-123", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "my-request-123", capturedID)
	})

	t.Run("accepts ID with periods and underscores", func(t *testing.T) {
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Request-ID", "trace.span_1234")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "trace.span_1234", w.Header().Get("X-Request-ID"))
	})

	t.Run("rejects ID exceeding max length", func(t *testing.T) {
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		longID := strings.Repeat("a", MaxRequestIDLength+1)
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Request-ID", longID)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		// Should generate new UUID, not use the long one
		resultID := w.Header().Get("X-Request-ID")
		assert.NotEqual(t, longID, resultID)
		assert.Len(t, resultID, 36) // UUID format
	})

	t.Run("rejects ID with newline characters (log injection)", func(t *testing.T) {
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Request-ID", "valid\ninjected-log-line")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		resultID := w.Header().Get("X-Request-ID")
		assert.NotContains(t, resultID, "\n")
		assert.Len(t, resultID, 36) // Generated UUID
	})

	t.Run("rejects ID with special characters", func(t *testing.T) {
		testCases := []struct {
			name string
			id   string
		}{
			{"spaces", "request id"},
			{"quotes", `request"id`},
			{"angle brackets", "request<id>"},
			{"semicolon", "request;id"},
			{"backslash", `request\id`},
			{"null byte", "request\x00id"},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusOK)
				}))

				req := httptest.NewRequest(http.MethodGet, "/test", nil)
				req.Header.Set("X-Request-ID", tc.id)
				w := httptest.NewRecorder()
				handler.ServeHTTP(w, req)

				resultID := w.Header().Get("X-Request-ID")
				assert.NotEqual(t, tc.id, resultID, "should reject ID with %s", tc.name)
				assert.Len(t, resultID, 36) // Generated UUID
			})
		}
	})

	t.Run("accepts ID at exactly max length", func(t *testing.T) {
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		maxLengthID := strings.Repeat("a", MaxRequestIDLength)
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Request-ID", maxLengthID)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, maxLengthID, w.Header().Get("X-Request-ID"))
	})
}

func TestIsValidRequestID(t *testing.T) {
	t.Run("valid IDs", func(t *testing.T) {
		validIDs := []string{
			"abc123",
			"ABC-123",
			"request_id_456",
			"trace.span.123",
			"a",
			strings.Repeat("x", MaxRequestIDLength),
		}

		for _, id := range validIDs {
			assert.True(t, isValidRequestID(id), "expected %q to be valid", id)
		}
	})

	t.Run("invalid IDs", func(t *testing.T) {
		invalidIDs := []string{
			"", // empty
			strings.Repeat("x", MaxRequestIDLength+1), // too long
			"has space",     // space
			"has\nnewline",  // newline
			"has\ttab",      // tab
			"has;semicolon", // semicolon
			"has<bracket>",  // brackets
			`has"quote`,     // quote
		}

		for _, id := range invalidIDs {
			assert.False(t, isValidRequestID(id), "expected %q to be invalid", id)
		}
	})
}

func TestRequestIDFromContext(t *testing.T) {
	t.Run("returns empty string when not set", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		assert.Equal(t, "", requestcontext.RequestID(req.Context()))
	})
}

func TestClientIP(t *testing.T) {
	capture := func(trustProxy bool, remoteAddr, forwarded string) string {
		var got string
		handler := ClientIP(trustProxy)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = requestcontext.ClientIP(r.Context())
		}))
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = remoteAddr
		if forwarded != "" {
			req.Header.Set("X-Forwarded-For", forwarded)
		}
		handler.ServeHTTP(httptest.NewRecorder(), req)
		return got
	}

	t.Run("uses remote address host", func(t *testing.T) {
		assert.Equal(t, "192.0.2.10", capture(false, "192.0.2.10:5123", ""))
	})

	t.Run("ignores forwarded header when proxy is untrusted", func(t *testing.T) {
		assert.Equal(t, "192.0.2.10", capture(false, "192.0.2.10:5123", "203.0.113.5"))
	})

	t.Run("takes first forwarded hop when proxy is trusted", func(t *testing.T) {
		assert.Equal(t, "203.0.113.5", capture(true, "10.0.0.1:80", "203.0.113.5, 10.0.0.1"))
	})

	t.Run("falls back when forwarded value is not an IP", func(t *testing.T) {
		assert.Equal(t, "10.0.0.1", capture(true, "10.0.0.1:80", "garbage"))
	})
}

func TestContentTypes(t *testing.T) {
	handler := ContentTypes("application/json", "multipart/form-data")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name        string
		method      string
		contentType string
		want        int
	}{
		{"json post", http.MethodPost, "application/json; charset=utf-8", http.StatusNoContent},
		{"multipart post", http.MethodPost, "multipart/form-data; boundary=xyz", http.StatusNoContent},
		{"text post", http.MethodPost, "text/plain", http.StatusUnsupportedMediaType},
		{"no header", http.MethodPost, "", http.StatusNoContent},
		{"get ignores header", http.MethodGet, "text/plain", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/verifications", nil)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRecovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
}

func TestLatencyMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(LatencyMiddleware(m))
	r.Get("/doctors/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/doctors/a", "/doctors/b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.InDelta(t, 2, testutil.ToFloat64(m.Responses.WithLabelValues("GET /doctors/{id}", "4xx")), 0)
	count, err := testutil.GatherAndCount(reg, "healthsphere_endpoint_latency_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "route pattern keeps a single series")

	t.Run("nil metrics pass through", func(t *testing.T) {
		called := false
		h := LatencyMiddleware(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.True(t, called)
	})
}
