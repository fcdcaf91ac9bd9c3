package request

import (
	"net/http"
)

// BodyLimit returns middleware that limits the size of request bodies.
// Requests that declare a larger Content-Length are refused up front with 413;
// the rest are wrapped in http.MaxBytesReader so streaming overflows fail on read.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_, _ = w.Write([]byte(`{"error":"request_too_large"}`)) //nolint:errcheck // headers already sent
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
