// Package middleware provides the HTTP middleware chain for the traffic
// advisory API: request correlation, access logging, tracing, metrics,
// rate limiting, and transport hardening.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// requestIDHeader carries the correlation ID between client and service.
const requestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestID tags every request with a correlation ID. An ID supplied by
// the caller is kept; otherwise a fresh "req_"-prefixed one is generated.
// The ID lands in the request context and is echoed in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = "req_" + uuid.New().String()[:22]
		}

		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request's correlation ID, or "" when the
// request never passed through RequestID.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
