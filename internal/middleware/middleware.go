package middleware

import (
	"net"
	"net/http"
	"time"

	"cantina-api/internal/response"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

// Logging logs HTTP requests with timing information and tags each request
// with a correlation ID, echoed back as X-Correlation-Id.
func Logging(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			correlationID := uuid.NewString()
			w.Header().Set("X-Correlation-Id", correlationID)

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			logger.Info().
				Str("correlation_id", correlationID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.statusCode).
				Dur("duration", duration).
				Str("remote_addr", r.RemoteAddr).
				Msg("http request")
		})
	}
}

// Recovery recovers from panics and returns the generic internal-error
// envelope.
func Recovery(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error().
						Interface("panic", err).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Msg("panic recovered")

					response.Write(w, http.StatusInternalServerError,
						"An internal error occurred.",
						response.WithError("internal server error"))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// Cooldown throttles mutating requests per client IP: a second POST, PUT or
// DELETE within ttl of the previous one gets a 200 "retry shortly" response
// instead of executing. Entries expire on their own; cache.Add is an atomic
// check-and-set, so two near-simultaneous requests from one IP cannot both
// pass. A non-positive ttl disables the throttle.
func Cooldown(ttl time.Duration, logger zerolog.Logger) func(http.Handler) http.Handler {
	if ttl <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	seen := cache.New(ttl, time.Minute)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodDelete:
			default:
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r)
			if err := seen.Add(ip, time.Now(), cache.DefaultExpiration); err != nil {
				logger.Debug().
					Str("remote_addr", ip).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("mutation throttled")
				response.Write(w, http.StatusOK, "Too many requests, retry shortly.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Connectivity short-circuits requests with the database-unreachable preset
// while the watchdog reports the database down.
func Connectivity(reachable func() bool, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !reachable() {
				logger.Warn().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("request refused, database unreachable")
				response.Unreachable(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the host part of the client address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code.
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
