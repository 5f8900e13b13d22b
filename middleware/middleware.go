// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	ghandlers "github.com/gorilla/handlers"

	"github.com/danielhkuo/election-portal/metrics"
	"github.com/danielhkuo/election-portal/models"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// statusRecorder remembers the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// WithLogging wraps a handler with request logging and API metrics
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Info("request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
		)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		duration := time.Since(start)
		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", duration.Milliseconds(),
		)

		// Label by route pattern to keep cardinality bounded
		endpoint := r.Pattern
		if endpoint == "" {
			endpoint = r.URL.Path
		}
		status := strconv.Itoa(rec.status)
		metrics.API.RequestsTotal.With("endpoint", endpoint, "method", r.Method, "status", status).Add(1)
		if rec.status >= http.StatusBadRequest {
			metrics.API.RequestErrorsTotal.With("endpoint", endpoint, "method", r.Method, "status", status).Add(1)
		}
		metrics.API.RequestDurationSeconds.With("endpoint", endpoint, "method", r.Method).Observe(duration.Seconds())
	}
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes a JSON error response. kind is one of the
// models.Kind* values.
func ErrorResponse(w http.ResponseWriter, statusCode int, kind, message string) {
	JSONResponse(w, statusCode, models.ErrorResponse{
		Error:   kind,
		Message: message,
	})
}

// ParseJSONBody parses the request body into the given struct
func ParseJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}

// CORS allows credentialed cross-origin requests from the configured
// frontend origins. With no origins configured it is a no-op.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return ghandlers.CORS(
		ghandlers.AllowedOrigins(allowedOrigins),
		ghandlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		ghandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		ghandlers.AllowCredentials(),
	)
}

type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	slog.Error("panic recovered", "error", fmt.Sprint(v...))
}

// Recover turns handler panics into a 500 and logs them.
func Recover(next http.Handler) http.Handler {
	return ghandlers.RecoveryHandler(
		ghandlers.RecoveryLogger(recoveryLogger{}),
		ghandlers.PrintRecoveryStack(false),
	)(next)
}

// GetClientIP extracts the client IP address
// Checks X-Forwarded-For, X-Real-IP, then falls back to RemoteAddr
func GetClientIP(r *http.Request) string {
	// First hop of X-Forwarded-For (load balancers)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	// nginx
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
