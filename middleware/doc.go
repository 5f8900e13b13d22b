// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("POST /vote", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms), and records the request in metrics.API labelled by the
route pattern.

# CORS and Recovery

Both come from gorilla/handlers:

	handler := middleware.Recover(middleware.CORS(cfg.AllowedOrigins)(mux))

CORS allows credentialed GET and POST from the configured origins only.
With ALLOWED_ORIGINS unset no CORS headers are sent. Recover logs a panic
and answers 500.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "Invalid JSON")

The error field carries a stable kind, the message is for humans.

Parse JSON request bodies (capped at 1 MiB):

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used in login logs and forwarded to the CAPTCHA service.
*/
package middleware
