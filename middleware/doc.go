// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /sessions/me", middleware.WithLogging(handler))

Logs request start (request_id, method, path, client_ip) and completion
(status, duration_ms). The request id comes from X-Request-ID when the
client sends one and is generated otherwise. It is echoed in the response
header and available to handlers through RequestID(r.Context()).

The wrapper passes Hijack through, so websocket endpoints can be logged too.

# CORS Middleware

Enable cross-origin requests for participant clients:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows GET, POST, OPTIONS with Content-Type and the X-Participant-*
headers.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.RateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
