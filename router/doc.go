// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the namepair API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, cfg, hub, notifier)

# Endpoints

Health:

	GET /health

Participants:

	POST /participants            - Register, returns participant_token
	GET  /participants/me/events  - Websocket notification feed

Sessions (require X-Participant-ID and X-Participant-Token):

	POST /sessions/join           - Pair up or wait
	GET  /sessions/me             - Caller's session
	POST /sessions/{id}/round-two - Start round 2

Rounds (caller must belong to the active session):

	GET  /sessions/{id}/rounds/{round}/next    - Next candidate and progress
	POST /sessions/{id}/rounds/{round}/ratings - Record a verdict
	GET  /sessions/{id}/rounds/{round}/results - Mutual likes

Every route except /health and / is wrapped in middleware.WithLogging.
*/
package router
