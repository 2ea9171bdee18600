// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the namepair API.

# Handler Types

Each handler is a struct holding the game service and config:

  - ParticipantHandler: registration and the websocket event feed
  - SessionHandler: joining, session lookup, starting round 2
  - RoundHandler: next candidate, ratings, results

Handlers are created via constructor functions:

	sessionHandler := handlers.NewSessionHandler(svc, cfg, notifier)

# Identity

POST /participants returns a participant_token. Registering an id that
already exists is 409 unless the request carries that participant's own
credentials. Every other endpoint needs
the X-Participant-ID and X-Participant-Token headers; a bad pair is 401.
An X-Participant-Address header, when present, replaces the stored
delivery address.

# Session Access

Endpoints under /sessions/{id} check that:

  - the session exists (404)
  - the caller holds one of its two slots (403)
  - the second slot is filled (409)

# Pairing Flow

	POST /sessions/join          → Join (waiting or active)
	GET  /sessions/{id}/rounds/1/next
	POST /sessions/{id}/rounds/1/ratings
	GET  /sessions/{id}/rounds/1/results
	POST /sessions/{id}/round-two → AdvanceRoundTwo
	...same three calls for round 2

When a join completes a session, or round 2 starts, both participants
are notified. Notification failures are logged as warnings and never fail
the request.

An invalid verdict is rejected with 400 "Invalid selection". Rating the
same candidate twice is not an error; the response reports recorded=false.
*/
package handlers
