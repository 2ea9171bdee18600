// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterParticipantRequest: participant_id, display_name, address
  - JoinRequest: display_name, address
  - RateRequest: candidate_id, verdict

# Response Types

Types for JSON responses:

  - RegisterParticipantResponse: participant_id, participant_token
  - JoinResponse: session, became_active
  - NextCandidateResponse: round, candidate, done, progress
  - RateResponse: recorded, next
  - ResultsResponse: session_id, round, matches
  - ErrorResponse: error, message

# Domain Types

Typed records built at the storage boundary:

  - Participant: opaque id, optional display name and delivery address
  - Candidate: ascending id and unique display text
  - Session: first/second participant slots, current round, round-two flag
  - Rating: one verdict per (session, round, participant, candidate)
  - Event: notification payload pushed to participants

# Verdicts

	like | neutral | dislike

ValidVerdict and ValidRound guard values coming from clients.

# Session States

	waiting (second slot empty) → active (round 1) → active (round 2)

Sessions are never closed or deleted.
*/
package models
