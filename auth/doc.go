// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth issues and checks participant tokens.

# Participant Tokens

Participants are identified by an opaque id (for example a chat user id).
Registering returns a token derived from that id:

	token := auth.GenerateParticipantToken(participantID, cfg.ParticipantTokenSalt)

The token is HMAC-SHA256 of the id keyed by the server salt, encoded as
URL-safe base64 without padding. It is deterministic, so nothing is
stored; validation recomputes and compares in constant time:

	if err := auth.ValidateParticipantToken(id, token, salt); err != nil {
		// 401
	}

# Request Headers

	X-Participant-ID     participant id
	X-Participant-Token  token from POST /participants

# Errors

  - ErrMissingParticipant: no participant id supplied
  - ErrInvalidToken: token does not match the id
*/
package auth
