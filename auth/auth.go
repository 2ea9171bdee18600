// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrMissingParticipant = errors.New("participant id required")
	ErrInvalidToken       = errors.New("invalid participant token")
)

// GenerateParticipantToken creates an HMAC-based token for a participant
// This is deterministic and verifiable
func GenerateParticipantToken(participantID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(participantID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateParticipantToken checks if the provided token belongs to the participant
func ValidateParticipantToken(participantID, token, salt string) error {
	if participantID == "" {
		return ErrMissingParticipant
	}
	expected := GenerateParticipantToken(participantID, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidToken
	}
	return nil
}
