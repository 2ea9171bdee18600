// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package game implements the pairing and rating state machine.

Two participants are paired into a session, each rates the candidate
names as like, neutral or dislike, and names both liked are surfaced. Round
2 repeats the exercise over the round-1 mutual likes only.

# Service

All operations hang off a Service built from a *sql.DB:

	svc := game.NewService(conn)

Each operation runs in its own transaction, committed on success and
rolled back on any error.

# Components

  - Registry: Register, Participant, LookupAddress
  - Pairing: JoinOrCreate, SessionFor, Session
  - Ledger: Record
  - Sequencer: NextCandidate, Progress, InRound
  - Rounds: AdvanceToRoundTwo, Results
  - Catalogue: AddCandidates, SeedCandidates, CandidateCount, Candidate

# Session Lifecycle

	pending --(second participant joins)--> active round 1 --(AdvanceToRoundTwo)--> active round 2

Joining is FIFO: a new participant takes the oldest pending session they
did not open. Asking again while waiting or paired returns the same
session. The second slot is filled with a conditional update, so a
pending session can never receive two partners; a lost race is retried
once, then the participant opens their own session.

AdvanceToRoundTwo does not check that round 1 is finished. Callers decide
when to move on. It reports started=true only for the call that flipped
the flag.

# Mutual Likes

MutualLikes is the single definition of "both liked": the ids rated like
by both slot participants, ascending. NextCandidate, Progress and InRound
use the round-1 set as the round-2 pool. Results uses the set of the
requested round, limited to that pool in round 2, sorted by case-folded
text.

# Errors

  - ErrInvalidArgument: unknown verdict, round outside 1-2, empty participant id
  - ErrSessionNotFound: AdvanceToRoundTwo on an unknown session

Absent sessions, exhausted rounds and empty results are nil or empty
values, not errors. A duplicate rating returns recorded=false.
*/
package game
