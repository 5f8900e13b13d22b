// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

const (
	Namespace       = "election"
	APISubsystem    = "api"
	BallotSubsystem = "ballot"
)

// Ballot outcome label values.
const (
	OutcomeAccepted         = "accepted"
	OutcomeAlreadyVoted     = "already_voted"
	OutcomeInvalidCandidate = "invalid_candidate"
	OutcomeRejected         = "rejected"
	OutcomeError            = "error"
)
