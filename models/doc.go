// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - LoginRequest: email, reg_number, recaptcha_token
  - CastVoteRequest: candidateId, position

# Response Types

Types for JSON responses:

  - LoginResponse: success
  - AuthCheckResponse: authenticated, has_completed_voting
  - CastVoteResponse: success, hasCompletedVoting
  - VoteHistoryResponse: votes
  - CandidatesResponse: positions with their candidates
  - ResultsResponse: per-position tallies and turnout
  - ErrorResponse: error, message

# Domain Types

  - Identity: verified session claims
  - Voter: registered voter and completion flag
  - Candidate: a person standing for one position
  - Vote: one voter's choice for one position
  - PositionResult / CandidateResult: tally output

# Constants

Voter levels:

	LevelVoter = 0
	LevelAdmin = 1

Error kinds are the stable machine-readable values of ErrorResponse.Error:

	unauthorized, forbidden, invalid_candidate, already_voted,
	validation_error, storage_error, bad_request
*/
package models
