package models

import "time"

// Voter levels
const (
	LevelVoter = 0
	LevelAdmin = 1
)

// Error kinds returned in ErrorResponse.Error
const (
	KindUnauthorized     = "unauthorized"
	KindForbidden        = "forbidden"
	KindInvalidCandidate = "invalid_candidate"
	KindAlreadyVoted     = "already_voted"
	KindValidation       = "validation_error"
	KindStorage          = "storage_error"
	KindBadRequest       = "bad_request"
	KindInternal         = "internal_error"
)

// Identity is the verified content of a session token.
type Identity struct {
	VoterID   string `json:"id"`
	Email     string `json:"email"`
	RegNumber string `json:"reg_number"`
	Level     int    `json:"level"`
}

func (i Identity) IsAdmin() bool {
	return i.Level >= LevelAdmin
}

// Request types

type LoginRequest struct {
	Email          string `json:"email"`
	RegNumber      string `json:"reg_number"`
	RecaptchaToken string `json:"recaptcha_token"`
}

type CastVoteRequest struct {
	CandidateID string `json:"candidateId"`
	Position    string `json:"position"`
}

// Response types

type LoginResponse struct {
	Success bool `json:"success"`
}

type AuthCheckResponse struct {
	Authenticated      bool `json:"authenticated"`
	HasCompletedVoting bool `json:"has_completed_voting"`
}

type CastVoteResponse struct {
	Success            bool `json:"success"`
	HasCompletedVoting bool `json:"hasCompletedVoting"`
}

type VoteHistoryEntry struct {
	Position    string    `json:"position"`
	CandidateID string    `json:"candidate_id"`
	VotedAt     time.Time `json:"voted_at"`
}

type VoteHistoryResponse struct {
	Votes []VoteHistoryEntry `json:"votes"`
}

type CandidatesResponse struct {
	Positions []PositionCandidates `json:"positions"`
}

type ResultsResponse struct {
	Positions       []PositionResult `json:"positions"`
	VotersCompleted int              `json:"voters_completed"`
	VotersTotal     int              `json:"voters_total"`
}

// Domain types

type Voter struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	RegNumber string    `json:"reg_number"`
	Level     int       `json:"level"`
	HasVoted  bool      `json:"has_voted"`
	CreatedAt time.Time `json:"created_at"`
}

type Candidate struct {
	ID          string  `json:"id"`
	FullName    string  `json:"full_name"`
	Position    string  `json:"position"`
	PositionKey string  `json:"-"`
	Bio         string  `json:"bio"`
	ImageURL    *string `json:"image_url,omitempty"`
	VoteCount   int     `json:"-"` // ledger cache, kept out of the catalog payload
	SortOrder   int     `json:"-"`
}

type Vote struct {
	ID          string    `json:"id"`
	VoterID     string    `json:"-"` // Never expose in JSON
	Position    string    `json:"position"`
	PositionKey string    `json:"-"`
	CandidateID string    `json:"candidate_id"`
	VotedAt     time.Time `json:"voted_at"`
}

type PositionCandidates struct {
	Position   string      `json:"position"`
	Candidates []Candidate `json:"candidates"`
}

// Tally types

type CandidateResult struct {
	CandidateID string  `json:"candidate_id"`
	FullName    string  `json:"full_name"`
	Votes       int     `json:"votes"`
	Percentage  float64 `json:"percentage"`
}

type PositionResult struct {
	Position   string            `json:"position"`
	TotalVotes int               `json:"total_votes"`
	Candidates []CandidateResult `json:"candidates"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
