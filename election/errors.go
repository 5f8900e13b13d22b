// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"

	"github.com/danielhkuo/election-portal/models"
)

// Error is a voting failure with a stable kind and a message safe to show voters.
type Error struct {
	Kind    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches by kind, so errors.Is(err, ErrAlreadyVoted) holds for any
// already-voted error regardless of message or cause.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

var (
	ErrUnauthorized     = &Error{Kind: models.KindUnauthorized, Message: "Please login to vote"}
	ErrInvalidCandidate = &Error{Kind: models.KindInvalidCandidate, Message: "Candidate is not standing for this position"}
	ErrAlreadyVoted     = &Error{Kind: models.KindAlreadyVoted, Message: "You have already voted for this position"}
	ErrValidation       = &Error{Kind: models.KindValidation, Message: "Invalid request"}
	ErrStorage          = &Error{Kind: models.KindStorage, Message: "An error occurred while processing your vote"}
)

func validation(message string) *Error {
	return &Error{Kind: models.KindValidation, Message: message}
}

func storage(cause error) *Error {
	return &Error{Kind: models.KindStorage, Message: ErrStorage.Message, Cause: cause}
}

// KindOf returns the stable kind of err, or KindStorage for anything
// that is not an election error.
func KindOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return models.KindStorage
}

// MessageOf returns the voter-facing message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ErrStorage.Message
}
