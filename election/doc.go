// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements vote casting, completion tracking, and result tallies.

# Casting Votes

	engine := election.NewEngine(store.New(db), election.DefaultNormalizer)
	outcome, err := engine.CastVote(ctx, identity, "President", candidateID)

Each (voter, position) pair moves once from unvoted to voted. A voter may vote
positions in any order and can never change a vote. Two concurrent casts for
the same pair produce exactly one success; the other gets ErrAlreadyVoted from
the ledger's uniqueness constraint.

# Completion

A voter has completed voting when they hold a vote for every distinct position
in the catalog. Completion is always recomputed from the ledger; the stored
has_voted flag is only a cache that the engine sets when it observes completion.

# Errors

All failures are *Error values with a stable Kind:

	ErrUnauthorized     no verified identity
	ErrValidation       missing candidate or position
	ErrInvalidCandidate unknown candidate, or candidate for another position
	ErrAlreadyVoted     a vote for the position already exists
	ErrStorage          any other persistence failure

Use errors.Is to match a kind, KindOf and MessageOf to render a response.

# Positions

Position names are compared through a Normalizer. DefaultNormalizer folds case
with golang.org/x/text/cases and collapses whitespace, so "Vice  President "
and "vice president" are the same position.

# Results

Tally is read-only and may run while votes are being cast:

	results, err := engine.Tally(ctx)
*/
package election
