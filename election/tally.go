// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"math"
	"sort"

	"github.com/danielhkuo/election-portal/models"
)

// Tally counts ledger votes per candidate, grouped by position.
//
// Positions are ordered by key. Candidates are ordered by votes, most first,
// with ties kept in catalog order. Percentages are of the position's total
// and are 0 when the position has no votes.
func (e *Engine) Tally(ctx context.Context) ([]models.PositionResult, error) {
	candidates, err := e.store.Candidates(ctx)
	if err != nil {
		return nil, storage(err)
	}
	counts, err := e.store.VoteCounts(ctx)
	if err != nil {
		return nil, storage(err)
	}

	type group struct {
		key    string
		result models.PositionResult
	}
	var groups []*group
	byKey := make(map[string]*group)

	// candidates arrive in catalog order
	for _, c := range candidates {
		g, ok := byKey[c.PositionKey]
		if !ok {
			g = &group{key: c.PositionKey, result: models.PositionResult{Position: c.Position}}
			byKey[c.PositionKey] = g
			groups = append(groups, g)
		}
		n := counts[c.ID]
		g.result.TotalVotes += n
		g.result.Candidates = append(g.result.Candidates, models.CandidateResult{
			CandidateID: c.ID,
			FullName:    c.FullName,
			Votes:       n,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].key < groups[j].key
	})

	results := make([]models.PositionResult, 0, len(groups))
	for _, g := range groups {
		r := g.result
		sort.SliceStable(r.Candidates, func(i, j int) bool {
			return r.Candidates[i].Votes > r.Candidates[j].Votes
		})
		for i := range r.Candidates {
			r.Candidates[i].Percentage = percentage(r.Candidates[i].Votes, r.TotalVotes)
		}
		results = append(results, r)
	}
	return results, nil
}

// Turnout reports voters who completed voting and all registered voters.
func (e *Engine) Turnout(ctx context.Context) (completed, total int, err error) {
	completed, total, err = e.store.Turnout(ctx)
	if err != nil {
		return 0, 0, storage(err)
	}
	return completed, total, nil
}

// percentage of votes in total, rounded to two decimals
func percentage(votes, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(votes)*10000/float64(total)) / 100
}
