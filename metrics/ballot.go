// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type BallotMetrics struct {
	// VotesTotal is labelled by outcome, one of the Outcome* constants.
	VotesTotal      metrics.Counter
	VotersCompleted metrics.Counter
	LoginsTotal     metrics.Counter
}

func PromBallotMetrics() *BallotMetrics {
	return &BallotMetrics{
		VotesTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: BallotSubsystem,
			Name:      "votes_total",
			Help:      "Vote attempts by outcome.",
		}, []string{"outcome"}),
		VotersCompleted: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: BallotSubsystem,
			Name:      "voters_completed_total",
			Help:      "Votes that completed a voter's ballot.",
		}, []string{}),
		LoginsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: BallotSubsystem,
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
	}
}

func NopBallotMetrics() *BallotMetrics {
	return &BallotMetrics{
		VotesTotal:      discard.NewCounter(),
		VotersCompleted: discard.NewCounter(),
		LoginsTotal:     discard.NewCounter(),
	}
}
