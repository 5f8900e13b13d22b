// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

var (
	API    = NopAPIMetrics()
	Ballot = NopBallotMetrics()
)
