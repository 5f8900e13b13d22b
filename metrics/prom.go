// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// InitPrometheusMetrics swaps the Nop collectors for Prometheus ones
// registered on the default registry. Call it once, before serving.
func InitPrometheusMetrics() {
	API = PromAPIMetrics()
	Ballot = PromBallotMetrics()
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
