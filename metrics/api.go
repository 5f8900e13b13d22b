// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type APIMetrics struct {
	RequestsTotal          metrics.Counter
	RequestErrorsTotal     metrics.Counter
	RequestDurationSeconds metrics.Histogram
}

func PromAPIMetrics() *APIMetrics {
	return &APIMetrics{
		RequestsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "requests_total",
			Help:      "Total number of requests.",
		}, []string{"endpoint", "method", "status"}),
		RequestErrorsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "request_errors_total",
			Help:      "Total number of requests answered with a 4xx or 5xx status.",
		}, []string{"endpoint", "method", "status"}),
		RequestDurationSeconds: prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "request_duration_seconds",
			Help:      "Request latency in seconds.",
			Buckets:   stdprometheus.DefBuckets,
		}, []string{"endpoint", "method"}),
	}
}

func NopAPIMetrics() *APIMetrics {
	return &APIMetrics{
		RequestsTotal:          discard.NewCounter(),
		RequestErrorsTotal:     discard.NewCounter(),
		RequestDurationSeconds: discard.NewHistogram(),
	}
}
