// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts handled HTTP requests by method, route, and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_requests_total",
		Help: "The total number of HTTP requests by method, route, and status code.",
	}, []string{"method", "route", "status"})

	// RequestDuration observes request handling time in seconds.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_request_duration_seconds",
		Help:    "The request duration in seconds by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// LoginAttemptsTotal counts login attempts by outcome (success, failure).
	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_login_attempts_total",
		Help: "The total number of login attempts by outcome.",
	}, []string{"outcome"})

	// TokenReissuesTotal counts silent access-token reissues by outcome
	// (success, refused, error).
	TokenReissuesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_token_reissues_total",
		Help: "The total number of access token reissues by outcome.",
	}, []string{"outcome"})
)
