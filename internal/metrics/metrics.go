package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "first_commit_resolutions_total",
		Help: "Resolutions served, by strategy and outcome.",
	}, []string{"strategy", "outcome"})

	ResolutionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "first_commit_resolution_duration_seconds",
		Help:    "Time spent resolving a username, upstream calls included.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"strategy"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "first_commit_http_requests_total",
		Help: "HTTP requests handled, by method and status code.",
	}, []string{"method", "code"})

	GitHubRateLimitRemaining = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "first_commit_github_rate_limit_remaining",
		Help: "Last X-RateLimit-Remaining value reported by GitHub, per rate limit resource.",
	}, []string{"resource"})
)
