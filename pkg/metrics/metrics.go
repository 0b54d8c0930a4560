// Package metrics registers the Prometheus collectors for the relay and the
// webhook server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostsReceived counts inbound channel posts by content kind, including
	// posts skipped for a channel mismatch.
	PostsReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "questrelay",
		Name:      "posts_received_total",
		Help:      "Inbound channel posts by content kind.",
	}, []string{"kind"})

	// PostsSkipped counts posts ignored because the source channel did not
	// match the configured one.
	PostsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "questrelay",
		Name:      "posts_skipped_total",
		Help:      "Channel posts ignored due to source channel mismatch.",
	})

	// PayloadsSent counts outbound payload deliveries by kind and outcome.
	PayloadsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "questrelay",
		Name:      "payloads_sent_total",
		Help:      "Outbound payload delivery attempts by kind and outcome.",
	}, []string{"kind", "outcome"})

	// WebhookRequests counts webhook server requests by route and status code.
	WebhookRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "questrelay",
		Name:      "webhook_requests_total",
		Help:      "Webhook server requests by route and HTTP status code.",
	}, []string{"route", "code"})

	// LeaderboardFetches counts Zealy leaderboard fetches by outcome.
	LeaderboardFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "questrelay",
		Name:      "leaderboard_fetches_total",
		Help:      "Zealy leaderboard fetches by outcome.",
	}, []string{"outcome"})
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
