package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FeedMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freshness_feed_messages_total",
		Help: "Snapshot messages received over the live feed.",
	}, []string{"unit"})

	FeedParseErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "freshness_feed_parse_errors_total",
		Help: "Malformed feed payloads dropped without closing the subscription.",
	})

	FeedReconnects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "freshness_feed_reconnects_total",
		Help: "Reconnect attempts made by the feed subscriber.",
	})

	AlertsEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "freshness_alerts_emitted_total",
		Help: "Low-freshness notifications surfaced to the user.",
	})

	SnapshotScore = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "freshness_snapshot_score",
		Help: "Latest freshness score per watched unit.",
	}, []string{"unit"})
)
