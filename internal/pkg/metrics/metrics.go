package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// BatchesStarted counts batch runs per asset class ("tokens" / "nfts").
	BatchesStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_searcher_batches_started_total",
			Help: "Number of batch search runs started, by asset class.",
		},
		[]string{"asset_class"},
	)

	// BatchDuration observes how long a full batch run takes.
	BatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wallet_searcher_batch_duration_seconds",
			Help:    "Duration of batch search runs, by asset class.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
		},
		[]string{"asset_class"},
	)

	// WalletsProcessed counts wallets processed across all runs, by outcome
	// ("ok" / "error").
	WalletsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_searcher_wallets_processed_total",
			Help: "Number of wallets processed, by asset class and outcome.",
		},
		[]string{"asset_class", "outcome"},
	)

	// QuoteFailures counts swap-quote requests that came back unavailable.
	QuoteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wallet_searcher_quote_failures_total",
			Help: "Number of swap-quote lookups that returned no usable value.",
		},
	)

	// MetadataCacheHits counts metadata resolver cache hits, by cache
	// ("token" / "collection").
	MetadataCacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_searcher_metadata_cache_hits_total",
			Help: "Number of metadata lookups answered from the in-memory cache.",
		},
		[]string{"cache"},
	)
)

// MustRegisterMetrics registers all application collectors with the default
// Prometheus registry. Call once at startup.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		BatchesStarted,
		BatchDuration,
		WalletsProcessed,
		QuoteFailures,
		MetadataCacheHits,
	)
}
