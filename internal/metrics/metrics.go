package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookhub_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HttpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookhub_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})

	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookhub_queries_total",
		Help: "Catalog queries by scope (all genres or a single genre)",
	}, []string{"scope"})

	QueryResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bookhub_query_results",
		Help:    "Number of books returned per query",
		Buckets: prometheus.LinearBuckets(0, 5, 10),
	})

	FavoriteMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookhub_favorite_mutations_total",
		Help: "Favorites store mutations by operation",
	}, []string{"op"})

	SlotLoadFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookhub_slot_load_failures_total",
		Help: "Favorites slots that were unreadable or malformed and loaded as empty",
	})

	ActiveClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bookhub_active_clients",
		Help: "Client controllers currently held in memory",
	})
)

// ObserveQuery records one query run.
func ObserveQuery(genre string, results int) {
	scope := "genre"
	if genre == "" {
		scope = "all"
	}
	QueriesTotal.WithLabelValues(scope).Inc()
	QueryResults.Observe(float64(results))
}
