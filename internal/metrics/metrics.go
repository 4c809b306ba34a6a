package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors for feed assembly and HTTP traffic.
type Metrics struct {
	FeedRequests       *prometheus.CounterVec
	FeedItems          *prometheus.HistogramVec
	InvalidTimestamps  *prometheus.CounterVec
	DataAccessFailures *prometheus.CounterVec
	CacheLookups       *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FeedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feed_requests_total",
			Help: "Feeds assembled, by feed kind.",
		}, []string{"feed"}),
		FeedItems: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "feed_items",
			Help:    "Items surviving filtering per assembled feed.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"feed"}),
		InvalidTimestamps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feed_invalid_timestamps_total",
			Help: "Events rendered with an unreadable timestamp.",
		}, []string{"kind"}),
		DataAccessFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feed_data_access_failures_total",
			Help: "Failed loads from the store, by source.",
		}, []string{"source"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feed_cache_lookups_total",
			Help: "Redis cache lookups, by result.",
		}, []string{"result"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.FeedRequests,
			m.FeedItems,
			m.InvalidTimestamps,
			m.DataAccessFailures,
			m.CacheLookups,
			m.RequestDuration,
		)
	}
	return m
}

// Noop returns unregistered collectors, for tests and tools.
func Noop() *Metrics {
	return New(nil)
}
