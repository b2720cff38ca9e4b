// Package metrics holds the Prometheus instruments shared across the
// service. Collectors are registered with the default registry on import, so
// exposing /metrics through promhttp is enough to publish them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_http_requests_total",
			Help: "HTTP requests served, by method, route pattern and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folio_http_request_duration_seconds",
			Help:    "HTTP request latency, by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	EventsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_events_published_total",
			Help: "Events published on the in-process bus, by topic.",
		},
		[]string{"topic"},
	)

	EventHandlerFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_event_handler_failures_total",
			Help: "Event handlers that returned an error, by topic.",
		},
		[]string{"topic"},
	)

	QueryResultSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "folio_post_query_results",
			Help:    "Number of posts matched by list queries before pagination.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	SitemapBuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_sitemap_builds_total",
			Help: "Sitemap rebuilds, by outcome (ok or fallback).",
		},
		[]string{"outcome"},
	)

	ImportedPostsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_imported_posts_total",
			Help: "Posts processed by the importer, by source and outcome.",
		},
		[]string{"source", "outcome"},
	)

	TermCountChangesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_term_count_changes_total",
			Help: "Tag and category post counts rewritten by recounts, by kind.",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		EventsPublishedTotal,
		EventHandlerFailuresTotal,
		QueryResultSize,
		SitemapBuildsTotal,
		ImportedPostsTotal,
		TermCountChangesTotal,
	)
}
