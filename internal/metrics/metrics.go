// Package metrics holds Prometheus instruments that are used across the
// platform.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActiveSites = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_sites",
			Help: "Number of site aggregates currently loaded in memory.",
		})

	SiteLoadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "site_load_total",
			Help: "Cumulative number of site aggregates successfully loaded.",
		})

	SiteLoadErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "site_load_errors_total",
			Help: "Cumulative number of site aggregate load errors.",
		})

	SiteEvictTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "site_evict_total",
			Help: "Cumulative number of site aggregates evicted from the cache.",
		})

	// ResolveTotal is partitioned by outcome: "ok", "redirect",
	// "site_unresolved", "slug_unresolved", or "error".
	ResolveTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_resolve_total",
			Help: "Cumulative number of combined identity resolutions by outcome.",
		},
		[]string{"outcome"})

	BotRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_requests_total",
			Help: "Cumulative number of public requests identified as crawler traffic.",
		})
)

func init() {
	prometheus.MustRegister(
		ActiveSites,
		SiteLoadTotal,
		SiteLoadErrorsTotal,
		SiteEvictTotal,
		ResolveTotal,
		BotRequestsTotal,
	)
}
