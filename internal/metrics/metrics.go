// Package metrics declares the service's prometheus collectors. All
// collectors register on the default registry, so promhttp.Handler()
// exposes them without further wiring.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MatchQueries counts range-match lookups by table and outcome
	// ("hit" or "miss").
	MatchQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "specsheet_match_queries_total",
		Help: "Range-match lookups by table and outcome.",
	}, []string{"table", "outcome"})

	// FacetQueries counts cascading-filter lookups by table.
	FacetQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "specsheet_facet_queries_total",
		Help: "Cascading-filter lookups by table.",
	}, []string{"table"})

	// RowsAppended counts rows added through the admin form, by table.
	RowsAppended = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "specsheet_rows_appended_total",
		Help: "Rows appended to the row store by table.",
	}, []string{"table"})

	// RowCacheHits and RowCacheMisses track the record cache in front of
	// the row store.
	RowCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "specsheet_row_cache_hits_total",
		Help: "Record cache hits.",
	})
	RowCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "specsheet_row_cache_misses_total",
		Help: "Record cache misses.",
	})

	// LoginAttempts counts admin login attempts by result
	// ("ok", "denied" or "throttled").
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "specsheet_login_attempts_total",
		Help: "Admin login attempts by result.",
	}, []string{"result"})
)
