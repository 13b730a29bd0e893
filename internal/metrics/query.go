package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Query and catalog Prometheus metrics.
var (
	QueryEvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nodeglobe",
			Name:      "query_evaluations_total",
			Help:      "Total number of query evaluations",
		},
		[]string{"status"}, // "ok" / "error"
	)

	QueryResultSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "nodeglobe",
			Name:      "query_result_nodes",
			Help:      "Number of nodes returned per query",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	QueryFieldsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nodeglobe",
			Name:      "query_spec_fields_total",
			Help:      "Parsed query fields by name",
		},
		[]string{"field"},
	)

	CatalogNodes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "nodeglobe",
			Name:      "catalog_nodes",
			Help:      "Number of nodes in the current catalog",
		},
	)

	CatalogReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nodeglobe",
			Name:      "catalog_reloads_total",
			Help:      "Catalog reloads by source and status",
		},
		[]string{"source", "status"},
	)
)

var registerQueryOnce sync.Once

// RegisterQueryMetrics registers query and catalog metrics with the default
// registry. Safe to call more than once and from several goroutines.
func RegisterQueryMetrics() {
	registerQueryOnce.Do(func() {
		prometheus.MustRegister(
			QueryEvaluationsTotal,
			QueryResultSize,
			QueryFieldsTotal,
			CatalogNodes,
			CatalogReloadsTotal,
		)
	})
}
