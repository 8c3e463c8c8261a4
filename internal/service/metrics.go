package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// relationshipQueries counts relationship queries by relationship and outcome.
	relationshipQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "familytree_relationship_queries_total",
		Help: "Total relationship queries by relationship and outcome",
	}, []string{"relationship", "outcome"}) // outcome: found, empty, unknown_person

	// relationshipQueryDuration tracks query latency.
	relationshipQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "familytree_relationship_query_duration_seconds",
		Help:    "Relationship query duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 2, 12),
	}, []string{"relationship"})

	// mutations counts graph mutations by operation and result.
	mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "familytree_mutations_total",
		Help: "Total family graph mutations by operation and result",
	}, []string{"operation", "result"})
)

// relationshipLabel keeps the label set bounded: tokens outside the
// vocabulary share one label.
func relationshipLabel(token string, known bool) string {
	if !known {
		return "unknown"
	}
	return token
}

func recordMutation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	mutations.WithLabelValues(operation, result).Inc()
}
