// Package metrics provides Prometheus metrics for the retention sweeps.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "esretention"
)

var (
	// IndicesListedTotal counts index names fetched from the store.
	IndicesListedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "indices_listed_total",
			Help:      "Total number of index names fetched from the store",
		},
		[]string{"rule"},
	)

	// IndicesEligibleTotal counts indices that exceeded the age threshold.
	IndicesEligibleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "indices_eligible_total",
			Help:      "Total number of indices found eligible for deletion",
		},
		[]string{"rule"},
	)

	// IndicesDeletedTotal counts successfully deleted indices.
	IndicesDeletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "indices_deleted_total",
			Help:      "Total number of indices deleted",
		},
		[]string{"rule"},
	)

	// IndexDeleteFailuresTotal counts failed deletion requests.
	IndexDeleteFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "index_delete_failures_total",
			Help:      "Total number of failed index deletion requests",
		},
		[]string{"rule"},
	)

	// SweepDuration measures the duration of a full sweep of one rule.
	SweepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Duration of a full sweep of one rule in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"rule"},
	)
)
