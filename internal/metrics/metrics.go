// Package metrics provides Prometheus metrics for the TripCanvas planner.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal tracks served HTTP requests by route pattern and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tripcanvas",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status_code"},
	)

	// HTTPRequestDuration tracks HTTP request duration
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tripcanvas",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "route"},
	)

	// PlannerEventsTotal tracks planner events by kind and outcome
	PlannerEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tripcanvas",
			Subsystem: "planner",
			Name:      "events_total",
			Help:      "Total number of planner events applied, by event and outcome",
		},
		[]string{"event", "outcome"},
	)

	// StoreWriteDuration tracks write-through latency to the trip store
	StoreWriteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "tripcanvas",
			Subsystem: "store",
			Name:      "write_duration_seconds",
			Help:      "Duration of trip write-through operations in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	// Trips tracks the number of trips in the workspace
	Trips = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tripcanvas",
			Subsystem: "planner",
			Name:      "trips",
			Help:      "Number of trips in the workspace",
		},
	)

	// Cards tracks the number of cards across all trips
	Cards = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tripcanvas",
			Subsystem: "planner",
			Name:      "cards",
			Help:      "Number of cards across all trips",
		},
	)
)

// Event outcomes recorded in PlannerEventsTotal.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)
