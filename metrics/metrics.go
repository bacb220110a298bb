// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingredient_predictions_total",
			Help: "Classified images by predicted label",
		},
		[]string{"label"},
	)

	LowConfidencePredictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ingredient_predictions_low_confidence_total",
			Help: "Predictions at or below the confidence threshold",
		},
	)

	PredictionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingredient_prediction_failures_total",
			Help: "Failed classify calls by outcome (input, no_diet, internal)",
		},
		[]string{"outcome"},
	)

	InferenceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "model_inference_duration_seconds",
			Help:    "Duration of model forward passes",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)

	CorpusQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "corpus_query_duration_seconds",
			Help:    "Duration of recommendation corpus reads",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"collection"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	ActiveDietSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "diet_sessions_active",
			Help: "Diet sessions currently held in memory",
		},
	)

	RealtimeSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "realtime_prediction_subscribers",
			Help: "Open websocket subscriptions to the prediction feed",
		},
	)
)
