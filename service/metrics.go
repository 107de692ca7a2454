package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	samplesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qmaze_samples_total",
		Help: "Maze samples carved, by strategy and outcome",
	}, []string{"strategy", "outcome"})

	trainingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "qmaze_training_duration_seconds",
		Help:    "Time spent learning one action-value table",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	}, []string{"policy"})

	carveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "qmaze_carve_duration_seconds",
		Help:    "Time spent carving one maze sample",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"strategy"})

	poolRefills = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qmaze_pool_refills_total",
		Help: "Batches generated because the pool for a size was empty",
	})
)

const (
	outcomeValid   = "valid"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)
