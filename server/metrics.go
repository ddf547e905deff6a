package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "formdraft_generations_total",
		Help: "Form submissions by template and outcome.",
	}, []string{"template", "outcome"})

	generationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "formdraft_generation_seconds",
		Help:    "End to end submission latency in seconds.",
		Buckets: prometheus.DefBuckets,
	})
)

func observeGeneration(template, outcome string, started time.Time) {
	generationsTotal.WithLabelValues(template, outcome).Inc()
	generationSeconds.Observe(time.Since(started).Seconds())
}
