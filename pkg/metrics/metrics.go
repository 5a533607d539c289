// Package metrics exposes Prometheus instrumentation for the pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry collects the lenient metrics. It is separate from the default
// registry so embedding hosts decide whether and where to expose them.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// Conversions counts converter invocations by direction and result.
	Conversions = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "lenient_conversions_total",
		Help: "Total converter invocations by direction and result",
	}, []string{"direction", "result"})

	// ConversionDuration tracks converter latency.
	ConversionDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lenient_conversion_duration_seconds",
		Help:    "Converter duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~800ms
	}, []string{"direction"})

	// Saves counts transactional writes by result.
	Saves = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "lenient_saves_total",
		Help: "Total transactional saves by result",
	}, []string{"result"})

	// Transitions counts dialect state machine transitions by kind.
	Transitions = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "lenient_transitions_total",
		Help: "Total dialect transitions by outcome",
	}, []string{"outcome"})

	// Tracked is the number of documents currently in lenient mode.
	Tracked = factory.NewGauge(prometheus.GaugeOpts{
		Name: "lenient_tracked_documents",
		Help: "Documents currently presented in the lenient dialect",
	})
)

// Result labels.
const (
	ResultOK    = "ok"
	ResultError = "error"
)
