package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Generator metrics
	Iterations        prometheus.Counter
	PayloadsGenerated *prometheus.CounterVec
	BuildFailures     *prometheus.CounterVec
	Dispatches        *prometheus.CounterVec
	DispatchDuration  *prometheus.HistogramVec

	// Receiver metrics
	MessagesReceived *prometheus.CounterVec
	RateLimitHits    prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge
}

// New creates all metrics and registers them with reg, or with the default
// registerer when reg is nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		// Generator metrics
		Iterations: factory.NewCounter(prometheus.CounterOpts{
			Name: "datagen_iterations_total",
			Help: "Total number of run loop iterations",
		}),
		PayloadsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "datagen_payloads_generated_total",
				Help: "Total number of payloads generated by kind",
			},
			[]string{"kind"},
		),
		BuildFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "datagen_build_failures_total",
				Help: "Total number of iterations skipped because no valid payload could be built",
			},
			[]string{"kind"},
		),
		Dispatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "datagen_dispatches_total",
				Help: "Total dispatches by sink and outcome",
			},
			[]string{"sink", "outcome"},
		),
		DispatchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "datagen_dispatch_duration_seconds",
				Help:    "Duration of dispatches",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"sink"},
		),

		// Receiver metrics
		MessagesReceived: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "receiver_messages_total",
				Help: "Total messages received by kind and status",
			},
			[]string{"kind", "status"},
		),
		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "receiver_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "receiver_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "receiver_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "receiver_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),
	}
}
