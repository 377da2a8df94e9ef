package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the set of collectors updated by the sync and read paths.
type Recorder struct {
	registry *prometheus.Registry

	Passes    *prometheus.CounterVec
	Duration  prometheus.Histogram
	Processed prometheus.Counter
	Failures  *prometheus.CounterVec
	Warnings  prometheus.Counter
	Reads     *prometheus.CounterVec
}

// New builds a Recorder on a private registry with Go and process collectors.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		Passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gallery",
			Subsystem: "sync",
			Name:      "passes_total",
			Help:      "Sync passes by trigger and outcome.",
		}, []string{"trigger", "outcome"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gallery",
			Subsystem: "sync",
			Name:      "pass_duration_seconds",
			Help:      "Duration of completed sync passes.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		Processed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gallery",
			Subsystem: "sync",
			Name:      "items_processed_total",
			Help:      "Photos successfully reconciled.",
		}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gallery",
			Subsystem: "sync",
			Name:      "item_failures_total",
			Help:      "Per-item failures by entity.",
		}, []string{"entity"}),
		Warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gallery",
			Subsystem: "sync",
			Name:      "warnings_total",
			Help:      "Folders and objects skipped with a warning.",
		}),
		Reads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gallery",
			Subsystem: "read",
			Name:      "requests_total",
			Help:      "Read requests by serving strategy and outcome.",
		}, []string{"strategy", "outcome"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.Passes, r.Duration, r.Processed, r.Failures, r.Warnings, r.Reads,
	)
	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
}

// Register attaches the metrics endpoint to the app.
func (r *Recorder) Register(app fiber.Router, path string) {
	app.Get(path, r.Handler())
}
