// Package metrics records flow activity as Prometheus series.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the collectors for one registry.
type Recorder struct {
	registry *prometheus.Registry

	submissions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	optionLoads *prometheus.CounterVec
	inFlight    *prometheus.GaugeVec
	rejected    *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rankpredict_submissions_total",
				Help: "Prediction submissions by flow and outcome",
			},
			[]string{"flow", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rankpredict_submission_duration_seconds",
				Help:    "Time from submit to terminal state",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"flow"},
		),
		optionLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rankpredict_option_loads_total",
				Help: "Option set fetches by flow and outcome",
			},
			[]string{"flow", "outcome"},
		),
		inFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "rankpredict_requests_in_flight",
				Help: "Submissions currently loading",
			},
			[]string{"flow"},
		),
		rejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rankpredict_submissions_ignored_total",
				Help: "Submissions ignored because one was already in flight",
			},
			[]string{"flow"},
		),
	}
}

// Registry exposes the underlying registry for scraping or tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) SubmissionStarted(flow string) {
	r.inFlight.WithLabelValues(flow).Inc()
}

func (r *Recorder) SubmissionFinished(flow, outcome string, elapsed time.Duration) {
	r.inFlight.WithLabelValues(flow).Dec()
	r.submissions.WithLabelValues(flow, outcome).Inc()
	r.duration.WithLabelValues(flow).Observe(elapsed.Seconds())
}

func (r *Recorder) SubmissionIgnored(flow string) {
	r.rejected.WithLabelValues(flow).Inc()
}

func (r *Recorder) OptionsLoaded(flow, outcome string) {
	r.optionLoads.WithLabelValues(flow, outcome).Inc()
}
