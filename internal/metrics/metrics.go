// Package metrics exposes the service's Prometheus instruments on a private registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fundadvisor"

// Registry owns every instrument the service exports.
type Registry struct {
	reg *prometheus.Registry

	httpRequests      *prometheus.CounterVec
	recommendDuration prometheus.Histogram
	narrativeOutcomes *prometheus.CounterVec
	datasetFunds      prometheus.Gauge
}

// New creates a registry with the Go and process collectors registered.
func New() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Registry{
		reg: reg,
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route pattern and status code",
			},
			[]string{"method", "route", "status"},
		),
		recommendDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommend_duration_seconds",
			Help:      "Time spent building a recommendation, excluding narrative generation",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}),
		narrativeOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "narrative_outcomes_total",
				Help:      "Narrative generation outcomes; anything but success served the fallback report",
			},
			[]string{"outcome"},
		),
		datasetFunds: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_funds",
			Help:      "Number of funds in the loaded dataset",
		}),
	}
}

// ObserveRequest counts one served HTTP request.
func (r *Registry) ObserveRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// ObserveRecommend records the duration of one recommendation.
func (r *Registry) ObserveRecommend(d time.Duration) {
	r.recommendDuration.Observe(d.Seconds())
}

// ObserveNarrative counts one narrative outcome.
func (r *Registry) ObserveNarrative(outcome string) {
	r.narrativeOutcomes.WithLabelValues(outcome).Inc()
}

// SetDatasetSize records the loaded dataset size
func (r *Registry) SetDatasetSize(n int) {
	r.datasetFunds.Set(float64(n))
}

// Gatherer returns the underlying registry for scraping and tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
