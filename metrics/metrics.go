// Package metrics exposes prometheus metrics of catalog builds and api requests.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/splunk-releases/releases"
)

type Metrics struct {
	registry *prometheus.Registry

	buildsTotal   *prometheus.CounterVec
	buildDuration prometheus.Histogram
	catalogSize   prometheus.Gauge
	requestsTotal *prometheus.CounterVec
}

// New creates metrics prefixed with namespace and registered in their own registry.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		buildsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_builds_total",
			Help:      "Catalog builds by result.",
		}, []string{"status"}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_build_duration_seconds",
			Help:      "Time spent scraping all download pages.",
			Buckets:   prometheus.DefBuckets,
		}),
		catalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_releases",
			Help:      "Releases in the last successfully built catalog.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Api requests by route and status code.",
		}, []string{"route", "code"}),
	}
	m.registry.MustRegister(
		m.buildsTotal,
		m.buildDuration,
		m.catalogSize,
		m.requestsTotal,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(route string, code int) {
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

func (m *Metrics) observeBuild(d time.Duration, catalog releases.Catalog, err error) {
	m.buildDuration.Observe(d.Seconds())
	if err != nil {
		m.buildsTotal.WithLabelValues("error").Inc()
		return
	}
	m.buildsTotal.WithLabelValues("success").Inc()
	m.catalogSize.Set(float64(len(catalog)))
}

type instrumentedSource struct {
	source  releases.CatalogSource
	metrics *Metrics
}

// InstrumentSource records duration, result and size of every build of source.
func (m *Metrics) InstrumentSource(source releases.CatalogSource) releases.CatalogSource {
	return instrumentedSource{source: source, metrics: m}
}

func (s instrumentedSource) Build(ctx context.Context) (releases.Catalog, error) {
	started := time.Now()
	catalog, err := s.source.Build(ctx)
	s.metrics.observeBuild(time.Since(started), catalog, err)
	return catalog, err
}
