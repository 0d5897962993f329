package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the gateway:
// HTTP traffic, catalog cache effectiveness, upstream latency per provider,
// and schedule expansion volume.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	cacheHitRatio    prometheus.Gauge
	upstreamDuration *prometheus.HistogramVec
	upstreamErrors   *prometheus.CounterVec
	eventsExpanded   *prometheus.CounterVec

	cacheHitCount  uint64
	cacheMissCount uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_hits_total",
		Help: "Total catalog cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_misses_total",
		Help: "Total catalog cache misses",
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_cache_hit_ratio",
		Help: "Ratio of catalog cache hits to total lookups",
	})

	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of catalog upstream requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})

	upstreamErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_request_errors_total",
		Help: "Total failed catalog upstream requests",
	}, []string{"provider"})

	eventsExpanded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "calendar_events_expanded_total",
		Help: "Total dated events produced by schedule expansion",
	}, []string{"source"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheHits, cacheMisses, cacheHitRatio, upstreamDuration, upstreamErrors, eventsExpanded, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:         registry,
		handler:          handler,
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		cacheHits:        cacheHits,
		cacheMisses:      cacheMisses,
		cacheHitRatio:    cacheHitRatio,
		upstreamDuration: upstreamDuration,
		upstreamErrors:   upstreamErrors,
		eventsExpanded:   eventsExpanded,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheOperation records catalog cache hit/miss and updates the ratio gauge.
func (m *MetricsService) RecordCacheOperation(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	total := hits + misses
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveUpstream records the latency of an upstream catalog request.
func (m *MetricsService) ObserveUpstream(provider string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(provider).Observe(duration.Seconds())
	if err != nil {
		m.upstreamErrors.WithLabelValues(provider).Inc()
	}
}

// AddEventsExpanded counts dated events produced by expansion, labelled by
// whether they came from section meetings or an outline.
func (m *MetricsService) AddEventsExpanded(source string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.eventsExpanded.WithLabelValues(source).Add(float64(count))
}
