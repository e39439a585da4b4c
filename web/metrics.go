// ABOUTME: Prometheus collectors for the viewer: request counts and latency, render cache hits and misses.
package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/2389-research/fishbone/render"
)

type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	notFound prometheus.Counter
	progress *prometheus.CounterVec
}

// newMetrics registers collectors on a private registry so tests can build
// several servers in one process.
func newMetrics(cache *render.RenderCache) *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	f := promauto.With(reg)

	m := &metrics{
		registry: reg,
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fishbone_http_requests_total",
				Help: "Total number of HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fishbone_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		notFound: f.NewCounter(prometheus.CounterOpts{
			Name: "fishbone_chart_not_found_total",
			Help: "Chart requests answered with File not found",
		}),
		progress: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fishbone_progress_operations_total",
				Help: "Progress store reads and writes",
			},
			[]string{"op"},
		),
	}

	if cache != nil {
		f.NewCounterFunc(prometheus.CounterOpts{
			Name: "fishbone_render_cache_hits_total",
			Help: "Live renders served from the cache",
		}, func() float64 {
			hits, _ := cache.Stats()
			return float64(hits)
		})
		f.NewCounterFunc(prometheus.CounterOpts{
			Name: "fishbone_render_cache_misses_total",
			Help: "Live renders that had to build the chart",
		}, func() float64 {
			_, misses := cache.Stats()
			return float64(misses)
		})
		f.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "fishbone_render_cache_entries",
			Help: "Charts currently held in the render cache",
		}, func() float64 {
			return float64(cache.Len())
		})
	}
	return m
}

func (m *metrics) observe(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
