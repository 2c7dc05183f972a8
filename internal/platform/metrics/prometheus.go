package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager holds the marketplace Prometheus metrics.
type Manager struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal *prometheus.CounterVec
	HTTPLatency       *prometheus.HistogramVec
	BikesCreatedTotal prometheus.Counter
	BikesSoldTotal    prometheus.Counter
	ImagesUploaded    prometheus.Counter
}

// NewManager initializes and registers the metrics under the given
// namespace on a private registry.
func NewManager(namespace string) *Manager {
	registry := prometheus.NewRegistry()

	httpRequestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_latency_seconds",
		Help:      "Latency of HTTP requests by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	bikesCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bikes_created_total",
		Help:      "Total number of bike listings created.",
	})
	bikesSoldTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bikes_sold_total",
		Help:      "Total number of completed sales.",
	})
	imagesUploaded := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "images_uploaded_total",
		Help:      "Total number of images uploaded.",
	})

	registry.MustRegister(
		httpRequestsTotal,
		httpLatency,
		bikesCreatedTotal,
		bikesSoldTotal,
		imagesUploaded,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &Manager{
		Registry:          registry,
		HTTPRequestsTotal: httpRequestsTotal,
		HTTPLatency:       httpLatency,
		BikesCreatedTotal: bikesCreatedTotal,
		BikesSoldTotal:    bikesSoldTotal,
		ImagesUploaded:    imagesUploaded,
	}
}

// Handler exposes the registry for scraping.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per route pattern.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		// The route pattern keeps label cardinality bounded; raw paths
		// with object ids would not.
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		m.HTTPLatency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
