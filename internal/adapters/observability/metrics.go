package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "travel", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "travel", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "travel", Name: "search_results",
			Help:    "Number of destinations returned per search.",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20},
		},
	)
	CatalogSize = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "travel", Name: "catalog_destinations", Help: "Destinations loaded at startup."},
	)
	Throttled = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "travel", Name: "throttled_requests_total", Help: "Requests rejected by rate limiting."},
		[]string{"reason"}, // reason: client|overload
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, SearchResults, CatalogSize, Throttled)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveSearch(results int) { SearchResults.Observe(float64(results)) }

func SetCatalogSize(n int) { CatalogSize.Set(float64(n)) }

func ObserveThrottled(reason string) { Throttled.WithLabelValues(reason).Inc() }
