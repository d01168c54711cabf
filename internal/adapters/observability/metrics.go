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
		prometheus.CounterOpts{Namespace: "resort", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"portal", "route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resort", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"portal", "route", "method"},
	)
	FeedRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "resort", Name: "catalog_feed_requests_total", Help: "Upstream catalog requests."},
		[]string{"endpoint", "status"},
	)
	FeedLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resort", Name: "catalog_feed_request_duration_seconds",
			Help:    "Upstream catalog request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "resort", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels/errors."},
		[]string{"cache", "event"},
	)
	QuotesServed = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "resort", Name: "inquiry_quotes",
		Help:    "Quotes returned per inquiry.",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
	})
	Reservations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "resort", Name: "reservations_total", Help: "Booking attempts by outcome."},
		[]string{"outcome"}, // created|invalid|rejected|error
	)
	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "resort", Name: "logins_total", Help: "Login attempts by role and outcome."},
		[]string{"role", "outcome"},
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, FeedRequests, FeedLatency, CacheEvents, QuotesServed, Reservations, Logins)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(portal, route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(portal, route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(portal, route, method).Observe(dur.Seconds())
}

func ObserveFeed(endpoint string, status int, dur time.Duration) {
	FeedRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	FeedLatency.WithLabelValues(endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { CacheEvents.WithLabelValues(cache, event).Inc() }

func ObserveQuotes(n int) { QuotesServed.Observe(float64(n)) }

func ObserveReservation(outcome string) { Reservations.WithLabelValues(outcome).Inc() }

func ObserveLogin(role, outcome string) { Logins.WithLabelValues(role, outcome).Inc() }
