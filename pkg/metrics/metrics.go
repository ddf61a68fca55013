// Package metrics exposes the Prometheus collectors of the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the HTTP layer and the services report to.
type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordRateLimited(scope string)
	RecordApplicationSubmitted()
	RecordStatusChange(status string)
}

type Collector struct {
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	rateLimited   *prometheus.CounterVec
	applications  prometheus.Counter
	statusChanges *prometheus.CounterVec
}

// NewCollector creates the collectors and registers them on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobportal_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jobportal_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobportal_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}, []string{"scope"}),
		applications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jobportal_applications_submitted_total",
			Help: "Applications accepted by the store",
		}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobportal_application_status_changes_total",
			Help: "Application status updates by target status",
		}, []string{"status"}),
	}

	reg.MustRegister(
		c.requests,
		c.latency,
		c.rateLimited,
		c.applications,
		c.statusChanges,
	)

	return c
}

func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) RecordRateLimited(scope string) {
	c.rateLimited.WithLabelValues(scope).Inc()
}

func (c *Collector) RecordApplicationSubmitted() {
	c.applications.Inc()
}

func (c *Collector) RecordStatusChange(status string) {
	c.statusChanges.WithLabelValues(status).Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards every observation.
type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) RecordRateLimited(string) {}
func (Nop) RecordApplicationSubmitted() {}
func (Nop) RecordStatusChange(string) {}
