// Package metrics provides a Prometheus-backed request observer for the
// gateway client.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/clickatell/clickatell-go/transport"
)

// Collector implements clickatell.Observer, tracking request counts,
// failures and latency per verb and HTTP status.
type Collector struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	requestErrors   *prometheus.CounterVec
}

// NewCollector registers the gateway metrics with reg and returns the
// observer. Pass prometheus.DefaultRegisterer to use the default registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clickatell_request_duration_seconds",
			Help:    "Gateway request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "status"}),
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clickatell_requests_total",
			Help: "Total number of gateway requests",
		}, []string{"method", "status"}),
		requestErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clickatell_request_errors_total",
			Help: "Total number of gateway requests that failed in transport",
		}, []string{"method"}),
	}
}

// OnRequestStart is a no-op; all observations happen at request end.
func (c *Collector) OnRequestStart(transport.Method, string) {}

// OnRequestEnd records one completed request. A zero status means the
// request never reached the gateway.
func (c *Collector) OnRequestEnd(method transport.Method, _ string, status int, duration time.Duration, err error) {
	code := strconv.Itoa(status)
	c.requestsTotal.WithLabelValues(method.String(), code).Inc()
	c.requestDuration.WithLabelValues(method.String(), code).Observe(duration.Seconds())
	if err != nil {
		c.requestErrors.WithLabelValues(method.String()).Inc()
	}
}
