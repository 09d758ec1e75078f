// Package metrics exposes client-side counters for dispatched API calls and
// token refreshes.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "legalwriter_client"

// Outcome labels for requests that never produced an HTTP status.
const (
	OutcomeAuth    = "auth"
	OutcomeNetwork = "network"
)

// Refresh results.
const (
	RefreshSuccess = "success"
	RefreshFailure = "failure"
	RefreshReused  = "reused"
)

type Metrics struct {
	gatherer  prometheus.Gatherer
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	refreshes *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		gatherer: reg,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "requests_total", Help: "Dispatched API requests by method and outcome."},
			[]string{"method", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Namespace: namespace, Name: "request_duration_seconds", Help: "Latency of dispatched API requests.", Buckets: prometheus.DefBuckets},
			[]string{"method"},
		),
		refreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "token_refreshes_total", Help: "Access token refresh attempts by result."},
			[]string{"result"},
		),
	}
	reg.MustRegister(m.requests, m.duration, m.refreshes)
	return m
}

// StatusOutcome buckets an HTTP status into "2xx", "4xx" and so on.
func StatusOutcome(status int) string {
	return fmt.Sprintf("%dxx", status/100)
}

// ObserveRequest records one dispatched request. Safe on a nil receiver.
func (m *Metrics) ObserveRequest(method, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, outcome).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveRefresh records one refresh attempt. Safe on a nil receiver.
func (m *Metrics) ObserveRefresh(result string) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(result).Inc()
}

// Summary renders the counters as sorted "name{labels} value" lines.
func (m *Metrics) Summary() (string, error) {
	if m == nil {
		return "", nil
	}
	families, err := m.gatherer.Gather()
	if err != nil {
		return "", err
	}

	var lines []string
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			if metric.GetCounter() == nil {
				continue
			}
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, l := range metric.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %.0f", f.GetName(), strings.Join(labels, ","), metric.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n"), nil
}
