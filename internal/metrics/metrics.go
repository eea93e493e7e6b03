// Package metrics provides Prometheus metrics for the onboarding service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the service's metric instruments and their registry.
type Manager struct {
	registry *prometheus.Registry

	turnsTotal    prometheus.Counter
	turnDuration  prometheus.Histogram
	importsTotal  *prometheus.CounterVec
	analysesTotal *prometheus.CounterVec
	analysisScore prometheus.Histogram
	httpRequests  *prometheus.CounterVec
}

// NewManager builds a Manager with its own registry.
func NewManager() *Manager {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	return &Manager{
		registry: registry,
		turnsTotal: auto.NewCounter(prometheus.CounterOpts{
			Namespace: "hiremeplz",
			Subsystem: "onboarding",
			Name:      "turns_total",
			Help:      "Conversation turns handled.",
		}),
		turnDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hiremeplz",
			Subsystem: "onboarding",
			Name:      "turn_duration_seconds",
			Help:      "Wall time per conversation turn.",
			Buckets:   prometheus.DefBuckets,
		}),
		importsTotal: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hiremeplz",
			Subsystem: "scrape",
			Name:      "imports_total",
			Help:      "LinkedIn imports by terminal status.",
		}, []string{"status"}),
		analysesTotal: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hiremeplz",
			Subsystem: "analysis",
			Name:      "runs_total",
			Help:      "Profile analysis runs by outcome.",
		}, []string{"outcome"}),
		analysisScore: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hiremeplz",
			Subsystem: "analysis",
			Name:      "overall_score",
			Help:      "Distribution of overall profile scores.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hiremeplz",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}
}

// ObserveTurn records one handled conversation turn.
func (m *Manager) ObserveTurn(d time.Duration) {
	m.turnsTotal.Inc()
	m.turnDuration.Observe(d.Seconds())
}

// ObserveImport records a terminal import status.
func (m *Manager) ObserveImport(status string) {
	m.importsTotal.WithLabelValues(status).Inc()
}

// ObserveAnalysis records an analysis outcome and, on success, its score.
func (m *Manager) ObserveAnalysis(outcome string, score int) {
	m.analysesTotal.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		m.analysisScore.Observe(float64(score))
	}
}

// ObserveRequest records one HTTP request.
func (m *Manager) ObserveRequest(route, code string) {
	m.httpRequests.WithLabelValues(route, code).Inc()
}

// Handler serves the registry in Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
