package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()
	initOnce sync.Once

	scoresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ats_scores_total",
			Help: "Total number of resume analyses by mode",
		},
		[]string{"mode"},
	)
	scoreValue = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ats_score_value",
			Help:    "Distribution of basic ATS scores (0-100)",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)
	deepGateTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ats_deep_gate_total",
			Help: "Deep analyses rejected for insufficient job context",
		},
		[]string{"reason"},
	)
	extractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ats_extractions_total",
			Help: "Document text extractions by type and outcome",
		},
		[]string{"type", "outcome"},
	)
	extractionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ats_extraction_duration_seconds",
			Help:    "Document text extraction duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"type"},
	)
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)
)

// Init registers the collectors. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			scoresTotal,
			scoreValue,
			deepGateTotal,
			extractionsTotal,
			extractionDuration,
			httpRequestsTotal,
			httpRequestDuration,
		)
	})
}

// Registry returns the registry backing Handler.
func Registry() *prometheus.Registry {
	Init()
	return registry
}

// ObserveScore records a completed analysis. The score histogram only tracks
// basic scores.
func ObserveScore(mode string, score int) {
	scoresTotal.WithLabelValues(mode).Inc()
	if mode == "BASIC" {
		scoreValue.Observe(float64(score))
	}
}

// IncDeepGate counts a deep analysis turned away by the context gate.
func IncDeepGate(reason string) {
	deepGateTotal.WithLabelValues(reason).Inc()
}

// ObserveExtraction records one text extraction.
func ObserveExtraction(docType, outcome string, d time.Duration) {
	extractionsTotal.WithLabelValues(docType, outcome).Inc()
	extractionDuration.WithLabelValues(docType).Observe(d.Seconds())
}

// ObserveHTTP records one served request.
func ObserveHTTP(route, method string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
