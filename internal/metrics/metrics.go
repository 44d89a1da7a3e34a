package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	completionReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resume_insights",
			Name:      "completion_requests_total",
			Help:      "Completion requests by provider and result",
		},
		[]string{"provider", "result"},
	)

	completionLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resume_insights",
			Name:      "completion_request_duration_seconds",
			Help:      "Duration of completion requests by provider",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
		},
		[]string{"provider"},
	)

	pipelineRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resume_insights",
			Name:      "pipeline_runs_total",
			Help:      "Pipeline runs by response mode and result kind",
		},
		[]string{"mode", "result"},
	)

	extractedPages = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "resume_insights",
			Name:      "extracted_pages_total",
			Help:      "Pages that yielded text during extraction",
		},
	)

	registerOnce sync.Once
)

// Init registers collectors with the default registry. Safe to call twice.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(completionReqs, completionLatency, pipelineRuns, extractedPages)
	})
}

// Handler returns the http.Handler for /metrics
func Handler() http.Handler { return promhttp.Handler() }

func ObserveCompletion(provider, result string, dur time.Duration) {
	completionReqs.WithLabelValues(provider, result).Inc()
	completionLatency.WithLabelValues(provider).Observe(dur.Seconds())
}

func IncPipelineRun(mode, result string) { pipelineRuns.WithLabelValues(mode, result).Inc() }

func AddExtractedPages(n int) { extractedPages.Add(float64(n)) }
