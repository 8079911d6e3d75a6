package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	rankingPasses     prometheus.Counter
	rankingDuration   prometheus.Histogram
	rankingCandidates prometheus.Histogram
	semanticDegraded  prometheus.Counter
	catalogSize       *prometheus.GaugeVec
	interactions      *prometheus.CounterVec
	errorsTotal       *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		rankingPasses: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "predictpulse_ranking_passes_total",
				Help: "Total number of ranking passes served",
			},
		),
		rankingDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "predictpulse_ranking_duration_seconds",
				Help:    "Duration of a full ranking pass in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		rankingCandidates: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "predictpulse_ranking_candidates",
				Help:    "Candidate set size per ranking pass",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 150, 250, 500},
			},
		),
		semanticDegraded: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "predictpulse_semantic_degraded_total",
				Help: "Ranking passes that ran without semantic candidates",
			},
		),
		catalogSize: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "predictpulse_catalog_events",
				Help: "Number of events in the current catalog snapshot",
			},
			[]string{"platform"},
		),
		interactions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "predictpulse_interactions_total",
				Help: "Total user preference interactions",
			},
			[]string{"action"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "predictpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordRankingPass records one completed ranking pass, its duration and
// how many candidates survived extraction.
func (r *Recorder) RecordRankingPass(seconds float64, candidates int) {
	r.rankingPasses.Inc()
	r.rankingDuration.Observe(seconds)
	r.rankingCandidates.Observe(float64(candidates))
}

// RecordSemanticDegraded records a ranking pass that lost its semantic leg.
func (r *Recorder) RecordSemanticDegraded() {
	r.semanticDegraded.Inc()
}

// RecordCatalogSize records the event count for a platform after a refresh.
func (r *Recorder) RecordCatalogSize(platform string, count int) {
	r.catalogSize.WithLabelValues(platform).Set(float64(count))
}

// RecordInteraction records a stored preference action.
func (r *Recorder) RecordInteraction(action string) {
	r.interactions.WithLabelValues(action).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
