package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RunsStarted          prometheus.Counter
	RunsCompleted        *prometheus.CounterVec
	RunConflicts         prometheus.Counter
	StageDuration        *prometheus.HistogramVec
	QueriesInvoked       prometheus.Counter
	QueryFailures        prometheus.Counter
	TransformationsTotal prometheus.Counter
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on the given registerer so tests can read
// observations off an isolated registry.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RunsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "julee_validation_runs_started_total",
			Help: "Total number of validation runs started",
		}),
		RunsCompleted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "julee_validation_runs_completed_total",
			Help: "Total number of validation runs reaching a terminal status",
		}, []string{"status"}),
		RunConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "julee_validation_run_conflicts_total",
			Help: "Total number of Run invocations rejected because the record was already being processed",
		}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "julee_validation_stage_duration_seconds",
			Help:    "Duration of orchestrator stages",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
		QueriesInvoked: factory.NewCounter(prometheus.CounterOpts{
			Name: "julee_validation_queries_invoked_total",
			Help: "Total number of knowledge-service query invocations",
		}),
		QueryFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "julee_validation_query_failures_total",
			Help: "Total number of failed knowledge-service query invocations",
		}),
		TransformationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "julee_validation_transformations_total",
			Help: "Total number of document transformations executed",
		}),
	}
}

func (m *Metrics) ObserveStage(stage string, seconds float64) {
	m.StageDuration.WithLabelValues(stage).Observe(seconds)
}

func (m *Metrics) IncrementCompleted(status string) {
	m.RunsCompleted.WithLabelValues(status).Inc()
}
