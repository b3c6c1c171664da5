package observability

import (
	"context"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "folio"

// Metrics holds the collectors fed by the lifecycle hooks.
type Metrics struct {
	StepVisits   *prometheus.CounterVec
	StepErrors   *prometheus.CounterVec
	StepDuration *prometheus.HistogramVec
	Branches     *prometheus.CounterVec
	Runs         *prometheus.CounterVec
	RunDuration  prometheus.Histogram
	RunAttempts  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StepVisits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "step_visits_total",
			Help:      "Total number of step invocations.",
		}, []string{"step"}),
		StepErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "step_errors_total",
			Help:      "Step invocations that ended the run with an error.",
		}, []string{"step", "kind"}),
		StepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "step_duration_seconds",
			Help:      "Duration of step invocations.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 4, 8),
		}, []string{"step"}),
		Branches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "branch_decisions_total",
			Help:      "Decisions taken at the quality fork.",
		}, []string{"branch"}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "runs_total",
			Help:      "Finished runs by outcome.",
		}, []string{"outcome"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of complete runs.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 3, 8),
		}),
		RunAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "run_attempts",
			Help:      "Generation attempts per run.",
			Buckets:   []float64{1, 2, 3, 4, 5},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.StepVisits, m.StepErrors, m.StepDuration, m.Branches, m.Runs, m.RunDuration, m.RunAttempts)
	}
	return m
}

// OutcomeCompleted labels runs that reached the end sink.
const OutcomeCompleted = "completed"

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(_ context.Context, e *domain.StepEvent) {
			m.StepVisits.WithLabelValues(e.Step).Inc()
		},
		OnStepLeave: func(_ context.Context, e *domain.StepEvent) {
			m.StepDuration.WithLabelValues(e.Step).Observe(e.Duration.Seconds())
			if e.Err != nil {
				kind := string(domain.KindOf(e.Err))
				if kind == "" {
					kind = string(domain.KindStepFailed)
				}
				m.StepErrors.WithLabelValues(e.Step, kind).Inc()
			}
		},
		OnBranch: func(_ context.Context, e *domain.BranchEvent) {
			m.Branches.WithLabelValues(string(e.Branch)).Inc()
		},
		OnRunEnd: func(_ context.Context, e *domain.RunEvent) {
			outcome := OutcomeCompleted
			if e.Kind != "" {
				outcome = string(e.Kind)
			}
			m.Runs.WithLabelValues(outcome).Inc()
			m.RunDuration.Observe(e.Duration.Seconds())
			m.RunAttempts.Observe(float64(e.Attempts))
		},
	}
}
