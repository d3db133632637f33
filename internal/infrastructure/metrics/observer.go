// Package metrics exports fraud engine telemetry as Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jayanth2212/AgriSure/internal/domain/valueobject"
)

const namespace = "agrisure_fraud"

// Observer implements port.EngineObserver.
type Observer struct {
	assessments      *prometheus.CounterVec
	providerFailures *prometheus.CounterVec
	duration         prometheus.Histogram
	autoRejects      prometheus.Counter
}

// NewObserver creates the collectors and registers them with reg.
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Completed fraud assessments by risk level.",
		}, []string{"risk_level"}),
		providerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_failures_total",
			Help:      "Provider queries that failed and fell back to a default.",
		}, []string{"provider"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assessment_duration_seconds",
			Help:      "Wall time of one scoring pass.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		autoRejects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auto_rejects_total",
			Help:      "Assessments that met the auto-reject threshold.",
		}),
	}
	for _, c := range []prometheus.Collector{o.assessments, o.providerFailures, o.duration, o.autoRejects} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *Observer) ProviderFailed(provider string) {
	o.providerFailures.WithLabelValues(provider).Inc()
}

func (o *Observer) AssessmentCompleted(level valueobject.RiskLevel, autoReject bool, elapsed time.Duration) {
	o.assessments.WithLabelValues(level.String()).Inc()
	o.duration.Observe(elapsed.Seconds())
	if autoReject {
		o.autoRejects.Inc()
	}
}
