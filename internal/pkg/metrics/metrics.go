package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"transaction-risk-engine/internal/domain/risk"
)

const namespace = "risk_engine"

var (
	DecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decisions_total",
			Help:      "Risk decisions by verdict.",
		},
		[]string{"verdict"},
	)

	RiskFactorsFired = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "risk_factors_fired_total",
			Help:      "Individual risk factors that fired.",
		},
		[]string{"factor"},
	)

	DecisionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "decision_duration_seconds",
			Help:      "Time spent producing a risk decision.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	FallbackDecisionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_decisions_total",
			Help:      "Decisions served by the degraded amount-only path.",
		},
	)
)

// Register installs all collectors on the default registry.
func Register() {
	prometheus.MustRegister(
		DecisionsTotal,
		RiskFactorsFired,
		DecisionDuration,
		FallbackDecisionsTotal,
	)
}

// Handler returns the metrics scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveDecision records the metrics for a completed verdict.
func ObserveDecision(v *risk.Verdict) {
	verdict := "legitimate"
	if v.Fraud {
		verdict = "fraudulent"
	}
	DecisionsTotal.WithLabelValues(verdict).Inc()

	for _, factor := range v.FiredFactors() {
		RiskFactorsFired.WithLabelValues(string(factor)).Inc()
	}

	DecisionDuration.Observe(float64(v.LatencyMs) / 1000.0)

	if v.Fallback {
		FallbackDecisionsTotal.Inc()
	}
}
