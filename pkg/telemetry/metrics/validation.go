package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"vitalis-hq/glosaguard/pkg/config"
)

// ValidationMetrics tracks metrics related to validation passes.
//
// Metrics:
//   - glosaguard_validation_rules_total: rule outcomes by rule and outcome
//   - glosaguard_validation_rule_duration_seconds: per-rule execution duration
//   - glosaguard_validation_findings_total: emitted findings by code and severity
//   - glosaguard_validation_passes_total: completed passes by guide type
//   - glosaguard_validation_pass_duration_seconds: pass duration by guide type
type ValidationMetrics struct {
	rulesTotal    *prometheus.CounterVec
	ruleDuration  *prometheus.HistogramVec
	findingsTotal *prometheus.CounterVec
	passesTotal   *prometheus.CounterVec
	passDuration  *prometheus.HistogramVec
}

// NewValidationMetrics creates and registers validation metrics with the
// provided registry.
func NewValidationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ValidationMetrics {
	vm := &ValidationMetrics{
		rulesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rules_total",
				Help:      "Total number of rule outcomes",
			},
			[]string{"rule_id", "outcome"},
		),

		ruleDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rule_duration_seconds",
				Help:      "Duration of individual rule execution in seconds",
				// Rules should be fast; lookup rules may block on a table load
				Buckets: prometheus.ExponentialBuckets(0.000001, 2, 15), // 1µs to 16ms
			},
			[]string{"rule_id"},
		),

		findingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "findings_total",
				Help:      "Total number of findings emitted",
			},
			[]string{"code", "severity"},
		),

		passesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "passes_total",
				Help:      "Total number of completed validation passes",
			},
			[]string{"guia_type", "status"},
		),

		passDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "pass_duration_seconds",
				Help:      "Duration of full validation passes in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"guia_type"},
		),
	}

	registry.MustRegister(
		vm.rulesTotal,
		vm.ruleDuration,
		vm.findingsTotal,
		vm.passesTotal,
		vm.passDuration,
	)

	return vm
}

// RecordRule records one rule outcome ("executed" or "skipped").
func (vm *ValidationMetrics) RecordRule(ruleID, outcome string, duration time.Duration) {
	vm.rulesTotal.WithLabelValues(ruleID, outcome).Inc()
	vm.ruleDuration.WithLabelValues(ruleID).Observe(duration.Seconds())
}

// RecordFinding records one emitted finding.
func (vm *ValidationMetrics) RecordFinding(code, severity string) {
	vm.findingsTotal.WithLabelValues(code, severity).Inc()
}

// RecordPass records one completed validation pass.
func (vm *ValidationMetrics) RecordPass(guiaType string, duration time.Duration, errorCount, warningCount int) {
	status := "valid"
	if errorCount > 0 {
		status = "invalid"
	}
	vm.passesTotal.WithLabelValues(guiaType, status).Inc()
	vm.passDuration.WithLabelValues(guiaType).Observe(duration.Seconds())
}
