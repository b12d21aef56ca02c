package metrics

import (
	"entitlements-api/internal/domain/access"
	"entitlements-api/internal/domain/subscription"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts gate decisions and subscription alerts. A nil *Metrics is a no-op.
type Metrics struct {
	gateDecisions *prometheus.CounterVec
	configErrors  *prometheus.CounterVec
	alerts        *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		gateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "entitlements_gate_decisions_total",
			Help: "Feature gate decisions by feature, outcome and deciding rule.",
		}, []string{"feature", "outcome", "basis"}),
		configErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "entitlements_gate_config_errors_total",
			Help: "Gate evaluations that failed on an unknown plan tier.",
		}, []string{"feature"}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "entitlements_subscription_alerts_total",
			Help: "Subscription alert classifications by level.",
		}, []string{"level"}),
	}
	reg.MustRegister(m.gateDecisions, m.configErrors, m.alerts)
	return m
}

func (m *Metrics) ObserveDecision(feature string, d access.GateDecision) {
	if m == nil {
		return
	}
	outcome := "denied"
	if d.Allowed {
		outcome = "allowed"
	}
	m.gateDecisions.WithLabelValues(feature, outcome, string(d.Basis)).Inc()
}

func (m *Metrics) ObserveConfigError(feature string) {
	if m == nil {
		return
	}
	m.configErrors.WithLabelValues(feature).Inc()
}

func (m *Metrics) ObserveAlert(level subscription.AlertLevel) {
	if m == nil {
		return
	}
	m.alerts.WithLabelValues(string(level)).Inc()
}
