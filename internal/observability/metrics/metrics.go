package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes the counters operators care about: silent zero-price
// fallbacks and billing webhook traffic.
type Metrics struct {
	RateLookupMisses *prometheus.CounterVec
	WebhookEvents    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		RateLookupMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cotiza",
			Subsystem: "pricing",
			Name:      "rate_lookup_misses_total",
			Help:      "Selections priced at zero because the rate table had no entry.",
		}, []string{"category", "service"}),
		WebhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cotiza",
			Subsystem: "billing",
			Name:      "webhook_events_total",
			Help:      "Billing provider webhook events by type and outcome.",
		}, []string{"event_type", "outcome"}),
	}

	prometheus.MustRegister(m.RateLookupMisses, m.WebhookEvents)
	return m
}

// RecordRateLookupMiss counts a zero-price fallback for a rate table miss.
func (m *Metrics) RecordRateLookupMiss(category, service string) {
	if m == nil {
		return
	}
	m.RateLookupMisses.WithLabelValues(category, service).Inc()
}

// RecordWebhookEvent counts a processed billing webhook event.
func (m *Metrics) RecordWebhookEvent(eventType, outcome string) {
	if m == nil {
		return
	}
	m.WebhookEvents.WithLabelValues(eventType, outcome).Inc()
}
