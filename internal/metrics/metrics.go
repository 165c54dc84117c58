package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "complaintdesk"

// Delivery outcomes recorded per recipient.
const (
	OutcomeDelivered  = "delivered"
	OutcomeBufferFull = "buffer_full"
	OutcomeClosed     = "closed"
	OutcomeGone       = "gone"
	OutcomeError      = "error"
	OutcomePanic      = "panic"
)

// Metrics exposes Prometheus collectors that report fan-out activity.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	connections         prometheus.Gauge
	groupMembers        *prometheus.GaugeVec
	eventsPublished     *prometheus.CounterVec
	deliveries          *prometheus.CounterVec
	handshakeRejections *prometheus.CounterVec
}

// MustNewMetrics constructs a Metrics instance using the provided registerer.
// Registration errors panic, which surfaces duplicate wiring at startup.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ws",
			Name:      "connections",
			Help:      "Number of open WebSocket connections.",
		}),
		groupMembers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "group_members",
			Help:      "Number of connections joined to each group.",
		}, []string{"group"}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Events handed to the publisher, by event name.",
		}, []string{"event"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Per-recipient delivery attempts, by event and outcome.",
		}, []string{"event", "outcome"}),
		handshakeRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ws",
			Name:      "handshake_rejections_total",
			Help:      "WebSocket handshakes rejected before upgrade, by reason.",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.connections, m.groupMembers, m.eventsPublished, m.deliveries, m.handshakeRejections)
	return m
}

// ConnectionOpened increments the open connection gauge.
func (m *Metrics) ConnectionOpened() {
	if m == nil {
		return
	}
	m.connections.Inc()
}

// ConnectionClosed decrements the open connection gauge.
func (m *Metrics) ConnectionClosed() {
	if m == nil {
		return
	}
	m.connections.Dec()
}

// SetGroupMembers records the current size of group.
func (m *Metrics) SetGroupMembers(group string, n int) {
	if m == nil {
		return
	}
	m.groupMembers.WithLabelValues(group).Set(float64(n))
}

// EventPublished counts one publish call for event.
func (m *Metrics) EventPublished(event string) {
	if m == nil {
		return
	}
	m.eventsPublished.WithLabelValues(event).Inc()
}

// Delivery counts one recipient attempt.
func (m *Metrics) Delivery(event, outcome string) {
	if m == nil {
		return
	}
	m.deliveries.WithLabelValues(event, outcome).Inc()
}

// HandshakeRejected counts a refused upgrade.
func (m *Metrics) HandshakeRejected(reason string) {
	if m == nil {
		return
	}
	m.handshakeRejections.WithLabelValues(reason).Inc()
}
