package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the service's own collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	Reconciliations *prometheus.CounterVec
	ReconciledDocs  *prometheus.CounterVec
	OutboxPublished *prometheus.CounterVec
	OutboxPending   prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Reconciliations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_reconciliations_total",
			Help: "Catalog reconciliations by collection and result.",
		}, []string{"collection", "result"}),
		ReconciledDocs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_reconciled_documents_total",
			Help: "Documents written by successful reconciliations.",
		}, []string{"collection", "op"}),
		OutboxPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_outbox_published_total",
			Help: "Outbox events handed to the broker, by result.",
		}, []string{"result"}),
		OutboxPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_outbox_pending",
			Help: "Pending outbox events seen by the last relay run.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Reconciliations, m.ReconciledDocs, m.OutboxPublished, m.OutboxPending)
	}
	return m
}

func (m *Metrics) ObserveReconcile(collection string, upserts, deletes int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.Reconciliations.WithLabelValues(collection, "error").Inc()
		return
	}
	m.Reconciliations.WithLabelValues(collection, "ok").Inc()
	m.ReconciledDocs.WithLabelValues(collection, "upsert").Add(float64(upserts))
	m.ReconciledDocs.WithLabelValues(collection, "delete").Add(float64(deletes))
}

func (m *Metrics) ObservePublish(ok bool, n int) {
	if m == nil || n == 0 {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.OutboxPublished.WithLabelValues(result).Add(float64(n))
}

func (m *Metrics) SetPending(n int) {
	if m == nil {
		return
	}
	m.OutboxPending.Set(float64(n))
}
