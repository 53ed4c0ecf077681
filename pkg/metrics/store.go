package metrics

import "github.com/prometheus/client_golang/prometheus"

// StoreMetrics counts cart/wishlist mutations, snapshot failures and orders.
type StoreMetrics struct {
	mutations        *prometheus.CounterVec
	snapshotFailures *prometheus.CounterVec
	orders           prometheus.Counter
	activeSessions   prometheus.Gauge
}

// NewStoreMetrics registers the storefront metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	m := &StoreMetrics{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lovenest_store_mutations_total",
			Help: "Cart and wishlist mutations by operation.",
		}, []string{"op"}),
		snapshotFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lovenest_snapshot_failures_total",
			Help: "Cart snapshot load/save/clear failures by operation.",
		}, []string{"op"}),
		orders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lovenest_orders_placed_total",
			Help: "Orders confirmed at checkout.",
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lovenest_active_sessions",
			Help: "Browsing sessions currently held in memory.",
		}),
	}
	reg.MustRegister(m.mutations, m.snapshotFailures, m.orders, m.activeSessions)
	return m
}

func (m *StoreMetrics) IncMutation(op string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(op)).Inc()
}

func (m *StoreMetrics) IncSnapshotFailure(op string) {
	if m == nil || m.snapshotFailures == nil {
		return
	}
	m.snapshotFailures.WithLabelValues(normalizeLabel(op)).Inc()
}

func (m *StoreMetrics) IncOrders() {
	if m == nil || m.orders == nil {
		return
	}
	m.orders.Inc()
}

func (m *StoreMetrics) SetActiveSessions(n int) {
	if m == nil || m.activeSessions == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}
