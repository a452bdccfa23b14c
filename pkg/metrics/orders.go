package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

// OrderMetrics counts what the counter does over a shift.
type OrderMetrics struct {
	finished    prometheus.Counter
	lineWrites  *prometheus.CounterVec
	adminLogins *prometheus.CounterVec
	orderTotal  prometheus.Histogram
	catalogAdds prometheus.Counter
}

// NewOrderMetrics registers the order metrics on the provided registerer. A nil
// registerer yields a no-op recorder.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	finished := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "burgershop_orders_finished_total",
		Help: "Orders finished at the counter.",
	})
	lineWrites := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "burgershop_order_line_writes_total",
		Help: "Order lines written to the database, by result.",
	}, []string{"result"})
	adminLogins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "burgershop_admin_logins_total",
		Help: "Admin mode attempts, by result.",
	}, []string{"result"})
	orderTotal := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "burgershop_order_total_amount",
		Help:    "Order totals in the configured currency.",
		Buckets: []float64{0, 250, 500, 1000, 1500, 2500, 5000},
	})
	catalogAdds := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "burgershop_catalog_items_added_total",
		Help: "Burgers added to the menu in admin mode.",
	})
	reg.MustRegister(finished, lineWrites, adminLogins, orderTotal, catalogAdds)
	return &OrderMetrics{
		finished:    finished,
		lineWrites:  lineWrites,
		adminLogins: adminLogins,
		orderTotal:  orderTotal,
		catalogAdds: catalogAdds,
	}
}

// ObserveFinished records one finished order and its total.
func (m *OrderMetrics) ObserveFinished(total decimal.Decimal) {
	if m == nil || m.finished == nil {
		return
	}
	m.finished.Inc()
	value, _ := total.Float64()
	m.orderTotal.Observe(value)
}

func (m *OrderMetrics) AddLineWrites(written, failed int) {
	if m == nil || m.lineWrites == nil {
		return
	}
	m.lineWrites.WithLabelValues(ResultOK).Add(float64(written))
	m.lineWrites.WithLabelValues(ResultFailed).Add(float64(failed))
}

func (m *OrderMetrics) IncAdminLogin(ok bool) {
	if m == nil || m.adminLogins == nil {
		return
	}
	result := ResultFailed
	if ok {
		result = ResultOK
	}
	m.adminLogins.WithLabelValues(result).Inc()
}

func (m *OrderMetrics) IncCatalogAdd() {
	if m == nil || m.catalogAdds == nil {
		return
	}
	m.catalogAdds.Inc()
}
