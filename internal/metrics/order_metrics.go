package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Операции сервиса заказов для гистограммы длительности.
const (
	OperationCreate         = "create"
	OperationUpdate         = "update"
	OperationDelete         = "delete"
	OperationDuplicateCheck = "duplicate_check"
)

// OrderMetrics содержит метрики сервиса заказов.
// Методы безопасно вызывать на nil-получателе: метрики просто не пишутся.
type OrderMetrics struct {
	// Счётчики операций
	ordersCreated prometheus.Counter
	ordersUpdated prometheus.Counter
	ordersDeleted prometheus.Counter

	duplicateRejections prometheus.Counter
	discountApplied     *prometheus.CounterVec

	finalAmount       prometheus.Histogram
	operationDuration *prometheus.HistogramVec
}

// NewOrderMetrics создаёт метрики в глобальном реестре Prometheus.
func NewOrderMetrics() *OrderMetrics {
	return NewOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewOrderMetricsWithRegisterer создаёт метрики в указанном реестре (удобно для тестов).
func NewOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "burger_oms_orders_created_total",
			Help: "Total number of orders created",
		}),
		ordersUpdated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "burger_oms_orders_updated_total",
			Help: "Total number of orders updated",
		}),
		ordersDeleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "burger_oms_orders_deleted_total",
			Help: "Total number of orders deleted",
		}),
		duplicateRejections: registerCounter(registerer, prometheus.CounterOpts{
			Name: "burger_oms_duplicate_category_rejections_total",
			Help: "Total number of item lists rejected for duplicate categories or unknown products",
		}),
		discountApplied: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "burger_oms_discount_applied_total",
			Help: "Orders priced per discount tier",
		}, []string{"percent"}),
		finalAmount: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "burger_oms_order_final_amount",
			Help:    "Final amount of priced orders",
			Buckets: []float64{2.5, 5, 7.5, 10, 12.5, 15, 20, 30},
		}),
		operationDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "burger_oms_operation_duration_seconds",
			Help:    "Duration of order operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
	}
}

// RecordOrderCreated учитывает созданный заказ и его цену.
func (m *OrderMetrics) RecordOrderCreated(discountPercent int, final decimal.Decimal) {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
	m.recordPricing(discountPercent, final)
}

// RecordOrderUpdated учитывает переоценённый заказ.
func (m *OrderMetrics) RecordOrderUpdated(discountPercent int, final decimal.Decimal) {
	if m == nil {
		return
	}
	m.ordersUpdated.Inc()
	m.recordPricing(discountPercent, final)
}

// RecordOrderDeleted увеличивает счётчик удалённых заказов.
func (m *OrderMetrics) RecordOrderDeleted() {
	if m == nil {
		return
	}
	m.ordersDeleted.Inc()
}

// RecordDuplicateRejected увеличивает счётчик отклонённых наборов позиций.
func (m *OrderMetrics) RecordDuplicateRejected() {
	if m == nil {
		return
	}
	m.duplicateRejections.Inc()
}

// RecordOperationDuration записывает длительность операции.
func (m *OrderMetrics) RecordOperationDuration(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *OrderMetrics) recordPricing(discountPercent int, final decimal.Decimal) {
	m.discountApplied.WithLabelValues(strconv.Itoa(discountPercent)).Inc()
	m.finalAmount.Observe(final.InexactFloat64())
}
