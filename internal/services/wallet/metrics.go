package wallet

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector records ledger operation outcomes.
type MetricsCollector interface {
	RecordTransaction(txType string, grams, amountQAR float64)
	RecordError(operation, errType string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordTransaction(string, float64, float64) {}
func (NoopMetricsCollector) RecordError(string, string)                {}

// PrometheusCollector exports ledger metrics to the default registry.
type PrometheusCollector struct {
	transactions *prometheus.CounterVec
	volume       *prometheus.CounterVec
	errors       *prometheus.CounterVec
}

func NewPrometheusCollector() *PrometheusCollector {
	return &PrometheusCollector{
		transactions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_transactions_total",
			Help: "Completed ledger transactions by type.",
		}, []string{"type"}),
		volume: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_transaction_volume_qar",
			Help: "Total QAR consideration of completed transactions by type.",
		}, []string{"type"}),
		errors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_errors_total",
			Help: "Ledger operation errors by operation and kind.",
		}, []string{"operation", "kind"}),
	}
}

func (c *PrometheusCollector) RecordTransaction(txType string, grams, amountQAR float64) {
	c.transactions.WithLabelValues(txType).Inc()
	c.volume.WithLabelValues(txType).Add(amountQAR)
}

func (c *PrometheusCollector) RecordError(operation, errType string) {
	c.errors.WithLabelValues(operation, errType).Inc()
}
