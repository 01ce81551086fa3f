package goldprice

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector records pricing pipeline outcomes.
type MetricsCollector interface {
	RecordRefresh(outcome string) // "live" or "fallback"
	RecordPriceChanged()
	RecordRefreshError(stage string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRefresh(string)      {}
func (NoopMetricsCollector) RecordPriceChanged()       {}
func (NoopMetricsCollector) RecordRefreshError(string) {}

// PrometheusCollector exports pipeline metrics to the default registry.
type PrometheusCollector struct {
	refreshes *prometheus.CounterVec
	changes   prometheus.Counter
	errors    *prometheus.CounterVec
}

func NewPrometheusCollector() *PrometheusCollector {
	return &PrometheusCollector{
		refreshes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gold_price_refresh_total",
			Help: "Price refreshes by source outcome (live or fallback).",
		}, []string{"outcome"}),
		changes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gold_price_changed_total",
			Help: "Refreshes that moved at least one karat price.",
		}),
		errors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gold_price_refresh_errors_total",
			Help: "Refresh pipeline errors by stage.",
		}, []string{"stage"}),
	}
}

func (c *PrometheusCollector) RecordRefresh(outcome string) {
	c.refreshes.WithLabelValues(outcome).Inc()
}

func (c *PrometheusCollector) RecordPriceChanged() {
	c.changes.Inc()
}

func (c *PrometheusCollector) RecordRefreshError(stage string) {
	c.errors.WithLabelValues(stage).Inc()
}
