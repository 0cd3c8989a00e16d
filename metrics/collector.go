// Package metrics exposes a pool.Pool's observers as Prometheus metrics,
// following the pull-model collector pattern used for HTTP and model
// tracking metrics elsewhere in this corpus (see SPEC_FULL.md §4.7).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/achen-dev/gopool/pool"
)

// Collector implements prometheus.Collector over a single pool.Pool.
// Register it with a prometheus.Registerer to expose the pool's idle/
// active gauges and destroy/create counters at scrape time; it runs no
// background goroutine of its own.
type Collector struct {
	pool *pool.Pool

	idle    *prometheus.Desc
	active  *prometheus.Desc
	created *prometheus.Desc
	destroyed *prometheus.Desc
}

// NewCollector returns a Collector for p, labeling every metric with name
// so multiple pools can share a registry.
func NewCollector(p *pool.Pool, name string) *Collector {
	constLabels := prometheus.Labels{"pool": name}
	return &Collector{
		pool: p,
		idle: prometheus.NewDesc(
			"pool_idle_objects", "Number of resources currently idle.", nil, constLabels),
		active: prometheus.NewDesc(
			"pool_active_objects", "Number of resources currently borrowed.", nil, constLabels),
		created: prometheus.NewDesc(
			"pool_created_total", "Resources successfully created over the pool's lifetime.", nil, constLabels),
		destroyed: prometheus.NewDesc(
			"pool_destroyed_total", "Resources destroyed, by reason.", []string{"reason"}, constLabels),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.idle
	ch <- c.active
	ch <- c.created
	ch <- c.destroyed
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(c.pool.GetNumIdle()))
	ch <- prometheus.MustNewConstMetric(c.active, prometheus.GaugeValue, float64(c.pool.GetNumActive()))
	ch <- prometheus.MustNewConstMetric(c.created, prometheus.CounterValue, float64(c.pool.GetCreatedCount()))

	ch <- prometheus.MustNewConstMetric(c.destroyed, prometheus.CounterValue,
		float64(c.pool.GetDestroyedCount()-c.pool.GetDestroyedByBorrowValidationCount()-c.pool.GetDestroyedByEvictorCount()),
		"normal")
	ch <- prometheus.MustNewConstMetric(c.destroyed, prometheus.CounterValue,
		float64(c.pool.GetDestroyedByBorrowValidationCount()), "borrow_validation")
	ch <- prometheus.MustNewConstMetric(c.destroyed, prometheus.CounterValue,
		float64(c.pool.GetDestroyedByEvictorCount()), "evictor")
}
