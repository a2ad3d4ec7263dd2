// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector returns a prometheus.Collector reporting usage statistics of the
// manager: size of the node table, number of free slots, number of interned
// constants, total number of nodes produced, and number of garbage
// collections. Like every other method of a Manager, collection is not
// synchronized; the collector must be scraped from the goroutine that owns
// the manager, or behind the caller's own locking.
func (m *Manager) Collector() prometheus.Collector {
	return &collector{
		m: m,
		nodes: prometheus.NewDesc("pdd_nodes",
			"Number of slots in the node table.", nil, nil),
		free: prometheus.NewDesc("pdd_nodes_free",
			"Number of free slots in the node table.", nil, nil),
		produced: prometheus.NewDesc("pdd_nodes_produced_total",
			"Number of nodes allocated since the creation of the manager.", nil, nil),
		values: prometheus.NewDesc("pdd_values",
			"Number of interned rational constants.", nil, nil),
		gcruns: prometheus.NewDesc("pdd_gc_runs_total",
			"Number of garbage collections of the node table.", nil, nil),
	}
}

type collector struct {
	m        *Manager
	nodes    *prometheus.Desc
	free     *prometheus.Desc
	produced *prometheus.Desc
	values   *prometheus.Desc
	gcruns   *prometheus.Desc
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.nodes
	ch <- c.free
	ch <- c.produced
	ch <- c.values
	ch <- c.gcruns
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.nodes, prometheus.GaugeValue, float64(len(c.m.nodes)))
	ch <- prometheus.MustNewConstMetric(c.free, prometheus.GaugeValue, float64(len(c.m.freenodes)))
	ch <- prometheus.MustNewConstMetric(c.produced, prometheus.CounterValue, float64(c.m.produced))
	ch <- prometheus.MustNewConstMetric(c.values, prometheus.GaugeValue, float64(len(c.m.values)-len(c.m.freevalues)))
	ch <- prometheus.MustNewConstMetric(c.gcruns, prometheus.CounterValue, float64(len(c.m.gcstat.history)))
}
