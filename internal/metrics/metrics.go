// Package metrics holds Prometheus instruments that are used across the
// server.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActiveConfigs = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_configs",
			Help: "Number of configuration wrappers currently cached.",
		})

	ConfigLoadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "config_load_total",
			Help: "Cumulative number of configurations successfully resolved.",
		})

	ConfigLoadErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "config_load_errors_total",
			Help: "Cumulative number of configuration resolution errors.",
		})

	PluginLoadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "plugin_load_total",
			Help: "Cumulative number of plugins successfully loaded.",
		})

	PluginLoadErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "plugin_load_errors_total",
			Help: "Cumulative number of plugin load errors.",
		})
)

func init() {
	prometheus.MustRegister(
		ActiveConfigs,
		ConfigLoadTotal,
		ConfigLoadErrorsTotal,
		PluginLoadTotal,
		PluginLoadErrorsTotal,
	)
}
