/*
Package metrics provides Prometheus metrics and health endpoints for the
monitor.

All collectors are registered with the default registry at package init.
They can be exposed in two ways:

	┌───────────── Monitor cycle ─────────────┐
	│ RecordCheck, CyclesTotal, RebootsTotal,  │
	│ EscalationLevel, UpdateComponent         │
	└──────────────────┬──────────────────────┘
	                   ▼
	         prometheus.DefaultRegistry
	          │                      │
	          ▼                      ▼
	  NewServeMux (HTTP)     WriteTextfile (*.prom)
	  /metrics /health       node_exporter textfile
	  /ready /live           collector

The HTTP server is optional and off by default; on a small station host the
textfile is usually enough.

# Metrics

	meteowatch_cycles_total{result}            counter
	meteowatch_cycle_duration_seconds          histogram
	meteowatch_check_healthy{check}            gauge (1 = passed)
	meteowatch_check_duration_seconds{check}   histogram
	meteowatch_escalation_level_minutes        gauge (0 = healthy)
	meteowatch_uptime_seconds                  gauge
	meteowatch_reboots_total                   counter
	meteowatch_notifications_total{result}     counter

Collector refreshes the uptime gauge between cycles while the HTTP server is
enabled.
*/
package metrics
