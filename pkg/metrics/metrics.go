package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cycle results
const (
	ResultSkipped = "skipped"
	ResultHealthy = "healthy"
	ResultFailed  = "failed"
	ResultError   = "error"
)

var (
	// Cycle metrics
	CyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meteowatch_cycles_total",
			Help: "Total number of monitoring cycles by result",
		},
		[]string{"result"},
	)

	CycleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "meteowatch_cycle_duration_seconds",
			Help:    "Time taken by a monitoring cycle in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Check metrics
	CheckHealthy = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "meteowatch_check_healthy",
			Help: "Whether the last run of a check passed (1 = passed, 0 = failed)",
		},
		[]string{"check"},
	)

	CheckDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "meteowatch_check_duration_seconds",
			Help:    "Check duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
		[]string{"check"},
	)

	// Escalation metrics
	EscalationLevel = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "meteowatch_escalation_level_minutes",
			Help: "Stored reboot escalation level in minutes (0 = healthy)",
		},
	)

	UptimeSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "meteowatch_uptime_seconds",
			Help: "Host uptime in seconds",
		},
	)

	RebootsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "meteowatch_reboots_total",
			Help: "Total number of reboots requested",
		},
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meteowatch_notifications_total",
			Help: "Total number of reboot notifications by result",
		},
		[]string{"result"},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(CyclesTotal)
	prometheus.MustRegister(CycleDuration)
	prometheus.MustRegister(CheckHealthy)
	prometheus.MustRegister(CheckDuration)
	prometheus.MustRegister(EscalationLevel)
	prometheus.MustRegister(UptimeSeconds)
	prometheus.MustRegister(RebootsTotal)
	prometheus.MustRegister(NotificationsTotal)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordCheck records the outcome of a single check
func RecordCheck(check string, healthy bool, seconds float64) {
	CheckHealthy.WithLabelValues(check).Set(boolToFloat(healthy))
	CheckDuration.WithLabelValues(check).Observe(seconds)
}

// RecordNotification counts a notification attempt
func RecordNotification(err error) {
	if err != nil {
		NotificationsTotal.WithLabelValues("failed").Inc()
		return
	}
	NotificationsTotal.WithLabelValues("sent").Inc()
}

// WriteTextfile dumps the default registry in the text exposition format,
// for the node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
