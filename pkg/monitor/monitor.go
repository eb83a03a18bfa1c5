package monitor

import (
	"context"
	"strings"
	"time"

	"github.com/cuemby/meteowatch/pkg/escalation"
	"github.com/cuemby/meteowatch/pkg/health"
	"github.com/cuemby/meteowatch/pkg/metrics"
	"github.com/cuemby/meteowatch/pkg/notify"
	"github.com/cuemby/meteowatch/pkg/system"
	"github.com/rs/zerolog"
)

// RebootDelay is how long the reboot command waits before restarting the host
const RebootDelay = time.Minute

// Evaluator produces the health verdict of one cycle
type Evaluator interface {
	Evaluate(ctx context.Context, noPing bool) health.Verdict
}

// Options control the check loop
type Options struct {
	// NoPing disables the connectivity check
	NoPing bool

	// Sleep is the pause between cycles
	Sleep time.Duration

	// Host and Binary are reported in the reboot notification
	Host   string
	Binary string

	// MetricsTextfile, when set, receives the metrics after each cycle
	MetricsTextfile string
}

// Deps are the collaborators of the monitor. Notifier may be nil.
type Deps struct {
	Uptime    system.UptimeReader
	Evaluator Evaluator
	Engine    *escalation.Engine
	Store     escalation.Store
	Notifier  notify.Notifier
	Rebooter  system.Rebooter
	Logger    zerolog.Logger
}

// Monitor runs the check cycle and escalates failures to reboots
type Monitor struct {
	opts      Options
	uptime    system.UptimeReader
	evaluator Evaluator
	engine    *escalation.Engine
	store     escalation.Store
	notifier  notify.Notifier
	rebooter  system.Rebooter
	logger    zerolog.Logger
}

// New creates a monitor
func New(opts Options, deps Deps) *Monitor {
	if opts.Sleep <= 0 {
		opts.Sleep = 5 * time.Minute
	}
	engine := deps.Engine
	if engine == nil {
		engine = escalation.NewEngine(nil, 0)
	}
	return &Monitor{
		opts:      opts,
		uptime:    deps.Uptime,
		evaluator: deps.Evaluator,
		engine:    engine,
		store:     deps.Store,
		notifier:  deps.Notifier,
		rebooter:  deps.Rebooter,
		logger:    deps.Logger,
	}
}

// Run executes cycles until ctx is cancelled. It returns nil on
// cancellation and the first unexpected error otherwise.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		if err := m.RunCycle(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			metrics.CyclesTotal.WithLabelValues(metrics.ResultError).Inc()
			return err
		}

		timer := time.NewTimer(m.opts.Sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// RunCycle performs one check. Failed checks are not errors; only failures
// of the monitor itself (uptime, escalation store) are returned.
func (m *Monitor) RunCycle(ctx context.Context) error {
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.CycleDuration)

	m.logger.Debug().Msg("-- Starting check --")

	uptime, err := m.uptime.Uptime()
	if err != nil {
		return err
	}
	metrics.UptimeSeconds.Set(uptime.Seconds())

	if !m.engine.ShouldCheck(uptime) {
		m.logger.Info().Msgf("System uptime is less than %d minutes (%s). Skipping check",
			int(m.engine.MinUptime().Minutes()), uptime)
		metrics.CyclesTotal.WithLabelValues(metrics.ResultSkipped).Inc()
		return nil
	}

	verdict := m.evaluator.Evaluate(ctx, m.opts.NoPing)
	if ctx.Err() != nil {
		// Probes killed by shutdown say nothing about the host.
		m.logger.Debug().Msg("Check interrupted by shutdown, discarding result")
		return nil
	}
	m.recordVerdict(verdict)

	if verdict.Healthy {
		m.logger.Info().Msg("Check result: Ok")
		if err := m.apply(m.engine.Decide(uptime, true, nil)); err != nil {
			return err
		}
		metrics.CyclesTotal.WithLabelValues(metrics.ResultHealthy).Inc()
	} else {
		m.logger.Info().Msg("Check result: Failure")
		if err := m.escalate(ctx, uptime, verdict); err != nil {
			return err
		}
		metrics.CyclesTotal.WithLabelValues(metrics.ResultFailed).Inc()
	}

	metrics.MarkCycle(time.Now())
	m.writeTextfile()
	return nil
}

func (m *Monitor) escalate(ctx context.Context, uptime time.Duration, verdict health.Verdict) error {
	stored, err := m.store.Read()
	if err != nil {
		return err
	}

	decision := m.engine.Decide(uptime, false, stored)
	m.logger.Debug().
		Str("previous_level", levelString(stored)).
		Dur("required_uptime", decision.Required).
		Msg("Escalation decision")

	if !decision.Reboot() {
		m.logger.Info().Msgf("System uptime (%s) is less than the minimum allowed before reboot (%s). Skipping reboot",
			uptime, decision.Required)
		return nil
	}

	if ctx.Err() != nil {
		m.logger.Debug().Msg("Shutdown requested, reboot abandoned")
		return nil
	}

	// The new level must be on disk before the host goes down.
	if err := m.apply(decision); err != nil {
		return err
	}

	if m.notifier != nil {
		err := m.notifier.Notify(ctx, notify.Notification{
			Host:   m.opts.Host,
			Binary: m.opts.Binary,
			Cause:  failureCause(verdict),
			Delay:  RebootDelay,
			Time:   time.Now(),
		})
		if err != nil {
			m.logger.Error().Err(err).Str("notifier", m.notifier.Name()).Msg("Failed to send reboot notification")
		}
		metrics.RecordNotification(err)
	}

	m.logger.Warn().Msg("*** Rebooting the system in 1 minute ***")
	m.rebooter.Reboot(ctx)
	metrics.RebootsTotal.Inc()
	return nil
}

func (m *Monitor) apply(d escalation.Decision) error {
	if d.NewLevel == nil {
		return nil
	}
	if err := m.store.Write(*d.NewLevel); err != nil {
		return err
	}
	metrics.EscalationLevel.Set(float64(*d.NewLevel))
	return nil
}

func (m *Monitor) recordVerdict(v health.Verdict) {
	if !m.opts.NoPing {
		metrics.RecordCheck(metrics.ComponentConnectivity, v.Connectivity.Healthy, v.Connectivity.Duration.Seconds())
		metrics.UpdateComponent(metrics.ComponentConnectivity, v.Connectivity.Healthy, v.Connectivity.Message)
	}
	metrics.RecordCheck(metrics.ComponentFreshness, v.Freshness.Healthy, v.Freshness.Duration.Seconds())
	metrics.UpdateComponent(metrics.ComponentFreshness, v.Freshness.Healthy, v.Freshness.Message)
}

func (m *Monitor) writeTextfile() {
	if m.opts.MetricsTextfile == "" {
		return
	}
	if err := metrics.WriteTextfile(m.opts.MetricsTextfile); err != nil {
		m.logger.Warn().Err(err).Str("path", m.opts.MetricsTextfile).Msg("Failed to write metrics textfile")
	}
}

func failureCause(v health.Verdict) string {
	var causes []string
	if !v.Connectivity.Healthy {
		causes = append(causes, "connectivity: "+v.Connectivity.Message)
	}
	if !v.Freshness.Healthy {
		causes = append(causes, "freshness: "+v.Freshness.Message)
	}
	return strings.Join(causes, "; ")
}

func levelString(l *escalation.Level) string {
	if l == nil {
		return "none"
	}
	return l.String()
}
