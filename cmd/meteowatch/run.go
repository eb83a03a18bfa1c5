package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cuemby/meteowatch/pkg/config"
	"github.com/cuemby/meteowatch/pkg/escalation"
	"github.com/cuemby/meteowatch/pkg/health"
	"github.com/cuemby/meteowatch/pkg/log"
	"github.com/cuemby/meteowatch/pkg/metrics"
	"github.com/cuemby/meteowatch/pkg/monitor"
	"github.com/cuemby/meteowatch/pkg/notify"
	"github.com/cuemby/meteowatch/pkg/storage"
	"github.com/cuemby/meteowatch/pkg/system"
	"github.com/cuemby/meteowatch/pkg/weewx"
)

// run wires the components from cfg and blocks until ctx is cancelled or
// the monitor fails.
func run(ctx context.Context, cfg config.Config) error {
	logger := log.WithComponent("main")
	binary := executablePath()

	logger.Info().Msg("Starting monitoring")
	logger.Debug().Msgf("Binary location: %s", binary)
	logger.Debug().Msgf("Data file: %s", cfg.State.Path)

	store, err := storage.Open(cfg.State.Backend, cfg.State.Path, log.WithComponent("storage"))
	if err != nil {
		return fmt.Errorf("failed to open escalation store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close escalation store")
		}
	}()

	archive, err := weewx.NewArchive(cfg.WeewxConfig())
	if err != nil {
		return err
	}

	endpoints, err := health.ParseTargets(cfg.Ping.Targets, health.ProbeOptions{
		PingCount:   cfg.Ping.Count,
		PingCommand: cfg.Ping.Command,
		Timeout:     cfg.PingTimeout(),
		Logger:      log.WithComponent("ping"),
	})
	if err != nil {
		return err
	}

	table, err := escalation.NewTable(cfg.Steps())
	if err != nil {
		return err
	}

	uptime := system.NewProcUptime()
	host, err := os.Hostname()
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to get host name")
		host = "localhost"
	}

	var notifier notify.Notifier
	if cfg.Notify.Enabled {
		notifier = notify.NewSendmailNotifier(cfg.Notify.Sendmail, cfg.Notify.Recipient, log.WithComponent("notify"))
	}

	m := monitor.New(monitor.Options{
		NoPing:          cfg.NoPing,
		Sleep:           cfg.SleepInterval(),
		Host:            host,
		Binary:          binary,
		MetricsTextfile: cfg.Metrics.Textfile,
	}, monitor.Deps{
		Uptime: uptime,
		Evaluator: health.NewEvaluator(
			health.NewConnectivityChecker(endpoints, log.WithComponent("connectivity")),
			health.NewFreshnessChecker(archive, cfg.FreshnessWindow(), log.WithComponent("freshness")),
			log.WithComponent("health"),
		),
		Engine:   escalation.NewEngine(table, cfg.MinUptime()),
		Store:    store,
		Notifier: notifier,
		Rebooter: system.NewCommandRebooter(cfg.Reboot.Command, log.WithComponent("reboot")),
		Logger:   log.WithComponent("monitor"),
	})

	if cfg.Metrics.Addr != "" {
		stop := serveMetrics(cfg.Metrics.Addr, uptime)
		defer stop()
	}

	return m.Run(ctx)
}

// serveMetrics starts the metrics listener and returns a function that
// shuts it down.
func serveMetrics(addr string, uptime system.UptimeReader) func() {
	logger := log.WithComponent("metrics")
	metrics.SetVersion(Version)

	collector := metrics.NewCollector(uptime, 15*time.Second, logger)
	collector.Start()

	srv := &http.Server{
		Addr:              addr,
		Handler:           metrics.NewServeMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", addr).Msg("Serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Metrics server failed")
		}
	}()

	return func() {
		collector.Stop()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func executablePath() string {
	path, err := os.Executable()
	if err != nil {
		return os.Args[0]
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}
