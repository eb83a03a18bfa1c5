package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cuemby/meteowatch/pkg/config"
	"github.com/cuemby/meteowatch/pkg/log"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// shutdownSignals stop the monitor with exit code 0
var shutdownSignals = []os.Signal{syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP, syscall.SIGQUIT}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errLogged) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// errLogged marks an error that has already been written to the log
var errLogged = errors.New("unhandled error")

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meteowatch",
		Short: "meteowatch - self-healing health monitor for a weather station",
		Long: `meteowatch periodically checks that a weather station host is online
and that weewx keeps recording wind data. When a check keeps failing the
host is rebooted, with a growing minimum uptime between reboots
(15 minutes, 30 minutes, 3 hours, then every 12 hours).`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}

	cmd.SetVersionTemplate(fmt.Sprintf(
		"meteowatch version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	flags := cmd.Flags()
	flags.BoolP("debug", "d", false, "Increase logging verbosity")
	flags.BoolP("no-ping", "p", false, "Disable ping check")
	flags.IntP("sleep-time", "s", 300, "Sleep time between checks in seconds")
	flags.StringP("config", "c", "", "Configuration file (default "+config.DefaultPath+" if it exists)")
	flags.String("state-file", "", "Escalation state file (default ~/.meteowatch)")
	flags.String("db-file", "", "weewx SQLite archive (default /var/lib/weewx/weewx.sdb)")
	flags.String("metrics-addr", "", "Serve Prometheus metrics and health endpoints on this address")
	flags.Bool("json-logs", false, "Log in JSON instead of plain text")

	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	level := log.InfoLevel
	if cfg.Log.Debug {
		level = log.DebugLevel
	}
	log.Init(log.Config{Level: level, JSONOutput: cfg.Log.JSON})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	stop := watchSignals(cancel)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Logger.Error().Err(err).Msg("Unhandled error")
		return fmt.Errorf("%w: %w", errLogged, err)
	}
	return nil
}

// watchSignals cancels the monitor on a shutdown signal and logs which one
// arrived. The returned function releases the signal handlers.
func watchSignals(cancel context.CancelFunc) func() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigCh:
			log.Logger.Info().Msgf("Caught signal %s, exiting", signalName(sig))
			cancel()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}

func signalName(sig os.Signal) string {
	if s, ok := sig.(syscall.Signal); ok {
		if name := unix.SignalName(s); name != "" {
			return name
		}
	}
	return sig.String()
}

// loadConfig reads the configuration file and applies the flags that were
// set explicitly on the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	var cfg config.Config
	var err error
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOptional(config.DefaultPath)
	}
	if err != nil {
		return cfg, err
	}

	if flags.Changed("debug") {
		cfg.Log.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("no-ping") {
		cfg.NoPing, _ = flags.GetBool("no-ping")
	}
	if flags.Changed("sleep-time") {
		cfg.SleepSeconds, _ = flags.GetInt("sleep-time")
	}
	if flags.Changed("state-file") {
		cfg.State.Path, _ = flags.GetString("state-file")
	}
	if flags.Changed("db-file") {
		cfg.Database.Path, _ = flags.GetString("db-file")
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr, _ = flags.GetString("metrics-addr")
	}
	if flags.Changed("json-logs") {
		cfg.Log.JSON, _ = flags.GetBool("json-logs")
	}

	if cfg.State.Path, err = config.ExpandHome(cfg.State.Path); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
