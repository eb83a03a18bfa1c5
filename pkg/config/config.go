package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cuemby/meteowatch/pkg/escalation"
	"github.com/cuemby/meteowatch/pkg/health"
	"github.com/cuemby/meteowatch/pkg/notify"
	"github.com/cuemby/meteowatch/pkg/storage"
	"github.com/cuemby/meteowatch/pkg/system"
	"github.com/cuemby/meteowatch/pkg/weewx"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no configuration file is given on the command line
const DefaultPath = "/etc/meteowatch.yaml"

// Config is the complete monitor configuration
type Config struct {
	SleepSeconds     int  `yaml:"sleep_seconds"`
	MinUptimeMinutes int  `yaml:"min_uptime_minutes"`
	NoPing           bool `yaml:"no_ping"`

	Log        LogConfig        `yaml:"log"`
	Ping       PingConfig       `yaml:"ping"`
	Database   DatabaseConfig   `yaml:"database"`
	State      StateConfig      `yaml:"state"`
	Escalation EscalationConfig `yaml:"escalation"`
	Reboot     RebootConfig     `yaml:"reboot"`
	Notify     NotifyConfig     `yaml:"notify"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// LogConfig controls log verbosity and format
type LogConfig struct {
	Debug bool `yaml:"debug"`
	JSON  bool `yaml:"json"`
}

// PingConfig lists the connectivity endpoints. A target written as
// tcp://host:port is dialed and an http(s):// URL is fetched instead of
// pinged.
type PingConfig struct {
	Targets        []string `yaml:"targets"`
	Count          int      `yaml:"count"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	Command        string   `yaml:"command"`
}

// DatabaseConfig locates the weewx archive and the freshness window
type DatabaseConfig struct {
	Path             string `yaml:"path"`
	Table            string `yaml:"table"`
	ValueColumn      string `yaml:"value_column"`
	TimeColumn       string `yaml:"time_column"`
	FreshnessMinutes int    `yaml:"freshness_minutes"`
}

// StateConfig locates the escalation store
type StateConfig struct {
	Path    string          `yaml:"path"`
	Backend storage.Backend `yaml:"backend"` // ini or bolt
}

// EscalationConfig is the ladder of required uptimes between reboots
type EscalationConfig struct {
	StepsMinutes []int `yaml:"steps_minutes"`
}

// RebootConfig is the command that reboots the host
type RebootConfig struct {
	Command []string `yaml:"command"`
}

// NotifyConfig controls the reboot mail
type NotifyConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Recipient string `yaml:"recipient"`
	Sendmail  string `yaml:"sendmail"`
}

// MetricsConfig controls metrics exposition
type MetricsConfig struct {
	Addr     string `yaml:"addr"`     // empty disables the HTTP listener
	Textfile string `yaml:"textfile"` // empty disables the textfile
}

// Default returns the built-in configuration
func Default() Config {
	steps := make([]int, len(escalation.DefaultSteps))
	for i, s := range escalation.DefaultSteps {
		steps[i] = int(s)
	}

	db := weewx.DefaultConfig()

	return Config{
		SleepSeconds:     300,
		MinUptimeMinutes: int(escalation.DefaultMinUptime / time.Minute),
		Ping: PingConfig{
			Targets:        append([]string(nil), health.DefaultTargets...),
			Count:          health.DefaultPingCount,
			TimeoutSeconds: int(health.DefaultPingTimeout / time.Second),
			Command:        "ping",
		},
		Database: DatabaseConfig{
			Path:             db.Path,
			Table:            db.Table,
			ValueColumn:      db.ValueColumn,
			TimeColumn:       db.TimeColumn,
			FreshnessMinutes: int(health.DefaultFreshnessWindow / time.Minute),
		},
		State: StateConfig{
			Path:    "~/.meteowatch",
			Backend: storage.BackendINI,
		},
		Escalation: EscalationConfig{StepsMinutes: steps},
		Reboot:     RebootConfig{Command: append([]string(nil), system.DefaultRebootCommand...)},
		Notify: NotifyConfig{
			Enabled:   true,
			Recipient: notify.DefaultRecipient,
			Sendmail:  notify.DefaultSendmailPath,
		},
	}
}

// Load reads path on top of the defaults. Keys absent from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional is Load, except that a missing file yields the defaults
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks configuration correctness. It does not mutate cfg.
func (c Config) Validate() error {
	if c.SleepSeconds <= 0 {
		return fmt.Errorf("sleep_seconds must be positive, got %d", c.SleepSeconds)
	}
	if c.MinUptimeMinutes <= 0 {
		return fmt.Errorf("min_uptime_minutes must be positive, got %d", c.MinUptimeMinutes)
	}

	if !c.NoPing && len(c.Ping.Targets) == 0 {
		return fmt.Errorf("ping.targets is empty; set no_ping to disable the connectivity check")
	}
	if c.Ping.Count <= 0 {
		return fmt.Errorf("ping.count must be positive, got %d", c.Ping.Count)
	}
	if c.Ping.TimeoutSeconds <= 0 {
		return fmt.Errorf("ping.timeout_seconds must be positive, got %d", c.Ping.TimeoutSeconds)
	}
	if _, err := health.ParseTargets(c.Ping.Targets, health.ProbeOptions{}); err != nil {
		return fmt.Errorf("ping.targets: %w", err)
	}

	if err := c.WeewxConfig().Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if c.Database.FreshnessMinutes <= 0 {
		return fmt.Errorf("database.freshness_minutes must be positive, got %d", c.Database.FreshnessMinutes)
	}

	if c.State.Path == "" {
		return fmt.Errorf("state.path is required")
	}
	switch c.State.Backend {
	case storage.BackendINI, storage.BackendBolt:
	default:
		return fmt.Errorf("state.backend must be %q or %q, got %q", storage.BackendINI, storage.BackendBolt, c.State.Backend)
	}

	if _, err := escalation.NewTable(c.Steps()); err != nil {
		return fmt.Errorf("escalation.steps_minutes: %w", err)
	}

	if len(c.Reboot.Command) == 0 || c.Reboot.Command[0] == "" {
		return fmt.Errorf("reboot.command is required")
	}
	if c.Notify.Enabled && c.Notify.Sendmail == "" {
		return fmt.Errorf("notify.sendmail is required when notifications are enabled")
	}
	return nil
}

// SleepInterval is the pause between cycles
func (c Config) SleepInterval() time.Duration {
	return time.Duration(c.SleepSeconds) * time.Second
}

// MinUptime is the uptime below which checks are skipped
func (c Config) MinUptime() time.Duration {
	return time.Duration(c.MinUptimeMinutes) * time.Minute
}

func (c Config) PingTimeout() time.Duration {
	return time.Duration(c.Ping.TimeoutSeconds) * time.Second
}

func (c Config) FreshnessWindow() time.Duration {
	return time.Duration(c.Database.FreshnessMinutes) * time.Minute
}

// Steps returns the escalation ladder as levels
func (c Config) Steps() []escalation.Level {
	steps := make([]escalation.Level, len(c.Escalation.StepsMinutes))
	for i, m := range c.Escalation.StepsMinutes {
		steps[i] = escalation.Level(m)
	}
	return steps
}

// WeewxConfig returns the archive settings
func (c Config) WeewxConfig() weewx.Config {
	return weewx.Config{
		Path:        c.Database.Path,
		Table:       c.Database.Table,
		ValueColumn: c.Database.ValueColumn,
		TimeColumn:  c.Database.TimeColumn,
	}
}

// ExpandHome replaces a leading ~ with the current user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
