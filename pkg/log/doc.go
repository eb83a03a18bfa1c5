/*
Package log provides structured logging for meteowatch using zerolog.

The package wraps zerolog with a small configuration type and a stream split that
suits an unattended host whose output is collected by a service manager:
informational and debug messages are written to standard output, warnings and
everything more severe to standard error. Both streams carry timestamps.

	┌──────────────┐     ┌──────────────────────────┐
	│ zerolog.Event│ ──▶ │ MultiLevelWriter          │
	└──────────────┘     │  debug, info  ──▶ stdout  │
	                     │  warn..panic  ──▶ stderr  │
	                     └──────────────────────────┘

# Usage

	log.Init(log.Config{Level: log.InfoLevel})
	logger := log.WithComponent("monitor")
	logger.Info().Dur("uptime", uptime).Msg("Check result: ok")

Components receive a zerolog.Logger at construction instead of reaching for the
global, so tests can capture output with New and a bytes.Buffer.

# Formats

Console output (default) uses zerolog.ConsoleWriter with RFC3339 timestamps. The
stdout sink omits the level column; the stderr sink keeps it so warnings are easy
to spot. JSONOutput switches both sinks to one JSON object per line.
*/
package log
