package health

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Ping defaults
const (
	DefaultPingCount   = 3
	DefaultPingTimeout = 30 * time.Second
)

// PingChecker checks reachability of a host with the system ping command.
// Lost packets make the whole probe fail.
type PingChecker struct {
	// Target is the host name or address to ping. Host names also
	// exercise DNS resolution.
	Target string

	// Count is the number of echo requests (default: 3)
	Count int

	// Timeout bounds the whole ping run (default: 30 seconds)
	Timeout time.Duration

	// Command is the ping binary (default: ping)
	Command string

	logger zerolog.Logger
}

// NewPingChecker creates a new ping health checker
func NewPingChecker(target string) *PingChecker {
	return &PingChecker{
		Target:  target,
		Count:   DefaultPingCount,
		Timeout: DefaultPingTimeout,
		Command: "ping",
		logger:  zerolog.Nop(),
	}
}

// Check runs ping and reports success when it exits with status 0
func (p *PingChecker) Check(ctx context.Context) Result {
	start := time.Now()

	pingCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	cmd := exec.CommandContext(pingCtx, p.Command, "-c", strconv.Itoa(p.Count), p.Target)
	cmd.WaitDelay = time.Second
	output, err := cmd.CombinedOutput()

	for _, line := range strings.Split(string(output), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			p.logger.Debug().Str("target", p.Target).Msg(line)
		}
	}

	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}
	p.logger.Debug().Str("target", p.Target).Int("exit_code", exitCode).Msg("ping return code")

	if err != nil {
		return newResult(start, false, fmt.Sprintf("ping %s failed: %v", p.Target, err))
	}
	return newResult(start, true, fmt.Sprintf("ping %s succeeded", p.Target))
}

// Type returns the health check type
func (p *PingChecker) Type() CheckType {
	return CheckTypePing
}

// WithCount sets the number of echo requests
func (p *PingChecker) WithCount(count int) *PingChecker {
	p.Count = count
	return p
}

// WithTimeout sets the execution timeout
func (p *PingChecker) WithTimeout(timeout time.Duration) *PingChecker {
	p.Timeout = timeout
	return p
}

// WithCommand sets the ping binary
func (p *PingChecker) WithCommand(command string) *PingChecker {
	p.Command = command
	return p
}

// WithLogger sets the logger receiving ping output at debug level
func (p *PingChecker) WithLogger(logger zerolog.Logger) *PingChecker {
	p.logger = logger
	return p
}
