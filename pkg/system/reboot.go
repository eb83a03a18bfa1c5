package system

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultRebootCommand schedules a reboot in one minute, leaving time for
// the notification mail to go out.
var DefaultRebootCommand = []string{"sudo", "/sbin/shutdown", "-r", "+1"}

// Rebooter requests a host reboot
type Rebooter interface {
	Reboot(ctx context.Context)
}

// CommandRebooter runs an external command to reboot the host. The outcome
// is only logged: a failed reboot is retried by the next failing cycle.
type CommandRebooter struct {
	Command []string
	logger  zerolog.Logger
}

// NewCommandRebooter creates a rebooter for command, or DefaultRebootCommand
// when command is empty.
func NewCommandRebooter(command []string, logger zerolog.Logger) *CommandRebooter {
	if len(command) == 0 {
		command = DefaultRebootCommand
	}
	return &CommandRebooter{
		Command: append([]string(nil), command...),
		logger:  logger,
	}
}

// Reboot runs the reboot command and logs its exit status
func (r *CommandRebooter) Reboot(ctx context.Context) {
	cmd := exec.CommandContext(ctx, r.Command[0], r.Command[1:]...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()

	exitCode := 0
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		exitCode = exitErr.ExitCode()
	default:
		r.logger.Error().Err(err).Str("command", strings.Join(r.Command, " ")).Msg("Failed to run reboot command")
		return
	}

	ev := r.logger.Info()
	if exitCode != 0 {
		ev = r.logger.Error()
	}
	ev.Str("command", strings.Join(r.Command, " ")).
		Int("exit_code", exitCode).
		Str("output", strings.TrimSpace(out.String())).
		Msg("Reboot command finished")
}
