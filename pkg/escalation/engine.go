package escalation

import (
	"time"
)

// DefaultMinUptime is the uptime below which no check is attempted.
const DefaultMinUptime = 5 * time.Minute

// Action is the outcome of a reboot decision
type Action string

const (
	// ActionSkip means the host booted too recently to be checked
	ActionSkip Action = "skip"

	// ActionReset means the check passed and the level resets to 0
	ActionReset Action = "reset"

	// ActionWait means the check failed but the required uptime has not elapsed
	ActionWait Action = "wait"

	// ActionReboot means the check failed and the host must be rebooted
	ActionReboot Action = "reboot"
)

// Decision is the result of Engine.Decide
type Decision struct {
	Action Action

	// NewLevel is the level to persist. Nil means the store is left untouched.
	NewLevel *Level

	// Required is the uptime that had to elapse before a reboot.
	// Zero unless the check failed.
	Required time.Duration
}

// Reboot reports whether the decision calls for a reboot
func (d Decision) Reboot() bool {
	return d.Action == ActionReboot
}

// Engine decides whether the host has to be rebooted
type Engine struct {
	table     *Table
	minUptime time.Duration
}

// NewEngine creates an engine. A nil table selects DefaultTable and a
// non-positive minUptime selects DefaultMinUptime.
func NewEngine(table *Table, minUptime time.Duration) *Engine {
	if table == nil {
		table = DefaultTable()
	}
	if minUptime <= 0 {
		minUptime = DefaultMinUptime
	}
	return &Engine{
		table:     table,
		minUptime: minUptime,
	}
}

// MinUptime returns the uptime below which checks are skipped
func (e *Engine) MinUptime() time.Duration {
	return e.minUptime
}

// Table returns the escalation table in use
func (e *Engine) Table() *Table {
	return e.table
}

// ShouldCheck reports whether the host has been up long enough to be checked
func (e *Engine) ShouldCheck(uptime time.Duration) bool {
	return uptime >= e.minUptime
}

// Decide computes the decision for one cycle. stored is only consulted when
// the check failed.
func (e *Engine) Decide(uptime time.Duration, healthy bool, stored *Level) Decision {
	if !e.ShouldCheck(uptime) {
		return Decision{Action: ActionSkip}
	}

	if healthy {
		reset := Level(0)
		return Decision{Action: ActionReset, NewLevel: &reset}
	}

	required := e.table.Next(stored)

	// Equality is not enough: the uptime must strictly exceed the requirement.
	if uptime > required.Duration() {
		return Decision{
			Action:   ActionReboot,
			NewLevel: &required,
			Required: required.Duration(),
		}
	}

	return Decision{
		Action:   ActionWait,
		Required: required.Duration(),
	}
}
