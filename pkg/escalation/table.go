package escalation

import (
	"fmt"
	"strconv"
	"time"
)

// Level is a persisted escalation level: the uptime, in minutes, that was
// required before the previous reboot. Zero is an explicit reset.
type Level int

// Duration converts the level to a time.Duration.
func (l Level) Duration() time.Duration {
	return time.Duration(l) * time.Minute
}

func (l Level) String() string {
	return strconv.Itoa(int(l)) + "m"
}

// DefaultSteps is the default escalation ladder in minutes (15m, 30m, 3h, 12h).
var DefaultSteps = []Level{15, 30, 180, 720}

// Table maps a previous escalation level to the uptime required before the
// next reboot. It is total: unknown previous levels resolve like "none".
type Table struct {
	none Level
	next map[Level]Level
}

// NewTable builds a table from an ordered list of steps. The first step is
// used when no level is stored (or it was reset to 0), every step leads to the
// following one and the last step saturates.
func NewTable(steps []Level) (*Table, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("escalation table needs at least one step")
	}

	t := &Table{
		none: steps[0],
		next: make(map[Level]Level, len(steps)+1),
	}
	t.next[0] = steps[0]

	for i, step := range steps {
		if step <= 0 {
			return nil, fmt.Errorf("escalation step %d must be positive, got %d", i, step)
		}
		if i > 0 && step <= steps[i-1] {
			return nil, fmt.Errorf("escalation steps must be increasing: %d follows %d", step, steps[i-1])
		}
		if i+1 < len(steps) {
			t.next[step] = steps[i+1]
		} else {
			t.next[step] = step
		}
	}

	return t, nil
}

// DefaultTable returns the table built from DefaultSteps:
// none→15, 0→15, 15→30, 30→180, 180→720, 720→720.
func DefaultTable() *Table {
	t, err := NewTable(DefaultSteps)
	if err != nil {
		panic(err)
	}
	return t
}

// Next returns the level required before the next reboot given the
// previously stored level. A nil or unrecognized level falls back to "none".
func (t *Table) Next(previous *Level) Level {
	if previous == nil {
		return t.none
	}
	if next, ok := t.next[*previous]; ok {
		return next
	}
	return t.none
}

// Ceiling returns the saturation level of the table.
func (t *Table) Ceiling() Level {
	ceiling := t.none
	for _, v := range t.next {
		if v > ceiling {
			ceiling = v
		}
	}
	return ceiling
}
