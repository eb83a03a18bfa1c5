package system

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultUptimePath is the kernel's uptime pseudo-file
const DefaultUptimePath = "/proc/uptime"

// ErrUptime is returned when the uptime cannot be determined
var ErrUptime = errors.New("cannot read system uptime")

// UptimeReader reports how long the host has been running
type UptimeReader interface {
	Uptime() (time.Duration, error)
}

// ProcUptime reads the uptime from /proc/uptime
type ProcUptime struct {
	Path string
}

// NewProcUptime returns a reader for DefaultUptimePath
func NewProcUptime() *ProcUptime {
	return &ProcUptime{Path: DefaultUptimePath}
}

// Uptime returns the seconds since boot, rounded to whole seconds
func (p *ProcUptime) Uptime() (time.Duration, error) {
	path := p.Path
	if path == "" {
		path = DefaultUptimePath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUptime, err)
	}
	return parseUptime(string(data))
}

func parseUptime(s string) (time.Duration, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: empty uptime", ErrUptime)
	}

	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || secs < 0 || math.IsInf(secs, 0) || math.IsNaN(secs) {
		return 0, fmt.Errorf("%w: invalid uptime %q", ErrUptime, fields[0])
	}
	return time.Duration(math.Round(secs)) * time.Second, nil
}
