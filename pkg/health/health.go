package health

import (
	"context"
	"time"
)

// CheckType represents the type of health check
type CheckType string

const (
	CheckTypePing         CheckType = "ping"
	CheckTypeTCP          CheckType = "tcp"
	CheckTypeHTTP         CheckType = "http"
	CheckTypeConnectivity CheckType = "connectivity"
	CheckTypeFreshness    CheckType = "freshness"
)

// Result represents the outcome of a health check. Expected failures
// (unreachable host, missing data) are reported here, never as errors.
type Result struct {
	Healthy   bool
	Message   string
	CheckedAt time.Time
	Duration  time.Duration
}

// Checker is the interface that all health checkers must implement
type Checker interface {
	// Check performs the health check and returns the result
	Check(ctx context.Context) Result

	// Type returns the type of health check
	Type() CheckType
}

// Status tracks the outcome history of one check across cycles
type Status struct {
	// ConsecutiveFailures tracks the number of consecutive failed checks
	ConsecutiveFailures int

	// ConsecutiveSuccesses tracks the number of consecutive successful checks
	ConsecutiveSuccesses int

	// LastCheck is the timestamp of the last health check
	LastCheck time.Time

	// LastResult is the result of the last health check
	LastResult Result
}

// NewStatus creates a new Status with default values
func NewStatus() *Status {
	return &Status{}
}

// Update updates the status based on a new health check result
func (s *Status) Update(result Result) {
	s.LastCheck = result.CheckedAt
	s.LastResult = result

	if result.Healthy {
		s.ConsecutiveSuccesses++
		s.ConsecutiveFailures = 0
	} else {
		s.ConsecutiveFailures++
		s.ConsecutiveSuccesses = 0
	}
}

func newResult(start time.Time, healthy bool, message string) Result {
	return Result{
		Healthy:   healthy,
		Message:   message,
		CheckedAt: start,
		Duration:  time.Since(start),
	}
}
