package escalation

import "errors"

// ErrStore marks unexpected escalation store failures (permissions, I/O).
// Missing or malformed state is not an error.
var ErrStore = errors.New("escalation store failure")

// Store persists the escalation level across restarts
type Store interface {
	// Read returns the stored level, or nil when nothing usable is stored
	Read() (*Level, error)

	// Write replaces whatever is stored with level
	Write(level Level) error

	// Close releases resources held by the store
	Close() error
}
