package notify

import (
	"context"
	"time"
)

// Notification describes an imminent reboot
type Notification struct {
	// Host is the name of the host being rebooted
	Host string

	// Binary is the resolved path of the running monitor
	Binary string

	// Cause lists the failed checks
	Cause string

	// Delay is how long until the reboot takes effect
	Delay time.Duration

	Time time.Time
}

// Notifier delivers reboot notifications
type Notifier interface {
	// Notify sends n. Implementations respect context cancellation.
	Notify(ctx context.Context, n Notification) error

	// Name returns the notifier type for logging
	Name() string
}
