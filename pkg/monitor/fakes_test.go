package monitor

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cuemby/meteowatch/pkg/escalation"
	"github.com/cuemby/meteowatch/pkg/health"
	"github.com/cuemby/meteowatch/pkg/notify"
	"github.com/cuemby/meteowatch/pkg/system"
)

type fakeUptime struct {
	uptime time.Duration
	err    error
}

func (f *fakeUptime) Uptime() (time.Duration, error) {
	return f.uptime, f.err
}

type fakeChecker struct {
	typ     health.CheckType
	healthy bool
	calls   int
}

func (f *fakeChecker) Check(ctx context.Context) health.Result {
	f.calls++
	msg := "ok"
	if !f.healthy {
		msg = string(f.typ) + " failed"
	}
	return health.Result{Healthy: f.healthy, Message: msg, CheckedAt: time.Now()}
}

func (f *fakeChecker) Type() health.CheckType {
	return f.typ
}

type fakeRebooter struct {
	calls int

	// level is the stored level observed when the reboot was requested
	store escalation.Store
	level *escalation.Level
}

func (f *fakeRebooter) Reboot(ctx context.Context) {
	f.calls++
	if f.store != nil {
		f.level, _ = f.store.Read()
	}
}

type fakeNotifier struct {
	sent []notify.Notification
	err  error
}

func (f *fakeNotifier) Notify(ctx context.Context, n notify.Notification) error {
	f.sent = append(f.sent, n)
	return f.err
}

func (f *fakeNotifier) Name() string {
	return "fake"
}

var errDisk = errors.New("disk full")

// brokenStore fails every operation
type brokenStore struct {
	reads, writes int
}

func (b *brokenStore) Read() (*escalation.Level, error) {
	b.reads++
	return nil, errDisk
}

func (b *brokenStore) Write(escalation.Level) error {
	b.writes++
	return errDisk
}

func (b *brokenStore) Close() error { return nil }

// countingStore records store traffic on top of another store
type countingStore struct {
	escalation.Store
	reads, writes int
}

func (c *countingStore) Read() (*escalation.Level, error) {
	c.reads++
	return c.Store.Read()
}

func (c *countingStore) Write(l escalation.Level) error {
	c.writes++
	return c.Store.Write(l)
}

var (
	_ system.UptimeReader = (*fakeUptime)(nil)
	_ system.Rebooter     = (*fakeRebooter)(nil)
	_ notify.Notifier     = (*fakeNotifier)(nil)
	_ health.Checker      = (*fakeChecker)(nil)
)

// writeFailStore reads through but refuses every write
type writeFailStore struct {
	escalation.Store
}

func (w writeFailStore) Write(escalation.Level) error {
	return errDisk
}

// syncBuffer is a log sink safe for use from the Run goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// blockingChecker holds the check open until the context is cancelled,
// like a ping killed by a shutdown signal
type blockingChecker struct {
	typ     health.CheckType
	started chan struct{}
}

func (b *blockingChecker) Check(ctx context.Context) health.Result {
	close(b.started)
	<-ctx.Done()
	return health.Result{Healthy: false, Message: ctx.Err().Error(), CheckedAt: time.Now()}
}

func (b *blockingChecker) Type() health.CheckType {
	return b.typ
}

// cancelOnReadStore cancels the cycle context the moment the level is read
type cancelOnReadStore struct {
	*countingStore
	cancel context.CancelFunc
}

func (c *cancelOnReadStore) Read() (*escalation.Level, error) {
	c.cancel()
	return c.countingStore.Read()
}
