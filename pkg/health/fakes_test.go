package health

import (
	"context"
	"time"

	"github.com/cuemby/meteowatch/pkg/weewx"
)

type fakeChecker struct {
	healthy bool
	message string
	calls   int
	typ     CheckType
}

func (f *fakeChecker) Check(ctx context.Context) Result {
	f.calls++
	return Result{Healthy: f.healthy, Message: f.message, CheckedAt: time.Now()}
}

func (f *fakeChecker) Type() CheckType {
	if f.typ == "" {
		return CheckTypePing
	}
	return f.typ
}

type fakeSource struct {
	records []weewx.Measurement
	err     error

	since, until time.Time
}

func (f *fakeSource) Recent(ctx context.Context, since, until time.Time) ([]weewx.Measurement, error) {
	f.since, f.until = since, until
	return f.records, f.err
}
