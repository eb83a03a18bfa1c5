package health

import (
	"context"
	"fmt"
	"time"

	"github.com/cuemby/meteowatch/pkg/weewx"
	"github.com/rs/zerolog"
)

// DefaultFreshnessWindow is how far back a valid wind reading must exist
const DefaultFreshnessWindow = 15 * time.Minute

// MeasurementSource returns the records timestamped within [since, until]
type MeasurementSource interface {
	Recent(ctx context.Context, since, until time.Time) ([]weewx.Measurement, error)
}

// FreshnessChecker verifies that the data logger keeps recording wind data.
// Individual null readings are normal in calm weather; a window in which
// every reading is null means the sensor or the acquisition is broken.
type FreshnessChecker struct {
	source MeasurementSource
	window time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

// NewFreshnessChecker creates a freshness check over source. A non-positive
// window selects DefaultFreshnessWindow.
func NewFreshnessChecker(source MeasurementSource, window time.Duration, logger zerolog.Logger) *FreshnessChecker {
	if window <= 0 {
		window = DefaultFreshnessWindow
	}
	return &FreshnessChecker{
		source: source,
		window: window,
		now:    time.Now,
		logger: logger,
	}
}

// Check passes when at least one record in the window has a value
func (f *FreshnessChecker) Check(ctx context.Context) Result {
	start := time.Now()
	now := f.now()
	minutes := int(f.window.Minutes())

	records, err := f.source.Recent(ctx, now.Add(-f.window), now)
	if err != nil {
		f.logger.Error().Err(err).Msg("Measurement archive is not accessible")
		return newResult(start, false, err.Error())
	}

	if len(records) == 0 {
		msg := fmt.Sprintf("no records in the archive for the last %dmin", minutes)
		f.logger.Error().Msg(msg)
		return newResult(start, false, msg)
	}

	valid := 0
	for _, r := range records {
		ev := f.logger.Debug().Time("time", r.Time)
		if r.Value != nil {
			valid++
			ev = ev.Float64("value", *r.Value)
		}
		ev.Msg("archive record")
	}

	if valid == 0 {
		msg := fmt.Sprintf("no wind data for the last %dmin in the archive", minutes)
		f.logger.Error().Int("records", len(records)).Msg(msg)
		return newResult(start, false, msg)
	}

	return newResult(start, true, fmt.Sprintf("%d of %d records in the last %dmin have wind data", valid, len(records), minutes))
}

// Type returns the health check type
func (f *FreshnessChecker) Type() CheckType {
	return CheckTypeFreshness
}
