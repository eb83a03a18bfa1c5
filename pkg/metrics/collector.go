package metrics

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// UptimeSource reports the host uptime
type UptimeSource interface {
	Uptime() (time.Duration, error)
}

// Collector refreshes host gauges between monitoring cycles so that a
// scrape never sees a value that is a whole sleep interval old.
type Collector struct {
	source   UptimeSource
	interval time.Duration
	logger   zerolog.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewCollector creates a new metrics collector
func NewCollector(source UptimeSource, interval time.Duration, logger zerolog.Logger) *Collector {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Collector{
		source:   source,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Start begins collecting metrics
func (c *Collector) Start() {
	ticker := time.NewTicker(c.interval)
	go func() {
		// Collect immediately on start
		c.collect()

		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *Collector) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *Collector) collect() {
	uptime, err := c.source.Uptime()
	if err != nil {
		c.logger.Debug().Err(err).Msg("Failed to read uptime")
		return
	}
	UptimeSeconds.Set(uptime.Seconds())
}
