package health

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTargets are pinged by name so DNS resolution is checked as well
var DefaultTargets = []string{
	"google-public-dns-a.google.com",
	"resolver1.opendns.com",
	"ya.ru",
}

// Endpoint is one named reachability probe
type Endpoint struct {
	Name    string
	Checker Checker
}

// ProbeOptions tune the endpoint probes built by ParseTargets
type ProbeOptions struct {
	PingCount   int
	PingCommand string
	Timeout     time.Duration
	Logger      zerolog.Logger
}

// ParseTargets builds endpoints from target strings. "tcp://host:port"
// targets are dialed, http:// and https:// URLs are fetched, anything else
// is pinged.
func ParseTargets(targets []string, opts ProbeOptions) ([]Endpoint, error) {
	endpoints := make([]Endpoint, 0, len(targets))
	for _, target := range targets {
		target = strings.TrimSpace(target)
		if target == "" {
			return nil, fmt.Errorf("empty connectivity target")
		}

		if addr, ok := strings.CutPrefix(target, "tcp://"); ok {
			if _, _, err := net.SplitHostPort(addr); err != nil {
				return nil, fmt.Errorf("invalid tcp target %q: %w", target, err)
			}
			tcp := NewTCPChecker(addr)
			if opts.Timeout > 0 {
				tcp.WithTimeout(opts.Timeout)
			}
			endpoints = append(endpoints, Endpoint{Name: addr, Checker: tcp})
			continue
		}

		if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
			u, err := url.Parse(target)
			if err != nil || u.Host == "" {
				return nil, fmt.Errorf("invalid http target %q", target)
			}
			web := NewHTTPChecker(target)
			if opts.Timeout > 0 {
				web.WithTimeout(opts.Timeout)
			}
			endpoints = append(endpoints, Endpoint{Name: u.Host, Checker: web})
			continue
		}

		ping := NewPingChecker(target).WithLogger(opts.Logger)
		if opts.PingCount > 0 {
			ping.WithCount(opts.PingCount)
		}
		if opts.PingCommand != "" {
			ping.WithCommand(opts.PingCommand)
		}
		if opts.Timeout > 0 {
			ping.WithTimeout(opts.Timeout)
		}
		endpoints = append(endpoints, Endpoint{Name: target, Checker: ping})
	}
	return endpoints, nil
}

// ConnectivityChecker probes every endpoint in order and passes if at least
// one of them is reachable. A single dead endpoint or a flaky resolver does
// not fail the host.
type ConnectivityChecker struct {
	endpoints []Endpoint
	logger    zerolog.Logger
}

// NewConnectivityChecker creates a connectivity check over endpoints
func NewConnectivityChecker(endpoints []Endpoint, logger zerolog.Logger) *ConnectivityChecker {
	return &ConnectivityChecker{
		endpoints: endpoints,
		logger:    logger,
	}
}

// Check probes all endpoints; it does not stop at the first success
func (c *ConnectivityChecker) Check(ctx context.Context) Result {
	start := time.Now()

	reachable := 0
	for _, ep := range c.endpoints {
		r := ep.Checker.Check(ctx)
		if r.Healthy {
			reachable++
			c.logger.Debug().Str("target", ep.Name).Dur("duration", r.Duration).Msg(r.Message)
			continue
		}
		c.logger.Warn().Str("target", ep.Name).Str("reason", r.Message).Msgf("%s: %s attempt has failed", ep.Name, ep.Checker.Type())
	}

	if reachable == 0 {
		c.logger.Error().Int("targets", len(c.endpoints)).Msg("All ping attempts have failed")
		return newResult(start, false, "all ping attempts have failed")
	}

	return newResult(start, true, fmt.Sprintf("%d of %d targets reachable", reachable, len(c.endpoints)))
}

// Type returns the health check type
func (c *ConnectivityChecker) Type() CheckType {
	return CheckTypeConnectivity
}
