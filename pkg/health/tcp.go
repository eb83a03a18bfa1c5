package health

import (
	"context"
	"fmt"
	"net"
	"time"
)

// TCPChecker checks reachability by opening a TCP connection. It is an
// alternative to ping for networks that drop ICMP.
type TCPChecker struct {
	// Address is the host:port to connect to (e.g., "1.1.1.1:443")
	Address string

	// Timeout is the connection timeout (default: 5 seconds)
	Timeout time.Duration
}

// NewTCPChecker creates a new TCP health checker
func NewTCPChecker(address string) *TCPChecker {
	return &TCPChecker{
		Address: address,
		Timeout: 5 * time.Second,
	}
}

// Check dials the address and closes the connection right away
func (t *TCPChecker) Check(ctx context.Context) Result {
	start := time.Now()

	dialer := &net.Dialer{Timeout: t.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", t.Address)
	if err != nil {
		return newResult(start, false, fmt.Sprintf("connect %s failed: %v", t.Address, err))
	}
	conn.Close()

	return newResult(start, true, fmt.Sprintf("connect %s succeeded", t.Address))
}

// Type returns the health check type
func (t *TCPChecker) Type() CheckType {
	return CheckTypeTCP
}

// WithTimeout sets the connection timeout
func (t *TCPChecker) WithTimeout(timeout time.Duration) *TCPChecker {
	t.Timeout = timeout
	return t
}
