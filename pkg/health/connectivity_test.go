package health

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func endpoints(results ...bool) ([]Endpoint, []*fakeChecker) {
	names := []string{"google-public-dns-a.google.com", "resolver1.opendns.com", "ya.ru", "extra"}
	var eps []Endpoint
	var fakes []*fakeChecker
	for i, ok := range results {
		f := &fakeChecker{healthy: ok, message: "unreachable"}
		fakes = append(fakes, f)
		eps = append(eps, Endpoint{Name: names[i], Checker: f})
	}
	return eps, fakes
}

func TestConnectivityChecker(t *testing.T) {
	tests := []struct {
		name    string
		results []bool
		healthy bool
	}{
		{"all reachable", []bool{true, true, true}, true},
		{"one of three reachable", []bool{false, true, false}, true},
		{"only last reachable", []bool{false, false, true}, true},
		{"none reachable", []bool{false, false, false}, false},
		{"no endpoints", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eps, fakes := endpoints(tt.results...)
			checker := NewConnectivityChecker(eps, zerolog.Nop())

			result := checker.Check(context.Background())

			assert.Equal(t, tt.healthy, result.Healthy)
			for _, f := range fakes {
				assert.Equal(t, 1, f.calls, "every endpoint is probed exactly once")
			}
		})
	}
}

func TestConnectivityChecker_AllFailedDiagnostic(t *testing.T) {
	var logs bytes.Buffer
	eps, _ := endpoints(false, false, false)
	checker := NewConnectivityChecker(eps, zerolog.New(&logs))

	result := checker.Check(context.Background())

	assert.False(t, result.Healthy)
	assert.Equal(t, "all ping attempts have failed", result.Message)
	assert.Contains(t, logs.String(), "All ping attempts have failed")
	assert.Equal(t, 3, bytes.Count(logs.Bytes(), []byte("ping attempt has failed\"")), logs.String())
	assert.Contains(t, logs.String(), "ya.ru: ping attempt has failed")
}

func TestConnectivityChecker_FailureNamesEndpointKind(t *testing.T) {
	var logs bytes.Buffer
	eps := []Endpoint{
		{Name: "gateway:53", Checker: &fakeChecker{typ: CheckTypeTCP}},
		{Name: "https://example.org", Checker: &fakeChecker{typ: CheckTypeHTTP}},
	}
	checker := NewConnectivityChecker(eps, zerolog.New(&logs))

	result := checker.Check(context.Background())

	assert.False(t, result.Healthy)
	assert.Contains(t, logs.String(), "gateway:53: tcp attempt has failed")
	assert.Contains(t, logs.String(), "https://example.org: http attempt has failed")
	assert.NotContains(t, logs.String(), "ping attempt has failed")
}

func TestConnectivityChecker_PartialFailureWarnsOnly(t *testing.T) {
	var logs bytes.Buffer
	eps, _ := endpoints(false, true, true)
	checker := NewConnectivityChecker(eps, zerolog.New(&logs).Level(zerolog.WarnLevel))

	result := checker.Check(context.Background())

	assert.True(t, result.Healthy)
	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.NotContains(t, logs.String(), `"level":"error"`)
}

func TestParseTargets(t *testing.T) {
	eps, err := ParseTargets(
		[]string{"ya.ru", "tcp://1.1.1.1:443", "https://rtupdate.wunderground.com/weatherstation"},
		ProbeOptions{PingCount: 5, PingCommand: "/bin/ping", Timeout: 10 * time.Second, Logger: zerolog.Nop()},
	)
	require.NoError(t, err)
	require.Len(t, eps, 3)

	ping, ok := eps[0].Checker.(*PingChecker)
	require.True(t, ok)
	assert.Equal(t, "ya.ru", eps[0].Name)
	assert.Equal(t, 5, ping.Count)
	assert.Equal(t, "/bin/ping", ping.Command)
	assert.Equal(t, 10*time.Second, ping.Timeout)

	tcp, ok := eps[1].Checker.(*TCPChecker)
	require.True(t, ok)
	assert.Equal(t, "1.1.1.1:443", tcp.Address)
	assert.Equal(t, 10*time.Second, tcp.Timeout)

	web, ok := eps[2].Checker.(*HTTPChecker)
	require.True(t, ok)
	assert.Equal(t, "rtupdate.wunderground.com", eps[2].Name)
	assert.Equal(t, 10*time.Second, web.Client.Timeout)
}

func TestParseTargets_Invalid(t *testing.T) {
	_, err := ParseTargets([]string{"tcp://no-port"}, ProbeOptions{})
	assert.Error(t, err)

	_, err = ParseTargets([]string{" "}, ProbeOptions{})
	assert.Error(t, err)

	_, err = ParseTargets([]string{"http://"}, ProbeOptions{})
	assert.Error(t, err)
}
