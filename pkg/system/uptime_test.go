package system

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUptime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "proc format", input: "350735.47 234388.90\n", want: 350735 * time.Second},
		{name: "rounds up", input: "899.6 10.0", want: 900 * time.Second},
		{name: "rounds down", input: "899.4 10.0", want: 899 * time.Second},
		{name: "single field", input: "60", want: time.Minute},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "abc 1.0", wantErr: true},
		{name: "negative", input: "-5 1.0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseUptime(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUptime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProcUptime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uptime")
	require.NoError(t, os.WriteFile(path, []byte("1234.56 42.00\n"), 0644))

	got, err := (&ProcUptime{Path: path}).Uptime()

	require.NoError(t, err)
	assert.Equal(t, 1235*time.Second, got)
}

func TestProcUptime_Missing(t *testing.T) {
	_, err := (&ProcUptime{Path: filepath.Join(t.TempDir(), "nope")}).Uptime()

	assert.ErrorIs(t, err, ErrUptime)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewProcUptime(t *testing.T) {
	assert.Equal(t, DefaultUptimePath, NewProcUptime().Path)
}
