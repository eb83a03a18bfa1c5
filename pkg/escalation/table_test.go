package escalation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lvl(v int) *Level {
	l := Level(v)
	return &l
}

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name     string
		previous *Level
		want     Level
	}{
		{"none", nil, 15},
		{"reset", lvl(0), 15},
		{"after 15m", lvl(15), 30},
		{"after 30m", lvl(30), 180},
		{"after 3h", lvl(180), 720},
		{"saturated", lvl(720), 720},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Next(tt.previous))
		})
	}
}

func TestTable_UnknownFallsBackToNone(t *testing.T) {
	table := DefaultTable()
	none := table.Next(nil)

	for _, v := range []int{-1, 1, 14, 16, 29, 100, 719, 721, 10000} {
		assert.Equal(t, none, table.Next(lvl(v)), "level %d", v)
	}
}

func TestTable_NonDecreasingAndSaturating(t *testing.T) {
	table := DefaultTable()

	var previous *Level
	last := Level(0)
	for i := 0; i < 10; i++ {
		next := table.Next(previous)
		assert.GreaterOrEqual(t, next, last)
		assert.LessOrEqual(t, next, table.Ceiling())
		last = next
		previous = &next
	}
	assert.Equal(t, Level(720), last)
	assert.Equal(t, Level(720), table.Ceiling())
}

func TestNewTable_Custom(t *testing.T) {
	table, err := NewTable([]Level{10, 60})
	require.NoError(t, err)

	assert.Equal(t, Level(10), table.Next(nil))
	assert.Equal(t, Level(10), table.Next(lvl(0)))
	assert.Equal(t, Level(60), table.Next(lvl(10)))
	assert.Equal(t, Level(60), table.Next(lvl(60)))
	assert.Equal(t, Level(10), table.Next(lvl(15)))
}

func TestNewTable_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		steps []Level
	}{
		{"empty", nil},
		{"zero step", []Level{0, 15}},
		{"negative step", []Level{-5}},
		{"decreasing", []Level{30, 15}},
		{"repeated", []Level{15, 15, 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.steps)
			assert.Error(t, err)
		})
	}
}

func TestLevel_Duration(t *testing.T) {
	assert.Equal(t, "15m0s", Level(15).Duration().String())
	assert.Equal(t, "12h0m0s", Level(720).Duration().String())
	assert.Equal(t, "30m", Level(30).String())
}
