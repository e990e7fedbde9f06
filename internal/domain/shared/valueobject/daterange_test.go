package valueobject

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewDateRange(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		r, err := NewDateRange(date(2026, 1, 1), date(2026, 3, 31))
		require.NoError(t, err)
		assert.Equal(t, date(2026, 1, 1), r.Start())
		assert.Equal(t, date(2026, 3, 31), r.End())
	})

	t.Run("single day range", func(t *testing.T) {
		r, err := NewDateRange(date(2026, 1, 15), date(2026, 1, 15))
		require.NoError(t, err)
		assert.Equal(t, 1, r.Days())
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := NewDateRange(date(2026, 3, 31), date(2026, 1, 1))
		assert.Error(t, err)
	})

	t.Run("normalizes time of day", func(t *testing.T) {
		r, err := NewDateRange(
			time.Date(2026, 1, 1, 23, 59, 0, 0, time.UTC),
			time.Date(2026, 1, 2, 0, 1, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		assert.Equal(t, date(2026, 1, 1), r.Start())
		assert.Equal(t, date(2026, 1, 2), r.End())
	})
}

func TestDateRange_Contains(t *testing.T) {
	r, err := NewDateRange(date(2026, 1, 1), date(2026, 1, 31))
	require.NoError(t, err)

	tests := []struct {
		name     string
		day      time.Time
		expected bool
	}{
		{"before start", date(2025, 12, 31), false},
		{"on start bound", date(2026, 1, 1), true},
		{"inside", date(2026, 1, 15), true},
		{"on end bound", date(2026, 1, 31), true},
		{"after end", date(2026, 2, 1), false},
		{"start bound with time of day", time.Date(2026, 1, 1, 18, 30, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Contains(tt.day))
		})
	}
}

func TestDateRange_Overlaps(t *testing.T) {
	base, err := NewDateRange(date(2026, 1, 1), date(2026, 1, 31))
	require.NoError(t, err)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected bool
	}{
		{"disjoint before", date(2025, 11, 1), date(2025, 12, 31), false},
		{"disjoint after", date(2026, 2, 1), date(2026, 2, 28), false},
		{"shared start bound", date(2025, 12, 1), date(2026, 1, 1), true},
		{"shared end bound", date(2026, 1, 31), date(2026, 2, 28), true},
		{"contained", date(2026, 1, 10), date(2026, 1, 20), true},
		{"containing", date(2025, 12, 1), date(2026, 2, 28), true},
		{"identical", date(2026, 1, 1), date(2026, 1, 31), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other, err := NewDateRange(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, base.Overlaps(other))
			assert.Equal(t, tt.expected, other.Overlaps(base))
		})
	}
}

func TestDateRange_Days(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{"single day", date(2026, 1, 1), date(2026, 1, 1), 1},
		{"full january", date(2026, 1, 1), date(2026, 1, 31), 31},
		{"first quarter", date(2026, 1, 1), date(2026, 3, 31), 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewDateRange(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, r.Days())
		})
	}
}

func TestDateRange_ElapsedDays(t *testing.T) {
	r, err := NewDateRange(date(2026, 1, 1), date(2026, 1, 10))
	require.NoError(t, err)

	tests := []struct {
		name     string
		asOf     time.Time
		expected int
	}{
		{"before start", date(2025, 12, 25), 0},
		{"on start day", date(2026, 1, 1), 1},
		{"mid window", date(2026, 1, 5), 5},
		{"on end day", date(2026, 1, 10), 10},
		{"after end clamps to total", date(2026, 2, 1), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.ElapsedDays(tt.asOf))
		})
	}
}

func TestDateRange_Equals(t *testing.T) {
	a, err := NewDateRange(date(2026, 1, 1), date(2026, 1, 31))
	require.NoError(t, err)
	b, err := NewDateRange(date(2026, 1, 1), date(2026, 1, 31))
	require.NoError(t, err)
	c, err := NewDateRange(date(2026, 1, 1), date(2026, 2, 28))
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}
