package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPeriod_AlignsToDays(t *testing.T) {
	p, err := NewPeriod(time.Date(2025, 1, 5, 14, 20, 0, 0, time.UTC), time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2025, 1, 15, 23, 59, 59, 999999999, time.UTC), p.End)
	assert.Equal(t, "2025-01-05..2025-01-15", p.String())
}

func TestNewPeriod_SameDay(t *testing.T) {
	p, err := NewPeriod(time.Date(2025, 1, 5, 18, 0, 0, 0, time.UTC), time.Date(2025, 1, 5, 6, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, p.Contains(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)))
	assert.True(t, p.Contains(time.Date(2025, 1, 5, 23, 59, 59, 0, time.UTC)))
}

func TestNewPeriod_EndBeforeStart(t *testing.T) {
	_, err := NewPeriod(day(2025, 1, 10), day(2025, 1, 9))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPeriod))
}

func TestPeriod_Contains(t *testing.T) {
	p := mustPeriod(t, day(2025, 1, 5), day(2025, 1, 15))

	tests := []struct {
		name     string
		at       time.Time
		expected bool
	}{
		{"start boundary", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"end boundary", time.Date(2025, 1, 15, 23, 59, 59, 0, time.UTC), true},
		{"just before", time.Date(2025, 1, 4, 23, 59, 59, 0, time.UTC), false},
		{"just after", time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC), false},
		{"zero time", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.Contains(tt.at))
		})
	}

	assert.False(t, p.ContainsPtr(nil))
	assert.True(t, p.ContainsPtr(ptr(day(2025, 1, 10))))
}

func TestMonthToDate(t *testing.T) {
	p := MonthToDate(time.Date(2025, 3, 17, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2025, 3, 17, 23, 59, 59, 999999999, time.UTC), p.End)
}
