package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func TestDeriveStatus(t *testing.T) {
	today := day("2024-06-01")

	tests := []struct {
		name      string
		paused    bool
		lifecycle string
		start     *time.Time
		end       *time.Time
		want      ProgramStatus
	}{
		{"paused wins over everything", true, LifecycleActive, dayPtr("2099-01-01"), dayPtr("2000-01-01"), StatusPaused},
		{"paused inactive", true, "INACTIVE", nil, nil, StatusPaused},
		{"future start", false, LifecycleActive, dayPtr("2099-01-01"), nil, StatusFuture},
		{"future start ignores lifecycle", false, "INACTIVE", dayPtr("2024-06-02"), dayPtr("2024-07-01"), StatusFuture},
		{"ended yesterday", false, LifecycleActive, dayPtr("2024-01-01"), dayPtr("2024-05-31"), StatusPast},
		{"ends today is current", false, LifecycleActive, dayPtr("2024-01-01"), dayPtr("2024-06-01"), StatusCurrent},
		{"starts today is current", false, LifecycleActive, dayPtr("2024-06-01"), nil, StatusCurrent},
		{"sentinel end never expires", false, LifecycleActive, dayPtr("2024-01-01"), dayPtr("9999-12-31"), StatusCurrent},
		{"open ended", false, LifecycleActive, dayPtr("2024-01-01"), nil, StatusCurrent},
		{"inactive in range", false, "INACTIVE", dayPtr("2024-01-01"), dayPtr("2024-12-31"), StatusInactive},
		{"no dates inactive", false, "", nil, nil, StatusInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.paused, tt.lifecycle, tt.start, tt.end, today))
		})
	}
}

func TestDeriveStatusIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, StatusCurrent, DeriveStatus(false, LifecycleActive, &start, nil, late))
}

func TestDeriveStatusFutureRegardlessOfLifecycle(t *testing.T) {
	for _, lifecycle := range []string{LifecycleActive, "INACTIVE", "", "UNKNOWN"} {
		got := DeriveStatus(false, lifecycle, dayPtr("2099-01-01"), nil, day("2024-01-01"))
		assert.Equal(t, StatusFuture, got, lifecycle)
	}
}

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus("CURRENT")
	assert.True(t, ok)
	assert.Equal(t, StatusCurrent, st)

	_, ok = ParseStatus("current")
	assert.False(t, ok)
}
