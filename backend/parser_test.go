package main

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTimeMeridiem(t *testing.T) {
	for h := 1; h <= 12; h++ {
		wantPM := h%12 + 12
		if h == 12 {
			wantPM = 12
		}
		hour, minute, ok := ParseClockTime(fmt.Sprintf("%dpm", h))
		require.True(t, ok, "%dpm", h)
		assert.Equal(t, wantPM, hour, "%dpm", h)
		assert.Equal(t, 0, minute)

		wantAM := h
		if h == 12 {
			wantAM = 0
		}
		hour, minute, ok = ParseClockTime(fmt.Sprintf("%dam", h))
		require.True(t, ok, "%dam", h)
		assert.Equal(t, wantAM, hour, "%dam", h)
		assert.Equal(t, 0, minute)
	}
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in     string
		hour   int
		minute int
		ok     bool
	}{
		{"14:30", 14, 30, true},
		{"9:15am", 9, 15, true},
		{"at 3:45 pm", 15, 45, true},
		{"12am", 0, 0, true},
		{"12pm", 12, 0, true},
		{"7", 7, 0, true},
		{"25:00", 0, 0, false},
		{"no time here", 0, 0, false},
	}
	for _, tt := range tests {
		hour, minute, ok := ParseClockTime(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.hour, hour, tt.in)
			assert.Equal(t, tt.minute, minute, tt.in)
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"2 hours", 120},
		{"1 hour", 60},
		{"45 minutes", 45},
		{"90 min", 90},
		{"2h", 120},
		{"30m", 30},
		{"1 hr", 60},
		{"90", 90},
		{"garbage", 60},
		{"", 60},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseDuration(tt.in), tt.in)
	}
}

func TestParseDateTimeRelativeWords(t *testing.T) {
	now := time.Now()

	got := ParseDateTime("today 2pm")
	assert.Equal(t, now.Day(), got.Day())
	assert.Equal(t, 14, got.Hour())
	assert.Equal(t, 0, got.Minute())

	tomorrow := now.AddDate(0, 0, 1)
	got = ParseDateTime("tomorrow at 9:30am")
	assert.Equal(t, tomorrow.Day(), got.Day())
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 30, got.Minute())

	got = ParseDateTime("tomorrow")
	assert.Equal(t, tomorrow.Day(), got.Day())
	assert.Equal(t, 9, got.Hour())
}

func TestParseDateTimeLiteral(t *testing.T) {
	got := ParseDateTime("2025-03-10 14:00")
	want := time.Date(2025, 3, 10, 14, 0, 0, 0, time.Local)
	assert.True(t, got.Equal(want), "got %v", got)

	got = ParseDateTime("2025-03-10")
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 10, got.Day())
}

func TestParseDateTimeClockFallback(t *testing.T) {
	got := ParseDateTime("somewhere around 3:30pm maybe")
	assert.Equal(t, time.Now().Day(), got.Day())
	assert.Equal(t, 15, got.Hour())
	assert.Equal(t, 30, got.Minute())
}

func TestParseDateTimeUnparseableFallsBackToNow(t *testing.T) {
	got := ParseDateTime("complete nonsense")
	assert.WithinDuration(t, time.Now(), got, 2*time.Second)
}

func TestParseTimeRange(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	at := func(h, m int) time.Time {
		return time.Date(2025, 3, 10, h, m, 0, 0, time.Local)
	}

	tests := []struct {
		in         string
		start, end time.Time
	}{
		{"2pm-4pm", at(14, 0), at(16, 0)},
		{"2-4pm", at(14, 0), at(16, 0)},
		{"9:30am to 11am", at(9, 30), at(11, 0)},
		{"morning", at(8, 0), at(12, 0)},
		{"afternoon", at(12, 0), at(17, 0)},
		{"evening", at(17, 0), at(21, 0)},
		{"whenever works", at(9, 0), at(17, 0)},
		{"", at(9, 0), at(17, 0)},
	}
	for _, tt := range tests {
		start, end := ParseTimeRange(tt.in, date)
		assert.True(t, start.Equal(tt.start), "%s start: got %v", tt.in, start)
		assert.True(t, end.Equal(tt.end), "%s end: got %v", tt.in, end)
	}
}
