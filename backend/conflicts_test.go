package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityBuckets(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{60, "major"},
		{59, "significant"},
		{30, "significant"},
		{29, "moderate"},
		{15, "moderate"},
		{14, "minor"},
		{1, "minor"},
		{120, "major"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, severityFor(tt.minutes), "%d minutes", tt.minutes)
	}
}

func TestFindConflictsOverlap(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	standup := timedEvent("e1", "Daily Standup", day.Add(9*time.Hour), day.Add(9*time.Hour+15*time.Minute))
	call := timedEvent("e2", "Client Call", day.Add(9*time.Hour+10*time.Minute), day.Add(9*time.Hour+40*time.Minute))

	conflicts := FindConflicts([]*Event{standup, call})
	require.Len(t, conflicts, 1)
	assert.Equal(t, 5, conflicts[0].OverlapMinutes)
	assert.Equal(t, "minor", conflicts[0].Severity)
}

func TestFindConflictsOrderIndependent(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	a := timedEvent("a", "Planning", day.Add(10*time.Hour), day.Add(11*time.Hour))
	b := timedEvent("b", "Review", day.Add(10*time.Hour+30*time.Minute), day.Add(11*time.Hour+30*time.Minute))

	forward := FindConflicts([]*Event{a, b})
	backward := FindConflicts([]*Event{b, a})
	require.Len(t, forward, 1)
	require.Len(t, backward, 1)
	assert.Equal(t, forward[0].OverlapMinutes, backward[0].OverlapMinutes)
	assert.Equal(t, forward[0].First.ID, backward[0].First.ID)
	assert.Equal(t, forward[0].Second.ID, backward[0].Second.ID)
}

func TestFindConflictsNoneIsNormal(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	events := []*Event{
		timedEvent("e1", "A", day.Add(9*time.Hour), day.Add(10*time.Hour)),
		timedEvent("e2", "B", day.Add(10*time.Hour), day.Add(11*time.Hour)),
	}
	assert.Empty(t, FindConflicts(events))
}

func TestFindConflictsIgnoresAllDay(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	events := []*Event{
		timedEvent("e1", "A", day.Add(9*time.Hour), day.Add(10*time.Hour)),
		allDayEvent("e2", "Company Holiday", "2025-03-10"),
	}
	assert.Empty(t, FindConflicts(events))
}

func TestFilterByTimeframe(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	today := timedEvent("today", "Today", now.Add(3*time.Hour), now.Add(4*time.Hour))
	tomorrow := timedEvent("tomorrow", "Tomorrow", now.AddDate(0, 0, 1), now.AddDate(0, 0, 1).Add(time.Hour))
	thisWeek := timedEvent("week", "This Week", now.AddDate(0, 0, 3), now.AddDate(0, 0, 3).Add(time.Hour))
	thisMonth := timedEvent("month", "This Month", now.AddDate(0, 0, 15), now.AddDate(0, 0, 15).Add(time.Hour))
	nextMonth := timedEvent("next", "Next Month", now.AddDate(0, 1, 0), now.AddDate(0, 1, 0).Add(time.Hour))
	events := []*Event{today, tomorrow, thisWeek, thisMonth, nextMonth}

	ids := func(events []*Event) []string {
		var out []string
		for _, e := range events {
			out = append(out, e.ID)
		}
		return out
	}

	assert.Equal(t, []string{"today"}, ids(FilterByTimeframe(events, "today", now)))
	assert.Equal(t, []string{"tomorrow"}, ids(FilterByTimeframe(events, "tomorrow", now)))
	assert.Equal(t, []string{"today", "tomorrow", "week"}, ids(FilterByTimeframe(events, "this week", now)))
	assert.Equal(t, []string{"today", "tomorrow", "week", "month"}, ids(FilterByTimeframe(events, "month", now)))
	assert.Len(t, FilterByTimeframe(events, "someday", now), 5)
}
