package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFreeSlotsSingleGapNotTiled(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	events := []*Event{
		timedEvent("e1", "Standup", day.Add(10*time.Hour), day.Add(11*time.Hour)),
	}

	slots := FindFreeSlots(events, day.Add(9*time.Hour), day.Add(17*time.Hour), 60)
	// One slot before the event and exactly one after it; the long
	// afternoon gap is not tiled into several slots.
	require.Len(t, slots, 2)
	assert.True(t, slots[0].Start.Equal(day.Add(9*time.Hour)))
	assert.True(t, slots[0].End.Equal(day.Add(10*time.Hour)))
	assert.True(t, slots[1].Start.Equal(day.Add(11*time.Hour)))
	assert.True(t, slots[1].End.Equal(day.Add(12*time.Hour)))
}

func TestFindFreeSlotsPropertiesHold(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	dayStart, dayEnd := day.Add(9*time.Hour), day.Add(17*time.Hour)
	events := []*Event{
		timedEvent("e1", "A", day.Add(9*time.Hour+30*time.Minute), day.Add(10*time.Hour+30*time.Minute)),
		timedEvent("e2", "B", day.Add(10*time.Hour+15*time.Minute), day.Add(11*time.Hour)),
		timedEvent("e3", "C", day.Add(13*time.Hour), day.Add(13*time.Hour+45*time.Minute)),
	}

	slots := FindFreeSlots(events, dayStart, dayEnd, 30)
	require.NotEmpty(t, slots)
	for _, s := range slots {
		assert.Equal(t, 30*time.Minute, s.End.Sub(s.Start))
		assert.False(t, s.Start.Before(dayStart))
		assert.False(t, s.End.After(dayEnd))
		for _, e := range events {
			start, _ := e.StartTime()
			end, _ := e.EndTime()
			overlaps := s.Start.Before(end) && start.Before(s.End)
			assert.False(t, overlaps, "slot %v intersects %s", s, e.Title)
		}
	}
}

func TestFindFreeSlotsOverlappingEventsDoNotBreakCursor(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	events := []*Event{
		timedEvent("e1", "Outer", day.Add(10*time.Hour), day.Add(12*time.Hour)),
		timedEvent("e2", "Inner", day.Add(10*time.Hour+30*time.Minute), day.Add(11*time.Hour)),
	}

	slots := FindFreeSlots(events, day.Add(9*time.Hour), day.Add(13*time.Hour), 60)
	require.Len(t, slots, 2)
	assert.True(t, slots[0].Start.Equal(day.Add(9*time.Hour)))
	assert.True(t, slots[1].Start.Equal(day.Add(12*time.Hour)))
}

func TestFindFreeSlotsEmptyDay(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	slots := FindFreeSlots(nil, day.Add(9*time.Hour), day.Add(17*time.Hour), 60)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Start.Equal(day.Add(9*time.Hour)))
}

func TestFindFreeSlotsNoRoom(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	events := []*Event{
		timedEvent("e1", "All of it", day.Add(9*time.Hour), day.Add(17*time.Hour)),
	}
	assert.Empty(t, FindFreeSlots(events, day.Add(9*time.Hour), day.Add(17*time.Hour), 30))
}

func TestFindFreeSlotsIgnoresOtherDays(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	otherDay := day.AddDate(0, 0, 1)
	events := []*Event{
		timedEvent("e1", "Elsewhere", otherDay.Add(10*time.Hour), otherDay.Add(11*time.Hour)),
	}
	slots := FindFreeSlots(events, day.Add(9*time.Hour), day.Add(17*time.Hour), 60)
	require.Len(t, slots, 1)
}
