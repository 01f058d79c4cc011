package main

import (
	"sort"
	"time"
)

// FindFreeSlots sweeps the day window and returns gaps that can hold a
// meeting of the requested length. Each gap yields at most one slot of
// exactly durationMinutes, anchored at the start of the gap. Only events
// with precise times on the window's date count as busy.
func FindFreeSlots(events []*Event, dayStart, dayEnd time.Time, durationMinutes int) []TimeSlot {
	duration := time.Duration(durationMinutes) * time.Minute

	type span struct {
		start, end time.Time
	}
	var busy []span
	for _, e := range events {
		start, okStart := e.StartTime()
		end, okEnd := e.EndTime()
		if !okStart || !okEnd {
			continue
		}
		y1, m1, d1 := start.Date()
		y2, m2, d2 := dayStart.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			continue
		}
		busy = append(busy, span{start, end})
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].start.Before(busy[j].start) })

	var slots []TimeSlot
	cursor := dayStart
	for _, b := range busy {
		gapEnd := b.start
		if gapEnd.After(dayEnd) {
			gapEnd = dayEnd
		}
		if gapEnd.Sub(cursor) >= duration {
			slots = append(slots, TimeSlot{Start: cursor, End: cursor.Add(duration)})
		}
		// Overlapping or contained events must never move the cursor
		// backwards.
		if b.end.After(cursor) {
			cursor = b.end
		}
	}
	if dayEnd.Sub(cursor) >= duration {
		slots = append(slots, TimeSlot{Start: cursor, End: cursor.Add(duration)})
	}
	return slots
}
