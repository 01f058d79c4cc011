package main

import (
	"sort"
	"strings"
	"time"
)

type Conflict struct {
	First          *Event
	Second         *Event
	OverlapMinutes int
	Severity       string
}

// FilterByTimeframe keeps events whose start instant falls inside the named
// window. Unrecognized keywords filter nothing. Whole-day events have no
// start instant and are dropped.
func FilterByTimeframe(events []*Event, timeframe string, now time.Time) []*Event {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	var windowStart, windowEnd time.Time
	switch strings.ToLower(strings.TrimSpace(timeframe)) {
	case "today":
		windowStart, windowEnd = dayStart, dayStart.AddDate(0, 0, 1)
	case "tomorrow":
		windowStart, windowEnd = dayStart.AddDate(0, 0, 1), dayStart.AddDate(0, 0, 2)
	case "week", "this week":
		windowStart, windowEnd = dayStart, dayStart.AddDate(0, 0, 7)
	case "month", "this month":
		windowStart = dayStart
		windowEnd = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, 0)
	default:
		return events
	}

	var out []*Event
	for _, e := range events {
		start, ok := e.StartTime()
		if !ok {
			continue
		}
		if !start.Before(windowStart) && start.Before(windowEnd) {
			out = append(out, e)
		}
	}
	return out
}

// FindConflicts reports every pairwise overlap among the precisely-timed
// events, ordered by start time. An empty result means a clean calendar,
// which is a normal outcome rather than an error.
func FindConflicts(events []*Event) []Conflict {
	type timed struct {
		event      *Event
		start, end time.Time
	}

	var sorted []timed
	for _, e := range events {
		start, okStart := e.StartTime()
		end, okEnd := e.EndTime()
		if okStart && okEnd {
			sorted = append(sorted, timed{e, start, end})
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start.Before(sorted[j].start) })

	var conflicts []Conflict
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			a, b := sorted[i], sorted[j]
			overlapStart := a.start
			if b.start.After(overlapStart) {
				overlapStart = b.start
			}
			overlapEnd := a.end
			if b.end.Before(overlapEnd) {
				overlapEnd = b.end
			}
			if !overlapStart.Before(overlapEnd) {
				continue
			}
			minutes := int(overlapEnd.Sub(overlapStart).Minutes())
			conflicts = append(conflicts, Conflict{
				First:          a.event,
				Second:         b.event,
				OverlapMinutes: minutes,
				Severity:       severityFor(minutes),
			})
		}
	}
	return conflicts
}

// Buckets are inclusive lower bounds, checked highest first.
func severityFor(minutes int) string {
	switch {
	case minutes >= 60:
		return "major"
	case minutes >= 30:
		return "significant"
	case minutes >= 15:
		return "moderate"
	default:
		return "minor"
	}
}
