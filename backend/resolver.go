package main

import "strings"

type ResolveStatus int

const (
	ResolveUnique ResolveStatus = iota
	ResolveAmbiguous
	ResolveNotFound
)

// ResolveResult carries the single matched event, or the full candidate list
// when the reference was ambiguous. The assistant never guesses between
// candidates.
type ResolveResult struct {
	Status     ResolveStatus
	Event      *Event
	Candidates []*Event
}

// ResolveEvent maps an event reference ("the team meeting", "my 2pm call",
// a raw id) to an event. Matching is staged: exact id, exact title, then
// substring in either direction, then start time of day. A later stage only
// runs when the previous one matched nothing.
func ResolveEvent(query string, events []*Event) ResolveResult {
	raw := strings.TrimSpace(query)
	q := strings.ToLower(raw)
	if q == "" {
		return ResolveResult{Status: ResolveNotFound}
	}

	stages := []func(*Event) bool{
		func(e *Event) bool {
			return e.ID != "" && e.ID == raw
		},
		func(e *Event) bool {
			return strings.ToLower(e.Title) == q
		},
		func(e *Event) bool {
			title := strings.ToLower(e.Title)
			return title != "" && (strings.Contains(title, q) || strings.Contains(q, title))
		},
		func(e *Event) bool {
			h, m, ok := ParseClockTime(q)
			if !ok {
				return false
			}
			start, hasTime := e.StartTime()
			return hasTime && start.Hour() == h && start.Minute() == m
		},
	}

	for _, match := range stages {
		var found []*Event
		for _, e := range events {
			if match(e) {
				found = append(found, e)
			}
		}
		switch len(found) {
		case 0:
			continue
		case 1:
			return ResolveResult{Status: ResolveUnique, Event: found[0]}
		default:
			return ResolveResult{Status: ResolveAmbiguous, Candidates: found}
		}
	}
	return ResolveResult{Status: ResolveNotFound}
}
