package main

import (
	"fmt"
	"strings"
)

const (
	dateLayout     = "Mon, Jan 2 2006"
	timeLayout     = "15:04"
	dateTimeLayout = "Mon, Jan 2 2006 15:04"
)

func formatEventWhen(e *Event) string {
	start, ok := e.StartTime()
	if !ok {
		if e.Start != nil && e.Start.Date != "" {
			return e.Start.Date + " (All day)"
		}
		return "All day"
	}
	if end, ok := e.EndTime(); ok {
		return fmt.Sprintf("%s–%s", start.Format(dateTimeLayout), end.Format(timeLayout))
	}
	return start.Format(dateTimeLayout)
}

func renderEventLine(e *Event) string {
	line := fmt.Sprintf("- **%s** — %s", e.Title, formatEventWhen(e))
	if e.Location != "" {
		line += fmt.Sprintf(" @ %s", e.Location)
	}
	line += fmt.Sprintf(" (id: %s)", e.ID)
	return line
}

func renderCandidateList(query string, candidates []*Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I found %d events matching \"%s\". Which one did you mean?\n\n", len(candidates), query)
	for _, e := range candidates {
		b.WriteString(renderEventLine(e) + "\n")
	}
	b.WriteString("\nYou can pick one by:\n")
	b.WriteString("- giving the exact title\n")
	b.WriteString("- giving the event id\n")
	b.WriteString("- giving its start time (e.g. \"the 2pm one\")\n")
	return b.String()
}

func renderNotFound(query string) string {
	return fmt.Sprintf("I couldn't find an event matching \"%s\". Could you be more specific? The exact title or the time it starts usually helps.", query)
}

func renderAttendees(attendees []Attendee) string {
	if len(attendees) == 0 {
		return ""
	}
	emails := make([]string, len(attendees))
	for i, a := range attendees {
		emails[i] = a.Email
	}
	return strings.Join(emails, ", ")
}

func renderClarification(intro string, missing []string) string {
	var b strings.Builder
	b.WriteString(intro + "\n\n")
	for _, m := range missing {
		b.WriteString("- " + m + "\n")
	}
	return b.String()
}
