package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

type Operation string

const (
	OpGenerateEmailDrafts    Operation = "generate_email_drafts"
	OpAnalyzeMeetingTime     Operation = "analyze_meeting_time"
	OpProvideRecommendations Operation = "provide_recommendations"
	OpFindConflicts          Operation = "find_conflicts"
	OpFindAvailableTimeSlots Operation = "find_available_time_slots"
	OpCreateCalendarEvent    Operation = "create_calendar_event"
	OpUpdateCalendarEvent    Operation = "update_calendar_event"
	OpDeleteCalendarEvent    Operation = "delete_calendar_event"
	OpListUpcomingEvents     Operation = "list_upcoming_events"
)

const unknownOperationReply = "I'm sorry, I don't know how to handle that request yet."
const unreadableArgsReply = "I couldn't make sense of that request. Could you rephrase it?"

// Assistant routes a model-chosen function call plus its argument bag to the
// matching operation. Read-only operations work purely over the event
// snapshot; create/update/delete additionally talk to the calendar backend.
// Handle always returns a display string, never an error.
type Assistant struct {
	calendar Calendar
}

func NewAssistant(calendar Calendar) *Assistant {
	return &Assistant{calendar: calendar}
}

func (a *Assistant) Handle(ctx context.Context, name string, args map[string]any, events []*Event) string {
	switch Operation(name) {
	case OpGenerateEmailDrafts:
		return a.handleEmailDrafts(args, events)
	case OpAnalyzeMeetingTime:
		return a.handleAnalyzeMeetingTime(args, events)
	case OpProvideRecommendations:
		return a.handleRecommendations(args, events)
	case OpFindConflicts:
		return a.handleFindConflicts(args, events)
	case OpFindAvailableTimeSlots:
		return a.handleFindSlots(args, events)
	case OpCreateCalendarEvent:
		return a.handleCreateEvent(ctx, args)
	case OpUpdateCalendarEvent:
		return a.handleUpdateEvent(ctx, args, events)
	case OpDeleteCalendarEvent:
		return a.handleDeleteEvent(ctx, args, events)
	case OpListUpcomingEvents:
		return a.handleListEvents(args, events)
	default:
		return unknownOperationReply
	}
}

func (a *Assistant) handleFindConflicts(args map[string]any, events []*Event) string {
	var req FindConflictsRequest
	if err := decodeRequest(args, &req); err != nil {
		return unreadableArgsReply
	}

	filtered := FilterByTimeframe(events, req.Timeframe, time.Now())
	conflicts := FindConflicts(filtered)
	if len(conflicts) == 0 {
		return "Good news — I checked your schedule and found no overlapping meetings."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Schedule Conflicts\n\nI found %d overlapping pair(s):\n\n", len(conflicts))
	for _, c := range conflicts {
		fmt.Fprintf(&b, "- **%s** and **%s** overlap by %d minutes (%s)\n",
			c.First.Title, c.Second.Title, c.OverlapMinutes, c.Severity)
		fmt.Fprintf(&b, "  - %s\n  - %s\n", formatEventWhen(c.First), formatEventWhen(c.Second))
	}
	return b.String()
}

func (a *Assistant) handleFindSlots(args map[string]any, events []*Event) string {
	var req FindSlotsRequest
	if err := decodeRequest(args, &req); err != nil {
		return unreadableArgsReply
	}

	date := ParseDateTime(req.Date)
	dayStart, dayEnd := ParseTimeRange(req.TimeRange, date)
	duration := ParseDuration(req.Duration)

	slots := FindFreeSlots(events, dayStart, dayEnd, duration)
	if len(slots) == 0 {
		return fmt.Sprintf("I couldn't find a free %d-minute slot between %s and %s on %s. Try a different day or a shorter meeting.",
			duration, dayStart.Format(timeLayout), dayEnd.Format(timeLayout), date.Format(dateLayout))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Available Time Slots\n\nFree %d-minute slots on %s:\n\n", duration, date.Format(dateLayout))
	for _, s := range slots {
		fmt.Fprintf(&b, "- %s – %s\n", s.Start.Format(timeLayout), s.End.Format(timeLayout))
	}
	return b.String()
}

func (a *Assistant) handleAnalyzeMeetingTime(args map[string]any, events []*Event) string {
	var req AnalyzeRequest
	if err := decodeRequest(args, &req); err != nil {
		return unreadableArgsReply
	}

	stats := CalculateStatistics(FilterByTimeframe(events, req.Timeframe, time.Now()))
	if stats.Count == 0 {
		return "There are no timed meetings in that period, so there's nothing to analyze — enjoy the quiet!"
	}

	var b strings.Builder
	b.WriteString("## Meeting Time Analysis\n\n")
	fmt.Fprintf(&b, "- **Meetings**: %d\n", stats.Count)
	fmt.Fprintf(&b, "- **Total time**: %.1f hours\n", stats.TotalHours)
	fmt.Fprintf(&b, "- **Average length**: %.0f minutes\n", stats.AverageMinutes)

	days := make([]string, 0, len(stats.PerDayCount))
	for day := range stats.PerDayCount {
		days = append(days, day)
	}
	sort.Strings(days)
	b.WriteString("- **Per day**:\n")
	for _, day := range days {
		fmt.Fprintf(&b, "  - %s: %d\n", day, stats.PerDayCount[day])
	}
	return b.String()
}

func (a *Assistant) handleRecommendations(args map[string]any, events []*Event) string {
	var req RecommendationsRequest
	if err := decodeRequest(args, &req); err != nil {
		return unreadableArgsReply
	}

	stats := CalculateStatistics(events)
	conflicts := FindConflicts(events)

	var recs []string
	if stats.Count == 0 {
		return "Your calendar is clear. A good moment to block focus time before meetings fill it up."
	}
	if len(conflicts) > 0 {
		recs = append(recs, fmt.Sprintf("You have %d overlapping meeting pair(s) — consider moving or declining one of each.", len(conflicts)))
	}
	if stats.AverageMinutes > 45 {
		recs = append(recs, fmt.Sprintf("Your average meeting runs %.0f minutes. Defaulting new meetings to 25 or 45 minutes wins back time.", stats.AverageMinutes))
	}
	busiestDay, busiestCount := "", 0
	for day, count := range stats.PerDayCount {
		if count > busiestCount || (count == busiestCount && day < busiestDay) {
			busiestDay, busiestCount = day, count
		}
	}
	if busiestCount >= 4 {
		recs = append(recs, fmt.Sprintf("%s has %d meetings — try spreading some across lighter days.", busiestDay, busiestCount))
	}

	now := time.Now()
	dayStart, dayEnd := ParseTimeRange("", now)
	if free := FindFreeSlots(events, dayStart, dayEnd, 60); len(free) > 0 {
		recs = append(recs, fmt.Sprintf("You have a free hour today at %s — worth protecting for focused work.", free[0].Start.Format(timeLayout)))
	}
	if len(recs) == 0 {
		recs = append(recs, "Your schedule looks balanced. Keep buffers between back-to-back meetings when you can.")
	}

	var b strings.Builder
	b.WriteString("## Recommendations\n\n")
	for _, r := range recs {
		b.WriteString("- " + r + "\n")
	}
	return b.String()
}

func (a *Assistant) handleListEvents(args map[string]any, events []*Event) string {
	var req ListEventsRequest
	if err := decodeRequest(args, &req); err != nil {
		return unreadableArgsReply
	}

	filtered := events
	if req.Timeframe != "" {
		filtered = FilterByTimeframe(events, req.Timeframe, time.Now())
	}
	if len(filtered) == 0 {
		return "No upcoming events in that period."
	}

	sorted := make([]*Event, len(filtered))
	copy(sorted, filtered)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, oki := sorted[i].StartTime()
		sj, okj := sorted[j].StartTime()
		if !oki || !okj {
			return okj
		}
		return si.Before(sj)
	})

	var b strings.Builder
	b.WriteString("## Upcoming Events\n\n")
	for _, e := range sorted {
		b.WriteString(renderEventLine(e) + "\n")
	}
	return b.String()
}
