package main

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Titles that look like a meeting need someone to meet with.
var meetingKeywords = []string{
	"meeting", "sync", "1:1", "one-on-one", "interview", "call", "standup", "review",
}

func looksLikeMeeting(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range meetingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func toAttendees(emails []string) []Attendee {
	attendees := make([]Attendee, 0, len(emails))
	seen := make(map[string]bool)
	for _, raw := range emails {
		email := strings.TrimSpace(raw)
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		attendees = append(attendees, Attendee{Email: email})
	}
	return attendees
}

// validateCreate reports everything still missing from a create request.
// A non-empty result becomes a clarification turn, not an error.
func validateCreate(req CreateEventRequest) []string {
	var missing []string
	if strings.TrimSpace(req.Title) == "" {
		missing = append(missing, `**Title** — what should I call it? (e.g. "Team sync")`)
	}
	if strings.TrimSpace(req.StartTime) == "" {
		missing = append(missing, `**Start time** — when does it begin? (e.g. "tomorrow 2pm")`)
	}
	if strings.TrimSpace(req.EndTime) == "" && strings.TrimSpace(req.Duration) == "" {
		missing = append(missing, `**End time or duration** — how long should it run? (e.g. "45 minutes")`)
	}
	if looksLikeMeeting(req.Title) && len(req.Attendees) == 0 {
		missing = append(missing, `**Attendees** — who should be invited? (comma-separated email addresses)`)
	}
	for _, email := range req.Attendees {
		if !emailRe.MatchString(strings.TrimSpace(email)) {
			missing = append(missing, fmt.Sprintf(`**Attendee email** — "%s" doesn't look like a valid address`, email))
		}
	}
	return missing
}

func (a *Assistant) handleCreateEvent(ctx context.Context, args map[string]any) string {
	var req CreateEventRequest
	if err := decodeRequest(args, &req); err != nil {
		return unreadableArgsReply
	}

	if missing := validateCreate(req); len(missing) > 0 {
		return renderClarification("I need a bit more information before I can create that event:", missing)
	}

	start := ParseDateTime(req.StartTime)
	var end time.Time
	if strings.TrimSpace(req.EndTime) != "" {
		end = ParseDateTime(req.EndTime)
		if end.Before(start) {
			return renderClarification("Those times don't line up:", []string{
				fmt.Sprintf(`**End time** — %s is before the start (%s). When should the event end?`,
					end.Format(dateTimeLayout), start.Format(dateTimeLayout)),
			})
		}
	} else {
		end = start.Add(time.Duration(ParseDuration(req.Duration)) * time.Minute)
	}

	payload := &Event{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		Start:           newEventDateTime(start),
		End:             newEventDateTime(end),
		Attendees:       toAttendees(req.Attendees),
		ReminderMinutes: req.ReminderMinutes,
	}

	created, err := a.calendar.InsertEvent(ctx, payload)
	if err != nil {
		log.Println("insert event:", err)
		return "I'm sorry, something went wrong while creating the event. Please try again."
	}

	var b strings.Builder
	b.WriteString("## Event Created\n\n")
	b.WriteString(renderEventLine(created) + "\n")
	if attendees := renderAttendees(created.Attendees); attendees != "" {
		fmt.Fprintf(&b, "- **Attendees**: %s\n", attendees)
	}
	if created.ReminderMinutes > 0 {
		fmt.Fprintf(&b, "- **Reminder**: %d minutes before\n", created.ReminderMinutes)
	}
	return b.String()
}

func (a *Assistant) handleUpdateEvent(ctx context.Context, args map[string]any, events []*Event) string {
	var req UpdateEventRequest
	if err := decodeRequest(args, &req); err != nil {
		return unreadableArgsReply
	}

	if req.Identifier() == "" {
		return renderClarification("I need to know which event to change:", []string{
			`**Event** — its title, id, or start time (e.g. "the 2pm call")`,
		})
	}
	if !req.HasChanges() {
		return renderClarification("What should I change about it?", []string{
			`**A change** — a new title, time, duration, location, description or attendee list`,
		})
	}

	result := ResolveEvent(req.Identifier(), events)
	switch result.Status {
	case ResolveAmbiguous:
		return renderCandidateList(req.Identifier(), result.Candidates)
	case ResolveNotFound:
		return renderNotFound(req.Identifier())
	}

	current, err := a.calendar.GetEvent(ctx, result.Event.ID)
	if err != nil {
		log.Println("get event:", err)
		return "I'm sorry, something went wrong while updating the event. Please try again."
	}

	payload := mergeUpdate(current, req)
	updated, err := a.calendar.UpdateEvent(ctx, current.ID, payload)
	if err != nil {
		log.Println("update event:", err)
		return "I'm sorry, something went wrong while updating the event. Please try again."
	}

	return "## Event Updated\n\n" + renderEventLine(updated) + "\n"
}

// mergeUpdate lays the requested changes over the event's current fields.
// Anything not mentioned carries over untouched. Time is special: a lone new
// start keeps the event's current length, a lone new end keeps its current
// start, a lone duration resizes from the current start, and a duration next
// to a new start wins over the preserved length.
func mergeUpdate(current *Event, req UpdateEventRequest) *Event {
	payload := &Event{
		ID:              current.ID,
		Title:           current.Title,
		Description:     current.Description,
		Location:        current.Location,
		Start:           current.Start,
		End:             current.End,
		Attendees:       current.Attendees,
		ReminderMinutes: current.ReminderMinutes,
	}

	if req.NewTitle != "" {
		payload.Title = req.NewTitle
	}
	if req.Description != "" {
		payload.Description = req.Description
	}
	if req.Location != "" {
		payload.Location = req.Location
	}
	if len(req.Attendees) > 0 {
		payload.Attendees = toAttendees(req.Attendees)
	}

	hasStart := strings.TrimSpace(req.StartTime) != ""
	hasEnd := strings.TrimSpace(req.EndTime) != ""
	hasDuration := strings.TrimSpace(req.Duration) != ""
	switch {
	case hasStart && hasEnd:
		payload.Start = newEventDateTime(ParseDateTime(req.StartTime))
		payload.End = newEventDateTime(ParseDateTime(req.EndTime))
	case hasStart:
		newStart := ParseDateTime(req.StartTime)
		length := 60 * time.Minute
		if hasDuration {
			length = time.Duration(ParseDuration(req.Duration)) * time.Minute
		} else if curStart, ok := current.StartTime(); ok {
			if curEnd, ok := current.EndTime(); ok {
				length = curEnd.Sub(curStart)
			}
		}
		payload.Start = newEventDateTime(newStart)
		payload.End = newEventDateTime(newStart.Add(length))
	case hasEnd:
		payload.End = newEventDateTime(ParseDateTime(req.EndTime))
	case hasDuration:
		// Resize in place: the event keeps its start and stretches to the
		// requested length.
		if curStart, ok := current.StartTime(); ok {
			length := time.Duration(ParseDuration(req.Duration)) * time.Minute
			payload.End = newEventDateTime(curStart.Add(length))
		}
	}
	return payload
}

func (a *Assistant) handleDeleteEvent(ctx context.Context, args map[string]any, events []*Event) string {
	var req DeleteEventRequest
	if err := decodeRequest(args, &req); err != nil {
		return unreadableArgsReply
	}

	if req.Identifier() == "" {
		return renderClarification("I need to know which event to delete:", []string{
			`**Event** — its title, id, or start time (e.g. "the 2pm call")`,
		})
	}

	result := ResolveEvent(req.Identifier(), events)
	switch result.Status {
	case ResolveAmbiguous:
		return renderCandidateList(req.Identifier(), result.Candidates)
	case ResolveNotFound:
		return renderNotFound(req.Identifier())
	}

	target, err := a.calendar.GetEvent(ctx, result.Event.ID)
	if err != nil {
		// Still deletable; fall back to the snapshot copy for the
		// confirmation text.
		target = result.Event
	}

	if err := a.calendar.DeleteEvent(ctx, target.ID); err != nil {
		log.Println("delete event:", err)
		return "I'm sorry, something went wrong while deleting the event. Please try again."
	}

	return fmt.Sprintf("## Event Deleted\n\n**%s** (%s) has been removed from your calendar.", target.Title, formatEventWhen(target))
}
