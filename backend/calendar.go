package main

import (
	"context"
	"time"
)

// EventDateTime mirrors the provider wire format: either a precise RFC 3339
// instant or a whole-day date, never both.
type EventDateTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

type Attendee struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

// Event is the provider-independent calendar entry the assistant operates on.
type Event struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	Location        string         `json:"location,omitempty"`
	Start           *EventDateTime `json:"start"`
	End             *EventDateTime `json:"end"`
	Attendees       []Attendee     `json:"attendees,omitempty"`
	ReminderMinutes int            `json:"reminderMinutes,omitempty"`
}

// TimeSlot is a computed free period or conflict window. It is never persisted.
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Calendar interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	InsertEvent(ctx context.Context, payload *Event) (*Event, error)
	UpdateEvent(ctx context.Context, id string, payload *Event) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func parseInstant(s string) (time.Time, bool) {
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.Local(), true
		}
	}
	return time.Time{}, false
}

// StartTime returns the precise start instant in the host's local zone.
// The second return is false for whole-day events.
func (e *Event) StartTime() (time.Time, bool) {
	if e.Start == nil || e.Start.DateTime == "" {
		return time.Time{}, false
	}
	return parseInstant(e.Start.DateTime)
}

func (e *Event) EndTime() (time.Time, bool) {
	if e.End == nil || e.End.DateTime == "" {
		return time.Time{}, false
	}
	return parseInstant(e.End.DateTime)
}

func (e *Event) IsAllDay() bool {
	return e.Start != nil && e.Start.Date != "" && e.Start.DateTime == ""
}

func newEventDateTime(t time.Time) *EventDateTime {
	return &EventDateTime{
		DateTime: t.Format(time.RFC3339),
		TimeZone: time.Local.String(),
	}
}
