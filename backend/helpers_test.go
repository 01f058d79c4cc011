package main

import (
	"context"
	"fmt"
	"time"
)

func timedEvent(id, title string, start, end time.Time) *Event {
	return &Event{
		ID:    id,
		Title: title,
		Start: newEventDateTime(start),
		End:   newEventDateTime(end),
	}
}

func allDayEvent(id, title, date string) *Event {
	return &Event{
		ID:    id,
		Title: title,
		Start: &EventDateTime{Date: date},
		End:   &EventDateTime{Date: date},
	}
}

// fakeCalendar stands in for the provider clients so operations can be
// exercised without a network.
type fakeCalendar struct {
	events   []*Event
	inserted []*Event
	updated  map[string]*Event
	deleted  []string
	err      error
}

func newFakeCalendar(events ...*Event) *fakeCalendar {
	return &fakeCalendar{events: events, updated: make(map[string]*Event)}
}

func (f *fakeCalendar) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]*Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeCalendar) GetEvent(ctx context.Context, id string) (*Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("event %s not found", id)
}

func (f *fakeCalendar) InsertEvent(ctx context.Context, payload *Event) (*Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	created := *payload
	created.ID = fmt.Sprintf("evt-%d", len(f.inserted)+1)
	f.inserted = append(f.inserted, &created)
	return &created, nil
}

func (f *fakeCalendar) UpdateEvent(ctx context.Context, id string, payload *Event) (*Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated[id] = payload
	return payload, nil
}

func (f *fakeCalendar) DeleteEvent(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}
