package main

import "encoding/json"

// The model hands over an untyped argument bag with its chosen function.
// Each operation decodes the bag into its own request variant before any
// field is read; missing keys simply leave zero values behind.

type CreateEventRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Location        string   `json:"location"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	Duration        string   `json:"duration"`
	Attendees       []string `json:"attendees"`
	ReminderMinutes int      `json:"reminder_minutes"`
}

type UpdateEventRequest struct {
	EventID     string   `json:"event_id"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	NewTitle    string   `json:"new_title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Duration    string   `json:"duration"`
	Attendees   []string `json:"attendees"`
}

// Identifier returns whichever event reference the model supplied.
func (r UpdateEventRequest) Identifier() string {
	switch {
	case r.EventID != "":
		return r.EventID
	case r.Title != "":
		return r.Title
	default:
		return r.Summary
	}
}

func (r UpdateEventRequest) HasChanges() bool {
	return r.NewTitle != "" || r.Description != "" || r.Location != "" ||
		r.StartTime != "" || r.EndTime != "" || r.Duration != "" ||
		len(r.Attendees) > 0
}

type DeleteEventRequest struct {
	EventID string `json:"event_id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

func (r DeleteEventRequest) Identifier() string {
	switch {
	case r.EventID != "":
		return r.EventID
	case r.Title != "":
		return r.Title
	default:
		return r.Summary
	}
}

type FindConflictsRequest struct {
	Timeframe string `json:"timeframe"`
}

type FindSlotsRequest struct {
	Date      string `json:"date"`
	Duration  string `json:"duration"`
	TimeRange string `json:"time_range"`
}

type AnalyzeRequest struct {
	Timeframe string `json:"timeframe"`
}

type RecommendationsRequest struct {
	Focus string `json:"focus"`
}

type EmailDraftsRequest struct {
	Recipient string `json:"recipient"`
	Topic     string `json:"topic"`
	Date      string `json:"date"`
	Duration  string `json:"duration"`
	TimeRange string `json:"time_range"`
}

type ListEventsRequest struct {
	Timeframe string `json:"timeframe"`
}

func decodeRequest(args map[string]any, dst any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
