package main

import (
	"fmt"
	"strings"
)

type EmailDraft struct {
	Tone    string `json:"tone"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// GenerateEmailDrafts writes meeting-proposal drafts around real free slots
// rather than invented availability. At most three slots are offered.
func GenerateEmailDrafts(recipient, topic string, duration int, slots []TimeSlot) []EmailDraft {
	if recipient == "" {
		recipient = "there"
	}
	if topic == "" {
		topic = "a quick chat"
	}

	offered := slots
	if len(offered) > 3 {
		offered = offered[:3]
	}
	var options []string
	for _, s := range offered {
		options = append(options, fmt.Sprintf("%s from %s to %s",
			s.Start.Format(dateLayout), s.Start.Format(timeLayout), s.End.Format(timeLayout)))
	}
	optionList := strings.Join(options, "\n- ")

	return []EmailDraft{
		{
			Tone:    "formal",
			Subject: fmt.Sprintf("Scheduling %s", topic),
			Body: fmt.Sprintf("Hi %s,\n\nI'd like to set up %d minutes for %s. I'm available at the following times:\n\n- %s\n\nWould any of these work for you?\n\nBest regards",
				recipient, duration, topic, optionList),
		},
		{
			Tone:    "brief",
			Subject: fmt.Sprintf("Time for %s?", topic),
			Body: fmt.Sprintf("Hi %s — got %d minutes for %s? I'm free:\n\n- %s\n\nPick whichever suits you.",
				recipient, duration, topic, optionList),
		},
	}
}

func (a *Assistant) handleEmailDrafts(args map[string]any, events []*Event) string {
	var req EmailDraftsRequest
	if err := decodeRequest(args, &req); err != nil {
		return unreadableArgsReply
	}

	date := ParseDateTime(req.Date)
	dayStart, dayEnd := ParseTimeRange(req.TimeRange, date)
	duration := ParseDuration(req.Duration)

	slots := FindFreeSlots(events, dayStart, dayEnd, duration)
	if len(slots) == 0 {
		return fmt.Sprintf("You have no free %d-minute slot on %s to offer, so I haven't drafted anything. Want me to look at another day?",
			duration, date.Format(dateLayout))
	}

	var b strings.Builder
	b.WriteString("## Email Drafts\n\n")
	for i, d := range GenerateEmailDrafts(req.Recipient, req.Topic, duration, slots) {
		fmt.Fprintf(&b, "### Draft %d (%s)\n\n**Subject**: %s\n\n%s\n\n", i+1, d.Tone, d.Subject, d.Body)
	}
	return b.String()
}
