package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Tilak-Shenoy/Calendar-Agent/backend/config"
	"google.golang.org/api/option"

	"github.com/google/generative-ai-go/genai"
)

// FunctionCall is the model's already-chosen operation plus its raw argument
// bag. The assistant core turns it into a display string; it never decides
// which function the model should have picked.
type FunctionCall struct {
	ID   string
	Name string
	Args map[string]any
}

type ChatSession interface {
	// Send returns either plain reply text or the function call the model
	// chose for this turn.
	Send(ctx context.Context, message string) (string, *FunctionCall, error)
	// RecordFunctionResult appends the rendered operation result to the
	// session history so follow-up turns can refer back to it.
	RecordFunctionResult(call *FunctionCall, result string)
}

type ChatProvider interface {
	NewSession(ctx context.Context, calendarSummary string) (ChatSession, error)
}

// One neutral declaration per operation, mapped into each provider's own
// schema type.
type paramSpec struct {
	name     string
	typ      string // "string", "integer" or "strings"
	desc     string
	required bool
}

type functionSpec struct {
	name   Operation
	desc   string
	params []paramSpec
}

var assistantFunctions = []functionSpec{
	{
		name: OpCreateCalendarEvent,
		desc: "Create a new calendar event.",
		params: []paramSpec{
			{"title", "string", "Event title", true},
			{"start_time", "string", "Start, e.g. 'tomorrow 2pm' or '2025-03-10 14:00'", true},
			{"end_time", "string", "End time, if given", false},
			{"duration", "string", "Length, e.g. '45 minutes'", false},
			{"description", "string", "Event description", false},
			{"location", "string", "Where it happens", false},
			{"attendees", "strings", "Attendee email addresses", false},
			{"reminder_minutes", "integer", "Reminder lead time in minutes", false},
		},
	},
	{
		name: OpUpdateCalendarEvent,
		desc: "Change an existing calendar event.",
		params: []paramSpec{
			{"event_id", "string", "Exact event id, if known", false},
			{"title", "string", "Free-text reference to the event being changed", false},
			{"summary", "string", "Alternative reference to the event", false},
			{"new_title", "string", "New title", false},
			{"start_time", "string", "New start", false},
			{"end_time", "string", "New end", false},
			{"duration", "string", "New length", false},
			{"description", "string", "New description", false},
			{"location", "string", "New location", false},
			{"attendees", "strings", "Replacement attendee emails", false},
		},
	},
	{
		name: OpDeleteCalendarEvent,
		desc: "Remove a calendar event.",
		params: []paramSpec{
			{"event_id", "string", "Exact event id, if known", false},
			{"title", "string", "Free-text reference to the event", false},
			{"summary", "string", "Alternative reference to the event", false},
		},
	},
	{
		name: OpListUpcomingEvents,
		desc: "List the user's upcoming events.",
		params: []paramSpec{
			{"timeframe", "string", "today, tomorrow, week or month", false},
		},
	},
	{
		name: OpFindConflicts,
		desc: "Find overlapping meetings in a period.",
		params: []paramSpec{
			{"timeframe", "string", "today, tomorrow, week or month", false},
		},
	},
	{
		name: OpFindAvailableTimeSlots,
		desc: "Find free time slots of a given length on a day.",
		params: []paramSpec{
			{"date", "string", "Which day, e.g. 'tomorrow'", false},
			{"duration", "string", "Desired length, e.g. '1 hour'", false},
			{"time_range", "string", "Part of day, e.g. 'afternoon' or '2pm-5pm'", false},
		},
	},
	{
		name: OpAnalyzeMeetingTime,
		desc: "Summarize how much time meetings take in a period.",
		params: []paramSpec{
			{"timeframe", "string", "today, tomorrow, week or month", false},
		},
	},
	{
		name: OpProvideRecommendations,
		desc: "Give scheduling recommendations based on the calendar.",
		params: []paramSpec{
			{"focus", "string", "Optional topic the user cares about", false},
		},
	},
	{
		name: OpGenerateEmailDrafts,
		desc: "Draft emails proposing meeting times that are actually free.",
		params: []paramSpec{
			{"recipient", "string", "Who the email is for", false},
			{"topic", "string", "What the meeting is about", false},
			{"date", "string", "Which day to offer times on", false},
			{"duration", "string", "Meeting length", false},
			{"time_range", "string", "Part of day to offer", false},
		},
	},
}

func systemPrompt(calendarSummary string) string {
	year, month, day := time.Now().Date()
	now := fmt.Sprint(day, ".", month, ".", year)
	return `You are a personal assistant and help with planning and organizing.
	Today is: ` + now + `. The current calendar is: ` + calendarSummary + `
	Use the provided functions for anything that reads or changes the calendar.
	Never invent events or availability yourself. Answer in Markdown.`
}

func GetGeminiClient(cfg config.Config) *genai.Client {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiAISecret))
	if err != nil {
		log.Println(err.Error())
	}
	return client
}

type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(client *genai.Client, model string) *GeminiProvider {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GeminiProvider{client: client, model: model}
}

func geminiTool() *genai.Tool {
	var decls []*genai.FunctionDeclaration
	for _, fn := range assistantFunctions {
		props := make(map[string]*genai.Schema)
		var required []string
		for _, p := range fn.params {
			schema := &genai.Schema{Description: p.desc}
			switch p.typ {
			case "integer":
				schema.Type = genai.TypeInteger
			case "strings":
				schema.Type = genai.TypeArray
				schema.Items = &genai.Schema{Type: genai.TypeString}
			default:
				schema.Type = genai.TypeString
			}
			props[p.name] = schema
			if p.required {
				required = append(required, p.name)
			}
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        string(fn.name),
			Description: fn.desc,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: props,
				Required:   required,
			},
		})
	}
	return &genai.Tool{FunctionDeclarations: decls}
}

type geminiSession struct {
	session *genai.ChatSession
}

func (p *GeminiProvider) NewSession(ctx context.Context, calendarSummary string) (ChatSession, error) {
	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(0.6)
	model.Tools = []*genai.Tool{geminiTool()}
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt(calendarSummary))},
	}
	return &geminiSession{session: model.StartChat()}, nil
}

func (s *geminiSession) Send(ctx context.Context, message string) (string, *FunctionCall, error) {
	resp, err := s.session.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", nil, err
	}

	reply := ""
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			switch p := part.(type) {
			case genai.FunctionCall:
				return "", &FunctionCall{Name: p.Name, Args: p.Args}, nil
			case genai.Text:
				reply += string(p)
			}
		}
	}
	return reply, nil, nil
}

func (s *geminiSession) RecordFunctionResult(call *FunctionCall, result string) {
	s.session.History = append(s.session.History, &genai.Content{
		Role: "function",
		Parts: []genai.Part{genai.FunctionResponse{
			Name:     call.Name,
			Response: map[string]any{"content": result},
		}},
	})
}

func calendarSummary(events []*Event) string {
	var b strings.Builder
	for _, event := range events {
		b.WriteString(fmt.Sprint(event.Title, " ", formatEventWhen(event), ", "))
	}
	return b.String()
}
