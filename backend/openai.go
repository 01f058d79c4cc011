package main

import (
	"context"
	"encoding/json"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

type OpenAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIProvider{client: openai.NewClient(apiKey), model: model}
}

func openaiTools() []openai.Tool {
	var tools []openai.Tool
	for _, fn := range assistantFunctions {
		props := make(map[string]jsonschema.Definition)
		var required []string
		for _, p := range fn.params {
			def := jsonschema.Definition{Description: p.desc}
			switch p.typ {
			case "integer":
				def.Type = jsonschema.Integer
			case "strings":
				def.Type = jsonschema.Array
				def.Items = &jsonschema.Definition{Type: jsonschema.String}
			default:
				def.Type = jsonschema.String
			}
			props[p.name] = def
			if p.required {
				required = append(required, p.name)
			}
		}
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        string(fn.name),
				Description: fn.desc,
				Parameters: jsonschema.Definition{
					Type:       jsonschema.Object,
					Properties: props,
					Required:   required,
				},
			},
		})
	}
	return tools
}

type openAISession struct {
	client   *openai.Client
	model    string
	tools    []openai.Tool
	messages []openai.ChatCompletionMessage
}

func (p *OpenAIProvider) NewSession(ctx context.Context, calendarSummary string) (ChatSession, error) {
	return &openAISession{
		client: p.client,
		model:  p.model,
		tools:  openaiTools(),
		messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt(calendarSummary),
		}},
	}, nil
}

func (s *openAISession) Send(ctx context.Context, message string) (string, *FunctionCall, error) {
	s.messages = append(s.messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: s.messages,
		Tools:    s.tools,
	})
	if err != nil {
		return "", nil, err
	}

	choice := resp.Choices[0].Message
	s.messages = append(s.messages, choice)

	if len(choice.ToolCalls) > 0 {
		tc := choice.ToolCalls[0]
		args := make(map[string]any)
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			return "", nil, err
		}
		return "", &FunctionCall{ID: tc.ID, Name: tc.Function.Name, Args: args}, nil
	}
	return choice.Content, nil, nil
}

func (s *openAISession) RecordFunctionResult(call *FunctionCall, result string) {
	s.messages = append(s.messages, openai.ChatCompletionMessage{
		Role:       openai.ChatMessageRoleTool,
		Content:    result,
		ToolCallID: call.ID,
	})
}
