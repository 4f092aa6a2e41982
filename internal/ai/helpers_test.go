package ai

import (
	"context"
	"encoding/json"

	"github.com/sashabaranov/go-openai"

	"shellagent/internal/ai/tools"
	"shellagent/internal/config"
)

// fakeCompleter returns scripted responses (and errors) in order and
// records every request it saw. When the script runs out, the last
// response repeats.
type fakeCompleter struct {
	responses []openai.ChatCompletionResponse
	errs      []error
	requests  []openai.ChatCompletionRequest
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	i := len(f.requests)
	f.requests = append(f.requests, request)

	if i < len(f.errs) && f.errs[i] != nil {
		return openai.ChatCompletionResponse{}, f.errs[i]
	}
	if len(f.responses) == 0 {
		return openai.ChatCompletionResponse{}, nil
	}
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	return f.responses[i], nil
}

func contentResponse(text string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: text,
			}},
		},
	}
}

func toolCallResponse(calls ...openai.ToolCall) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{
				Role:      openai.ChatMessageRoleAssistant,
				ToolCalls: calls,
			}},
		},
	}
}

func toolCall(id, name, arguments string) openai.ToolCall {
	return openai.ToolCall{
		ID:   id,
		Type: openai.ToolTypeFunction,
		Function: openai.FunctionCall{
			Name:      name,
			Arguments: arguments,
		},
	}
}

type stubTool struct {
	tools.BaseTool
	result string
	err    error
	calls  []string
}

func (s *stubTool) Execute(args string) (string, error) {
	s.calls = append(s.calls, args)
	return s.result, s.err
}

func newStubTool(name, result string) *stubTool {
	return &stubTool{
		BaseTool: tools.BaseTool{
			ToolName:        name,
			ToolDescription: "stub " + name,
			ToolParameters:  json.RawMessage(`{"type":"object","properties":{}}`),
		},
		result: result,
	}
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.APIKey = "sk-test"
	cfg.APITimeout = 5
	return cfg
}
