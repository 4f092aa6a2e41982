// Package ai drives tool-calling conversations against an
// OpenAI-compatible chat completions endpoint.
package ai

import (
	"fmt"

	"github.com/sashabaranov/go-openai"

	"shellagent/internal/ai/tools"
	"shellagent/internal/config"
	"shellagent/internal/logger"
)

// Outcome classifies how a session ended. Fatal API errors are reported
// separately through Run's error return.
type Outcome int

const (
	// OutcomeAnswered means the model produced a final content response.
	OutcomeAnswered Outcome = iota
	// OutcomeNoContent means the model returned neither content nor tool
	// calls. Treated as a successful empty result, not a failure.
	OutcomeNoContent
	// OutcomeMaxIterations means the iteration budget ran out before a
	// final answer.
	OutcomeMaxIterations
)

// Session drives one conversation: prompt in, tool calls executed and
// condensed as the model requests them, final answer out. The transcript
// is append-only; messages are never reordered or dropped once added.
type Session struct {
	client    ChatCompleter
	cfg       *config.Config
	registry  *tools.ToolRegistry
	condenser *Condenser
	usage     *UsageAccumulator
	messages  []openai.ChatCompletionMessage
}

func NewSession(client ChatCompleter, cfg *config.Config, registry *tools.ToolRegistry, usage *UsageAccumulator) *Session {
	return &Session{
		client:    client,
		cfg:       cfg,
		registry:  registry,
		condenser: NewCondenser(client, cfg, usage),
		usage:     usage,
	}
}

// Messages returns the transcript accumulated so far.
func (s *Session) Messages() []openai.ChatCompletionMessage {
	return s.messages
}

// Run executes the orchestration loop for one prompt. It returns the
// final answer when the model produced one; a non-nil error means the
// session failed outright (API-level error), everything else is folded
// into the conversation and recovered locally.
func (s *Session) Run(prompt string) (string, Outcome, error) {
	if s.cfg.SystemPrompt != "" {
		s.messages = append(s.messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: s.cfg.SystemPrompt,
		})
	}
	s.messages = append(s.messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	availableTools := s.registry.GetOpenAITools()
	logger.Debugf("Starting session with %d tools, budget %d iterations",
		len(availableTools), s.cfg.MaxIterations)

	for iteration := 0; iteration < s.cfg.MaxIterations; iteration++ {
		resp, err := s.complete(availableTools)
		if err != nil {
			return "", 0, err
		}

		if len(resp.Choices) == 0 {
			logger.Warnf("API response contained no choices (iteration %d)", iteration)
			return "", OutcomeNoContent, nil
		}

		aiMessage := resp.Choices[0].Message
		s.messages = append(s.messages, aiMessage)

		if len(aiMessage.ToolCalls) > 0 {
			logger.Debugf("Model requested %d tool calls in iteration %d",
				len(aiMessage.ToolCalls), iteration)
			s.processToolCalls(aiMessage)
			continue
		}

		if aiMessage.Content == "" {
			logger.Warnf("Model returned neither content nor tool calls (iteration %d)", iteration)
			return "", OutcomeNoContent, nil
		}

		return aiMessage.Content, OutcomeAnswered, nil
	}

	logger.Warnf("Reached maximum tool call iterations (%d)", s.cfg.MaxIterations)
	return "", OutcomeMaxIterations, nil
}

func (s *Session) complete(availableTools []openai.Tool) (openai.ChatCompletionResponse, error) {
	ctx, cancel := createContext(s.cfg.APITimeout)
	defer cancel()

	request := openai.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    s.messages,
		Temperature: s.cfg.Temperature,
	}
	if len(availableTools) > 0 {
		request.Tools = availableTools
		request.ToolChoice = "auto"
	}

	resp, err := s.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return resp, fmt.Errorf("chat completion failed: %w", err)
	}

	s.usage.Add(resp.Usage)
	return resp, nil
}

// processToolCalls executes every call in the order the model issued
// them and appends one tool-role message per call, keyed by the call id.
// A failed or unknown tool becomes result text for the model to react
// to; it never aborts sibling calls or the session.
func (s *Session) processToolCalls(message openai.ChatCompletionMessage) {
	for _, toolCall := range message.ToolCalls {
		logger.Debugf("Processing tool call %s: %s(%s)",
			toolCall.ID, toolCall.Function.Name, toolCall.Function.Arguments)

		result, err := s.registry.ExecuteTool(toolCall.Function.Name, toolCall.Function.Arguments)
		if err != nil {
			logger.Errorf("Tool execution error: %v", err)
			result = "Error executing tool: " + err.Error()
		} else {
			result = s.condenser.Condense(result)
		}

		s.messages = append(s.messages, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			Content:    result,
			Name:       toolCall.Function.Name,
			ToolCallID: toolCall.ID,
		})
	}
}
