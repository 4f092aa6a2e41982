package ai

import (
	"context"
	"errors"
	"time"

	"github.com/sashabaranov/go-openai"
)

var ErrMissingAPIKey = errors.New("API key not found (set OPENAI_API_KEY or use --api-key)")

// ChatCompleter is the slice of the OpenAI client the session and the
// condenser depend on. *openai.Client satisfies it.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewClient builds a chat completions client for the given endpoint.
// Any OpenAI-compatible server works; apiURL must include the /v1 base
// path (e.g. http://localhost:8080/v1).
func NewClient(apiKey, apiURL string) (*openai.Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := openai.DefaultConfig(apiKey)
	if apiURL != "" {
		cfg.BaseURL = apiURL
	}

	return openai.NewClientWithConfig(cfg), nil
}

func createContext(timeoutSeconds int) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
}
