package ai

import (
	"strings"

	"github.com/sashabaranov/go-openai"

	"shellagent/internal"
	"shellagent/internal/config"
	"shellagent/internal/logger"
)

const summarizeSystemPrompt = "Summarize the following content. Preserve key facts, figures, names and URLs. Be comprehensive but organized."

// Condenser shrinks oversized multi-segment tool output before it enters
// the transcript. Tool output without the separator token passes through
// untouched; segmented output has each segment summarized independently
// by a secondary model call and is reassembled in original order.
type Condenser struct {
	client ChatCompleter
	cfg    *config.Config
	usage  *UsageAccumulator
}

func NewCondenser(client ChatCompleter, cfg *config.Config, usage *UsageAccumulator) *Condenser {
	return &Condenser{
		client: client,
		cfg:    cfg,
		usage:  usage,
	}
}

// Condense returns raw unchanged when it carries no separator token.
// Otherwise it splits on the separator, drops segments shorter than the
// minimum byte threshold, summarizes each survivor and rejoins the
// summaries with the separator. A failed summarization keeps the raw
// segment; one bad segment never aborts the others.
func (c *Condenser) Condense(raw string) string {
	if !strings.Contains(raw, internal.RESULT_SEPARATOR) {
		return raw
	}

	chunks := strings.Split(raw, internal.RESULT_SEPARATOR)
	condensed := make([]string, 0, len(chunks))

	for i, chunk := range chunks {
		trimmed := strings.TrimSpace(chunk)
		if len(trimmed) < internal.MIN_CHUNK_BYTES {
			logger.Debugf("Dropping segment %d (%d bytes, below %d byte minimum)",
				i, len(trimmed), internal.MIN_CHUNK_BYTES)
			continue
		}
		condensed = append(condensed, c.summarizeChunk(trimmed, i))
	}

	return strings.Join(condensed, "\n"+internal.RESULT_SEPARATOR+"\n")
}

func (c *Condenser) summarizeChunk(chunk string, index int) string {
	ctx, cancel := createContext(c.cfg.APITimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarizeSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: chunk},
		},
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		logger.Warnf("Summarization of segment %d failed, keeping raw text: %v", index, err)
		return chunk
	}

	c.usage.Add(resp.Usage)

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		logger.Warnf("Summarization of segment %d returned no content, keeping raw text", index)
		return chunk
	}

	summary := resp.Choices[0].Message.Content
	logger.Debugf("Condensed segment %d from %d to %d bytes", index, len(chunk), len(summary))
	return summary
}
