package ai

import (
	"fmt"

	"github.com/sashabaranov/go-openai"

	"shellagent/internal/logger"
)

// UsageAccumulator keeps session-wide token totals. The session owns the
// accumulator and feeds it after every API call that reports usage,
// including the condenser's summarization calls. Totals are reported
// exactly once at teardown, on every exit path.
type UsageAccumulator struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	APICalls         int
}

// Add folds one response's usage block into the running totals. Servers
// that omit usage report all zeroes; those responses are not counted.
func (u *UsageAccumulator) Add(usage openai.Usage) {
	if usage.PromptTokens == 0 && usage.CompletionTokens == 0 && usage.TotalTokens == 0 {
		return
	}

	total := usage.TotalTokens
	if total == 0 {
		total = usage.PromptTokens + usage.CompletionTokens
	}

	u.PromptTokens += usage.PromptTokens
	u.CompletionTokens += usage.CompletionTokens
	u.TotalTokens += total
	u.APICalls++
}

func (u *UsageAccumulator) String() string {
	return fmt.Sprintf("%d prompt + %d completion = %d total tokens over %d API calls",
		u.PromptTokens, u.CompletionTokens, u.TotalTokens, u.APICalls)
}

// Report logs the totals. Callers defer this right after creating the
// accumulator so it runs no matter how the session ends.
func (u *UsageAccumulator) Report() {
	logger.Infof("Token usage: %s", u.String())
}
