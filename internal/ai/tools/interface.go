package tools

import (
	"encoding/json"

	"github.com/sashabaranov/go-openai"
)

// Tool is one capability the model may invoke. How an implementation
// runs (external program, in-process function, remote call) is decided
// at registration time; the registry and the session treat all of them
// the same way.
type Tool interface {
	Name() string
	Description() string
	Parameters() json.RawMessage
	Execute(args string) (string, error)
	ToOpenAITool() openai.Tool
}

// BaseTool carries the metadata every tool needs. Parameters is the raw
// JSON schema as the tool author wrote it.
type BaseTool struct {
	ToolName        string
	ToolDescription string
	ToolParameters  json.RawMessage
}

func (b *BaseTool) Name() string {
	return b.ToolName
}

func (b *BaseTool) Description() string {
	return b.ToolDescription
}

func (b *BaseTool) Parameters() json.RawMessage {
	return b.ToolParameters
}

func (b *BaseTool) ToOpenAITool() openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        b.Name(),
			Description: b.Description(),
			Parameters:  b.Parameters(),
		},
	}
}
