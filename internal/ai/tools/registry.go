// Package tools manages the external tool programs exposed to the model:
// discovery, metadata introspection, registration and execution.
package tools

import (
	"fmt"
	"sync"

	"github.com/sashabaranov/go-openai"

	"shellagent/internal/logger"
)

// ToolRegistry holds the tools available for one session. Registration
// is first-wins: a second tool with an already-taken name is rejected,
// never silently replaced.
type ToolRegistry struct {
	tools map[string]Tool
	order []string
	mu    sync.RWMutex
}

func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]Tool),
	}
}

// RegisterTool adds a tool to the registry. Returns an error when the
// name is empty or already taken.
func (r *ToolRegistry) RegisterTool(tool Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := tool.Name()
	if name == "" {
		return fmt.Errorf("tool name is empty")
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool '%s' already registered", name)
	}

	r.tools[name] = tool
	r.order = append(r.order, name)
	logger.Debugf("Registered tool: %s", name)
	return nil
}

// GetTool returns a tool by name, or an error if it doesn't exist.
func (r *ToolRegistry) GetTool(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, exists := r.tools[name]
	if !exists {
		return nil, fmt.Errorf("tool '%s' not found", name)
	}

	return tool, nil
}

// GetAllTools returns all registered tools in registration order.
func (r *ToolRegistry) GetAllTools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}

	return tools
}

// GetOpenAITools converts all registered tools to the API's tool format,
// in registration order.
func (r *ToolRegistry) GetOpenAITools() []openai.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]openai.Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name].ToOpenAITool())
	}

	return tools
}

// ExecuteTool runs a named tool with a JSON object of arguments. An
// unknown name is an error for the caller to fold into the conversation;
// it never aborts the session.
func (r *ToolRegistry) ExecuteTool(name string, args string) (string, error) {
	tool, err := r.GetTool(name)
	if err != nil {
		return "", err
	}

	logger.Debugf("Executing tool: %s with args: %s", name, args)
	result, err := tool.Execute(args)
	if err != nil {
		logger.Errorf("Tool execution error: %s: %v", name, err)
		return "", err
	}

	return result, nil
}
