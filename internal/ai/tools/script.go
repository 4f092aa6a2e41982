package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ScriptOptions configures script-backed tools built during discovery.
type ScriptOptions struct {
	// MetadataTimeout bounds each informational query (--name etc).
	MetadataTimeout time.Duration
	// ExecTimeout bounds one tool invocation; exceeding it is folded into
	// the result text, not raised as an error.
	ExecTimeout time.Duration
	// SandboxImage, when non-empty, wraps invocations in `docker run`
	// with resource caps instead of running directly on the host.
	SandboxImage string
}

// ScriptTool is a tool backed by an external executable program. The
// program answers --name, --description and --parameters on stdout and
// accepts --<key> <value> pairs for a normal invocation, printing its
// result to stdout/stderr and exiting non-zero on failure.
type ScriptTool struct {
	BaseTool
	Path string
	opts ScriptOptions
}

// NewScriptTool introspects the program at path and builds a tool from
// its metadata. Empty name/description/parameters or a parameters value
// that is not valid JSON disqualify the candidate.
func NewScriptTool(path string, opts ScriptOptions) (*ScriptTool, error) {
	name, err := queryMetadata(path, "--name", opts.MetadataTimeout)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("empty --name output")
	}

	description, err := queryMetadata(path, "--description", opts.MetadataTimeout)
	if err != nil {
		return nil, err
	}
	if description == "" {
		return nil, fmt.Errorf("empty --description output")
	}

	parameters, err := queryMetadata(path, "--parameters", opts.MetadataTimeout)
	if err != nil {
		return nil, err
	}
	if parameters == "" {
		return nil, fmt.Errorf("empty --parameters output")
	}
	if !json.Valid([]byte(parameters)) {
		return nil, fmt.Errorf("--parameters output is not valid JSON")
	}

	return &ScriptTool{
		BaseTool: BaseTool{
			ToolName:        name,
			ToolDescription: description,
			ToolParameters:  json.RawMessage(parameters),
		},
		Path: path,
		opts: opts,
	}, nil
}

// queryMetadata runs one informational flag and returns trimmed stdout.
// The query must be read-only by tool-protocol contract.
func queryMetadata(path, flag string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, flag).Output()
	if err != nil {
		return "", fmt.Errorf("%s query failed: %w", flag, err)
	}

	return strings.TrimSpace(string(out)), nil
}

// Execute runs the tool program with the given JSON arguments. A failed
// or timed-out run is returned as result text for the model to see, not
// as an error; only malformed argument JSON is an error.
func (t *ScriptTool) Execute(args string) (string, error) {
	argv, err := flattenArgs(args)
	if err != nil {
		return "", fmt.Errorf("invalid arguments for %s: %w", t.Name(), err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), t.opts.ExecTimeout)
	defer cancel()

	var cmd *exec.Cmd
	if t.opts.SandboxImage != "" {
		cmd = t.sandboxCommand(ctx, argv)
	} else {
		cmd = exec.CommandContext(ctx, t.Path, argv...)
	}

	output, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Sprintf("Tool %s exceeded the %s execution time limit.", t.Name(), t.opts.ExecTimeout), nil
	}
	if err != nil {
		return fmt.Sprintf("%s\n[tool exited with error: %v]", strings.TrimRight(string(output), "\n"), err), nil
	}

	return string(output), nil
}

// sandboxCommand wraps the invocation in docker run with resource caps.
// Network stays available since tools like web search need egress.
func (t *ScriptTool) sandboxCommand(ctx context.Context, argv []string) *exec.Cmd {
	absPath, err := filepath.Abs(t.Path)
	if err != nil {
		absPath = t.Path
	}
	mounted := "/tool/" + filepath.Base(t.Path)

	dockerArgs := []string{
		"run",
		"--rm",
		"--memory=128m",
		"--cpus=0.5",
		"--security-opt=no-new-privileges:true",
		"--cap-drop=ALL",
		"-v", fmt.Sprintf("%s:%s:ro", absPath, mounted),
		t.opts.SandboxImage,
		mounted,
	}
	dockerArgs = append(dockerArgs, argv...)

	return exec.CommandContext(ctx, "docker", dockerArgs...)
}

// flattenArgs turns a flat JSON object into a --key value argument list,
// preserving the object's own key order. Tools match arguments by flag
// name, but order is kept anyway since the protocol does not promise
// tools are insensitive to it.
func flattenArgs(args string) ([]string, error) {
	if strings.TrimSpace(args) == "" {
		return nil, nil
	}

	dec := json.NewDecoder(strings.NewReader(args))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("arguments must be a JSON object")
	}

	var argv []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in arguments object", keyTok)
		}

		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}

		argv = append(argv, "--"+key, formatArgValue(value))
	}

	return argv, nil
}

func formatArgValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		// Nested objects/arrays pass through as JSON text.
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}
