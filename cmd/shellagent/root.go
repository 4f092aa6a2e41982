package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"shellagent/internal"
	"shellagent/internal/ai"
	"shellagent/internal/ai/tools"
	"shellagent/internal/config"
	"shellagent/internal/logger"
)

// exitCode carries the process exit status out of RunE so outcomes that
// are not errors (max iterations) still get a distinct code.
var exitCode = internal.EXIT_OK

var rootCmd = &cobra.Command{
	Use:   "shellagent <prompt>",
	Short: "Drive a tool-calling conversation against a chat completions API",
	Long: `shellagent sends a prompt to an OpenAI-compatible chat completions
endpoint, runs any tool programs the model asks for from the tools
directory, condenses oversized tool output, and loops until the model
produces a final answer or the iteration budget runs out.

Tool programs must answer --name, --description and --parameters on
stdout and accept --<key> <value> argument pairs.

Exit codes:
  0  final answer produced (or the model returned no content)
  1  configuration error, tools directory missing, or fatal API error
  2  iteration budget exhausted before a final answer`,
	Version:       internal.AGENT_VERSION,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAgent,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringP("config", "c", "", "path to a TOML config file (default ./agent.toml when present)")
	flags.StringP("tools-dir", "t", internal.DEFAULT_TOOLS_PATH, "directory containing tool programs")
	flags.IntP("max-iterations", "n", internal.DEFAULT_MAX_ITERATIONS, "maximum API round trips per session")
	flags.String("api-url", internal.DEFAULT_API_URL, "chat completions base URL")
	flags.String("api-key", "", "API key (defaults to OPENAI_API_KEY, .env honored)")
	flags.StringP("model", "m", internal.DEFAULT_MODEL, "model name")
	flags.Float32("temperature", internal.DEFAULT_TEMPERATURE, "sampling temperature")
	flags.String("system-prompt", "", "optional system message prepended to the conversation")
	flags.Int("api-timeout", internal.DEFAULT_API_TIMEOUT, "seconds per chat completion call")
	flags.Int("tool-timeout", internal.DEFAULT_TOOL_TIMEOUT, "seconds per tool execution")
	flags.String("sandbox-image", "", "run tool programs inside this docker image")
	flags.BoolP("verbose", "v", false, "enable debug output")
}

// Execute runs the root command and maps the result to a process exit
// code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("%v", err)
		return internal.EXIT_ERROR
	}
	return exitCode
}

func exitCodeFor(outcome ai.Outcome) int {
	if outcome == ai.OutcomeMaxIterations {
		return internal.EXIT_MAX_ITERATIONS
	}
	return internal.EXIT_OK
}

func runAgent(cmd *cobra.Command, args []string) error {
	prompt := strings.TrimSpace(args[0])
	if prompt == "" {
		return fmt.Errorf("prompt must not be empty")
	}

	// Best effort; a missing .env file is fine.
	_ = godotenv.Load()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger.SetVerbose(cfg.Verbose)

	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	client, err := ai.NewClient(cfg.APIKey, cfg.APIURL)
	if err != nil {
		return err
	}

	registry := tools.NewToolRegistry()
	opts := tools.ScriptOptions{
		MetadataTimeout: time.Duration(cfg.MetadataTimeout) * time.Second,
		ExecTimeout:     time.Duration(cfg.ToolTimeout) * time.Second,
		SandboxImage:    cfg.SandboxImage,
	}
	if err := tools.DiscoverTools(cfg.ToolsDir, registry, opts); err != nil {
		return err
	}
	logger.Infof("Registered %d tools from %s", len(registry.GetAllTools()), cfg.ToolsDir)

	usage := &ai.UsageAccumulator{}
	defer usage.Report()

	session := ai.NewSession(client, cfg, registry, usage)
	answer, outcome, err := session.Run(prompt)
	if err != nil {
		return err
	}

	switch outcome {
	case ai.OutcomeAnswered:
		fmt.Println(answer)
	case ai.OutcomeNoContent:
		logger.Warnf("The model returned no content")
	case ai.OutcomeMaxIterations:
		logger.Warnf("Max iterations reached without a final answer")
	}
	exitCode = exitCodeFor(outcome)

	return nil
}

// loadConfig builds the effective configuration: defaults, then the TOML
// file, then the environment, then any flag the user actually set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	cfg := config.DefaultConfig()
	configPath, _ := flags.GetString("config")
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if _, err := os.Stat(internal.DEFAULT_CONFIG_PATH); err == nil {
		loaded, err := config.LoadConfig(internal.DEFAULT_CONFIG_PATH)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.APIKey = os.Getenv("OPENAI_API_KEY")

	if flags.Changed("tools-dir") {
		cfg.ToolsDir, _ = flags.GetString("tools-dir")
	}
	if flags.Changed("max-iterations") {
		cfg.MaxIterations, _ = flags.GetInt("max-iterations")
	}
	if flags.Changed("api-url") {
		cfg.APIURL, _ = flags.GetString("api-url")
	}
	if flags.Changed("model") {
		cfg.Model, _ = flags.GetString("model")
	}
	if flags.Changed("temperature") {
		cfg.Temperature, _ = flags.GetFloat32("temperature")
	}
	if flags.Changed("system-prompt") {
		cfg.SystemPrompt, _ = flags.GetString("system-prompt")
	}
	if flags.Changed("api-timeout") {
		cfg.APITimeout, _ = flags.GetInt("api-timeout")
	}
	if flags.Changed("tool-timeout") {
		cfg.ToolTimeout, _ = flags.GetInt("tool-timeout")
	}
	if flags.Changed("sandbox-image") {
		cfg.SandboxImage, _ = flags.GetString("sandbox-image")
	}
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}
	if key, _ := flags.GetString("api-key"); key != "" {
		cfg.APIKey = key
	}

	return cfg, nil
}
