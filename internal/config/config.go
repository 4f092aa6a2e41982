package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"shellagent/internal"
)

// Config holds one session's settings. Values come from defaults, an
// optional TOML file, the environment and finally command-line flags, in
// that precedence order (later wins).
type Config struct {
	APIURL        string  `toml:"api_url"`
	APIKey        string  `toml:"-"`
	Model         string  `toml:"model"`
	Temperature   float32 `toml:"temperature"`
	SystemPrompt  string  `toml:"system_prompt"`
	ToolsDir      string  `toml:"tools_dir"`
	MaxIterations int     `toml:"max_iterations"`

	// Timeouts in seconds.
	APITimeout      int `toml:"api_timeout"`
	ToolTimeout     int `toml:"tool_timeout"`
	MetadataTimeout int `toml:"metadata_timeout"`

	// SandboxImage, when set, runs tool programs inside this docker image
	// instead of directly on the host.
	SandboxImage string `toml:"sandbox_image"`

	Verbose bool `toml:"verbose"`
}

func DefaultConfig() *Config {
	return &Config{
		APIURL:          internal.DEFAULT_API_URL,
		Model:           internal.DEFAULT_MODEL,
		Temperature:     internal.DEFAULT_TEMPERATURE,
		ToolsDir:        internal.DEFAULT_TOOLS_PATH,
		MaxIterations:   internal.DEFAULT_MAX_ITERATIONS,
		APITimeout:      internal.DEFAULT_API_TIMEOUT,
		ToolTimeout:     internal.DEFAULT_TOOL_TIMEOUT,
		MetadataTimeout: internal.DEFAULT_METADATA_TIMEOUT,
	}
}

// LoadConfig reads a TOML config file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	return cfg, nil
}

// ValidateConfig checks everything that must hold before any network
// activity. All problems are reported together rather than one at a time.
func ValidateConfig(cfg *Config) error {
	var problems []string

	if cfg.APIKey == "" {
		problems = append(problems, "API key is not set (use --api-key or OPENAI_API_KEY)")
	}
	if cfg.Model == "" {
		problems = append(problems, "model is not set")
	}
	if cfg.MaxIterations < 1 {
		problems = append(problems, "max_iterations must be at least 1")
	}

	if info, err := os.Stat(cfg.ToolsDir); err != nil {
		problems = append(problems, fmt.Sprintf("tools directory %s not found", cfg.ToolsDir))
	} else if !info.IsDir() {
		problems = append(problems, fmt.Sprintf("tools path %s is not a directory", cfg.ToolsDir))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	return nil
}
