package internal

const (
	AGENT_VERSION = "1.0.0"

	DEFAULT_CONFIG_PATH = "./agent.toml"
	DEFAULT_TOOLS_PATH  = "./tools"

	DEFAULT_API_URL        = "http://localhost:8080/v1"
	DEFAULT_MODEL          = "gpt-4o"
	DEFAULT_TEMPERATURE    = 0.1
	DEFAULT_MAX_ITERATIONS = 10

	// Timeouts in seconds.
	DEFAULT_API_TIMEOUT      = 120
	DEFAULT_TOOL_TIMEOUT     = 60
	DEFAULT_METADATA_TIMEOUT = 10

	// RESULT_SEPARATOR marks segment boundaries in tool output. Tools emit
	// it on its own line between independent segments (e.g. one per search
	// result); the condenser splits on it and rejoins summaries with it.
	// The exact byte sequence is part of the tool protocol.
	RESULT_SEPARATOR = "---...---RESULT_SEPARATOR_8723c3b3---...---"

	// MIN_CHUNK_BYTES is the smallest segment worth summarizing. Shorter
	// segments are treated as noise and dropped.
	MIN_CHUNK_BYTES = 100
)

// Process exit codes. Max-iterations gets its own code so callers can
// tell a budget stop from a real answer or a hard failure.
const (
	EXIT_OK             = 0
	EXIT_ERROR          = 1
	EXIT_MAX_ITERATIONS = 2
)
