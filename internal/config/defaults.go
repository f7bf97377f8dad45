// Package config holds the runtime settings of the agent: provider and
// model selection, the step budget, the gated tool set and the
// per-tool limits. Defaults are set in DefaultConfig() and can be
// overridden via a dotfile.
package config

// Config is the full application configuration.
// NOTE: Values in config files override defaults, including explicit
// zero values. Missing keys are left at their default values.
type Config struct {
	// Provider selects the automatic reasoner backend: "openrouter"
	// or "gemini". Manual mode ignores it.
	Provider string `json:"provider"`
	// Model is the model identifier sent with every request.
	Model string `json:"model"`
	// BaseURL is the OpenAI-compatible endpoint for the openrouter
	// provider.
	BaseURL string `json:"base_url"`
	// MaxSteps caps reasoner turns per run.
	MaxSteps int `json:"max_steps"`
	// GatedTools are dispatched only after interactive confirmation.
	GatedTools []string `json:"gated_tools"`
	// LogDir receives one .agentrun.log file per run. A relative path
	// resolves against the process working directory.
	LogDir string `json:"log_dir"`

	Prompt PromptConfig `json:"prompt"`
	Tools  ToolsConfig  `json:"tools"`
}

// PromptConfig tunes system prompt assembly.
type PromptConfig struct {
	// MaxFiles caps the workspace listing embedded in the prompt.
	MaxFiles int `json:"max_files"`
}

// ToolsConfig tunes the built-in tools.
type ToolsConfig struct {
	// MaxReadSize caps read_file payloads in bytes.
	MaxReadSize int64 `json:"max_read_size"`
	// MaxCommandOutput caps run_terminal_command observations in bytes.
	MaxCommandOutput int `json:"max_command_output"`
	// CommandTimeoutSecs bounds one run_terminal_command execution.
	CommandTimeoutSecs int `json:"command_timeout_secs"`
	// FetchTimeoutSecs is the default fetch_url timeout.
	FetchTimeoutSecs int `json:"fetch_timeout_secs"`
}

// Provider names accepted in Config.Provider.
const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:   ProviderOpenRouter,
		Model:      "deepseek/deepseek-chat-v3.1",
		BaseURL:    "https://openrouter.ai/api/v1",
		MaxSteps:   50,
		GatedTools: []string{"run_terminal_command"},
		LogDir:     "agentlog",
		Prompt: PromptConfig{
			MaxFiles: 50,
		},
		Tools: ToolsConfig{
			MaxReadSize:        20 * 1024 * 1024,
			MaxCommandOutput:   4000,
			CommandTimeoutSecs: 600,
			FetchTimeoutSecs:   20,
		},
	}
}
