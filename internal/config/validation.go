package config

import (
	"fmt"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	if c.Provider != ProviderOpenRouter && c.Provider != ProviderGemini {
		errs = append(errs, fmt.Sprintf("provider must be %q or %q", ProviderOpenRouter, ProviderGemini))
	}
	if c.Model == "" {
		errs = append(errs, "model must not be empty")
	}
	if c.BaseURL == "" {
		errs = append(errs, "base_url must not be empty")
	}
	if c.MaxSteps < 1 {
		errs = append(errs, "max_steps must be >= 1")
	}
	if c.LogDir == "" {
		errs = append(errs, "log_dir must not be empty")
	}

	if c.Prompt.MaxFiles < 1 {
		errs = append(errs, "prompt.max_files must be >= 1")
	}

	if c.Tools.MaxReadSize < 1 {
		errs = append(errs, "tools.max_read_size must be >= 1")
	}
	if c.Tools.MaxCommandOutput < 1 {
		errs = append(errs, "tools.max_command_output must be >= 1")
	}
	if c.Tools.CommandTimeoutSecs < 1 {
		errs = append(errs, "tools.command_timeout_secs must be >= 1")
	}
	if c.Tools.FetchTimeoutSecs < 1 {
		errs = append(errs, "tools.fetch_timeout_secs must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
