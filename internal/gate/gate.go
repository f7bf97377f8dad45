// Package gate implements the confirmation step in front of dangerous
// tools. The orchestrator consults a gate before every dispatch; a
// denial ends the run.
package gate

import (
	"context"
	"fmt"
	"strings"
)

// Prompter asks the user one question and returns the raw answer line.
type Prompter interface {
	Prompt(ctx context.Context, message string) (string, error)
}

// Terminal auto-approves every tool except the configured gated set,
// for which it blocks on an interactive Y/N prompt. Only a lone y (any
// case) approves; every other answer denies.
type Terminal struct {
	gated    map[string]struct{}
	prompter Prompter
}

// NewTerminal builds a gate around the given prompter. gatedTools is
// the process-execution class that needs explicit confirmation.
func NewTerminal(prompter Prompter, gatedTools []string) *Terminal {
	gated := make(map[string]struct{}, len(gatedTools))
	for _, name := range gatedTools {
		gated[name] = struct{}{}
	}
	return &Terminal{gated: gated, prompter: prompter}
}

// Approve implements the orchestrator gate contract.
func (g *Terminal) Approve(ctx context.Context, toolName string) (bool, error) {
	if _, ok := g.gated[toolName]; !ok {
		return true, nil
	}
	answer, err := g.prompter.Prompt(ctx, "Continue? (Y/N): ")
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	return strings.ToLower(answer) == "y", nil
}

// ApproveAll waves every tool through; for non-interactive runs.
type ApproveAll struct{}

func (ApproveAll) Approve(context.Context, string) (bool, error) { return true, nil }

// DenyAll refuses every tool; useful as a hard-off switch and in tests.
type DenyAll struct{}

func (DenyAll) Approve(context.Context, string) (bool, error) { return false, nil }
