// Package shell provides the run_terminal_command tool: one-shot
// execution through sh -c in the project directory, with capped output
// and a graceful timeout.
package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Cyclone1070/reagent/internal/tool"
	"github.com/Cyclone1070/reagent/internal/workspace"
)

// -- Sentinels --

var ErrTimeout = errors.New("command timed out")

const (
	// DefaultMaxOutput caps the formatted observation in bytes.
	DefaultMaxOutput = 4000
	// DefaultTimeout bounds a single command run.
	DefaultTimeout = 10 * time.Minute

	// gracePeriod is how long an interrupted command may keep running
	// before it is killed.
	gracePeriod = 5 * time.Second
)

// Options tune the executor. Zero values fall back to the defaults.
type Options struct {
	MaxOutput int
	Timeout   time.Duration
}

type runRequest struct {
	Command string `mapstructure:"command"`
}

// New builds the run_terminal_command tool bound to the workspace root.
// This is the tool class the confirmation gate guards.
func New(ws *workspace.Workspace, opts Options) tool.Tool {
	maxOutput := opts.MaxOutput
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return tool.NewFunc(tool.Descriptor{
		Name:        "run_terminal_command",
		Description: "Execute a shell command in the project directory and return its output.",
		Params:      []tool.ParamSpec{tool.Required("command")},
	}, func(ctx context.Context, req runRequest) (string, error) {
		res, err := run(ctx, req.Command, ws.Root(), timeout, maxOutput)
		if err != nil {
			return "", err
		}
		return formatResult(res, maxOutput), nil
	})
}

type result struct {
	stdout   string
	stderr   string
	exitCode int
}

func run(ctx context.Context, command, dir string, timeout time.Duration, maxOutput int) (result, error) {
	stdout := newCollector(maxOutput)
	stderr := newCollector(maxOutput)

	cmd := exec.Command("sh", "-c", command)
	cmd.Dir = dir
	cmd.Stdin = nil
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return result{}, fmt.Errorf("start command: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var waitErr error
	select {
	case waitErr = <-done:
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return result{}, ctx.Err()
	case <-time.After(timeout):
		// Try graceful shutdown before killing
		_ = cmd.Process.Signal(os.Interrupt)
		select {
		case <-done:
		case <-time.After(gracePeriod):
			_ = cmd.Process.Kill()
			<-done
		}
		return result{}, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}

	exitCode := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return result{}, fmt.Errorf("run command: %w", waitErr)
		}
		exitCode = exitErr.ExitCode()
	}

	return result{
		stdout:   stdout.String(),
		stderr:   stderr.String(),
		exitCode: exitCode,
	}, nil
}

// formatResult renders the observation: stripped stdout and stderr
// sections when non-empty, always the exit code, capped as a whole.
func formatResult(res result, maxOutput int) string {
	var parts []string
	if out := strings.TrimSpace(res.stdout); out != "" {
		parts = append(parts, "stdout:\n"+out)
	}
	if errOut := strings.TrimSpace(res.stderr); errOut != "" {
		parts = append(parts, "stderr:\n"+errOut)
	}
	parts = append(parts, fmt.Sprintf("exit_code=%d", res.exitCode))
	return truncate(strings.Join(parts, "\n"), maxOutput)
}

// truncate caps s at max bytes, backing off to a rune boundary, and
// marks the cut.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "\n[truncated]"
}
