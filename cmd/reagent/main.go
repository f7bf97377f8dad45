// Package main is the interactive agent CLI. It roots a workspace in
// the given project directory, wires the tool registry, reasoner,
// confirmation gate and event sinks together, then runs one task
// through the reason-act loop.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/genai"

	"github.com/Cyclone1070/reagent/internal/config"
	"github.com/Cyclone1070/reagent/internal/console"
	"github.com/Cyclone1070/reagent/internal/gate"
	"github.com/Cyclone1070/reagent/internal/hostinfo"
	"github.com/Cyclone1070/reagent/internal/orchestrator"
	"github.com/Cyclone1070/reagent/internal/prompt"
	"github.com/Cyclone1070/reagent/internal/reasoner"
	"github.com/Cyclone1070/reagent/internal/reasoner/gemini"
	"github.com/Cyclone1070/reagent/internal/runlog"
	"github.com/Cyclone1070/reagent/internal/tool"
	"github.com/Cyclone1070/reagent/internal/tool/file"
	"github.com/Cyclone1070/reagent/internal/tool/host"
	"github.com/Cyclone1070/reagent/internal/tool/shell"
	"github.com/Cyclone1070/reagent/internal/tool/web"
	"github.com/Cyclone1070/reagent/internal/workspace"
)

// options holds the command-line flags. Empty or zero values defer to
// the loaded configuration.
type options struct {
	manual     bool
	yes        bool
	provider   string
	model      string
	maxSteps   int
	configPath string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, console.ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "reagent [project-directory]",
		Short:         "Run a reason-act agent against a project directory",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return run(cmd.Context(), dir, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.manual, "manual", false, "Relay model requests through a human instead of an API")
	cmd.Flags().BoolVar(&opts.yes, "yes", false, "Approve gated tools without asking")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "Reasoner backend: openrouter or gemini")
	cmd.Flags().StringVar(&opts.model, "model", "", "Model identifier sent with every request")
	cmd.Flags().IntVar(&opts.maxSteps, "max-steps", 0, "Maximum reasoner turns per run")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a config file")

	return cmd
}

func run(ctx context.Context, dir string, opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	ws, err := openWorkspace(dir)
	if err != nil {
		return err
	}

	runLog, err := runlog.NewFileSink(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer runLog.Close()

	registry, err := buildRegistry(cfg, ws)
	if err != nil {
		return err
	}

	systemPrompt, err := buildSystemPrompt(cfg, ws, registry)
	if err != nil {
		return err
	}

	// The gate prompt, the task prompt and the manual relay all read
	// from the same console so input lines are never split between
	// competing readers.
	cons := console.New(os.Stdin, os.Stdout)

	brain, err := buildReasoner(ctx, cfg, opts.manual, cons, runLog)
	if err != nil {
		return err
	}

	var approver orchestrator.Gate = gate.NewTerminal(cons, cfg.GatedTools)
	if opts.yes {
		approver = gate.ApproveAll{}
	}

	events := orchestrator.MultiSink{
		console.NewRenderer(os.Stdout, console.GlamourMarkdown{}),
		orchestrator.NewLineSink(runLog),
	}

	task, err := cons.Prompt(ctx, "Please enter task: ")
	if err != nil {
		return fmt.Errorf("read task: %w", err)
	}

	loop := orchestrator.NewLoop(brain, registry, approver, events, cfg.MaxSteps)
	_, err = loop.Run(ctx, systemPrompt, task)
	return err
}

// loadConfig resolves the effective configuration: the dotfile (or the
// explicit --config file) over defaults, then flag overrides on top.
// An unreadable dotfile is downgraded to a warning; an explicit
// --config path must load.
func loadConfig(opts options) (*config.Config, error) {
	loader := config.NewLoader()

	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = loader.LoadFile(opts.configPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg, err = loader.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
			fmt.Fprintf(os.Stderr, "Using default configuration.\n")
			cfg = config.DefaultConfig()
		}
	}

	if opts.provider != "" {
		cfg.Provider = opts.provider
	}
	if opts.model != "" {
		cfg.Model = opts.model
	}
	if opts.maxSteps > 0 {
		cfg.MaxSteps = opts.maxSteps
	}

	// Flag values bypass the loader, so validate the merged result.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openWorkspace roots the run in dir, creating the directory on first
// use. Gitignore loading is best effort; a broken .gitignore must not
// block a run.
func openWorkspace(dir string) (*workspace.Workspace, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve project directory: %w", err)
	}

	if _, err := os.Stat(abs); os.IsNotExist(err) {
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return nil, fmt.Errorf("create project directory: %w", err)
		}
		fmt.Printf("Created directory: %s\n", abs)
	}

	var ignorer workspace.Ignorer
	if matcher, err := workspace.LoadGitignore(abs); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to read .gitignore: %v\n", err)
		ignorer = workspace.NoIgnore{}
	} else {
		ignorer = matcher
	}

	return workspace.New(abs, ignorer)
}

// buildRegistry assembles the fixed tool set, every tool bound to the
// workspace root and tuned from config.
func buildRegistry(cfg *config.Config, ws *workspace.Workspace) (*tool.Registry, error) {
	osFS := file.OSFileSystem{}
	httpClient := &http.Client{}

	return tool.NewRegistry(
		file.NewRead(ws, osFS, cfg.Tools.MaxReadSize),
		file.NewWrite(ws, osFS),
		shell.New(ws, shell.Options{
			MaxOutput: cfg.Tools.MaxCommandOutput,
			Timeout:   time.Duration(cfg.Tools.CommandTimeoutSecs) * time.Second,
		}),
		web.NewSearch(httpClient),
		web.NewFetch(httpClient, cfg.Tools.FetchTimeoutSecs),
		host.New(hostinfo.NewCollector()),
	)
}

// buildSystemPrompt renders the system prompt from the registry's tool
// descriptors and a snapshot of the workspace file tree. An unreadable
// tree degrades to an empty listing.
func buildSystemPrompt(cfg *config.Config, ws *workspace.Workspace, registry *tool.Registry) (string, error) {
	files, err := ws.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to list workspace files: %v\n", err)
		files = nil
	}
	return prompt.Render(registry.Descriptors(), files, cfg.Prompt.MaxFiles)
}

// buildReasoner selects the model backend: the manual relay when
// requested, otherwise the configured API provider. Automatic providers
// require their API key in the environment.
func buildReasoner(ctx context.Context, cfg *config.Config, manual bool, cons *console.Console, runLog runlog.Sink) (orchestrator.Reasoner, error) {
	if manual {
		return reasoner.NewManual(cfg.Model, os.Stdout, cons), nil
	}

	switch cfg.Provider {
	case config.ProviderOpenRouter:
		apiKey := os.Getenv("OPENROUTER_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY environment variable is required")
		}
		return reasoner.NewOpenRouter(reasoner.NewChatClient(apiKey, cfg.BaseURL), cfg.Model, runLog), nil

	case config.ProviderGemini:
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return gemini.New(gemini.NewSDKClient(client), cfg.Model, runLog), nil

	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
