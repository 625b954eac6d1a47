package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hnet-mcp/internal/config"
	"hnet-mcp/internal/dispatch"
	"hnet-mcp/internal/project"
	"hnet-mcp/internal/render"
	"hnet-mcp/internal/server"
	"hnet-mcp/internal/tools"
)

var version = "0.1.0"

var errToolFailed = errors.New("tool call failed")

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hnet-mcp",
		Short:         "hnet-mcp - notebook benchmarking tools over MCP",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	cmd.PersistentFlags().String("root", "", "Project root containing the tools directory (default: two levels above the binary)")
	cmd.PersistentFlags().String("interpreter", config.DefaultInterpreter, "Interpreter used to run tool scripts; empty runs them directly")
	cmd.PersistentFlags().String("tools-dir", config.DefaultToolsDir, "Tools directory relative to the project root")
	cmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("quiet", false, "Suppress progress output")
	cmd.PersistentFlags().String("log-file", "", "Write logs to a file instead of stderr")
	cmd.PersistentFlags().Bool("persist-calls", false, "Save every call envelope under the calls directory")

	cmd.AddCommand(newServeCmd(), newCallCmd(), newToolsCmd())
	return cmd
}

// app is the wiring shared by every subcommand.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	root   string
}

func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := buildLogger(cfg.Verbose, cfg.LogFile)
	if err != nil {
		return nil, err
	}
	root, err := project.Resolve(cfg.Root, cfg.ToolsDir)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	if _, err := os.Stat(filepath.Join(root, cfg.ToolsDir)); err != nil {
		logger.Warn("tools directory not found; calls will fail to spawn", zap.String("root", root), zap.String("tools_dir", cfg.ToolsDir))
	}
	return &app{cfg: cfg, logger: logger, root: root}, nil
}

func (a *app) runner(renderer render.Renderer) *tools.Runner {
	d := dispatch.New(dispatch.Config{Root: a.root, Interpreter: a.cfg.Interpreter})
	return tools.NewRunner(tools.DefaultRegistry(), d, a.logger, tools.RunnerOptions{
		ToolsDir:     a.cfg.ToolsDir,
		Renderer:     renderer,
		PreviewLines: a.cfg.PreviewLines,
		PreviewBytes: a.cfg.PreviewBytes,
	})
}

func (a *app) record(call tools.Call) {
	if a.cfg.PersistCalls {
		persistCall(a.logger, a.cfg.CallsDir, call)
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			// stdout carries the protocol, so progress goes to stderr.
			renderer := render.NewTextRenderer(os.Stderr, a.cfg.Verbose, a.cfg.Quiet || !a.cfg.Verbose)
			defer func() { _ = renderer.Close() }()

			srv := server.New(a.runner(renderer), a.logger, server.Options{
				Version:     version,
				ProjectRoot: a.root,
				Interpreter: a.cfg.Interpreter,
				Renderer:    renderer,
				OnCall:      a.record,
			})

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			if err := srv.ServeStdio(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

func newCallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Run one tool and print its result envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			rawArgs, _ := cmd.Flags().GetString("args")
			var renderer render.Renderer
			if !a.cfg.JSON {
				renderer = render.NewTextRenderer(os.Stderr, a.cfg.Verbose, a.cfg.Quiet)
			}
			call := a.runner(renderer).Run(args[0], json.RawMessage(rawArgs))
			a.record(call)

			if err := writeEnvelope(os.Stdout, call, a.cfg.JSON); err != nil {
				return err
			}
			if !call.Envelope.Success {
				return errToolFailed
			}
			return nil
		},
	}
	cmd.Flags().String("args", "{}", "Tool arguments as a JSON object")
	cmd.Flags().Bool("json", false, "Print the envelope as JSON only")
	return cmd
}

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Print tool definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			registry := tools.DefaultRegistry()
			var defs any
			switch format {
			case "mcp":
				list := make([]mcp.Tool, 0, len(registry.Names()))
				for _, tool := range registry.Tools() {
					list = append(list, server.Definition(tool))
				}
				defs = list
			case "openai":
				defs = registry.OpenAITools()
			default:
				return fmt.Errorf("unknown format %q (want mcp or openai)", format)
			}
			payload, err := json.MarshalIndent(defs, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return nil
		},
	}
	cmd.Flags().String("format", "mcp", "Definition format: mcp or openai")
	return cmd
}

func writeEnvelope(w io.Writer, call tools.Call, jsonOnly bool) error {
	payload, err := json.MarshalIndent(call.Envelope, "", "  ")
	if err != nil {
		return err
	}
	if jsonOnly {
		_, err = fmt.Fprintln(w, string(payload))
		return err
	}
	fmt.Fprintf(w, "call: %s (%s)\n", call.CallID, call.Tool)
	_, err = fmt.Fprintln(w, string(payload))
	return err
}

func buildLogger(verbose bool, logFile string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	if logFile != "" {
		cfg.OutputPaths = []string{logFile}
		cfg.ErrorOutputPaths = []string{logFile}
	}
	return cfg.Build()
}

func persistCall(logger *zap.Logger, dir string, call tools.Call) {
	if dir == "" {
		logger.Warn("no calls directory configured; call not persisted")
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("failed to create calls directory", zap.Error(err))
		return
	}
	file := filepath.Join(dir, call.CallID+".json")
	payload, err := json.MarshalIndent(call, "", "  ")
	if err != nil {
		logger.Warn("failed to marshal call record", zap.Error(err))
		return
	}
	if err := os.WriteFile(file, payload, 0o600); err != nil {
		logger.Warn("failed to write call record", zap.Error(err))
	}
}
