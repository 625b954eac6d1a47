// Package server exposes the tool catalog over the Model Context Protocol.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"hnet-mcp/internal/envelope"
	"hnet-mcp/internal/events"
	"hnet-mcp/internal/render"
	"hnet-mcp/internal/tools"
)

// Name is the server name announced to clients.
const Name = "HNet_Agent"

const instructions = "HNet_Agent provides tools for benchmarking and evaluating AI agents on notebook-based tasks. " +
	"Each tool runs a utility script from the project's tools directory and returns a JSON envelope with a success flag."

// Options configures a Server.
type Options struct {
	Version     string
	ProjectRoot string
	Interpreter string
	Renderer    render.Renderer
	// OnCall, when set, receives every finished call.
	OnCall func(tools.Call)
}

// Server registers each runner tool on an MCP server.
type Server struct {
	mcp    *server.MCPServer
	runner *tools.Runner
	logger *zap.Logger
	opts   Options
}

// New builds the MCP server and registers all tools.
func New(runner *tools.Runner, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		mcp: server.NewMCPServer(Name, opts.Version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
			server.WithInstructions(instructions),
		),
		runner: runner,
		logger: logger,
		opts:   opts,
	}
	for _, tool := range runner.Registry().Tools() {
		s.mcp.AddTool(Definition(tool), s.handler(tool.Name()))
	}
	return s
}

// ServeStdio serves the protocol on in/out until ctx is done or the client disconnects.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(zap.NewStdLog(s.logger.Named("stdio")))

	if s.opts.Renderer != nil {
		s.opts.Renderer.Emit(events.New(events.ServerStarted, events.ServerStartedPayload{
			Version:     s.opts.Version,
			ProjectRoot: s.opts.ProjectRoot,
			Interpreter: s.opts.Interpreter,
			Tools:       s.runner.Registry().Names(),
			StartedAt:   time.Now(),
		}))
	}
	s.logger.Info("mcp server listening on stdio", zap.String("root", s.opts.ProjectRoot), zap.Strings("tools", s.runner.Registry().Names()))
	return stdio.Listen(ctx, in, out)
}

// Definition converts a tool into its MCP declaration. The input schema is the same one
// exported for OpenAI hosts, so integer parameters stay integers.
func Definition(tool tools.Tool) mcp.Tool {
	schema, err := json.Marshal(tools.Schema(tool.Params()))
	if err != nil {
		return mcp.NewTool(tool.Name(), mcp.WithDescription(tool.Description()))
	}
	return mcp.NewToolWithRawSchema(tool.Name(), tool.Description(), schema)
}

func (s *Server) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		arguments := req.GetArguments()
		if arguments == nil {
			arguments = map[string]any{}
		}
		args, err := json.Marshal(arguments)
		if err != nil {
			return Result(envelope.Fail(envelope.KindRequest, fmt.Sprintf("%s: encode arguments: %v", name, err), "")), nil
		}
		call := s.runner.Run(name, args)
		if s.opts.OnCall != nil {
			s.opts.OnCall(call)
		}
		return Result(call.Envelope), nil
	}
}

// Result renders an envelope as a JSON text result, flagged as an error on failure.
func Result(env envelope.Envelope) *mcp.CallToolResult {
	payload, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err))
	}
	result := mcp.NewToolResultText(string(payload))
	result.IsError = !env.Success
	return result
}
