package tools

import (
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hnet-mcp/internal/config"
	"hnet-mcp/internal/dispatch"
	"hnet-mcp/internal/envelope"
	"hnet-mcp/internal/events"
	"hnet-mcp/internal/render"
	"hnet-mcp/internal/util"
)

// Call records one tool invocation and its envelope.
type Call struct {
	CallID     string            `json:"call_id"`
	Tool       string            `json:"tool"`
	Arguments  map[string]any    `json:"arguments,omitempty"`
	Argv       []string          `json:"argv,omitempty"`
	ExitCode   int               `json:"exit_code"`
	StartedAt  time.Time         `json:"started_at"`
	DurationMs int64             `json:"duration_ms"`
	Envelope   envelope.Envelope `json:"envelope"`
}

// RunnerOptions tunes a Runner. Zero values pick defaults.
type RunnerOptions struct {
	ToolsDir     string
	Renderer     render.Renderer
	PreviewLines int
	PreviewBytes int
}

// Runner decodes a request, launches the tool's script and normalizes the outcome.
// Every path through Run produces exactly one envelope.
type Runner struct {
	registry     *Registry
	dispatcher   *dispatch.Dispatcher
	logger       *zap.Logger
	renderer     render.Renderer
	toolsDir     string
	previewLines int
	previewBytes int
}

// NewRunner wires a registry to a dispatcher.
func NewRunner(registry *Registry, dispatcher *dispatch.Dispatcher, logger *zap.Logger, opts RunnerOptions) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.ToolsDir == "" {
		opts.ToolsDir = config.DefaultToolsDir
	}
	if opts.PreviewLines <= 0 {
		opts.PreviewLines = config.DefaultPreviewLines
	}
	if opts.PreviewBytes <= 0 {
		opts.PreviewBytes = config.DefaultPreviewBytes
	}
	return &Runner{
		registry:     registry,
		dispatcher:   dispatcher,
		logger:       logger,
		renderer:     opts.Renderer,
		toolsDir:     opts.ToolsDir,
		previewLines: opts.PreviewLines,
		previewBytes: opts.PreviewBytes,
	}
}

// Registry returns the runner's tools.
func (r *Runner) Registry() *Registry { return r.registry }

// Run executes the named tool with JSON arguments.
func (r *Runner) Run(name string, args json.RawMessage) Call {
	call := Call{CallID: uuid.NewString(), Tool: name, StartedAt: time.Now()}
	logger := r.logger.With(zap.String("tool", name), zap.String("call_id", call.CallID))

	tool, ok := r.registry.Get(name)
	if !ok {
		call.Envelope = envelope.Fail(envelope.KindRequest, "unknown tool: "+name, "")
		r.finish(logger, &call, dispatch.Outcome{})
		return call
	}
	req, err := Decode(name, tool.Params(), args)
	if err != nil {
		call.Envelope = envelope.Fail(envelope.KindRequest, err.Error(), "")
		r.finish(logger, &call, dispatch.Outcome{})
		return call
	}
	call.Arguments = req.Values()

	inv, err := tool.Build(req)
	if err != nil {
		call.Envelope = envelope.Fail(envelope.KindRequest, err.Error(), "")
		r.finish(logger, &call, dispatch.Outcome{})
		return call
	}

	script := filepath.Join(r.toolsDir, inv.Script)
	r.emit(events.ToolCallStarted, events.ToolCallStartedPayload{
		CallID:    call.CallID,
		ToolName:  name,
		Argv:      util.RedactArgs(append([]string{r.dispatcher.Resolve(script)}, inv.Args...)),
		StartedAt: call.StartedAt,
	})
	logger.Debug("tool call started", zap.Strings("args", util.RedactArgs(inv.Args)))

	outcome, err := r.dispatcher.Invoke(script, inv.Args, "")
	if err != nil {
		call.Envelope = envelope.FromSpawnError("Failed to "+inv.Action, err)
		r.finish(logger, &call, outcome)
		return call
	}
	call.Argv = outcome.Argv
	call.ExitCode = outcome.ExitCode
	call.DurationMs = outcome.DurationMs
	call.Envelope = envelope.Normalize(outcome, inv.Parse)
	r.finish(logger, &call, outcome)
	return call
}

func (r *Runner) finish(logger *zap.Logger, call *Call, outcome dispatch.Outcome) {
	env := call.Envelope
	fields := []zap.Field{
		zap.Int("exit_code", outcome.ExitCode),
		zap.Int64("duration_ms", outcome.DurationMs),
		zap.Int("stdout_bytes", len(outcome.Stdout)),
		zap.Int("stderr_bytes", len(outcome.Stderr)),
	}

	text := outcome.Stdout
	if !env.Success {
		text = env.Error
	}
	preview, truncated := util.Preview(util.RedactSecrets(text), r.previewLines, r.previewBytes)

	status := "success"
	eventType := events.ToolCallFinished
	message := env.Message
	if env.Success {
		logger.Info("tool call finished", fields...)
	} else {
		status = "error"
		eventType = events.ToolCallFailed
		message = ""
		fields = append(fields, zap.String("error_kind", string(env.Kind)), zap.String("error", preview))
		logger.Warn("tool call failed", fields...)
	}

	r.emit(eventType, events.ToolCallFinishedPayload{
		CallID:     call.CallID,
		ToolName:   call.Tool,
		Status:     status,
		ErrorKind:  string(env.Kind),
		ExitCode:   outcome.ExitCode,
		Message:    message,
		Preview:    preview,
		LineCount:  util.CountLines(text),
		ByteCount:  len(outcome.Stdout) + len(outcome.Stderr),
		Truncated:  truncated,
		DurationMs: outcome.DurationMs,
	})
}

func (r *Runner) emit(t events.Type, payload any) {
	if r.renderer == nil {
		return
	}
	r.renderer.Emit(events.New(t, payload))
}
