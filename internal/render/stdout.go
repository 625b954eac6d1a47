package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"hnet-mcp/internal/events"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	errColor  = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
	nameColor = color.New(color.FgCyan)
)

// TextRenderer writes tool call events as plain text lines. Writes are serialized so
// concurrent tool calls do not interleave within a line.
type TextRenderer struct {
	w       io.Writer
	mu      sync.Mutex
	verbose bool
	quiet   bool
}

// NewTextRenderer creates a renderer writing to w.
func NewTextRenderer(w io.Writer, verbose bool, quiet bool) *TextRenderer {
	return &TextRenderer{w: w, verbose: verbose, quiet: quiet}
}

func (r *TextRenderer) Emit(event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch event.Type {
	case events.ServerStarted:
		if payload, ok := event.Payload.(events.ServerStartedPayload); ok {
			if r.quiet {
				return
			}
			fmt.Fprintf(r.w, "hnet-mcp v%s | root: %s | interpreter: %s\n", payload.Version, payload.ProjectRoot, payload.Interpreter)
			fmt.Fprintf(r.w, "tools: %s\n", strings.Join(payload.Tools, ", "))
		}
	case events.ToolCallStarted:
		if payload, ok := event.Payload.(events.ToolCallStartedPayload); ok {
			if r.quiet || !r.verbose {
				return
			}
			fmt.Fprintf(r.w, "tool: %s start [%s]\n", nameColor.Sprint(payload.ToolName), payload.CallID)
			fmt.Fprintf(r.w, "argv: %s\n", strings.Join(payload.Argv, " "))
		}
	case events.ToolCallFinished, events.ToolCallFailed:
		if payload, ok := event.Payload.(events.ToolCallFinishedPayload); ok {
			if r.quiet {
				return
			}
			status := okColor.Sprint("ok")
			if payload.Status != "success" {
				status = errColor.Sprint("err")
				if payload.ErrorKind != "" {
					status += " " + payload.ErrorKind
				}
			}
			trunc := ""
			if payload.Truncated {
				trunc = ", truncated"
			}
			fmt.Fprintf(r.w, "tool: %s %s (exit %d, %dms, %d lines, %d bytes%s)\n",
				nameColor.Sprint(payload.ToolName), status, payload.ExitCode, payload.DurationMs, payload.LineCount, payload.ByteCount, trunc)
			if payload.Message != "" {
				fmt.Fprintf(r.w, "  %s\n", payload.Message)
			}
			if r.verbose && payload.Preview != "" {
				fmt.Fprintln(r.w, dimColor.Sprint("preview:"))
				for _, line := range strings.Split(payload.Preview, "\n") {
					fmt.Fprintf(r.w, "  %s\n", line)
				}
			}
		}
	}
}

func (r *TextRenderer) Close() error {
	return nil
}
