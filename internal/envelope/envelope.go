// Package envelope defines the success/failure wrapper returned by every tool call.
package envelope

import (
	"encoding/json"
	"errors"

	"hnet-mcp/internal/dispatch"
)

// Kind classifies a failure.
type Kind string

const (
	KindSpawn     Kind = "spawn"
	KindExecution Kind = "execution"
	KindParse     Kind = "parse"
	KindRequest   Kind = "request"
)

// Payload holds tool-specific success fields.
type Payload map[string]any

// Envelope is either a Success (Message, Payload) or a Failure (Error, Stdout, Kind).
type Envelope struct {
	Success bool
	Message string
	Payload Payload
	Error   string
	Stdout  string
	Kind    Kind
}

// Parser extracts a success message and payload from a tool's stdout.
type Parser func(stdout string) (string, Payload, error)

// Succeed builds a success envelope.
func Succeed(message string, payload Payload) Envelope {
	return Envelope{Success: true, Message: message, Payload: payload}
}

// Fail builds a failure envelope.
func Fail(kind Kind, message, stdout string) Envelope {
	return Envelope{Kind: kind, Error: message, Stdout: stdout}
}

// StdoutParser returns a parser that reports message and passes stdout through untouched.
func StdoutParser(message string) Parser {
	return func(stdout string) (string, Payload, error) {
		return message, Payload{"stdout": stdout}, nil
	}
}

// Normalize converts a process outcome into an envelope. On exit 0 only stdout is
// inspected; otherwise the error is the captured stderr verbatim.
func Normalize(outcome dispatch.Outcome, parse Parser) Envelope {
	if outcome.ExitCode != 0 {
		return Fail(KindExecution, outcome.Stderr, outcome.Stdout)
	}
	if parse == nil {
		parse = StdoutParser("")
	}
	message, payload, err := parse(outcome.Stdout)
	if err != nil {
		return Fail(KindParse, err.Error(), outcome.Stdout)
	}
	return Succeed(message, payload)
}

// FromSpawnError wraps a dispatch failure. prefix names the operation, e.g.
// "Failed to extract images".
func FromSpawnError(prefix string, err error) Envelope {
	msg := err.Error()
	var spawnErr *dispatch.SpawnError
	if errors.As(err, &spawnErr) {
		msg = spawnErr.Error()
	}
	if prefix != "" {
		msg = prefix + ": " + msg
	}
	return Fail(KindSpawn, msg, "")
}

// MarshalJSON flattens the payload next to the status fields.
func (e Envelope) MarshalJSON() ([]byte, error) {
	out := map[string]any{}
	if e.Success {
		for k, v := range e.Payload {
			out[k] = v
		}
		out["success"] = true
		out["message"] = e.Message
		return json.Marshal(out)
	}
	out["success"] = false
	out["error"] = e.Error
	if e.Kind != "" {
		out["error_kind"] = e.Kind
	}
	if e.Kind == KindExecution || e.Kind == KindParse {
		out["stdout"] = e.Stdout
	}
	return json.Marshal(out)
}
