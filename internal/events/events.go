package events

import "time"

// Type represents an emitted event type.
type Type string

const (
	ServerStarted    Type = "ServerStarted"
	ToolCallStarted  Type = "ToolCallStarted"
	ToolCallFinished Type = "ToolCallFinished"
	ToolCallFailed   Type = "ToolCallFailed"
)

// Event is the common envelope for renderer events.
type Event struct {
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// New stamps an event with the current time.
func New(t Type, payload any) Event {
	return Event{Type: t, Timestamp: time.Now(), Payload: payload}
}

// ServerStartedPayload is emitted once the protocol server is ready.
type ServerStartedPayload struct {
	Version     string    `json:"version"`
	ProjectRoot string    `json:"project_root"`
	Interpreter string    `json:"interpreter"`
	Tools       []string  `json:"tools"`
	StartedAt   time.Time `json:"started_at"`
}

// ToolCallStartedPayload marks tool call start.
type ToolCallStartedPayload struct {
	CallID    string    `json:"call_id"`
	ToolName  string    `json:"tool_name"`
	Argv      []string  `json:"argv"`
	StartedAt time.Time `json:"started_at"`
}

// ToolCallFinishedPayload marks tool call end, successful or not.
type ToolCallFinishedPayload struct {
	CallID     string `json:"call_id"`
	ToolName   string `json:"tool_name"`
	Status     string `json:"status"`
	ErrorKind  string `json:"error_kind,omitempty"`
	ExitCode   int    `json:"exit_code"`
	Message    string `json:"message"`
	Preview    string `json:"preview"`
	LineCount  int    `json:"line_count"`
	ByteCount  int    `json:"byte_count"`
	Truncated  bool   `json:"truncated"`
	DurationMs int64  `json:"duration_ms"`
}
