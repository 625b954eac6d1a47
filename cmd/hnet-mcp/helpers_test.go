package main

import (
	"testing"

	"go.uber.org/zap"

	"hnet-mcp/internal/envelope"
	"hnet-mcp/internal/tools"
)

func mustLogger(t *testing.T) *zap.Logger {
	t.Helper()
	logger, err := zap.NewDevelopment()
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return logger
}

func sampleCall() tools.Call {
	return tools.Call{
		CallID:   "call-1",
		Tool:     "preprocess_notebook",
		ExitCode: 1,
		Envelope: envelope.Fail(envelope.KindExecution, "boom", ""),
	}
}
