package envelope

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"hnet-mcp/internal/dispatch"
)

func TestNormalizeSuccessIgnoresStderr(t *testing.T) {
	out := dispatch.Outcome{ExitCode: 0, Stdout: "done\n", Stderr: "warning: deprecated\n"}
	env := Normalize(out, StdoutParser("ok"))
	if !env.Success {
		t.Fatalf("expected success")
	}
	if env.Message != "ok" || env.Payload["stdout"] != "done\n" {
		t.Fatalf("unexpected envelope %+v", env)
	}
	if env.Error != "" {
		t.Fatalf("success must not carry stderr, got %q", env.Error)
	}
}

func TestNormalizeSuccessDoesNotCallParserOnFailure(t *testing.T) {
	called := false
	parse := func(string) (string, Payload, error) {
		called = true
		return "", nil, nil
	}
	Normalize(dispatch.Outcome{ExitCode: 1}, parse)
	if called {
		t.Fatalf("parser must not run for non-zero exit")
	}
}

func TestNormalizeFailureKeepsStderrVerbatim(t *testing.T) {
	stderr := "Traceback (most recent call last):\n  File \"x.py\"\r\nValueError: \x00bad  \n\n"
	out := dispatch.Outcome{ExitCode: 2, Stdout: "half", Stderr: stderr}
	env := Normalize(out, StdoutParser("ok"))
	if env.Success {
		t.Fatalf("expected failure")
	}
	if env.Error != stderr {
		t.Fatalf("stderr was altered: %q", env.Error)
	}
	if env.Stdout != "half" || env.Kind != KindExecution {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestNormalizeParseErrorIsFailure(t *testing.T) {
	parse := func(string) (string, Payload, error) { return "", nil, errors.New("bad count") }
	env := Normalize(dispatch.Outcome{Stdout: "garbage"}, parse)
	if env.Success || env.Kind != KindParse || env.Error != "bad count" || env.Stdout != "garbage" {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestNormalizeNilParserReturnsStdout(t *testing.T) {
	env := Normalize(dispatch.Outcome{Stdout: "x"}, nil)
	if !env.Success || env.Payload["stdout"] != "x" {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestFromSpawnError(t *testing.T) {
	err := &dispatch.SpawnError{Path: "/p/tools/x.py", Err: os.ErrNotExist}
	env := FromSpawnError("Failed to run benchmark assessor", err)
	if env.Success || env.Kind != KindSpawn {
		t.Fatalf("unexpected envelope %+v", env)
	}
	if !strings.HasPrefix(env.Error, "Failed to run benchmark assessor: spawn /p/tools/x.py") {
		t.Fatalf("unexpected message %q", env.Error)
	}
}

func TestMarshalSuccessFlattensPayload(t *testing.T) {
	env := Succeed("Extracted 2 images from notebook", Payload{"total_count": 2, "output_directory": "out"})
	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["success"] != true || got["total_count"] != float64(2) || got["output_directory"] != "out" {
		t.Fatalf("unexpected json %s", data)
	}
	if _, ok := got["error"]; ok {
		t.Fatalf("success must not carry error: %s", data)
	}
}

func TestMarshalFailure(t *testing.T) {
	data, _ := json.Marshal(Fail(KindExecution, "boom", "partial"))
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["success"] != false || got["error"] != "boom" || got["stdout"] != "partial" || got["error_kind"] != "execution" {
		t.Fatalf("unexpected json %s", data)
	}

	data, _ = json.Marshal(Fail(KindSpawn, "missing", ""))
	got = map[string]any{}
	_ = json.Unmarshal(data, &got)
	if _, ok := got["stdout"]; ok {
		t.Fatalf("spawn failure has no stdout: %s", data)
	}
}
