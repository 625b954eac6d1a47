// Package dispatch launches utility scripts as child processes and captures their outcome.
package dispatch

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Outcome is the captured result of one child process.
type Outcome struct {
	ExitCode   int
	Stdout     string
	Stderr     string
	Argv       []string
	DurationMs int64
}

// SpawnError reports that a child process could not be started.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Config configures a Dispatcher.
type Config struct {
	// Root is the project root. Relative executables resolve against it and it is the
	// default working directory.
	Root string
	// Interpreter, when set, is prepended to every argv. Empty runs the executable directly.
	Interpreter string
}

// Dispatcher runs one child process per Invoke call. It holds no mutable state and is
// safe for concurrent use.
type Dispatcher struct {
	root        string
	interpreter string
}

// New constructs a dispatcher rooted at cfg.Root.
func New(cfg Config) *Dispatcher {
	return &Dispatcher{root: cfg.Root, interpreter: strings.TrimSpace(cfg.Interpreter)}
}

// Resolve maps an executable path to an absolute path under the project root.
func (d *Dispatcher) Resolve(executable string) string {
	if filepath.IsAbs(executable) {
		return executable
	}
	return filepath.Join(d.root, executable)
}

// Invoke runs executable with args in dir (the project root when empty) and blocks until
// it exits. A non-zero exit is reported in the Outcome, not as an error; the error is
// always a *SpawnError.
func (d *Dispatcher) Invoke(executable string, args []string, dir string) (Outcome, error) {
	path := d.Resolve(executable)
	info, err := os.Stat(path)
	if err != nil {
		return Outcome{}, &SpawnError{Path: path, Err: err}
	}
	if info.IsDir() {
		return Outcome{}, &SpawnError{Path: path, Err: errors.New("is a directory")}
	}

	argv := make([]string, 0, len(args)+2)
	if d.interpreter != "" {
		argv = append(argv, d.interpreter)
	}
	argv = append(argv, path)
	argv = append(argv, args...)

	if dir == "" {
		dir = d.root
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	duration := time.Since(start).Milliseconds()

	exitCode := 0
	if err != nil {
		if exitErr := (&exec.ExitError{}); errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			return Outcome{}, &SpawnError{Path: argv[0], Err: err}
		}
	}

	return Outcome{
		ExitCode:   exitCode,
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		Argv:       argv,
		DurationMs: duration,
	}, nil
}
