// Package procs terminates running browser processes so their history
// stores are not locked during extraction.
package procs

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Outcome is the result of terminating one process name.
type Outcome struct {
	Name    string
	Matched bool // at least one process was signalled
	Err     error
}

// Terminator asks browser processes to exit.
type Terminator interface {
	Terminate(ctx context.Context, names []string) []Outcome
}

// CommandTerminator shells out to pkill on Unix and taskkill on Windows.
type CommandTerminator struct {
	goos string
	run  Runner
}

// New returns a CommandTerminator for the running platform.
func New() *CommandTerminator {
	return NewWithRunner(runtime.GOOS, execRunner)
}

// NewWithRunner returns a CommandTerminator for goos that runs commands with run.
func NewWithRunner(goos string, run Runner) *CommandTerminator {
	return &CommandTerminator{goos: goos, run: run}
}

// Terminate signals every process matching each name. A name with no
// running process is not an error.
func (t *CommandTerminator) Terminate(ctx context.Context, names []string) []Outcome {
	outcomes := make([]Outcome, 0, len(names))
	for _, name := range names {
		bin, args := command(t.goos, name)
		out, err := t.run(ctx, bin, args...)
		outcomes = append(outcomes, classify(t.goos, name, out, err))
	}
	return outcomes
}

// command returns the termination command for name. On Windows the whole
// process tree is ended forcefully.
func command(goos, name string) (string, []string) {
	if goos == "windows" {
		return "taskkill", []string{"/F", "/IM", name, "/T"}
	}
	return "pkill", []string{"-f", name}
}

func classify(goos, name string, out []byte, err error) Outcome {
	if err == nil {
		return Outcome{Name: name, Matched: true}
	}

	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		code := coded.ExitCode()
		// pkill: 1 no process matched. taskkill: 128 process not found.
		if (goos != "windows" && code == 1) || (goos == "windows" && code == 128) {
			return Outcome{Name: name}
		}
	}

	if msg := strings.TrimSpace(string(out)); msg != "" {
		err = errors.Join(err, errors.New(msg))
	}
	return Outcome{Name: name, Err: err}
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
