package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"

	"github.com/vertti/ndsdiag/pkg/check"
)

// Runner abstracts process execution for testability.
type Runner interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// RealRunner implements Runner using os/exec.
type RealRunner struct{}

// LookPath searches for an executable in PATH.
func (r *RealRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns its output.
func (r *RealRunner) Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // core command is operator-supplied
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.String(), errBuf.String(), err
}

// ProcessConstructor constructs the core in a child process, so a crash
// during construction ends the child and not the harness. The command is run
// with the ROM path appended; exit status 0 means the core came up. A failed
// run's trimmed stderr becomes the error message.
type ProcessConstructor struct {
	Path   string
	Args   []string
	Runner Runner
}

// Run verifies the core command can be found before it is run.
func (p *ProcessConstructor) Run() check.Result {
	runner := p.Runner
	if runner == nil {
		runner = &RealRunner{}
	}

	result := check.Result{Name: "core command: " + p.Path}
	path, err := runner.LookPath(p.Path)
	if err != nil {
		result.WithHint("install the core command or pass its full path to --core-cmd")
		return result.Fail("not found in PATH", err)
	}
	result.AddDetailf("path: %s", path)
	return result.Pass()
}

type processCore struct{}

func (processCore) Close() error { return nil }

// New runs the core command once.
func (p *ProcessConstructor) New(ctx context.Context, romPath string) (Core, error) {
	runner := p.Runner
	if runner == nil {
		runner = &RealRunner{}
	}

	args := slices.Clone(p.Args)
	if romPath != "" {
		args = append(args, romPath)
	}

	_, stderr, err := runner.Run(ctx, p.Path, args...)
	if err == nil {
		return processCore{}, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return nil, fmt.Errorf("failed to start core %s: %w", p.Path, err)
	}

	if sig, ok := signaled(exitErr); ok {
		return nil, fmt.Errorf("%w: killed by %s", ErrAbnormalTermination, sig)
	}

	msg := strings.TrimSpace(stderr)
	if msg == "" {
		return nil, fmt.Errorf("%w: exit status %d", ErrAbnormalTermination, exitErr.ExitCode())
	}
	return nil, &ConstructionError{Message: msg}
}
