// Package exec hands the process over to the emulator once the preflight
// run has passed, so ndsdiag can sit in front of the real binary.
package exec

import (
	"errors"
	"os"
	"os/exec"
)

// ErrNoCommand is returned by Handoff when no emulator command was given.
var ErrNoCommand = errors.New("no emulator command to hand off to")

// Executor replaces the current process.
type Executor interface {
	// Exec replaces the current process with the specified command.
	// On Unix, this uses syscall.Exec. On Windows, returns an error.
	Exec(name string, args []string) error
}

// RealExecutor is the production implementation.
type RealExecutor struct{}

// Handoff replaces the process with command[0], passing command[1:].
// It only returns on failure.
func Handoff(e Executor, command []string) error {
	if len(command) == 0 || command[0] == "" {
		return ErrNoCommand
	}
	return e.Exec(command[0], command[1:])
}

func lookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func environ() []string {
	return os.Environ()
}
