//go:build unix

package exec

import (
	"syscall"
)

var execFunc = syscall.Exec

// Exec replaces the current process with the emulator binary.
func (e *RealExecutor) Exec(name string, args []string) error {
	binary, err := lookPath(name)
	if err != nil {
		return err
	}

	argv := append([]string{name}, args...)
	// #nosec G204 -- the emulator command comes from the operator's own command line.
	return execFunc(binary, argv, environ())
}
