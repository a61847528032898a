//go:build windows

package exec

import "errors"

// ErrExecNotSupported indicates hand-off is not available on Windows.
var ErrExecNotSupported = errors.New("emulator hand-off not supported on Windows; start the emulator after ndsdiag exits")

// Exec is not supported on Windows, which has no exec syscall that replaces
// the current process.
func (e *RealExecutor) Exec(name string, args []string) error {
	return ErrExecNotSupported
}
