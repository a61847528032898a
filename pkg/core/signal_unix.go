//go:build unix

package core

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// signaled reports the name of the signal that killed the process, if any.
func signaled(err *exec.ExitError) (string, bool) {
	ws, ok := err.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return "", false
	}
	if name := unix.SignalName(ws.Signal()); name != "" {
		return name, true
	}
	return ws.Signal().String(), true
}
