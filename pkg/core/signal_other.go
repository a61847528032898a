//go:build !unix

package core

import "os/exec"

func signaled(err *exec.ExitError) (string, bool) {
	if err.ExitCode() == -1 {
		return "signal", true
	}
	return "", false
}
