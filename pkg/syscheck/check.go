// Package syscheck reports the runtime the harness runs on.
package syscheck

import (
	"fmt"
	"runtime"

	"github.com/vertti/ndsdiag/pkg/check"
)

// SysInfo abstracts runtime information for testability.
type SysInfo interface {
	OS() string
	Arch() string
	GoVersion() string
	Args() []string
}

// RealSysInfo returns actual runtime information.
type RealSysInfo struct {
	Argv []string
}

func (r *RealSysInfo) OS() string        { return runtime.GOOS }
func (r *RealSysInfo) Arch() string      { return runtime.GOARCH }
func (r *RealSysInfo) GoVersion() string { return runtime.Version() }
func (r *RealSysInfo) Args() []string    { return r.Argv }

// Check reports the runtime the harness was built for and, optionally,
// verifies it matches the expected OS and architecture.
type Check struct {
	ExpectedOS   string  // required OS (linux, darwin, windows); empty accepts any
	ExpectedArch string  // required architecture (amd64, arm64); empty accepts any
	Info         SysInfo // injected for testing
}

// Run executes the runtime check.
func (c *Check) Run() check.Result {
	result := check.Result{
		Name: "runtime",
	}

	info := c.Info
	if info == nil {
		info = &RealSysInfo{}
	}

	actualOS := info.OS()
	actualArch := info.Arch()

	args := info.Args()
	result.AddDetailf("arguments received: %d", len(args))
	for i, arg := range args {
		result.AddDetailf("arg[%d]: %s", i, arg)
	}
	result.AddDetailf("os: %s", actualOS)
	result.AddDetailf("arch: %s", actualArch)
	result.AddDetailf("go: %s", info.GoVersion())

	if c.ExpectedOS != "" && actualOS != c.ExpectedOS {
		result.WithHint(fmt.Sprintf("build ndsdiag with GOOS=%s", c.ExpectedOS))
		return result.Failf("OS mismatch: expected %s, got %s", c.ExpectedOS, actualOS)
	}

	if c.ExpectedArch != "" && actualArch != c.ExpectedArch {
		result.WithHint(fmt.Sprintf("build ndsdiag with GOARCH=%s", c.ExpectedArch))
		return result.Failf("arch mismatch: expected %s, got %s", c.ExpectedArch, actualArch)
	}

	switch {
	case c.ExpectedOS != "" && c.ExpectedArch != "":
		result.Name = fmt.Sprintf("runtime: os=%s arch=%s", c.ExpectedOS, c.ExpectedArch)
	case c.ExpectedOS != "":
		result.Name = "runtime: os=" + c.ExpectedOS
	case c.ExpectedArch != "":
		result.Name = "runtime: arch=" + c.ExpectedArch
	}

	return result.Pass()
}
