package resourceprobe

import (
	"fmt"

	"github.com/vertti/ndsdiag/pkg/check"
)

// Check probes one resource and renders it as a diagnostic line.
type Check struct {
	Target   Target
	Hint     string // remediation shown when the resource is missing
	Opener   Opener // injected for testing
	Required bool   // a missing resource fails the run
}

// Run executes the probe. It never returns an error; a missing resource
// becomes a FAIL result.
func (c *Check) Run() check.Result {
	opener := c.Opener
	if opener == nil {
		opener = &RealOpener{}
	}

	probe := Probe(opener, c.Target.Name, c.Target.Path)

	result := check.Result{
		Name: "resource: " + c.Target.Name,
	}
	result.AddDetailf("path: %s", probe.Path)

	if !probe.Exists {
		result.WithHint(c.Hint)
		return result.Fail("exists: NO", fmt.Errorf("%s not found or not readable: %s", probe.Name, probe.Path))
	}

	result.AddDetail("exists: YES")
	return result.Pass()
}
