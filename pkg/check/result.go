package check

// Status represents the outcome of a check.
type Status string

const (
	StatusOK   Status = "OK"
	StatusFail Status = "FAIL"
)

// Result holds the outcome of a single diagnostic line.
type Result struct {
	Name    string   // e.g., "settings", "resource: bios9"
	Status  Status   // OK or FAIL
	Details []string // human-readable details
	Hint    string   // remediation shown when the check fails
	Err     error    // underlying error for failures
}

// OK returns true if the check passed.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// Failed returns the results that did not pass, preserving order.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}
