// Package report renders the diagnostic transcript: one line per check,
// remediation guidance when something failed, and the core outcome.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jwalton/go-supportscolor"

	"github.com/vertti/ndsdiag/pkg/check"
	"github.com/vertti/ndsdiag/pkg/guard"
)

var (
	green = "\033[32m"
	red   = "\033[31m"
	dim   = "\033[2m"
	reset = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		DisableColor()
	}
}

// DisableColor turns off ANSI colour codes.
func DisableColor() {
	green, red, dim, reset = "", "", "", ""
}


// Reporter writes the transcript to Out. It formats only; it makes no
// pass/fail decisions of its own.
type Reporter struct {
	Out io.Writer
}

// New returns a Reporter writing to w.
func New(w io.Writer) *Reporter {
	return &Reporter{Out: w}
}

// Banner writes the run header.
func (r *Reporter) Banner(title string) {
	r.printf("=== %s ===\n", title)
}

// Section writes a blank line followed by a heading.
func (r *Reporter) Section(title string) {
	r.printf("\n%s\n", title)
}

// Result writes a check result with its details.
func (r *Reporter) Result(res check.Result) {
	indent := "     "
	if res.OK() {
		r.printf("%s[OK]%s %s\n", green, reset, res.Name)
	} else {
		r.printf("%s[FAIL]%s %s\n", red, reset, res.Name)
		indent = "       "
	}
	for _, d := range res.Details {
		for _, line := range strings.Split(formatLabel(d), "\n") {
			r.printf("%s%s\n", indent, line)
		}
	}
}

// Results writes every result in order.
func (r *Reporter) Results(results []check.Result) {
	for _, res := range results {
		r.Result(res)
	}
}

// Remediation writes guidance for the failed results, naming dir as the
// place for the BIOS and firmware files. Nothing is written when every
// result passed.
func (r *Reporter) Remediation(results []check.Result, dir string) {
	failed := check.Failed(results)
	if len(failed) == 0 {
		return
	}

	r.Section("To fix the failures above:")
	seen := make(map[string]bool)
	for _, res := range failed {
		if res.Hint == "" || seen[res.Hint] {
			continue
		}
		seen[res.Hint] = true
		r.printf("  - %s\n", res.Hint)
	}
	r.printf("1. Provide valid ROM file as argument\n")
	r.printf("2. Or place bios9.bin, bios7.bin, firmware.bin in %s\n", describeDir(dir))
}

// Outcome writes the result of the core construction attempt.
func (r *Reporter) Outcome(o guard.Outcome, romPath string) {
	r.Result(OutcomeResult(o, romPath))
}

// Summary writes the closing line.
func (r *Reporter) Summary(ok bool) {
	if ok {
		r.printf("\n%sEnvironment check passed%s\n", green, reset)
		return
	}
	r.printf("\n%sEnvironment check failed%s\n", red, reset)
}

// Note writes a plain line.
func (r *Reporter) Note(text string) {
	r.printf("%s\n", text)
}

// Usage writes the message shown when a required ROM argument is absent.
func (r *Reporter) Usage(program string) {
	r.printf("Usage: %s <nds_rom_file>\n", program)
}

// OutcomeResult converts a guard outcome into a diagnostic line.
func OutcomeResult(o guard.Outcome, romPath string) check.Result {
	result := check.Result{Name: "core"}
	if romPath != "" {
		result.Name = "core: " + romPath
	}

	switch o.Kind {
	case guard.Success:
		result.AddDetail("core initialized successfully")
		if romPath != "" {
			result.AddDetail("ROM loaded successfully")
		}
		return result.Pass()
	case guard.FailedWithMessage:
		result.WithHint("the core rejected its inputs; see the error above")
		return result.Fail("error: "+o.Message, fmt.Errorf("%s", o.Message))
	case guard.FailedUnknown:
		result.WithHint("the core failed without a message; re-run with --verbose or use --core-cmd to isolate crashes")
		return result.Fail("Unknown error occurred", fmt.Errorf("core construction failed: %s", o.Kind))
	default:
		result.WithHint("the core was never constructed; check the lines above for the reason")
		return result.Fail("not attempted", fmt.Errorf("core construction %s", o.Kind))
	}
}

func describeDir(dir string) string {
	if dir == "" || dir == "." {
		return "current directory"
	}
	return dir
}

// formatLabel dims the "label:" prefix of a detail line.
func formatLabel(s string) string {
	label, value, ok := strings.Cut(s, ":")
	if !ok || dim == "" {
		return s
	}
	return dim + label + ":" + reset + value
}

func (r *Reporter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.Out, format, args...)
}
