// Package diag sequences the preflight run: configuration first, then the
// fixed resources, then the operator's ROM, and finally (when everything the
// core needs is present) one guarded construction attempt.
package diag

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/vertti/ndsdiag/pkg/check"
	"github.com/vertti/ndsdiag/pkg/core"
	"github.com/vertti/ndsdiag/pkg/guard"
	"github.com/vertti/ndsdiag/pkg/report"
	"github.com/vertti/ndsdiag/pkg/resourceprobe"
	"github.com/vertti/ndsdiag/pkg/settings"
)

// Process exit statuses.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Options selects which checks run.
type Options struct {
	Program     string // name shown in usage
	ROMPath     string // operator-supplied ROM
	HasROM      bool   // a ROM argument was given, even an empty one
	ResourceDir string // where the fixed resources live; default "."
	RequireROM  bool   // a missing ROM argument is an error
	RequireBIOS bool   // a missing fixed resource fails the run
	SkipInit    bool   // never construct the core
}

// Harness holds the collaborators of a run.
type Harness struct {
	Settings    settings.Store
	Opener      resourceprobe.Opener
	Constructor core.Constructor // nil uses core.ImageConstructor over the settings snapshot
	Reporter    *report.Reporter
	Logger      *zap.Logger
}

// Run executes every check, reports it, and returns the exit status.
// No check is skipped because an earlier one failed; only core construction
// is withheld when its prerequisites are known to be missing.
func (h *Harness) Run(ctx context.Context, opts Options) int {
	log := h.Logger
	if log == nil {
		log = zap.NewNop()
	}
	r := h.Reporter

	program := opts.Program
	if program == "" {
		program = "ndsdiag"
	}
	dir := opts.ResourceDir
	if dir == "" {
		dir = "."
	}

	r.Banner(program + " preflight")

	romGiven := opts.HasROM || opts.ROMPath != ""

	if opts.RequireROM && !romGiven {
		r.Usage(program)
		r.Note("A ROM image is required to attempt core initialization.")
		log.Debug("ROM argument missing")
		return ExitFailure
	}

	var results []check.Result
	failed := false

	r.Section("Checking configuration...")
	snap, err := (&settings.Accessor{Store: h.Settings}).Read()
	res := settings.Result(snap, err)
	r.Result(res)
	results = append(results, res)
	settingsOK := err == nil
	if !settingsOK {
		log.Warn("settings access failed", zap.Error(err))
		failed = true
	}

	r.Section("Checking for BIOS files...")
	for _, target := range resourceprobe.FixedTargets(dir) {
		c := &resourceprobe.Check{
			Target:   target,
			Hint:     fmt.Sprintf("place %s in %s", filepath.Base(target.Path), dir),
			Opener:   h.Opener,
			Required: opts.RequireBIOS,
		}
		res := c.Run()
		r.Result(res)
		results = append(results, res)
		log.Debug("checked resource", zap.String("name", target.Name), zap.String("path", target.Path), zap.Bool("exists", res.OK()))
		if !res.OK() && c.Required {
			failed = true
		}
	}

	romOK := true
	if romGiven {
		r.Section("Checking ROM file...")
		c := &resourceprobe.Check{
			Target:   resourceprobe.Target{Name: resourceprobe.ROMName, Path: opts.ROMPath},
			Hint:     "pass the path of a readable ROM image",
			Opener:   h.Opener,
			Required: true,
		}
		res := c.Run()
		r.Result(res)
		results = append(results, res)
		romOK = res.OK()
		log.Debug("checked resource", zap.String("name", resourceprobe.ROMName), zap.String("path", opts.ROMPath), zap.Bool("exists", romOK))
	}

	r.Remediation(results, dir)

	if !romOK {
		r.Section("ROM file not found, this would cause Core construction to fail!")
		r.Note("Note: Core requires either valid ROM or BIOS files present.")
		r.Summary(false)
		return ExitFailure
	}

	if romGiven && !opts.SkipInit {
		r.Section("Initializing core...")
		if !settingsOK {
			r.Note("skipped: configuration is unavailable")
			r.Summary(false)
			return ExitFailure
		}

		constructor := h.Constructor
		if constructor == nil {
			constructor = &core.ImageConstructor{Settings: resolvePaths(snap, dir)}
		}
		if pre, ok := constructor.(check.Checker); ok {
			res := pre.Run()
			r.Result(res)
			if !res.OK() {
				r.Remediation([]check.Result{res}, dir)
				r.Summary(false)
				return ExitFailure
			}
		}

		g := &guard.Guard{Constructor: constructor, Logger: log}
		outcome := g.Attempt(ctx, opts.ROMPath)
		r.Outcome(outcome, opts.ROMPath)
		log.Debug("core construction finished", zap.Stringer("outcome", outcome.Kind))
		if !outcome.OK() {
			failed = true
		}
	}

	r.Summary(!failed)
	if failed {
		return ExitFailure
	}
	return ExitOK
}

// resolvePaths anchors relative image paths at the resource directory, so the
// core loads the same files the resource checks saw.
func resolvePaths(snap settings.Snapshot, dir string) settings.Snapshot {
	for _, p := range []*string{&snap.Bios9Path, &snap.Bios7Path, &snap.FirmwarePath} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return snap
}
