// Package resourceprobe checks that resource files (BIOS, firmware, ROM images)
// can be opened for reading. Contents are never read or validated.
package resourceprobe

import (
	"path/filepath"
)

// Resource names a well-known file the emulator core loads at construction.
type Resource struct {
	Name string // e.g., "bios9"
	File string // e.g., "bios9.bin"
}

// Well-known resources, in the order they are checked and reported.
var (
	Bios9    = Resource{Name: "bios9", File: "bios9.bin"}
	Bios7    = Resource{Name: "bios7", File: "bios7.bin"}
	Firmware = Resource{Name: "firmware", File: "firmware.bin"}
)

// ROMName is the resource name used for the operator-supplied ROM image.
const ROMName = "rom"

// Result is the outcome of a single probe.
type Result struct {
	Name       string
	Path       string
	Exists     bool
	Accessible bool // the path was opened read-only at probe time
}

// Target pairs a resource name with the path to probe.
type Target struct {
	Name string
	Path string
}

// FixedTargets returns the well-known resources located in dir.
func FixedTargets(dir string) []Target {
	fixed := []Resource{Bios9, Bios7, Firmware}
	targets := make([]Target, 0, len(fixed))
	for _, r := range fixed {
		targets = append(targets, Target{Name: r.Name, Path: filepath.Join(dir, r.File)})
	}
	return targets
}

// Probe opens path read-only and releases the handle immediately.
// Every failure, including a directory at path or a panicking Opener,
// is reported as Exists=false, Accessible=false.
func Probe(opener Opener, name, path string) (res Result) {
	res = Result{Name: name, Path: path}
	defer func() {
		if recover() != nil {
			res.Exists, res.Accessible = false, false
		}
	}()

	f, err := opener.Open(path)
	if err != nil {
		return res
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return res
	}

	res.Exists = true
	res.Accessible = true
	return res
}
