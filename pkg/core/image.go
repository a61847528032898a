package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vertti/ndsdiag/pkg/settings"
)

var (
	ErrBiosMissing     = errors.New("BIOS image could not be loaded")
	ErrFirmwareMissing = errors.New("firmware image could not be loaded")
	ErrRomMissing      = errors.New("ROM image could not be loaded")
)

// ImageOpener abstracts file operations for testability.
type ImageOpener interface {
	Open(name string) (io.ReadCloser, error)
}

// RealImageOpener implements ImageOpener using the real filesystem.
type RealImageOpener struct{}

func (r *RealImageOpener) Open(name string) (io.ReadCloser, error) {
	return os.Open(name) //nolint:gosec // paths come from settings or the operator
}

// ImageCore is the in-process core: the loaded images, held in memory.
type ImageCore struct {
	Bios9    []byte
	Bios7    []byte
	Firmware []byte
	ROM      []byte
}

// Close releases the images.
func (c *ImageCore) Close() error {
	c.Bios9, c.Bios7, c.Firmware, c.ROM = nil, nil, nil, nil
	return nil
}

// ImageConstructor loads the images named by the settings snapshot the way the
// emulator does at start-up: BIOS and firmware are required unless direct boot
// is enabled and a ROM is given.
type ImageConstructor struct {
	Settings settings.Snapshot
	Opener   ImageOpener
}

// New loads the images and returns an *ImageCore.
func (c *ImageConstructor) New(ctx context.Context, romPath string) (Core, error) {
	opener := c.Opener
	if opener == nil {
		opener = &RealImageOpener{}
	}

	ic := &ImageCore{}
	needSystem := !c.Settings.DirectBoot || romPath == ""

	for _, img := range []struct {
		path string
		dst  *[]byte
		err  error
	}{
		{c.Settings.Bios9Path, &ic.Bios9, ErrBiosMissing},
		{c.Settings.Bios7Path, &ic.Bios7, ErrBiosMissing},
		{c.Settings.FirmwarePath, &ic.Firmware, ErrFirmwareMissing},
	} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := readImage(opener, img.path)
		if err != nil {
			if needSystem {
				return nil, fmt.Errorf("%w: %s: %w", img.err, img.path, err)
			}
			continue
		}
		*img.dst = data
	}

	if romPath != "" {
		data, err := readImage(opener, romPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrRomMissing, romPath, err)
		}
		ic.ROM = data
	}

	return ic, nil
}

func readImage(opener ImageOpener, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("no path configured")
	}
	f, err := opener.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}
