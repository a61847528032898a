// Package settings reads the emulator's process-wide configuration.
//
// The store is owned and populated by the emulator front end; this package
// only reads from it, once per run.
package settings

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Keys understood by the store.
const (
	KeyDirectBoot   = "directBoot"
	KeyBios9Path    = "bios9Path"
	KeyBios7Path    = "bios7Path"
	KeyFirmwarePath = "firmwarePath"
)

var (
	// ErrNotInitialized is returned by a store read before it was loaded.
	ErrNotInitialized = errors.New("settings store not initialized")
	// ErrUnknownKey is returned for keys the store does not hold.
	ErrUnknownKey = errors.New("unknown settings key")
)

// Store exposes named read accessors over the configuration.
type Store interface {
	Bool(key string) (bool, error)
	String(key string) (string, error)
}

type fileSettings struct {
	DirectBoot   *bool   `yaml:"directBoot"`
	Bios9Path    *string `yaml:"bios9Path"`
	Bios7Path    *string `yaml:"bios7Path"`
	FirmwarePath *string `yaml:"firmwarePath"`
}

// FileStore is a Store backed by a YAML settings file.
// The zero value is an uninitialized store.
type FileStore struct {
	loaded  bool
	bools   map[string]bool
	strings map[string]string
}

// NewFileStore returns an uninitialized store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Load reads the settings file at path. A missing file loads the defaults.
// A malformed file leaves the store uninitialized.
func (s *FileStore) Load(path string) error {
	var fsettings fileSettings

	data, err := os.ReadFile(path) //nolint:gosec // settings path comes from the operator
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return fmt.Errorf("failed to read settings file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &fsettings); err != nil {
			return fmt.Errorf("failed to parse settings file %s: %w", path, err)
		}
	}

	s.bools = map[string]bool{KeyDirectBoot: true}
	s.strings = map[string]string{
		KeyBios9Path:    "bios9.bin",
		KeyBios7Path:    "bios7.bin",
		KeyFirmwarePath: "firmware.bin",
	}
	if fsettings.DirectBoot != nil {
		s.bools[KeyDirectBoot] = *fsettings.DirectBoot
	}
	for key, v := range map[string]*string{
		KeyBios9Path:    fsettings.Bios9Path,
		KeyBios7Path:    fsettings.Bios7Path,
		KeyFirmwarePath: fsettings.FirmwarePath,
	} {
		if v != nil {
			s.strings[key] = *v
		}
	}
	s.loaded = true
	return nil
}

// Bool returns a boolean setting.
func (s *FileStore) Bool(key string) (bool, error) {
	if !s.loaded {
		return false, ErrNotInitialized
	}
	v, ok := s.bools[key]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return v, nil
}

// String returns a string setting.
func (s *FileStore) String(key string) (string, error) {
	if !s.loaded {
		return "", ErrNotInitialized
	}
	v, ok := s.strings[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return v, nil
}
