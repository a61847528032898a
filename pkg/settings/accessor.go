package settings

import (
	"errors"
	"fmt"

	"github.com/vertti/ndsdiag/pkg/check"
)

// ErrAccessFailed marks every failure to read the configuration.
var ErrAccessFailed = errors.New("configuration access failed")

// Snapshot is the configuration as read once at the start of a run.
type Snapshot struct {
	DirectBoot   bool
	Bios9Path    string
	Bios7Path    string
	FirmwarePath string
}

// AccessError reports which key could not be read.
type AccessError struct {
	Key string
	Err error
}

func (e *AccessError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%v: %v", ErrAccessFailed, e.Err)
	}
	return fmt.Sprintf("%v: reading %s: %v", ErrAccessFailed, e.Key, e.Err)
}

// Unwrap exposes both ErrAccessFailed and the underlying cause.
func (e *AccessError) Unwrap() []error {
	return []error{ErrAccessFailed, e.Err}
}

// Accessor reads a Snapshot from an injected Store.
type Accessor struct {
	Store Store
}

// Read performs a single read pass. Errors and panics raised by the store
// are returned as *AccessError.
func (a *Accessor) Read() (snap Snapshot, err error) {
	var key string
	defer func() {
		if r := recover(); r != nil {
			snap = Snapshot{}
			err = &AccessError{Key: key, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if a.Store == nil {
		return Snapshot{}, &AccessError{Err: ErrNotInitialized}
	}

	key = KeyDirectBoot
	if snap.DirectBoot, err = a.Store.Bool(key); err != nil {
		return Snapshot{}, &AccessError{Key: key, Err: err}
	}

	for _, field := range []struct {
		key string
		dst *string
	}{
		{KeyBios9Path, &snap.Bios9Path},
		{KeyBios7Path, &snap.Bios7Path},
		{KeyFirmwarePath, &snap.FirmwarePath},
	} {
		key = field.key
		if *field.dst, err = a.Store.String(key); err != nil {
			return Snapshot{}, &AccessError{Key: key, Err: err}
		}
	}

	return snap, nil
}

// Run reads the configuration and renders it as a diagnostic line.
func (a *Accessor) Run() check.Result {
	return Result(a.Read())
}

// Result renders the outcome of Read.
func Result(snap Snapshot, err error) check.Result {
	result := check.Result{
		Name: "settings",
	}

	if err != nil {
		result.WithHint("make sure the emulator settings are initialized and the settings file is valid")
		return result.Fail(err.Error(), err)
	}

	result.AddDetailf("directBoot: %t", snap.DirectBoot)
	result.AddDetailf("bios9Path: %s", snap.Bios9Path)
	result.AddDetailf("bios7Path: %s", snap.Bios7Path)
	result.AddDetailf("firmwarePath: %s", snap.FirmwarePath)
	return result.Pass()
}
