package diag

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vertti/ndsdiag/pkg/check"
	"github.com/vertti/ndsdiag/pkg/core"
	"github.com/vertti/ndsdiag/pkg/report"
	"github.com/vertti/ndsdiag/pkg/settings"
	"github.com/vertti/ndsdiag/pkg/testutil"
)

type fakeCore struct{}

func (fakeCore) Close() error { return nil }

type countingConstructor struct {
	err   error
	calls int
	rom   string
}

func (c *countingConstructor) New(_ context.Context, romPath string) (core.Core, error) {
	c.calls++
	c.rom = romPath
	if c.err != nil {
		return nil, c.err
	}
	return fakeCore{}, nil
}

type checkedConstructor struct {
	countingConstructor
	found bool
}

func (c *checkedConstructor) Run() check.Result {
	result := check.Result{Name: "core command: noods-core"}
	if !c.found {
		return result.Fail("not found in PATH", errors.New("not found"))
	}
	return result.Pass()
}

type brokenStore struct{}

func (brokenStore) Bool(string) (bool, error)     { return false, settings.ErrNotInitialized }
func (brokenStore) String(string) (string, error) { return "", settings.ErrNotInitialized }

func defaultStore(t *testing.T) settings.Store {
	t.Helper()
	s := settings.NewFileStore()
	require.NoError(t, s.Load(filepath.Join(t.TempDir(), "absent.yaml")))
	return s
}

func run(t *testing.T, h *Harness, opts Options) (string, int) {
	t.Helper()
	report.DisableColor()
	var buf bytes.Buffer
	h.Reporter = report.New(&buf)
	h.Logger = zaptest.NewLogger(t)
	status := h.Run(context.Background(), opts)
	return buf.String(), status
}

func TestRun_NoArgumentsNoResources(t *testing.T) {
	c := &countingConstructor{}
	h := &Harness{Settings: defaultStore(t), Constructor: c}

	out, status := run(t, h, Options{ResourceDir: t.TempDir()})

	assert.Equal(t, ExitOK, status, "inspection alone does not fail on missing resources")
	for _, name := range []string{"bios9", "bios7", "firmware"} {
		assert.Contains(t, out, "[FAIL] resource: "+name)
	}
	assert.Contains(t, out, "exists: NO")
	assert.Contains(t, out, "1. Provide valid ROM file as argument")
	assert.Equal(t, 0, c.calls)
}

func TestRun_RequireBIOS(t *testing.T) {
	dir := testutil.WriteResources(t, t.TempDir(), "bios9.bin", "bios7.bin")
	h := &Harness{Settings: defaultStore(t)}

	out, status := run(t, h, Options{ResourceDir: dir, RequireBIOS: true})

	assert.Equal(t, ExitFailure, status)
	assert.Contains(t, out, "[OK] resource: bios9")
	assert.Contains(t, out, "[OK] resource: bios7")
	assert.Contains(t, out, "[FAIL] resource: firmware")
}

func TestRun_AllResourcesPresent(t *testing.T) {
	dir := testutil.WriteResources(t, t.TempDir(), "bios9.bin", "bios7.bin", "firmware.bin")
	h := &Harness{Settings: defaultStore(t)}

	out, status := run(t, h, Options{ResourceDir: dir, RequireBIOS: true})

	assert.Equal(t, ExitOK, status)
	assert.NotContains(t, out, "[FAIL]")
	assert.NotContains(t, out, "To fix the failures above")
	assert.Contains(t, out, "Environment check passed")
}

func TestRun_CheckOrder(t *testing.T) {
	dir := t.TempDir()
	rom := filepath.Join(testutil.WriteResources(t, t.TempDir(), "game.nds"), "game.nds")
	h := &Harness{Settings: defaultStore(t), Constructor: &countingConstructor{}}

	out, _ := run(t, h, Options{ResourceDir: dir, ROMPath: rom})

	order := []string{"settings", "resource: bios9", "resource: bios7", "resource: firmware", "resource: rom", "core: "}
	last := -1
	for _, name := range order {
		idx := strings.Index(out, name)
		require.GreaterOrEqual(t, idx, 0, "missing %q", name)
		assert.Greater(t, idx, last, "%q out of order", name)
		last = idx
	}
}

func TestRun_MissingROM(t *testing.T) {
	c := &countingConstructor{}
	h := &Harness{Settings: defaultStore(t), Constructor: c}
	missing := filepath.Join(t.TempDir(), "missing.nds")

	out, status := run(t, h, Options{ResourceDir: t.TempDir(), ROMPath: missing})

	assert.Equal(t, ExitFailure, status)
	assert.Contains(t, out, "[FAIL] resource: rom")
	assert.Contains(t, out, missing)
	assert.Contains(t, out, "ROM file not found")
	assert.Equal(t, 0, c.calls, "core must not be constructed")
}

func TestRun_RequireROMWithoutArgument(t *testing.T) {
	c := &countingConstructor{}
	h := &Harness{Settings: defaultStore(t), Constructor: c}

	out, status := run(t, h, Options{Program: "ndsdiag", RequireROM: true})

	assert.Equal(t, ExitFailure, status)
	assert.Contains(t, out, "Usage: ndsdiag <nds_rom_file>")
	assert.NotContains(t, out, "resource:")
	assert.Equal(t, 0, c.calls)
}

func TestRun_EmptyROMArgument(t *testing.T) {
	c := &countingConstructor{}
	h := &Harness{Settings: defaultStore(t), Constructor: c}

	out, status := run(t, h, Options{ResourceDir: t.TempDir(), HasROM: true, ROMPath: ""})

	assert.Equal(t, ExitFailure, status)
	assert.Contains(t, out, "Checking ROM file...")
	assert.Contains(t, out, "[FAIL] resource: rom")
	assert.Contains(t, out, "Environment check failed")
	assert.Equal(t, 0, c.calls)
}

func TestRun_EmptyROMArgumentSatisfiesRequireROM(t *testing.T) {
	h := &Harness{Settings: defaultStore(t), Constructor: &countingConstructor{}}

	out, status := run(t, h, Options{ResourceDir: t.TempDir(), HasROM: true, RequireROM: true})

	assert.Equal(t, ExitFailure, status)
	assert.NotContains(t, out, "Usage:")
	assert.Contains(t, out, "[FAIL] resource: rom")
}

func TestRun_DefaultConstructorUsesResourceDir(t *testing.T) {
	dir := testutil.WriteResources(t, t.TempDir(), "bios9.bin", "bios7.bin", "firmware.bin")
	rom := filepath.Join(testutil.WriteResources(t, t.TempDir(), "game.nds"), "game.nds")

	cfg := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("directBoot: false\n"), 0o600))
	store := settings.NewFileStore()
	require.NoError(t, store.Load(cfg))

	h := &Harness{Settings: store}

	out, status := run(t, h, Options{ResourceDir: dir, ROMPath: rom, RequireBIOS: true})

	assert.Equal(t, ExitOK, status, out)
	assert.Contains(t, out, "ROM loaded successfully")
	assert.NotContains(t, out, "[FAIL]")
}

func TestResolvePaths(t *testing.T) {
	snap := settings.Snapshot{
		DirectBoot:   true,
		Bios9Path:    "bios9.bin",
		Bios7Path:    "/abs/bios7.bin",
		FirmwarePath: "",
	}

	got := resolvePaths(snap, "sys")

	assert.Equal(t, settings.Snapshot{
		DirectBoot:   true,
		Bios9Path:    filepath.Join("sys", "bios9.bin"),
		Bios7Path:    "/abs/bios7.bin",
		FirmwarePath: "",
	}, got)
	assert.Equal(t, "bios9.bin", snap.Bios9Path, "input snapshot is not modified")
}

func TestRun_CoreOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantOut    string
	}{
		{"success", nil, ExitOK, "core initialized successfully"},
		{"failure with message", errors.New("X: cartridge header checksum mismatch"), ExitFailure, "X: cartridge header checksum mismatch"},
		{"failure without message", core.ErrAbnormalTermination, ExitFailure, "Unknown error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rom := filepath.Join(testutil.WriteResources(t, t.TempDir(), "game.nds"), "game.nds")
			c := &countingConstructor{err: tt.err}
			h := &Harness{Settings: defaultStore(t), Constructor: c}

			out, status := run(t, h, Options{ResourceDir: t.TempDir(), ROMPath: rom})

			assert.Equal(t, tt.wantStatus, status)
			assert.Contains(t, out, tt.wantOut)
			assert.Equal(t, 1, c.calls)
			assert.Equal(t, rom, c.rom)
		})
	}
}

func TestRun_SkipInit(t *testing.T) {
	rom := filepath.Join(testutil.WriteResources(t, t.TempDir(), "game.nds"), "game.nds")
	c := &countingConstructor{}
	h := &Harness{Settings: defaultStore(t), Constructor: c}

	out, status := run(t, h, Options{ResourceDir: t.TempDir(), ROMPath: rom, SkipInit: true})

	assert.Equal(t, ExitOK, status)
	assert.Contains(t, out, "[OK] resource: rom")
	assert.NotContains(t, out, "Initializing core")
	assert.Equal(t, 0, c.calls)
}

func TestRun_SettingsAccessFailed(t *testing.T) {
	rom := filepath.Join(testutil.WriteResources(t, t.TempDir(), "game.nds"), "game.nds")
	c := &countingConstructor{}
	h := &Harness{Settings: brokenStore{}, Constructor: c}

	out, status := run(t, h, Options{ResourceDir: t.TempDir(), ROMPath: rom})

	assert.Equal(t, ExitFailure, status)
	assert.Contains(t, out, "[FAIL] settings")
	assert.Contains(t, out, "configuration access failed")
	assert.Contains(t, out, "[FAIL] resource: bios9", "resource checks still run")
	assert.Contains(t, out, "[OK] resource: rom")
	assert.Equal(t, 0, c.calls)
}

func TestRun_DefaultConstructor(t *testing.T) {
	rom := filepath.Join(testutil.WriteResources(t, t.TempDir(), "game.nds"), "game.nds")
	h := &Harness{Settings: defaultStore(t)}

	out, status := run(t, h, Options{ResourceDir: t.TempDir(), ROMPath: rom})

	assert.Equal(t, ExitOK, status, "direct boot loads the ROM without BIOS files")
	assert.Contains(t, out, "ROM loaded successfully")
}

func TestRun_Idempotent(t *testing.T) {
	dir := testutil.WriteResources(t, t.TempDir(), "bios9.bin")
	rom := filepath.Join(testutil.WriteResources(t, t.TempDir(), "game.nds"), "game.nds")
	h := &Harness{Settings: defaultStore(t), Constructor: &countingConstructor{}}

	first, firstStatus := run(t, h, Options{ResourceDir: dir, ROMPath: rom})
	second, secondStatus := run(t, h, Options{ResourceDir: dir, ROMPath: rom})

	assert.Equal(t, firstStatus, secondStatus)
	assert.Equal(t, first, second)
}

func TestRun_ConstructorPreflight(t *testing.T) {
	tests := []struct {
		name       string
		found      bool
		wantStatus int
		wantCalls  int
	}{
		{"command found", true, ExitOK, 1},
		{"command missing", false, ExitFailure, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rom := filepath.Join(testutil.WriteResources(t, t.TempDir(), "game.nds"), "game.nds")
			c := &checkedConstructor{found: tt.found}
			h := &Harness{Settings: defaultStore(t), Constructor: c}

			out, status := run(t, h, Options{ResourceDir: t.TempDir(), ROMPath: rom})

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCalls, c.calls)
			assert.Contains(t, out, "core command: noods-core")
		})
	}
}
