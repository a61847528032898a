package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vertti/ndsdiag/pkg/core"
	"github.com/vertti/ndsdiag/pkg/diag"
	"github.com/vertti/ndsdiag/pkg/report"
	"github.com/vertti/ndsdiag/pkg/resourceprobe"
	"github.com/vertti/ndsdiag/pkg/settings"
)

var (
	diagConfig      string
	diagDir         string
	diagRequireROM  bool
	diagRequireBIOS bool
	diagSkipInit    bool
	diagCoreCmd     string
	diagCoreArgs    []string
	diagNoColor     bool
	diagVerbose     bool
)

// handoffArgs holds the emulator command given after "--", run by main once
// the diagnostics passed.
var handoffArgs []string

func init() {
	f := rootCmd.Flags()
	f.StringVar(&diagConfig, "config", "noods.yaml", "emulator settings file")
	f.StringVar(&diagDir, "dir", ".", "directory holding bios9.bin, bios7.bin and firmware.bin")
	f.BoolVar(&diagRequireROM, "require-rom", false, "fail when no ROM path is given")
	f.BoolVar(&diagRequireBIOS, "require-bios", false, "fail when a BIOS or firmware file is missing")
	f.BoolVar(&diagSkipInit, "skip-init", false, "check files only; never construct the core")
	f.StringVar(&diagCoreCmd, "core-cmd", "", "construct the core by running this command with the ROM path appended")
	f.StringArrayVar(&diagCoreArgs, "core-arg", nil, "argument passed to --core-cmd before the ROM path (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&diagNoColor, "no-color", false, "disable coloured output")
	rootCmd.PersistentFlags().BoolVar(&diagVerbose, "verbose", false, "log diagnostic details to stderr")
}

func runDiag(cmd *cobra.Command, args []string) error {
	handoffArgs = nil

	own, handoff := args, []string(nil)
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		own, handoff = args[:dash], args[dash:]
	}
	if len(own) > 1 {
		return fmt.Errorf("accepts at most 1 ROM path, received %d", len(own))
	}
	var romPath string
	if len(own) == 1 {
		romPath = own[0]
	}

	log, err := newLogger(diagVerbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if colorDisabled(diagNoColor) {
		report.DisableColor()
	}

	store := settings.NewFileStore()
	if err := store.Load(diagConfig); err != nil {
		log.Warn("settings not loaded", zap.String("path", diagConfig), zap.Error(err))
	}

	h := &diag.Harness{
		Settings: store,
		Opener:   &resourceprobe.RealOpener{},
		Reporter: report.New(cmd.OutOrStdout()),
		Logger:   log,
	}
	if diagCoreCmd != "" {
		h.Constructor = &core.ProcessConstructor{Path: diagCoreCmd, Args: diagCoreArgs}
	}

	status := h.Run(cmd.Context(), diag.Options{
		Program:     cmd.Root().Name(),
		ROMPath:     romPath,
		HasROM:      len(own) == 1,
		ResourceDir: diagDir,
		RequireROM:  diagRequireROM,
		RequireBIOS: diagRequireBIOS,
		SkipInit:    diagSkipInit,
	})
	if status != diag.ExitOK {
		return ErrCheckFailed
	}

	handoffArgs = handoff
	return nil
}
