package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vertti/ndsdiag/pkg/exec"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, ErrCheckFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	// Checks passed - hand off to the emulator if a command followed "--"
	if len(handoffArgs) > 0 {
		if err := exec.Handoff(&exec.RealExecutor{}, handoffArgs); err != nil {
			fmt.Fprintf(os.Stderr, "exec: %v\n", err)
			os.Exit(1)
		}
	}
}

var rootCmd = &cobra.Command{
	Use:   "ndsdiag [rom-path] [-- emulator [args...]]",
	Short: "Preflight diagnostics for the NooDS emulator core",
	Long: `ndsdiag validates the emulator settings and the BIOS, firmware and ROM
images before constructing the emulator core, which may crash outright when
they are missing.

Examples:
  ndsdiag                               # inspect settings and BIOS files
  ndsdiag game.nds                      # also check the ROM and construct the core
  ndsdiag --skip-init game.nds          # check the ROM without constructing the core
  ndsdiag --require-bios                # fail when a BIOS or firmware file is missing
  ndsdiag --core-cmd noods-core game.nds  # construct the core in a child process
  ndsdiag game.nds -- noods game.nds    # start the emulator once everything passed`,
	Version:       Version,
	Args:          cobra.ArbitraryArgs,
	RunE:          runDiag,
	SilenceUsage:  true,
	SilenceErrors: true,
}
