package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vertti/ndsdiag/pkg/report"
	"github.com/vertti/ndsdiag/pkg/syscheck"
)

var (
	runtimeOS   string
	runtimeArch string
)

var runtimeCmd = &cobra.Command{
	Use:   "runtime [args...]",
	Short: "Report the runtime the harness runs on",
	Long: `Print the arguments received and the OS and architecture of this build.
Use it first on a new platform port to confirm the binary starts at all.

Examples:
  ndsdiag runtime
  ndsdiag runtime --arch arm64
  ndsdiag runtime --os linux --arch arm64`,
	Args: cobra.ArbitraryArgs,
	RunE: runRuntimeCheck,
}

func init() {
	runtimeCmd.Flags().StringVar(&runtimeOS, "os", "", "required OS (linux, darwin, windows)")
	runtimeCmd.Flags().StringVar(&runtimeArch, "arch", "", "required architecture (amd64, arm64)")
	rootCmd.AddCommand(runtimeCmd)
}

func runRuntimeCheck(cmd *cobra.Command, args []string) error {
	if colorDisabled(diagNoColor) {
		report.DisableColor()
	}
	r := report.New(cmd.OutOrStdout())
	r.Banner(cmd.Root().Name() + " runtime")

	argv := append([]string{os.Args[0]}, args...)
	c := &syscheck.Check{
		ExpectedOS:   runtimeOS,
		ExpectedArch: runtimeArch,
		Info:         &syscheck.RealSysInfo{Argv: argv},
	}
	if err := runCheck(cmd, c); err != nil {
		r.Summary(false)
		return err
	}
	r.Summary(true)
	return nil
}
