package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vertti/ndsdiag/pkg/check"
	"github.com/vertti/ndsdiag/pkg/report"
)

// ErrCheckFailed is returned when a diagnostic run fails.
// The returned error causes main to exit with code 1.
var ErrCheckFailed = errors.New("check failed")

// Checker is implemented by all check types.
type Checker interface {
	Run() check.Result
}

// runCheck executes a single check, prints the result, and returns
// ErrCheckFailed if it did not pass.
func runCheck(cmd *cobra.Command, c Checker) error {
	result := c.Run()
	report.New(cmd.OutOrStdout()).Result(result)

	if !result.OK() {
		return ErrCheckFailed
	}
	return nil
}

// newLogger builds the diagnostic logger. It writes to stderr so the
// transcript on stdout stays clean.
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// colorDisabled reports whether the operator asked for plain output.
func colorDisabled(noColor bool) bool {
	if noColor {
		return true
	}
	_, set := os.LookupEnv("NO_COLOR")
	return set
}
