// Package controller provides output controllers for displaying
// classification, validation and benchmark results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "asympt.dev/pkg/asympt/internal/model"
)

// UI defines the interface for displaying analysis progress and results.
// Implementations can use different output methods (simple text, TUI).
type UI interface {
	Start(ctx context.Context) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for the UI to finish (user closes it)

	// DisplayClassification shows the per-identifier outcome of one
	// classification pass, including invalid declarations and suites.
	DisplayClassification(ctx context.Context, snapshot *m.Snapshot) error

	// DisplaySuiteStart announces a suite's benchmark run.
	DisplaySuiteStart(ctx context.Context, suite string, programs int)

	// DisplaySuiteCompleted announces a suite's completed correlation.
	DisplaySuiteCompleted(ctx context.Context, suite string, programs, sizes int)

	// DisplayDataset shows the normalized per-program dataset.
	DisplayDataset(ctx context.Context, report m.BenchmarkReport) error

	// DisplayRunSummary shows run-wide totals once every suite finished.
	DisplayRunSummary(ctx context.Context, programs int, measurements uint64)

	// DisplayFittedModels shows the regression collaborator's ranking.
	DisplayFittedModels(ctx context.Context, suite string, models []m.FittedModel)
}

// NewUI selects the TUI when stdout is a terminal, the plain printer
// otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether the file is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
