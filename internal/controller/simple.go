package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "asympt.dev/pkg/asympt/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(_ context.Context) {}

// DisplayClassification prints the classification and suite tables.
func (s *SimpleUI) DisplayClassification(ctx context.Context, snapshot *m.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderClassificationTable(snapshot))
	s.printf("\n%s", renderSuiteTable(snapshot))

	return nil
}

// DisplaySuiteStart announces a suite run.
func (s *SimpleUI) DisplaySuiteStart(ctx context.Context, suite string, programs int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Benchmarking suite %s (%d program(s))\n", suite, programs)
}

// DisplaySuiteCompleted announces a completed correlation.
func (s *SimpleUI) DisplaySuiteCompleted(ctx context.Context, suite string, programs, sizes int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Suite %s correlated: %d program(s) x %d size(s)\n", suite, programs, sizes)
}

// DisplayDataset prints the normalized dataset table.
func (s *SimpleUI) DisplayDataset(ctx context.Context, report m.BenchmarkReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderDatasetTable(report))

	return nil
}

// DisplayRunSummary prints the run-wide totals.
func (s *SimpleUI) DisplayRunSummary(ctx context.Context, programs int, measurements uint64) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Run complete: %d measurement(s) across %d program(s)\n", measurements, programs)
}

// DisplayFittedModels prints the model ranking.
func (s *SimpleUI) DisplayFittedModels(ctx context.Context, suite string, models []m.FittedModel) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Best fits for %s:\n", suite)

	for i, model := range models {
		s.printf("  %d. %s (error %.4g)\n", i+1, model.Spec, model.Error)
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func renderClassificationTable(snapshot *m.Snapshot) string {
	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Identifier", "Arity", "Gen", "Eval Arg", "Eval Res", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	valid := 0
	invalid := 0

	for _, decl := range sortedDeclarations(snapshot) {
		if reason, ok := snapshot.Invalid[decl.Name]; ok {
			invalid++

			table.Append([]string{decl.Name, "-", "-", "-", "-", "invalid: " + reason})

			continue
		}

		valid++

		arity := snapshot.ProgramArity(decl.Name)
		capability := snapshot.Capabilities[decl.Name]

		table.Append([]string{
			decl.Name,
			arityLabel(arity),
			flag(capability.GeneratableArgs),
			flag(capability.EvaluableArgs),
			flag(capability.EvaluableResult),
			"valid",
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d declaration(s)", len(snapshot.Declarations)),
		"", "", "", "",
		fmt.Sprintf("%d valid / %d invalid", valid, invalid),
	})

	table.Render()

	return buffer.String()
}

func renderSuiteTable(snapshot *m.Snapshot) string {
	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Suite", "Status", "Detail"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	names := make([]string, 0, len(snapshot.Suites)+len(snapshot.InvalidSuites))
	for name := range snapshot.Suites {
		names = append(names, name)
	}

	for name := range snapshot.InvalidSuites {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		if suite, ok := snapshot.Suites[name]; ok {
			detail := fmt.Sprintf("%d program(s), %s", len(suite.Programs), suite.Data)
			table.Append([]string{name, "valid", detail})

			continue
		}

		for _, inputErr := range snapshot.InvalidSuites[name] {
			table.Append([]string{name, "invalid", inputErr.Error()})
		}
	}

	table.Render()

	return buffer.String()
}

func renderDatasetTable(report m.BenchmarkReport) string {
	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Program", "Size", "Runtime", "Samples", "StdDev"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	rows := 0

	for _, program := range report.Programs {
		for _, sized := range report.Results[program] {
			appendReportRow(table, sized.Report)

			rows++
		}
	}

	for _, baseline := range report.Baseline {
		appendReportRow(table, baseline)

		rows++
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d program(s)", len(report.Programs)),
		"", "", "",
		fmt.Sprintf("%d measurement(s)", rows),
	})

	table.Render()

	return buffer.String()
}

func appendReportRow(table *tablewriter.Table, report m.SimpleReport) {
	table.Append([]string{
		report.Program,
		report.Size.String(),
		fmt.Sprintf("%.4g", report.Runtime),
		fmt.Sprintf("%d", report.Samples),
		fmt.Sprintf("%.4g", report.StdDev),
	})
}

func sortedDeclarations(snapshot *m.Snapshot) []m.Declaration {
	decls := make([]m.Declaration, len(snapshot.Declarations))
	copy(decls, snapshot.Declarations)

	sort.Slice(decls, func(i, j int) bool { return decls[i].Name < decls[j].Name })

	return decls
}

func arityLabel(arity m.Arity) string {
	if arity == m.ArityUnsupported {
		return "-"
	}

	return arity.String()
}

func flag(set bool) string {
	if set {
		return "x"
	}

	return ""
}
