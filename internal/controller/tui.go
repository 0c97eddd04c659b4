package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "asympt.dev/pkg/asympt/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea for interactive progress display.
type TUI struct {
	cmd     *cobra.Command
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{cmd: cmd, done: make(chan struct{})}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newRunModel()
	t.program = tea.NewProgram(model, tea.WithOutput(t.cmd.OutOrStdout()))

	go func() {
		defer close(t.done)

		if _, err := t.program.Run(); err != nil {
			t.cmd.PrintErrf("ui error: %v\n", err)
		}
	}()

	return nil
}

// Close asks the program to quit.
func (t *TUI) Close(_ context.Context) {
	if t.program != nil {
		t.program.Quit()
	}
}

// Wait blocks until the user closes the view.
func (t *TUI) Wait(ctx context.Context) {
	if t.program == nil {
		return
	}

	select {
	case <-ctx.Done():
	case <-t.done:
	}
}

// DisplayClassification sends the rendered classification tables.
func (t *TUI) DisplayClassification(ctx context.Context, snapshot *m.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.send(sectionMsg{body: renderClassificationTable(snapshot) + "\n" + renderSuiteTable(snapshot)})

	return nil
}

// DisplaySuiteStart marks a suite as running.
func (t *TUI) DisplaySuiteStart(ctx context.Context, suite string, programs int) {
	if err := ctx.Err(); err != nil {
		return
	}

	t.send(statusMsg{text: fmt.Sprintf("benchmarking %s (%d program(s))", suite, programs)})
}

// DisplaySuiteCompleted marks a suite as correlated.
func (t *TUI) DisplaySuiteCompleted(ctx context.Context, suite string, programs, sizes int) {
	if err := ctx.Err(); err != nil {
		return
	}

	t.send(completedMsg{text: fmt.Sprintf("%s: %d program(s) x %d size(s)", suite, programs, sizes)})
}

// DisplayDataset sends the rendered dataset table.
func (t *TUI) DisplayDataset(ctx context.Context, report m.BenchmarkReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.send(sectionMsg{body: renderDatasetTable(report)})

	return nil
}

// DisplayRunSummary sends the run-wide totals.
func (t *TUI) DisplayRunSummary(ctx context.Context, programs int, measurements uint64) {
	if err := ctx.Err(); err != nil {
		return
	}

	t.send(completedMsg{text: fmt.Sprintf("run complete: %d measurement(s) across %d program(s)", measurements, programs)})
}

// DisplayFittedModels sends the model ranking.
func (t *TUI) DisplayFittedModels(ctx context.Context, suite string, models []m.FittedModel) {
	if err := ctx.Err(); err != nil {
		return
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Best fits for %s:\n", suite)

	for i, model := range models {
		fmt.Fprintf(&b, "  %d. %s (error %.4g)\n", i+1, model.Spec, model.Error)
	}

	t.send(sectionMsg{body: b.String()})
}

func (t *TUI) send(msg tea.Msg) {
	if t.program != nil {
		t.program.Send(msg)
	}
}

type statusMsg struct{ text string }

type completedMsg struct{ text string }

type sectionMsg struct{ body string }

// runModel is the Bubble Tea model behind the TUI: a spinner with the
// current status line, the completed steps, and any rendered sections.
type runModel struct {
	spin      spinner.Model
	status    string
	completed []string
	sections  []string
	quitting  bool
}

func newRunModel() runModel {
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return runModel{spin: spin}
}

func (rm runModel) Init() tea.Cmd {
	return rm.spin.Tick
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			rm.quitting = true
			return rm, tea.Quit
		}

		return rm, nil

	case statusMsg:
		rm.status = msg.text
		return rm, nil

	case completedMsg:
		rm.status = ""
		rm.completed = append(rm.completed, msg.text)

		return rm, nil

	case sectionMsg:
		rm.sections = append(rm.sections, msg.body)
		return rm, nil

	case spinner.TickMsg:
		var cmd tea.Cmd

		rm.spin, cmd = rm.spin.Update(msg)

		return rm, cmd
	}

	return rm, nil
}

func (rm runModel) View() string {
	if rm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("asympt") + "\n\n")

	for _, section := range rm.sections {
		b.WriteString(section)
		b.WriteString("\n")
	}

	for _, step := range rm.completed {
		b.WriteString("  done " + step + "\n")
	}

	if rm.status != "" {
		b.WriteString(rm.spin.View() + " " + statusStyle.Render(rm.status) + "\n")
	}

	b.WriteString(statusStyle.Render("\npress q to quit\n"))

	return b.String()
}
