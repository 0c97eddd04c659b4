package domain

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"asympt.dev/pkg/asympt/internal/adapter"
	"asympt.dev/pkg/asympt/internal/controller"
	m "asympt.dev/pkg/asympt/internal/model"
)

type fakeDecls struct {
	decls []m.Declaration
}

func (f fakeDecls) Load(_ m.Path) ([]m.Declaration, error) {
	return f.decls, nil
}

type fakeSuites struct {
	file adapter.SuiteFile
}

func (f fakeSuites) Load(_ m.Path) (adapter.SuiteFile, error) {
	return f.file, nil
}

// fakeStore serves raw reports per directory basename and records saved
// datasets in memory.
type fakeStore struct {
	raws  map[string][]m.RawReport
	fails map[string]error
	saved map[string]m.BenchmarkReport
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		raws:  map[string][]m.RawReport{},
		fails: map[string]error{},
		saved: map[string]m.BenchmarkReport{},
	}
}

func (f *fakeStore) LoadRawReports(dir m.Path) ([]m.RawReport, error) {
	key := filepath.Base(string(dir))
	if err := f.fails[key]; err != nil {
		return nil, err
	}

	return f.raws[key], nil
}

func (f *fakeStore) SaveDataset(path m.Path, report m.BenchmarkReport) error {
	f.saved[string(path)] = report
	return nil
}

func (f *fakeStore) LoadDataset(path m.Path) (m.BenchmarkReport, error) {
	report, ok := f.saved[string(path)]
	if !ok {
		return report, errors.New("no dataset")
	}

	return report, nil
}

type fakeRunner struct {
	calls [][]string
}

func (f *fakeRunner) Probe(_ context.Context, _, _ string) (bool, error) {
	return true, nil
}

func (f *fakeRunner) RunBench(_ context.Context, _ string, args []string) (string, error) {
	f.calls = append(f.calls, args)
	return "", nil
}

// recordingUI tracks the UI lifecycle so workflow tests can assert that
// display calls happen while the UI is running.
type recordingUI struct {
	started bool
	waited  bool
	closed  bool

	classifiedWhileStarted bool
	summaryPrograms        int
	summaryMeasurements    uint64
}

func (r *recordingUI) Start(context.Context) error { r.started = true; return nil }

func (r *recordingUI) Close(context.Context) { r.closed = true }

func (r *recordingUI) Wait(context.Context) { r.waited = true }

func (r *recordingUI) DisplayClassification(context.Context, *m.Snapshot) error {
	r.classifiedWhileStarted = r.started
	return nil
}

func (r *recordingUI) DisplaySuiteStart(context.Context, string, int) {}

func (r *recordingUI) DisplaySuiteCompleted(context.Context, string, int, int) {}

func (r *recordingUI) DisplayDataset(context.Context, m.BenchmarkReport) error { return nil }

func (r *recordingUI) DisplayRunSummary(_ context.Context, programs int, measurements uint64) {
	r.summaryPrograms = programs
	r.summaryMeasurements = measurements
}

func (r *recordingUI) DisplayFittedModels(context.Context, string, []m.FittedModel) {}

func testUI() (controller.UI, *bytes.Buffer) {
	var out bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	return controller.NewSimpleUI(cmd), &out
}

func unaryDecl(name string) m.Declaration {
	return m.Declaration{Name: name, Kind: m.KindFunction, TypeText: "[]int -> []int"}
}

func suiteFixture() adapter.SuiteFile {
	file := adapter.SuiteFile{
		Suites: map[string]m.RawSuite{
			"growth": {Programs: []string{"reverse"}},
		},
	}
	file.Capabilities.Generatable = map[string]bool{"[]int": true}
	file.Capabilities.Evaluable = map[string]bool{"[]int": true}

	return file
}

func growthRaws() []m.RawReport {
	return []m.RawReport{
		rawReport("Input Size 5/reverse", 1),
		rawReport("Input Size 10/reverse", 2),
	}
}

func newTestWorkflow(store *fakeStore, runner *fakeRunner) Workflow {
	ui, _ := testUI()

	return NewWorkflow(
		fakeDecls{decls: []m.Declaration{unaryDecl("reverse")}},
		fakeSuites{file: suiteFixture()},
		store,
		runner,
		adapter.NewLocalWorkspaceFS(),
		ui,
		nil,
		nil,
	)
}

func TestWorkflowCheckValidatesSuites(t *testing.T) {
	wf := newTestWorkflow(newFakeStore(), &fakeRunner{})

	snapshot, err := wf.Check(context.Background(), CheckArgs{Threads: 2})
	require.NoError(t, err)

	require.Contains(t, snapshot.Unary, "reverse")
	require.Contains(t, snapshot.Suites, "growth")
	require.Empty(t, snapshot.InvalidSuites)
}

func TestWorkflowCheckDrivesUILifecycle(t *testing.T) {
	ui := &recordingUI{}
	wf := NewWorkflow(
		fakeDecls{decls: []m.Declaration{unaryDecl("reverse")}},
		fakeSuites{file: suiteFixture()},
		newFakeStore(),
		&fakeRunner{},
		adapter.NewLocalWorkspaceFS(),
		ui,
		nil,
		nil,
	)

	_, err := wf.Check(context.Background(), CheckArgs{Threads: 1})
	require.NoError(t, err)

	require.True(t, ui.started)
	require.True(t, ui.classifiedWhileStarted, "classification displayed before the UI was started")
	require.True(t, ui.waited)
	require.True(t, ui.closed)
}

func TestWorkflowCheckBucketsInvalidSuites(t *testing.T) {
	file := suiteFixture()
	file.Suites["broken"] = m.RawSuite{Programs: []string{"missing"}}

	ui, _ := testUI()
	wf := NewWorkflow(
		fakeDecls{decls: []m.Declaration{unaryDecl("reverse")}},
		fakeSuites{file: file},
		newFakeStore(),
		&fakeRunner{},
		adapter.NewLocalWorkspaceFS(),
		ui,
		nil,
		nil,
	)

	snapshot, err := wf.Check(context.Background(), CheckArgs{Threads: 1})
	require.NoError(t, err)

	require.Contains(t, snapshot.Suites, "growth")
	require.Contains(t, snapshot.InvalidSuites, "broken")
	require.NotContains(t, snapshot.Suites, "broken")
}

func TestWorkflowRunBenchmarksAndPersists(t *testing.T) {
	store := newFakeStore()
	store.raws["growth"] = growthRaws()

	runner := &fakeRunner{}
	wf := newTestWorkflow(store, runner)

	reports := m.Path(t.TempDir())

	err := wf.Run(context.Background(), RunArgs{
		CheckArgs: CheckArgs{Threads: 1},
		Reports:   reports,
	})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	require.Equal(t, "--suite", runner.calls[0][0])
	require.Equal(t, "growth", runner.calls[0][1])

	datasetPath := filepath.Join(string(reports), "growth", datasetFileName)
	saved, ok := store.saved[datasetPath]
	require.True(t, ok)
	require.Equal(t, []string{"reverse"}, saved.Programs)
	require.Len(t, saved.Results["reverse"], 2)
}

func TestWorkflowRunDisplaysRunTotals(t *testing.T) {
	store := newFakeStore()
	store.raws["growth"] = growthRaws()

	ui := &recordingUI{}
	wf := NewWorkflow(
		fakeDecls{decls: []m.Declaration{unaryDecl("reverse")}},
		fakeSuites{file: suiteFixture()},
		store,
		&fakeRunner{},
		adapter.NewLocalWorkspaceFS(),
		ui,
		nil,
		nil,
	)

	err := wf.Run(context.Background(), RunArgs{
		CheckArgs: CheckArgs{Threads: 1},
		Reports:   m.Path(t.TempDir()),
	})
	require.NoError(t, err)

	require.Equal(t, 1, ui.summaryPrograms)
	require.Equal(t, uint64(2), ui.summaryMeasurements)
}

func TestWorkflowRunIsolatesSuiteFailures(t *testing.T) {
	file := suiteFixture()
	file.Suites["doomed"] = m.RawSuite{Programs: []string{"reverse"}}

	store := newFakeStore()
	store.raws["growth"] = growthRaws()
	store.fails["doomed"] = m.Structuralf("harness produced nothing")

	runner := &fakeRunner{}
	ui, _ := testUI()
	wf := NewWorkflow(
		fakeDecls{decls: []m.Declaration{unaryDecl("reverse")}},
		fakeSuites{file: file},
		store,
		runner,
		adapter.NewLocalWorkspaceFS(),
		ui,
		nil,
		nil,
	)

	reports := m.Path(t.TempDir())

	err := wf.Run(context.Background(), RunArgs{
		CheckArgs: CheckArgs{Threads: 1},
		Reports:   reports,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "doomed")

	// The healthy suite still ran and persisted its dataset.
	require.Len(t, runner.calls, 2)
	require.Contains(t, store.saved, filepath.Join(string(reports), "growth", datasetFileName))
}

func TestWorkflowReportLoadsPersistedDataset(t *testing.T) {
	store := newFakeStore()
	reports := m.Path(t.TempDir())

	store.saved[filepath.Join(string(reports), datasetFileName)] = m.BenchmarkReport{
		Programs: []string{"reverse"},
		Results:  map[string][]m.SizedReport{"reverse": nil},
	}

	ui, out := testUI()
	wf := NewWorkflow(
		fakeDecls{}, fakeSuites{}, store, &fakeRunner{},
		adapter.NewLocalWorkspaceFS(), ui, nil, nil,
	)

	err := wf.Report(context.Background(), ReportArgs{Reports: reports})
	require.NoError(t, err)
	require.Contains(t, out.String(), "reverse")
}

func TestWorkflowReportScansSuiteSubdirectories(t *testing.T) {
	store := newFakeStore()
	reports := m.Path(t.TempDir())

	// A run persists each suite's dataset in its own subdirectory.
	require.NoError(t, os.MkdirAll(filepath.Join(string(reports), "growth"), 0o755))

	store.saved[filepath.Join(string(reports), "growth", datasetFileName)] = m.BenchmarkReport{
		Programs: []string{"reverse"},
		Results:  map[string][]m.SizedReport{"reverse": nil},
	}

	ui, out := testUI()
	wf := NewWorkflow(
		fakeDecls{}, fakeSuites{}, store, &fakeRunner{},
		adapter.NewLocalWorkspaceFS(), ui, nil, nil,
	)

	err := wf.Report(context.Background(), ReportArgs{Reports: reports})
	require.NoError(t, err)
	require.Contains(t, out.String(), "reverse")
}

func TestWorkflowReportFailsWithoutDatasets(t *testing.T) {
	ui, _ := testUI()
	wf := NewWorkflow(
		fakeDecls{}, fakeSuites{}, newFakeStore(), &fakeRunner{},
		adapter.NewLocalWorkspaceFS(), ui, nil, nil,
	)

	err := wf.Report(context.Background(), ReportArgs{Reports: m.Path(t.TempDir())})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no datasets")
}

func TestWorkflowReportFallsBackToRawReports(t *testing.T) {
	store := newFakeStore()
	reports := m.Path(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, os.MkdirAll(string(reports), 0o755))

	store.raws[filepath.Base(string(reports))] = growthRaws()

	ui, out := testUI()
	wf := NewWorkflow(
		fakeDecls{}, fakeSuites{}, store, &fakeRunner{},
		adapter.NewLocalWorkspaceFS(), ui, nil, nil,
	)

	err := wf.Report(context.Background(), ReportArgs{Reports: reports})
	require.NoError(t, err)
	require.Contains(t, out.String(), "reverse")
}
