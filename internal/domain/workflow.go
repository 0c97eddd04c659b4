package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"asympt.dev/pkg/asympt/internal/adapter"
	"asympt.dev/pkg/asympt/internal/controller"
	m "asympt.dev/pkg/asympt/internal/model"
	pkg "asympt.dev/pkg/asympt/pkg"
)

// CheckArgs configures a classification/validation pass.
type CheckArgs struct {
	Declarations m.Path
	Suites       m.Path
	Threads      int
}

// RunArgs configures a full benchmark run.
type RunArgs struct {
	CheckArgs

	// Reports is the directory the harness writes raw reports into and
	// where correlated datasets are persisted.
	Reports m.Path
}

// ReportArgs configures re-display of a previous run.
type ReportArgs struct {
	Reports m.Path
}

// Workflow coordinates the classification, validation, benchmarking and
// correlation pipeline.
type Workflow interface {
	Check(ctx context.Context, args CheckArgs) (*m.Snapshot, error)
	Run(ctx context.Context, args RunArgs) error
	Report(ctx context.Context, args ReportArgs) error
}

type workflow struct {
	decls  adapter.DeclSource
	suites adapter.SuiteSource
	store  adapter.ReportStore
	runner adapter.ToolRunner
	fs     adapter.WorkspaceFS
	ui     controller.UI

	// oracle may be nil; the static table from the suites file is used
	// instead.
	oracle adapter.CapabilityOracle

	// fitter is optional; without one the dataset is persisted and
	// displayed but no models are fitted.
	fitter adapter.RegressionFitter
}

// NewWorkflow constructs a Workflow with the provided dependencies.
func NewWorkflow(
	decls adapter.DeclSource,
	suites adapter.SuiteSource,
	store adapter.ReportStore,
	runner adapter.ToolRunner,
	fs adapter.WorkspaceFS,
	ui controller.UI,
	oracle adapter.CapabilityOracle,
	fitter adapter.RegressionFitter,
) Workflow {
	return &workflow{
		decls:  decls,
		suites: suites,
		store:  store,
		runner: runner,
		fs:     fs,
		ui:     ui,
		oracle: oracle,
		fitter: fitter,
	}
}

const datasetFileName = "dataset.gob"

func (w *workflow) Check(ctx context.Context, args CheckArgs) (*m.Snapshot, error) {
	// The UI must be running before anything is displayed: the TUI drops
	// messages sent before Start.
	if err := w.ui.Start(ctx); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return nil, err
	}

	defer w.ui.Close(ctx)

	snapshot, err := w.classifyAndValidate(ctx, args)
	if err != nil {
		return nil, err
	}

	if err := w.displayClassification(ctx, snapshot); err != nil {
		return nil, err
	}

	w.ui.Wait(ctx)

	return snapshot, nil
}

func (w *workflow) displayClassification(ctx context.Context, snapshot *m.Snapshot) error {
	if err := w.ui.DisplayClassification(ctx, snapshot); err != nil {
		slog.Error("Failed to display classification", "error", err)
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

func (w *workflow) classifyAndValidate(ctx context.Context, args CheckArgs) (*m.Snapshot, error) {
	decls, err := w.decls.Load(args.Declarations)
	if err != nil {
		slog.Error("Failed to load declarations", "path", args.Declarations, "error", err)
		return nil, fmt.Errorf("load declarations: %w", err)
	}

	suiteFile, err := w.suites.Load(args.Suites)
	if err != nil {
		slog.Error("Failed to load suites", "path", args.Suites, "error", err)
		return nil, fmt.Errorf("load suites: %w", err)
	}

	oracle := w.oracle
	if oracle == nil {
		oracle = adapter.NewStaticOracle(
			suiteFile.Capabilities.Generatable,
			suiteFile.Capabilities.Evaluable,
		)
	}

	snapshot, err := Classify(ctx, decls, suiteFile.TestData, oracle)
	if err != nil {
		slog.Error("Classification pass failed", "error", err)
		return nil, fmt.Errorf("classify: %w", err)
	}

	if err := w.validateSuites(ctx, snapshot, suiteFile, args.Threads); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// validateSuites validates every suite record against the snapshot.
// Suites are independent, so they validate in parallel; results land in
// exactly one of the snapshot's suite buckets.
func (w *workflow) validateSuites(ctx context.Context, snapshot *m.Snapshot, suiteFile adapter.SuiteFile, threads int) error {
	if threads < 1 {
		threads = 1
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	var mu sync.Mutex

	for name, raw := range suiteFile.Suites {
		name, raw := name, raw

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			suite, errs := ValidateSuite(name, raw, snapshot)

			mu.Lock()
			defer mu.Unlock()

			if len(errs) > 0 {
				snapshot.InvalidSuites[name] = errs

				slog.Debug("suite rejected", "suite", name, "errors", len(errs))

				return nil
			}

			snapshot.Suites[name] = suite

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("validate suites: %w", err)
	}

	return nil
}

func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	if err := w.ui.Start(ctx); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.ui.Close(ctx)

	snapshot, err := w.classifyAndValidate(ctx, args.CheckArgs)
	if err != nil {
		return err
	}

	if err := w.displayClassification(ctx, snapshot); err != nil {
		return err
	}

	spill, err := pkg.NewFileSpill[m.SimpleReport]()
	if err != nil {
		return fmt.Errorf("create spill: %w", err)
	}

	defer func() {
		if err := spill.Close(); err != nil {
			slog.Error("Failed to close spill", "error", err)
		}
	}()

	var suiteErrs []error

	for _, name := range sortedSuiteNames(snapshot) {
		if err := w.runSuite(ctx, args, name, snapshot.Suites[name], spill); err != nil {
			slog.Error("Suite run failed", "suite", name, "error", err)
			suiteErrs = append(suiteErrs, fmt.Errorf("suite %s: %w", name, err))
		}
	}

	if err := w.displayRunSummary(ctx, spill); err != nil {
		suiteErrs = append(suiteErrs, err)
	}

	w.ui.Wait(ctx)

	return errors.Join(suiteErrs...)
}

// displayRunSummary folds the spilled measurement stream into run-wide
// totals. The spill is the only place the whole run's reports exist in
// one sequence; each suite's dataset is already released by then.
func (w *workflow) displayRunSummary(ctx context.Context, spill pkg.FileSpill[m.SimpleReport]) error {
	programs := map[string]struct{}{}

	err := spill.Range(func(_ uint64, report m.SimpleReport) error {
		programs[report.Program] = struct{}{}
		return nil
	})
	if err != nil {
		return fmt.Errorf("summarize run: %w", err)
	}

	w.ui.DisplayRunSummary(ctx, len(programs), spill.Len())

	return nil
}

// runSuite benchmarks one validated suite and correlates its output.
// Failures here are isolated: other suites still run.
func (w *workflow) runSuite(ctx context.Context, args RunArgs, name string, suite m.TestSuite, spill pkg.FileSpill[m.SimpleReport]) error {
	w.ui.DisplaySuiteStart(ctx, name, len(suite.Programs))

	outDir := w.fs.JoinPath(string(args.Reports), name)

	benchArgs := append([]string{"--suite", name, "--out", string(outDir)}, suite.HarnessFlags...)

	output, err := w.runner.RunBench(ctx, string(args.Reports), benchArgs)
	if err != nil {
		return fmt.Errorf("benchmark harness: %w (output: %s)", err, output)
	}

	raws, err := w.store.LoadRawReports(outDir)
	if err != nil {
		return err
	}

	corr, err := Correlate(raws)
	if err != nil {
		return err
	}

	report := BuildBenchmarkReport(suite, corr)

	w.ui.DisplaySuiteCompleted(ctx, name, len(report.Programs), len(corr.Sizes))

	for _, program := range report.Programs {
		for _, sized := range report.Results[program] {
			if err := spill.Append(sized.Report); err != nil {
				return fmt.Errorf("spill report: %w", err)
			}
		}
	}

	datasetPath := w.fs.JoinPath(string(outDir), datasetFileName)
	if err := w.store.SaveDataset(datasetPath, report); err != nil {
		return err
	}

	if err := w.ui.DisplayDataset(ctx, report); err != nil {
		return fmt.Errorf("display dataset: %w", err)
	}

	return w.fitSuite(ctx, name, suite, report)
}

func (w *workflow) fitSuite(ctx context.Context, name string, suite m.TestSuite, report m.BenchmarkReport) error {
	if w.fitter == nil {
		return nil
	}

	models, err := w.fitter.Fit(ctx, report, suite.Analysis)
	if err != nil {
		return fmt.Errorf("fit models: %w", err)
	}

	if top := suite.Analysis.TopModels; top > 0 && top < len(models) {
		models = models[:top]
	}

	w.ui.DisplayFittedModels(ctx, name, models)

	return nil
}

func (w *workflow) Report(ctx context.Context, args ReportArgs) error {
	if err := w.ui.Start(ctx); err != nil {
		return err
	}

	defer w.ui.Close(ctx)

	reports, err := w.collectDatasets(args.Reports)
	if err != nil {
		return err
	}

	for _, report := range reports {
		if err := w.ui.DisplayDataset(ctx, report); err != nil {
			return fmt.Errorf("display dataset: %w", err)
		}
	}

	w.ui.Wait(ctx)

	return nil
}

// collectDatasets gathers every dataset reachable under dir. A run
// writes one subdirectory per suite, so when dir itself holds nothing
// usable the suite subdirectories are scanned.
func (w *workflow) collectDatasets(dir m.Path) ([]m.BenchmarkReport, error) {
	if report, err := w.loadDataset(dir); err == nil {
		return []m.BenchmarkReport{report}, nil
	}

	subdirs, err := w.fs.ListDirs(dir)
	if err != nil {
		return nil, fmt.Errorf("list report directories: %w", err)
	}

	var reports []m.BenchmarkReport

	for _, sub := range subdirs {
		report, err := w.loadDataset(sub)
		if err != nil {
			slog.Debug("skipping report directory", "path", sub, "error", err)
			continue
		}

		reports = append(reports, report)
	}

	if len(reports) == 0 {
		return nil, fmt.Errorf("no datasets found under %s", dir)
	}

	return reports, nil
}

// loadDataset reads the persisted dataset of one suite directory,
// falling back to correlating its raw reports.
func (w *workflow) loadDataset(dir m.Path) (m.BenchmarkReport, error) {
	datasetPath := w.fs.JoinPath(string(dir), datasetFileName)

	report, err := w.store.LoadDataset(datasetPath)
	if err == nil {
		return report, nil
	}

	slog.Debug("no dataset file, correlating raw reports", "path", datasetPath, "error", err)

	raws, err := w.store.LoadRawReports(dir)
	if err != nil {
		return m.BenchmarkReport{}, err
	}

	corr, err := Correlate(raws)
	if err != nil {
		return m.BenchmarkReport{}, err
	}

	return BuildBenchmarkReport(m.DefaultTestSuite(), corr), nil
}

func sortedSuiteNames(snapshot *m.Snapshot) []string {
	names := make([]string, 0, len(snapshot.Suites))
	for name := range snapshot.Suites {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
