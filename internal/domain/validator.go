package domain

import (
	"sort"

	m "asympt.dev/pkg/asympt/internal/model"
)

// ValidateSuite checks one loosely-typed suite record against the snapshot
// and the numeric policy bounds. Every independent check runs and appends
// its failures; the suite is only accepted when the accumulated error list
// stays empty. The returned TestSuite is meaningful only on success.
func ValidateSuite(name string, raw m.RawSuite, snapshot *m.Snapshot) (m.TestSuite, []m.InputError) {
	var errs []m.InputError

	suite := buildSuite(raw, &errs)

	programs, targetArity := resolvePrograms(suite, snapshot, &errs)
	suite.Programs = programs

	validateData(suite, targetArity, snapshot, &errs)
	validateAnalysis(suite.Analysis, &errs)

	return suite, errs
}

// buildSuite layers the user record over the defaults.
func buildSuite(raw m.RawSuite, errs *[]m.InputError) m.TestSuite {
	suite := m.DefaultTestSuite()

	suite.Programs = raw.Programs
	suite.HarnessFlags = raw.HarnessFlags
	suite.Tool = raw.Tool

	if raw.IncludeBaseline != nil {
		suite.IncludeBaseline = *raw.IncludeBaseline
	}

	if raw.EvalNormalForm != nil {
		suite.EvalNormalForm = *raw.EvalNormalForm
	}

	if raw.Data != nil {
		if raw.Data.Manual != "" {
			suite.Data = m.DataOptions{Kind: m.DataManual, Manual: raw.Data.Manual}
		} else {
			if raw.Data.Lower != nil {
				suite.Data.Lower = *raw.Data.Lower
			}

			if raw.Data.Step != nil {
				suite.Data.Step = *raw.Data.Step
			}

			if raw.Data.Upper != nil {
				suite.Data.Upper = *raw.Data.Upper
			}
		}
	}

	if raw.Analysis != nil {
		applyAnalysis(&suite.Analysis, raw.Analysis, errs)
	}

	return suite
}

func applyAnalysis(opts *m.AnalysisOptions, raw *m.RawAnalysis, errs *[]m.InputError) {
	if len(raw.Models) > 0 {
		opts.Models = nil

		for _, text := range raw.Models {
			spec, err := m.ParseModelSpec(text)
			if err != nil {
				*errs = append(*errs, m.InputErrorf(m.ErrAnalysisOptions, "%v", err))
				continue
			}

			opts.Models = append(opts.Models, spec)
		}
	}

	if raw.CVIterations != nil {
		opts.CVIterations = *raw.CVIterations
	}

	if raw.CVTrainFraction != nil {
		opts.CVTrainFraction = *raw.CVTrainFraction
	}

	if raw.TopModels != nil {
		opts.TopModels = *raw.TopModels
	}

	opts.GraphPath = raw.GraphPath
	opts.ReportPath = raw.ReportPath
	opts.CoordsPath = raw.CoordsPath
}

// resolvePrograms checks every referenced program against the snapshot, or
// resolves an empty list to all eligible programs. It also derives the
// suite's target arity, which must be consistent across programs.
func resolvePrograms(suite m.TestSuite, snapshot *m.Snapshot, errs *[]m.InputError) ([]string, m.Arity) {
	if len(suite.Programs) == 0 {
		return resolveAllPrograms(suite, snapshot, errs)
	}

	targetArity := m.ArityUnsupported

	for _, program := range suite.Programs {
		arity := snapshot.ProgramArity(program)
		if arity != m.ArityUnary && arity != m.ArityBinary {
			*errs = append(*errs, m.InputErrorf(m.ErrType,
				"program %q is not a benchmarkable unary or binary function", program))

			continue
		}

		if targetArity == m.ArityUnsupported {
			targetArity = arity
		} else if targetArity != arity {
			*errs = append(*errs, m.InputErrorf(m.ErrType,
				"program %q has arity %s, but the suite mixes arities", program, arity))
		}

		checkCapabilities(suite, program, snapshot, errs)
	}

	return suite.Programs, targetArity
}

// resolveAllPrograms expands the "all valid programs" shorthand. Unary
// programs take precedence: a suite never mixes arities, so when both
// buckets have eligible programs the unary ones win.
func resolveAllPrograms(suite m.TestSuite, snapshot *m.Snapshot, errs *[]m.InputError) ([]string, m.Arity) {
	unary := eligiblePrograms(suite, snapshot.Unary, snapshot)
	if len(unary) > 0 {
		return unary, m.ArityUnary
	}

	binary := eligiblePrograms(suite, snapshot.Binary, snapshot)
	if len(binary) > 0 {
		return binary, m.ArityBinary
	}

	*errs = append(*errs, m.InputErrorf(m.ErrType,
		"no eligible programs: the suite resolves to an empty program set"))

	return nil, m.ArityUnsupported
}

func eligiblePrograms(suite m.TestSuite, bucket map[string]struct{}, snapshot *m.Snapshot) []string {
	var programs []string

	for program := range bucket {
		if hasRequiredCapabilities(suite, snapshot.Capabilities[program]) {
			programs = append(programs, program)
		}
	}

	sort.Strings(programs)

	return programs
}

// checkCapabilities appends one error per missing required capability.
func checkCapabilities(suite m.TestSuite, program string, snapshot *m.Snapshot, errs *[]m.InputError) {
	capability := snapshot.Capabilities[program]

	if suite.Data.Kind == m.DataGenerated && !capability.GeneratableArgs {
		*errs = append(*errs, m.InputErrorf(m.ErrCapability,
			"program %q needs randomly generatable argument types for generated data", program))
	}

	if suite.Data.Kind == m.DataManual && !capability.EvaluableArgs {
		*errs = append(*errs, m.InputErrorf(m.ErrCapability,
			"program %q needs fully evaluable argument types for manual data", program))
	}

	if suite.EvalNormalForm && !capability.EvaluableResult {
		*errs = append(*errs, m.InputErrorf(m.ErrCapability,
			"program %q needs a fully evaluable result type for normal-form evaluation", program))
	}
}

func hasRequiredCapabilities(suite m.TestSuite, capability m.Capability) bool {
	if suite.Data.Kind == m.DataGenerated && !capability.GeneratableArgs {
		return false
	}

	if suite.Data.Kind == m.DataManual && !capability.EvaluableArgs {
		return false
	}

	if suite.EvalNormalForm && !capability.EvaluableResult {
		return false
	}

	return true
}

func validateData(suite m.TestSuite, targetArity m.Arity, snapshot *m.Snapshot, errs *[]m.InputError) {
	switch suite.Data.Kind {
	case m.DataGenerated:
		validateGenerated(suite.Data, errs)
	case m.DataManual:
		validateManual(suite.Data.Manual, targetArity, snapshot, errs)
	}
}

func validateGenerated(data m.DataOptions, errs *[]m.InputError) {
	if data.Lower > data.Upper {
		*errs = append(*errs, m.InputErrorf(m.ErrDataOptions,
			"generated size range is empty: lower %d exceeds upper %d", data.Lower, data.Upper))
	}

	if data.Step <= 0 {
		*errs = append(*errs, m.InputErrorf(m.ErrDataOptions,
			"generated size step must be positive, got %d", data.Step))
	}

	if data.Lower <= data.Upper && data.Step > 0 {
		if count := len(data.Sizes()); count < m.MinInputs {
			*errs = append(*errs, m.InputErrorf(m.ErrDataOptions,
				"generated size range yields %d distinct sizes, need at least %d", count, m.MinInputs))
		}
	}
}

func validateManual(dataName string, targetArity m.Arity, snapshot *m.Snapshot, errs *[]m.InputError) {
	data, ok := snapshot.UnaryData[dataName]
	if !ok {
		data, ok = snapshot.BinaryData[dataName]
	}

	if !ok {
		*errs = append(*errs, m.InputErrorf(m.ErrDataOptions,
			"manual test data %q does not exist", dataName))

		return
	}

	if targetArity == m.ArityUnary || targetArity == m.ArityBinary {
		if data.Arity != targetArity {
			*errs = append(*errs, m.InputErrorf(m.ErrDataOptions,
				"manual test data %q is %s, but the suite's programs are %s",
				dataName, data.Arity, targetArity))
		}
	}

	// Distinctness is over the full size descriptor: for binary data the
	// pair counts, not its components.
	distinct := map[m.DataSize]struct{}{}
	for _, size := range data.Sizes {
		distinct[size] = struct{}{}
	}

	if len(distinct) < m.MinInputs {
		*errs = append(*errs, m.InputErrorf(m.ErrDataOptions,
			"manual test data %q has %d distinct sizes, need at least %d",
			dataName, len(distinct), m.MinInputs))
	}
}

func validateAnalysis(opts m.AnalysisOptions, errs *[]m.InputError) {
	if opts.CVIterations < m.CVIterationsMin || opts.CVIterations > m.CVIterationsMax {
		*errs = append(*errs, m.InputErrorf(m.ErrAnalysisOptions,
			"cross-validation iterations %d outside [%d, %d]",
			opts.CVIterations, m.CVIterationsMin, m.CVIterationsMax))
	}

	if opts.CVTrainFraction < m.CVTrainFractionMin || opts.CVTrainFraction > m.CVTrainFractionMax {
		*errs = append(*errs, m.InputErrorf(m.ErrAnalysisOptions,
			"cross-validation training fraction %g outside [%g, %g]",
			opts.CVTrainFraction, m.CVTrainFractionMin, m.CVTrainFractionMax))
	}

	if opts.TopModels < 1 {
		*errs = append(*errs, m.InputErrorf(m.ErrAnalysisOptions,
			"top models to report must be at least 1, got %d", opts.TopModels))
	}

	if len(opts.Models) == 0 {
		*errs = append(*errs, m.InputErrorf(m.ErrAnalysisOptions,
			"model list must not be empty"))
	}

	for _, spec := range opts.Models {
		if predictors := spec.Predictors(); predictors > m.MaxPredictors {
			*errs = append(*errs, m.InputErrorf(m.ErrAnalysisOptions,
				"model %s has %d predictors, maximum is %d", spec, predictors, m.MaxPredictors))
		}
	}
}
