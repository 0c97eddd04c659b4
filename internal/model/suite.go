package model

import (
	"fmt"
	"strings"
)

// Policy bounds shared by the validator and the analysis stage.
const (
	// MinInputs is the minimum number of distinct test input sizes a
	// suite must measure for the regression stage to be meaningful.
	MinInputs = 20

	// CVIterationsMin and CVIterationsMax bound the cross-validation
	// iteration count.
	CVIterationsMin = 100
	CVIterationsMax = 500

	// CVTrainFractionMin and CVTrainFractionMax bound the fraction of the
	// dataset used for cross-validation training.
	CVTrainFractionMin = 0.5
	CVTrainFractionMax = 0.8

	// MaxPredictors caps the predictor count of any single model.
	MaxPredictors = 10

	// BaselineID is the sentinel program identifier assigned to baseline
	// measurement series.
	BaselineID = "baseline"
)

// DataKind selects how test inputs for a suite are obtained.
type DataKind string

const (
	// DataGenerated derives inputs of generated random data over an
	// arithmetic size progression.
	DataGenerated DataKind = "generated"
	// DataManual uses a user-supplied test dataset by name.
	DataManual DataKind = "manual"
)

// DataOptions describes the test input source of a suite.
type DataOptions struct {
	Kind   DataKind
	Manual string // dataset name, DataManual only
	Lower  int    // DataGenerated only
	Step   int
	Upper  int
}

// Sizes returns the arithmetic size progression from Lower to Upper
// inclusive by Step. It returns nil when the range is empty or the step is
// not positive.
func (d DataOptions) Sizes() []int {
	if d.Kind != DataGenerated || d.Step <= 0 || d.Lower > d.Upper {
		return nil
	}

	var sizes []int
	for n := d.Lower; n <= d.Upper; n += d.Step {
		sizes = append(sizes, n)
	}

	return sizes
}

// String renders the options for error messages and summaries.
func (d DataOptions) String() string {
	if d.Kind == DataManual {
		return fmt.Sprintf("manual(%s)", d.Manual)
	}

	return fmt.Sprintf("generated(%d..%d by %d)", d.Lower, d.Upper, d.Step)
}

// ModelKind tags a LinearModelSpec variant.
type ModelKind string

const (
	ModelPolynomial      ModelKind = "polynomial"
	ModelLogarithmic     ModelKind = "logarithmic"
	ModelPolyLogarithmic ModelKind = "polylogarithmic"
	ModelExponential     ModelKind = "exponential"
)

// LinearModelSpec describes one candidate complexity model for regression.
type LinearModelSpec struct {
	Kind   ModelKind
	Base   int // Logarithmic, PolyLogarithmic, Exponential
	Degree int // Polynomial, Logarithmic, PolyLogarithmic
}

// Predictors returns the number of predictors the model contributes to the
// regression design matrix: degree+1 for the degree-parameterized variants
// and a fixed 2 for exponentials.
func (s LinearModelSpec) Predictors() int {
	if s.Kind == ModelExponential {
		return 2
	}

	return s.Degree + 1
}

// String renders the spec for summaries and error messages.
func (s LinearModelSpec) String() string {
	switch s.Kind {
	case ModelPolynomial:
		return fmt.Sprintf("n^%d", s.Degree)
	case ModelLogarithmic:
		return fmt.Sprintf("log%d(n)^%d", s.Base, s.Degree)
	case ModelPolyLogarithmic:
		return fmt.Sprintf("n*log%d(n)^%d", s.Base, s.Degree)
	case ModelExponential:
		return fmt.Sprintf("%d^n", s.Base)
	}

	return string(s.Kind)
}

// FittedModel is the result the regression collaborator produces for one
// candidate model. The fitting mathematics live outside this module.
type FittedModel struct {
	Spec         LinearModelSpec
	Coefficients []float64
	Error        float64 // cross-validated goodness-of-fit metric
}

// AnalysisOptions configures the regression stage of a suite.
//
// AcceptModel, RankModels and CompareRuntimes are opaque policy hooks
// supplied by the host; they are passed through to the regression
// collaborator uninspected.
type AnalysisOptions struct {
	Models          []LinearModelSpec
	CVIterations    int
	CVTrainFraction float64
	TopModels       int

	AcceptModel     func(FittedModel) bool
	RankModels      func(a, b FittedModel) int
	CompareRuntimes func(a, b float64) int

	GraphPath  string
	ReportPath string
	CoordsPath string
}

// TestSuite is a fully specified, validated benchmark configuration.
// Constructed from defaults overridden by user fields; immutable after
// validation.
type TestSuite struct {
	// Programs lists the function identifiers to benchmark. After
	// validation it is never empty: an empty user list resolves to all
	// eligible programs in the snapshot.
	Programs []string

	Data     DataOptions
	Analysis AnalysisOptions

	// HarnessFlags are passed through verbatim to the compiler/harness
	// invocation.
	HarnessFlags []string

	// IncludeBaseline measures a reference series at the same sizes.
	IncludeBaseline bool

	// EvalNormalForm forces full evaluation of results rather than
	// weak-head evaluation.
	EvalNormalForm bool

	// Tool is an opaque configuration blob handed to the runtime tool.
	Tool map[string]any
}

// RawSuite is the loosely-typed user-supplied suite record as decoded from
// the suites file. Nil pointer fields mean "use the default".
type RawSuite struct {
	Programs        []string        `yaml:"programs"`
	Data            *RawDataOptions `yaml:"data"`
	Analysis        *RawAnalysis    `yaml:"analysis"`
	HarnessFlags    []string        `yaml:"harness-flags"`
	IncludeBaseline *bool           `yaml:"baseline"`
	EvalNormalForm  *bool           `yaml:"nf"`
	Tool            map[string]any  `yaml:"tool"`
}

// RawDataOptions mirrors DataOptions with optional fields.
type RawDataOptions struct {
	Manual string `yaml:"manual"`
	Lower  *int   `yaml:"lower"`
	Step   *int   `yaml:"step"`
	Upper  *int   `yaml:"upper"`
}

// RawAnalysis mirrors AnalysisOptions with optional fields.
type RawAnalysis struct {
	Models          []string `yaml:"models"`
	CVIterations    *int     `yaml:"cv-iterations"`
	CVTrainFraction *float64 `yaml:"cv-train-fraction"`
	TopModels       *int     `yaml:"top-models"`
	GraphPath       string   `yaml:"graph"`
	ReportPath      string   `yaml:"report"`
	CoordsPath      string   `yaml:"coords"`
}

// TestData is a user-supplied manual input dataset with size annotations.
type TestData struct {
	Name  string     `yaml:"name"`
	Arity Arity      `yaml:"-"`
	Kind  string     `yaml:"arity"` // "unary" or "binary" in the suites file
	Sizes []DataSize `yaml:"-"`

	// RawSizes carries the size annotations as decoded from YAML: one
	// integer per entry for unary data, two for binary data.
	RawSizes [][]int `yaml:"sizes"`
}

// DefaultTestSuite returns the suite all user records are layered onto.
// The generated range 5..100 by 5 yields exactly MinInputs sizes.
func DefaultTestSuite() TestSuite {
	return TestSuite{
		Data: DataOptions{Kind: DataGenerated, Lower: 5, Step: 5, Upper: 100},
		Analysis: AnalysisOptions{
			Models: []LinearModelSpec{
				{Kind: ModelPolynomial, Degree: 0},
				{Kind: ModelPolynomial, Degree: 1},
				{Kind: ModelPolynomial, Degree: 2},
				{Kind: ModelPolynomial, Degree: 3},
				{Kind: ModelLogarithmic, Base: 2, Degree: 1},
				{Kind: ModelPolyLogarithmic, Base: 2, Degree: 1},
				{Kind: ModelExponential, Base: 2},
			},
			CVIterations:    200,
			CVTrainFraction: 0.7,
			TopModels:       3,
		},
	}
}

// ParseModelSpec parses a model spec string as written in the suites file,
// e.g. "n^2", "log2(n)^1", "n*log2(n)^1", "2^n".
func ParseModelSpec(text string) (LinearModelSpec, error) {
	var spec LinearModelSpec

	switch {
	case strings.HasPrefix(text, "n*log"):
		spec.Kind = ModelPolyLogarithmic
		if _, err := fmt.Sscanf(text, "n*log%d(n)^%d", &spec.Base, &spec.Degree); err != nil {
			return spec, fmt.Errorf("bad polylogarithmic spec %q", text)
		}
	case strings.HasPrefix(text, "log"):
		spec.Kind = ModelLogarithmic
		if _, err := fmt.Sscanf(text, "log%d(n)^%d", &spec.Base, &spec.Degree); err != nil {
			return spec, fmt.Errorf("bad logarithmic spec %q", text)
		}
	case strings.HasPrefix(text, "n^"):
		spec.Kind = ModelPolynomial
		if _, err := fmt.Sscanf(text, "n^%d", &spec.Degree); err != nil {
			return spec, fmt.Errorf("bad polynomial spec %q", text)
		}
	case strings.HasSuffix(text, "^n"):
		spec.Kind = ModelExponential
		if _, err := fmt.Sscanf(text, "%d^n", &spec.Base); err != nil {
			return spec, fmt.Errorf("bad exponential spec %q", text)
		}
	default:
		return spec, fmt.Errorf("unknown model spec %q", text)
	}

	return spec, nil
}
