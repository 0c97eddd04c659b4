package model

// Capability holds the boolean semantic properties of one unary or binary
// function, as decided by the external oracle. The flags may overlap with
// each other and with the arity buckets; they are tags, not exclusive
// variants.
type Capability struct {
	// GeneratableArgs is true when every argument type is randomly
	// generatable.
	GeneratableArgs bool
	// EvaluableArgs is true when every argument type is fully evaluable.
	EvaluableArgs bool
	// EvaluableResult is true when the result type is fully evaluable.
	EvaluableResult bool
}

// Snapshot is the authoritative record of one input source's analysis.
// Built once by the classifier, then read-only; suite buckets are filled
// exactly once by validation.
type Snapshot struct {
	// Declarations holds every original declaration, in input order.
	Declarations []Declaration

	// Invalid maps identifiers that failed the shape parse to the
	// failure reason. Disjoint from Valid.
	Invalid map[string]string

	// Valid maps successfully parsed identifiers to their shape.
	Valid map[string]Shape

	// Arity buckets over valid function declarations. A declaration
	// appears in at most one of them; unsupported arities join none.
	Nullary map[string]struct{}
	Unary   map[string]struct{}
	Binary  map[string]struct{}

	// Capabilities is computed only for unary and binary functions.
	Capabilities map[string]Capability

	// Test data buckets.
	InvalidData map[string][]InputError
	UnaryData   map[string]TestData
	BinaryData  map[string]TestData

	// Suite buckets. An identifier is in exactly one of them after
	// validation.
	InvalidSuites map[string][]InputError
	Suites        map[string]TestSuite
}

// NewSnapshot returns a Snapshot with all buckets allocated.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Invalid:       map[string]string{},
		Valid:         map[string]Shape{},
		Nullary:       map[string]struct{}{},
		Unary:         map[string]struct{}{},
		Binary:        map[string]struct{}{},
		Capabilities:  map[string]Capability{},
		InvalidData:   map[string][]InputError{},
		UnaryData:     map[string]TestData{},
		BinaryData:    map[string]TestData{},
		InvalidSuites: map[string][]InputError{},
		Suites:        map[string]TestSuite{},
	}
}

// ProgramArity reports the arity bucket an identifier belongs to, or
// ArityUnsupported when it is in none.
func (s *Snapshot) ProgramArity(name string) Arity {
	if _, ok := s.Unary[name]; ok {
		return ArityUnary
	}

	if _, ok := s.Binary[name]; ok {
		return ArityBinary
	}

	if _, ok := s.Nullary[name]; ok {
		return ArityNullary
	}

	return ArityUnsupported
}
