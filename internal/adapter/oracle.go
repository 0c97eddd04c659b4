// Package adapter contains infrastructure adapters for the asympt CLI.
package adapter

import (
	"context"
)

// CapabilityOracle answers semantic questions about types that syntax alone
// cannot: whether values of a type can be generated at random and whether a
// value can be fully evaluated. Answers may require compiling and running
// probe code, so both queries can fail at the I/O layer.
//
// A returned *model.OracleUnavailableError means the oracle itself is
// broken and the whole classification pass must abort. Any other error is a
// per-declaration failure: the declaration is excluded from the capability
// buckets and classification continues.
type CapabilityOracle interface {
	// IsGeneratable reports whether values of the type can be produced
	// by the random data generator.
	IsGeneratable(ctx context.Context, typeText string) (bool, error)

	// IsEvaluable reports whether values of the type can be fully
	// evaluated (reduced to normal form).
	IsEvaluable(ctx context.Context, typeText string) (bool, error)
}

// StaticOracle is a table-backed CapabilityOracle. It serves offline runs
// where the capability table ships with the suites file, and tests.
// Types absent from a table are reported as lacking the capability.
type StaticOracle struct {
	Generatable map[string]bool
	Evaluable   map[string]bool
}

// NewStaticOracle builds a StaticOracle from capability tables.
func NewStaticOracle(generatable, evaluable map[string]bool) *StaticOracle {
	return &StaticOracle{Generatable: generatable, Evaluable: evaluable}
}

// IsGeneratable implements CapabilityOracle.
func (o *StaticOracle) IsGeneratable(_ context.Context, typeText string) (bool, error) {
	return o.Generatable[typeText], nil
}

// IsEvaluable implements CapabilityOracle.
func (o *StaticOracle) IsEvaluable(_ context.Context, typeText string) (bool, error) {
	return o.Evaluable[typeText], nil
}

var _ CapabilityOracle = (*StaticOracle)(nil)
