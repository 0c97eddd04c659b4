package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"asympt.dev/pkg/asympt/internal/adapter"
	m "asympt.dev/pkg/asympt/internal/model"
)

// Classify cascades the raw declarations into the snapshot's disjoint and
// overlapping buckets. Shape-parse failures are isolated per declaration;
// capability probe failures are per-declaration unless the oracle itself
// is unavailable, which aborts the whole pass.
func Classify(ctx context.Context, decls []m.Declaration, data []m.TestData, oracle adapter.CapabilityOracle) (*m.Snapshot, error) {
	snapshot := m.NewSnapshot()
	snapshot.Declarations = decls

	for _, decl := range decls {
		if err := classifyDeclaration(ctx, snapshot, decl, oracle); err != nil {
			return nil, err
		}
	}

	classifyTestData(snapshot, data)

	return snapshot, nil
}

func classifyDeclaration(ctx context.Context, snapshot *m.Snapshot, decl m.Declaration, oracle adapter.CapabilityOracle) error {
	if decl.Kind != m.KindFunction {
		// Classes and data types carry no benchmarkable signature; they
		// are valid but join no bucket.
		snapshot.Valid[decl.Name] = m.Shape{}
		return nil
	}

	shape, err := ParseShape(decl.TypeText)
	if err != nil {
		snapshot.Invalid[decl.Name] = err.Error()
		return nil
	}

	snapshot.Valid[decl.Name] = shape

	switch shape.Arity {
	case m.ArityNullary:
		snapshot.Nullary[decl.Name] = struct{}{}
	case m.ArityUnary:
		snapshot.Unary[decl.Name] = struct{}{}
	case m.ArityBinary:
		snapshot.Binary[decl.Name] = struct{}{}
	case m.ArityUnsupported:
		// Valid shape, unsupported arity: stays out of every bucket.
		return nil
	}

	if shape.Arity != m.ArityUnary && shape.Arity != m.ArityBinary {
		return nil
	}

	capability, err := probeCapabilities(ctx, shape, oracle)
	if err != nil {
		var unavailable *m.OracleUnavailableError
		if errors.As(err, &unavailable) {
			return fmt.Errorf("classifying %s: %w", decl.Name, err)
		}

		// Per-declaration probe failure: the declaration keeps its
		// arity bucket but no capability flags.
		slog.Warn("capability probe failed", "declaration", decl.Name, "error", err)

		return nil
	}

	snapshot.Capabilities[decl.Name] = capability

	return nil
}

func probeCapabilities(ctx context.Context, shape m.Shape, oracle adapter.CapabilityOracle) (m.Capability, error) {
	capability := m.Capability{GeneratableArgs: true, EvaluableArgs: true}

	for _, arg := range shape.Args {
		generatable, err := oracle.IsGeneratable(ctx, arg)
		if err != nil {
			return m.Capability{}, err
		}

		capability.GeneratableArgs = capability.GeneratableArgs && generatable

		evaluable, err := oracle.IsEvaluable(ctx, arg)
		if err != nil {
			return m.Capability{}, err
		}

		capability.EvaluableArgs = capability.EvaluableArgs && evaluable
	}

	resultEvaluable, err := oracle.IsEvaluable(ctx, shape.Result)
	if err != nil {
		return m.Capability{}, err
	}

	capability.EvaluableResult = resultEvaluable

	return capability, nil
}

func classifyTestData(snapshot *m.Snapshot, data []m.TestData) {
	for _, entry := range data {
		var errs []m.InputError

		if entry.Arity != m.ArityUnary && entry.Arity != m.ArityBinary {
			errs = append(errs, m.InputErrorf(m.ErrType,
				"test data %q must be unary or binary with matching size annotations", entry.Name))
		}

		if len(entry.Sizes) == 0 {
			errs = append(errs, m.InputErrorf(m.ErrDataOptions,
				"test data %q has no size annotations", entry.Name))
		}

		if len(errs) > 0 {
			snapshot.InvalidData[entry.Name] = errs
			continue
		}

		if entry.Arity == m.ArityUnary {
			snapshot.UnaryData[entry.Name] = entry
		} else {
			snapshot.BinaryData[entry.Name] = entry
		}
	}
}
