package adapter

import (
	"context"
	"fmt"
	"log/slog"

	m "asympt.dev/pkg/asympt/internal/model"
)

// ProbeOracle decides capabilities by compiling small probe programs with
// the local toolchain. A type is generatable when a probe referencing the
// random generator for it compiles, and evaluable when the deep-evaluation
// probe compiles.
type ProbeOracle struct {
	runner ToolRunner
	fs     WorkspaceFS
}

// NewProbeOracle constructs a ProbeOracle on top of the given runner and
// filesystem.
func NewProbeOracle(runner ToolRunner, fs WorkspaceFS) *ProbeOracle {
	return &ProbeOracle{runner: runner, fs: fs}
}

const generatableProbe = `package main

import "asympt.dev/pkg/asympt/probe/gen"

var _ = gen.Random[%s]

func main() {}
`

const evaluableProbe = `package main

import "asympt.dev/pkg/asympt/probe/eval"

var _ = eval.Deep[%s]

func main() {}
`

// IsGeneratable implements CapabilityOracle.
func (o *ProbeOracle) IsGeneratable(ctx context.Context, typeText string) (bool, error) {
	return o.probe(ctx, fmt.Sprintf(generatableProbe, typeText))
}

// IsEvaluable implements CapabilityOracle.
func (o *ProbeOracle) IsEvaluable(ctx context.Context, typeText string) (bool, error) {
	return o.probe(ctx, fmt.Sprintf(evaluableProbe, typeText))
}

func (o *ProbeOracle) probe(ctx context.Context, src string) (bool, error) {
	tmpDir, err := o.fs.CreateTempDir("asympt-probe-*")
	if err != nil {
		slog.Error("Failed to create probe dir", "error", err)
		return false, &m.OracleUnavailableError{Err: err}
	}

	defer func() {
		if err := o.fs.RemoveAll(tmpDir); err != nil {
			slog.Error("Failed to cleanup probe dir", "tmpDir", tmpDir, "error", err)
		}
	}()

	probePath := o.fs.JoinPath(string(tmpDir), "probe.go")
	if err := o.fs.WriteFile(probePath, []byte(src), 0o600); err != nil {
		slog.Error("Failed to write probe file", "path", probePath, "error", err)
		return false, &m.OracleUnavailableError{Err: err}
	}

	ok, err := o.runner.Probe(ctx, string(tmpDir), "probe.go")
	if err != nil {
		// The compiler could not be invoked at all, so no probe can
		// succeed; the classification pass must abort.
		return false, &m.OracleUnavailableError{Err: err}
	}

	return ok, nil
}

var _ CapabilityOracle = (*ProbeOracle)(nil)
