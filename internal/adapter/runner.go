package adapter

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// ToolRunner abstracts invocations of the external toolchain: capability
// probes and benchmark harness runs.
type ToolRunner interface {
	// Probe builds the given probe source in workDir. It returns true
	// when the probe compiles, false when the compiler rejects it, and a
	// non-nil error only when the toolchain could not be invoked at all.
	Probe(ctx context.Context, workDir, mainFile string) (bool, error)

	// RunBench invokes the benchmark harness in workDir with the given
	// arguments and returns its combined output.
	RunBench(ctx context.Context, workDir string, args []string) (string, error)
}

// LocalToolRunner runs the Go toolchain and the harness via os/exec.
type LocalToolRunner struct {
	benchCommand string
	timeout      time.Duration
}

// NewLocalToolRunner constructs a LocalToolRunner. benchCommand is the
// harness executable; the default timeout is 30 minutes per run.
func NewLocalToolRunner(benchCommand string) *LocalToolRunner {
	return &LocalToolRunner{
		benchCommand: benchCommand,
		timeout:      30 * time.Minute,
	}
}

// Probe compiles a probe file with 'go build'. A build failure means the
// probed capability does not hold; a failure to start the compiler means
// the toolchain is unusable.
func (a *LocalToolRunner) Probe(ctx context.Context, workDir, mainFile string) (bool, error) {
	cmd := exec.CommandContext(ctx, "go", "build", "-o", "/dev/null", mainFile)
	cmd.Dir = workDir

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return true, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// The compiler ran and rejected the probe.
		return false, nil
	}

	return false, err
}

// RunBench runs the configured harness command.
func (a *LocalToolRunner) RunBench(ctx context.Context, workDir string, args []string) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, a.benchCommand, args...)
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	return stdout.String() + stderr.String(), err
}
