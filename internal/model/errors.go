package model

import "fmt"

// InputErrorKind distinguishes the variants of a suite input error.
type InputErrorKind string

const (
	// ErrFile marks missing or unreadable input artifacts.
	ErrFile InputErrorKind = "file"
	// ErrDataOptions marks invalid data option configuration.
	ErrDataOptions InputErrorKind = "data-options"
	// ErrAnalysisOptions marks analysis options outside their bounds.
	ErrAnalysisOptions InputErrorKind = "analysis-options"
	// ErrType marks unresolved or shape-incompatible identifiers.
	ErrType InputErrorKind = "type"
	// ErrCapability marks identifiers lacking a required capability.
	ErrCapability InputErrorKind = "capability"
)

// InputError is one accumulated validation failure. Suites collect every
// InputError before being rejected; validation never stops at the first.
type InputError struct {
	Kind InputErrorKind
	Msg  string
}

// Error implements the error interface.
func (e InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// InputErrorf builds an InputError with a formatted message.
func InputErrorf(kind InputErrorKind, format string, args ...any) InputError {
	return InputError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// StructuralError aborts a whole report-correlation pass. A partially
// correlated dataset is worse than none, so these are never collected
// per item.
type StructuralError struct {
	Reason string
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	return "report structure: " + e.Reason
}

// Structuralf builds a StructuralError with a formatted reason.
func Structuralf(format string, args ...any) *StructuralError {
	return &StructuralError{Reason: fmt.Sprintf(format, args...)}
}

// OracleUnavailableError signals that the capability oracle itself is
// broken (unreachable toolchain, misconfiguration). It aborts the whole
// classification pass, unlike a per-declaration probe failure.
type OracleUnavailableError struct {
	Err error
}

// Error implements the error interface.
func (e *OracleUnavailableError) Error() string {
	return fmt.Sprintf("capability oracle unavailable: %v", e.Err)
}

// Unwrap exposes the underlying cause.
func (e *OracleUnavailableError) Unwrap() error {
	return e.Err
}
