// Package model defines the data structures for benchmark classification
// and measurement analysis.
package model

// Kind represents the category of a user declaration.
type Kind string

const (
	// KindFunction represents a function declaration with a type signature.
	KindFunction Kind = "function"
	// KindTypeClass represents a class/interface declaration.
	KindTypeClass Kind = "typeclass"
	// KindDataType represents a data/type declaration.
	KindDataType Kind = "datatype"
)

// Declaration is a named definition discovered in a user input source.
// It is created by an input adapter and consumed once by the classifier.
type Declaration struct {
	Name     string
	Kind     Kind
	TypeText string // arrow-form type signature, may be empty
}

// Arity is the number of curried arguments of a function declaration.
type Arity int

const (
	// ArityNullary is a value or constant (no arguments).
	ArityNullary Arity = iota
	// ArityUnary is a single-argument function.
	ArityUnary
	// ArityBinary is a two-argument function.
	ArityBinary
	// ArityUnsupported marks valid shapes with more than two arguments.
	// Such declarations stay in the valid set but join no arity bucket.
	ArityUnsupported
)

// String returns a human readable arity label.
func (a Arity) String() string {
	switch a {
	case ArityNullary:
		return "nullary"
	case ArityUnary:
		return "unary"
	case ArityBinary:
		return "binary"
	case ArityUnsupported:
		return "unsupported"
	}

	return "unknown"
}

// Shape is the structural descriptor derived from a parsed type signature.
// It is derived purely from syntax and never mutated.
type Shape struct {
	Arity  Arity
	Args   []string // argument types, outermost first
	Result string
}
