package model

import "fmt"

// DataSize is the size descriptor of a test input: a single integer for
// unary programs or a pair for binary ones.
type DataSize struct {
	First  int
	Second int
	Pair   bool
}

// UnarySize builds a unary size descriptor.
func UnarySize(n int) DataSize {
	return DataSize{First: n}
}

// BinarySize builds a binary size descriptor.
func BinarySize(n1, n2 int) DataSize {
	return DataSize{First: n1, Second: n2, Pair: true}
}

// Compare orders sizes lexicographically by their components. Unary sizes
// sort before binary sizes of the same first component.
func (s DataSize) Compare(o DataSize) int {
	if s.First != o.First {
		if s.First < o.First {
			return -1
		}

		return 1
	}

	if s.Pair != o.Pair {
		if !s.Pair {
			return -1
		}

		return 1
	}

	if s.Second != o.Second {
		if s.Second < o.Second {
			return -1
		}

		return 1
	}

	return 0
}

// String renders the size the way report names encode it.
func (s DataSize) String() string {
	if s.Pair {
		return fmt.Sprintf("(%d, %d)", s.First, s.Second)
	}

	return fmt.Sprintf("%d", s.First)
}
