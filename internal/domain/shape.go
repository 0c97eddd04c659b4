// Package domain provides the core classification, validation and
// correlation logic for benchmark configuration and measurement data.
package domain

import (
	"fmt"
	"strings"

	m "asympt.dev/pkg/asympt/internal/model"
)

// ParseShape parses an arrow-form type signature into a Shape. It is a
// pure function over syntax: arity is the number of top-level arrows, and
// arrows nested inside brackets of any kind do not count. Arities above
// two yield a valid shape tagged ArityUnsupported.
func ParseShape(typeText string) (m.Shape, error) {
	var shape m.Shape

	text := strings.TrimSpace(typeText)
	if text == "" {
		return shape, fmt.Errorf("empty type signature")
	}

	segments, err := splitTopLevel(text)
	if err != nil {
		return shape, err
	}

	for i, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			return shape, fmt.Errorf("empty type segment at position %d in %q", i, typeText)
		}
	}

	last := len(segments) - 1
	shape.Result = strings.TrimSpace(segments[last])

	for _, segment := range segments[:last] {
		shape.Args = append(shape.Args, strings.TrimSpace(segment))
	}

	switch len(shape.Args) {
	case 0:
		shape.Arity = m.ArityNullary
	case 1:
		shape.Arity = m.ArityUnary
	case 2:
		shape.Arity = m.ArityBinary
	default:
		shape.Arity = m.ArityUnsupported
	}

	return shape, nil
}

// splitTopLevel splits the signature on "->" arrows outside any bracket
// nesting.
func splitTopLevel(text string) ([]string, error) {
	var segments []string

	depth := 0
	start := 0

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced brackets in %q", text)
			}
		case '-':
			if depth == 0 && i+1 < len(text) && text[i+1] == '>' {
				segments = append(segments, text[start:i])
				i++
				start = i + 1
			}
		}
	}

	if depth != 0 {
		return nil, fmt.Errorf("unbalanced brackets in %q", text)
	}

	segments = append(segments, text[start:])

	return segments, nil
}
