package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	m "asympt.dev/pkg/asympt/internal/model"
)

func TestParseShapeNullary(t *testing.T) {
	shape, err := ParseShape("Tree int")
	require.NoError(t, err)

	require.Equal(t, m.ArityNullary, shape.Arity)
	require.Empty(t, shape.Args)
	require.Equal(t, "Tree int", shape.Result)
}

func TestParseShapeUnary(t *testing.T) {
	shape, err := ParseShape("[]int -> int")
	require.NoError(t, err)

	require.Equal(t, m.ArityUnary, shape.Arity)
	require.Equal(t, []string{"[]int"}, shape.Args)
	require.Equal(t, "int", shape.Result)
}

func TestParseShapeBinary(t *testing.T) {
	shape, err := ParseShape("[]int -> []int -> []int")
	require.NoError(t, err)

	require.Equal(t, m.ArityBinary, shape.Arity)
	require.Equal(t, []string{"[]int", "[]int"}, shape.Args)
	require.Equal(t, "[]int", shape.Result)
}

func TestParseShapeTrimsSegments(t *testing.T) {
	shape, err := ParseShape("  []int   ->   int  ")
	require.NoError(t, err)

	require.Equal(t, []string{"[]int"}, shape.Args)
	require.Equal(t, "int", shape.Result)
}

func TestParseShapeNestedArrowsDoNotCount(t *testing.T) {
	shape, err := ParseShape("(int -> int) -> []int -> []int")
	require.NoError(t, err)

	require.Equal(t, m.ArityBinary, shape.Arity)
	require.Equal(t, []string{"(int -> int)", "[]int"}, shape.Args)
}

func TestParseShapeBracketsShieldArrows(t *testing.T) {
	shape, err := ParseShape("map[string](int -> int) -> int")
	require.NoError(t, err)

	require.Equal(t, m.ArityUnary, shape.Arity)
	require.Equal(t, []string{"map[string](int -> int)"}, shape.Args)
}

func TestParseShapeHighArityIsUnsupportedNotError(t *testing.T) {
	shape, err := ParseShape("int -> int -> int -> int")
	require.NoError(t, err)

	require.Equal(t, m.ArityUnsupported, shape.Arity)
	require.Len(t, shape.Args, 3)
}

func TestParseShapeEmptyText(t *testing.T) {
	_, err := ParseShape("   ")
	require.Error(t, err)
}

func TestParseShapeEmptySegment(t *testing.T) {
	_, err := ParseShape("-> int")
	require.Error(t, err)

	_, err = ParseShape("int ->")
	require.Error(t, err)

	_, err = ParseShape("int -> -> int")
	require.Error(t, err)
}

func TestParseShapeUnbalancedBrackets(t *testing.T) {
	_, err := ParseShape("(int -> int")
	require.Error(t, err)

	_, err = ParseShape("int) -> int")
	require.Error(t, err)
}
