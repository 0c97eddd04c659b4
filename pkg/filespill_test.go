package pkg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string
	Value float64
}

func TestFileSpillAppendAndGet(t *testing.T) {
	spill, err := NewFileSpill[record]()
	require.NoError(t, err)

	defer spill.Close()

	require.NoError(t, spill.Append(record{Name: "a", Value: 1}))
	require.NoError(t, spill.Append(record{Name: "b", Value: 2}))

	require.Equal(t, uint64(2), spill.Len())

	first, err := spill.Get(0)
	require.NoError(t, err)
	require.Equal(t, record{Name: "a", Value: 1}, first)

	second, err := spill.Get(1)
	require.NoError(t, err)
	require.Equal(t, record{Name: "b", Value: 2}, second)
}

func TestFileSpillGetOutOfBounds(t *testing.T) {
	spill, err := NewFileSpill[record]()
	require.NoError(t, err)

	defer spill.Close()

	_, err = spill.Get(0)
	require.Error(t, err)
}

func TestFileSpillRange(t *testing.T) {
	spill, err := NewFileSpill[record]()
	require.NoError(t, err)

	defer spill.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, spill.Append(record{Value: float64(i)}))
	}

	var seen []float64

	err = spill.Range(func(_ uint64, item record) error {
		seen = append(seen, item.Value)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 2, 3, 4}, seen)
}

func TestFileSpillCloseIsIdempotent(t *testing.T) {
	spill, err := NewFileSpill[record]()
	require.NoError(t, err)

	require.NoError(t, spill.Close())
	require.NoError(t, spill.Close())
}

func TestFileSpillPath(t *testing.T) {
	spill, err := NewFileSpill[record]()
	require.NoError(t, err)

	defer spill.Close()

	require.NotEmpty(t, spill.Path())
}
