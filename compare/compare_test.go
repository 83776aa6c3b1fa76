package compare_test

import (
	"testing"

	"github.com/algoview/harness/compare"
	"github.com/stretchr/testify/require"
)

func TestEqualNil(t *testing.T) {
	require.True(t, compare.Equal(nil, nil))
	require.False(t, compare.Equal(nil, 0))
	require.False(t, compare.Equal(0, nil))
	require.False(t, compare.Equal(nil, ""))
}

func TestEqualNumericTolerance(t *testing.T) {
	require.True(t, compare.Equal(1.0000000001, 1.0000000002))
	require.False(t, compare.Equal(1.0, 1.1))
	require.True(t, compare.Equal(28, 28.0))
	require.True(t, compare.Equal(int64(3), 3))
	require.False(t, compare.Equal(3, "3"))
}

func TestEqualSequences(t *testing.T) {
	require.True(t, compare.Equal(
		[]any{[]any{1, 2}, []any{3, 4}},
		[]any{[]any{1, 2}, []any{3, 4}},
	))
	require.False(t, compare.Equal(
		[]any{[]any{1, 2}},
		[]any{[]any{1, 2, 3}},
	))
	// mixed concrete element types, same values
	require.True(t, compare.Equal([]any{int64(1), int64(2)}, []any{1.0, 2.0}))
	require.False(t, compare.Equal([]any{1, 2}, []any{2, 1}))
	require.False(t, compare.Equal([]any{1, 2}, 12))
}

func TestEqualMappings(t *testing.T) {
	require.True(t, compare.Equal(
		map[string]any{"a": 1, "b": "x"},
		map[string]any{"b": "x", "a": 1},
	))
	require.False(t, compare.Equal(
		map[string]any{"a": 1},
		map[string]any{"a": 2},
	))
}

func TestEqualStrings(t *testing.T) {
	require.True(t, compare.Equal("four", "four"))
	require.False(t, compare.Equal("four", "five"))
}

func TestEqualSymmetry(t *testing.T) {
	pairs := [][2]any{
		{nil, 1},
		{1.0000000001, 1.0000000002},
		{[]any{1, 2}, []any{1, 2, 3}},
		{map[string]any{"a": 1}, map[string]any{"a": 1}},
		{"x", []any{"x"}},
	}
	for _, p := range pairs {
		require.Equal(t, compare.Equal(p[0], p[1]), compare.Equal(p[1], p[0]))
	}
}
