package runner_test

import (
	"context"
	"testing"

	"github.com/algoview/harness/api"
	"github.com/algoview/harness/runner"
	"github.com/stretchr/testify/require"
)

func TestCreateRunnerUnsupportedLanguage(t *testing.T) {
	reg := runner.DefaultRegistry()

	_, err := reg.CreateRunner("unknown-lang")
	require.ErrorIs(t, err, runner.ErrUnsupportedLanguage)
	require.Contains(t, err.Error(), "unsupported language")
}

func TestRegisterAndUnregister(t *testing.T) {
	reg := runner.NewRegistry()
	require.False(t, reg.IsSupported("foo"))

	reg.Register("foo", func() runner.Lifecycle {
		return runner.NewSimulated("foo")
	})
	require.True(t, reg.IsSupported("foo"))

	r, err := reg.CreateRunner("foo")
	require.NoError(t, err)

	results, err := r.RunTests(context.Background(), "some submission", []api.TestCase{
		{Input: map[string]any{"m": 2, "n": 2}, Expected: 2, Description: "2x2 grid"},
	})
	require.NoError(t, err)
	require.True(t, results[0].Passed)

	reg.Unregister("foo")
	require.False(t, reg.IsSupported("foo"))
	_, err = reg.CreateRunner("foo")
	require.ErrorIs(t, err, runner.ErrUnsupportedLanguage)
}

func TestRegistryNormalizesIdentifiers(t *testing.T) {
	reg := runner.DefaultRegistry()

	require.True(t, reg.IsSupported("  JavaScript "))
	require.True(t, reg.IsSupported("PYTHON"))

	r, err := reg.CreateRunner("  JavaScript ")
	require.NoError(t, err)
	require.Equal(t, "javascript", r.Language())
}

func TestListSupportedIsSorted(t *testing.T) {
	reg := runner.DefaultRegistry()

	langs := reg.ListSupported()
	require.Contains(t, langs, "javascript")
	require.Contains(t, langs, "python")
	require.IsIncreasing(t, langs)
}

func TestNativeCapableClassification(t *testing.T) {
	require.True(t, runner.NativeCapable("javascript"))
	require.True(t, runner.NativeCapable(" JS "))
	require.False(t, runner.NativeCapable("python"))
	require.False(t, runner.NativeCapable("rust"))
}

func TestDefaultRegistryRoutesLanguages(t *testing.T) {
	reg := runner.DefaultRegistry()

	js, err := reg.CreateRunner("javascript")
	require.NoError(t, err)
	require.Equal(t, "javascript", js.Language())

	py, err := reg.CreateRunner("python")
	require.NoError(t, err)
	require.Equal(t, "python", py.Language())

	// fresh instances per call: concurrent runs never share a strategy
	a, err := reg.CreateRunner("python")
	require.NoError(t, err)
	b, err := reg.CreateRunner("python")
	require.NoError(t, err)
	require.NotSame(t, a, b)
}
