package scenario_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/algoview/harness/internal/scenario"
	"github.com/algoview/harness/runner"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

const coinSuite = `
description = "coin change battery"
language = "python"
code = """
def coin_change(coins, amount):
    pass
"""

[[cases]]
description = "11 from 1,2,5"
expected = 3

[cases.input]
coins = [1, 2, 5]
amount = 11

[[cases]]
description = "unreachable amount"
expected = -1

[cases.input]
coins = [2]
amount = 3
`

func writeSuite(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSuite(t *testing.T) {
	path := writeSuite(t, "coins.toml", coinSuite)

	s, err := scenario.Load(path)
	require.NoError(t, err)
	require.Equal(t, "python", s.Language)
	require.Len(t, s.Cases, 2)

	tests := s.TestCases()
	require.Len(t, tests, 2)
	require.Equal(t, "11 from 1,2,5", tests[0].Description)
	require.EqualValues(t, 3, tests[0].Expected)
	require.EqualValues(t, 11, tests[0].Input["amount"])

	code, err := s.Submission()
	require.NoError(t, err)
	require.Contains(t, code, "def coin_change")
}

func TestLoadCompressedSuite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coins.toml.zst")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = zw.Write([]byte(coinSuite))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	s, err := scenario.Load(path)
	require.NoError(t, err)
	require.Equal(t, "coin change battery", s.Description)
	require.Len(t, s.Cases, 2)
}

func TestLoadRejectsIncompleteSuites(t *testing.T) {
	_, err := scenario.Load(writeSuite(t, "nolang.toml", `
description = "missing language"
code = "x"

[[cases]]
expected = 1

[cases.input]
n = 1
`))
	require.ErrorContains(t, err, "does not name a language")

	_, err = scenario.Load(writeSuite(t, "nocases.toml", `
description = "no cases"
language = "python"
code = "def f(): pass"
`))
	require.ErrorContains(t, err, "has no cases")
}

func TestSuiteDrivesTheHarness(t *testing.T) {
	s, err := scenario.Load(writeSuite(t, "coins.toml", coinSuite))
	require.NoError(t, err)

	reg := runner.DefaultRegistry()
	r, err := reg.CreateRunner(s.Language)
	require.NoError(t, err)

	code, err := s.Submission()
	require.NoError(t, err)

	results, err := r.RunTests(context.Background(), code, s.TestCases())
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.True(t, results[0].Passed)
	require.True(t, results[1].Passed)
}
