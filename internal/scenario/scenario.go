// Package scenario loads TOML suite files pairing a submission with the
// test battery to verify it against. Suites drive the check CLI and the
// integration tests. Files ending in .zst are transparently decompressed.
package scenario

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/algoview/harness/api"
	"github.com/klauspost/compress/zstd"
	"github.com/pelletier/go-toml/v2"
)

// Case is one test case entry in a suite file.
type Case struct {
	Description string         `toml:"description"`
	Expected    any            `toml:"expected"`
	Input       map[string]any `toml:"input"`
}

// Suite is a parsed scenario file: the language, the submission (inline or
// referenced), and the ordered test battery.
type Suite struct {
	Description string `toml:"description"`
	Language    string `toml:"language"`
	Code        string `toml:"code"`
	CodeFile    string `toml:"code_file"`
	Cases       []Case `toml:"cases"`
}

// TestCases converts the suite's entries into the harness test model,
// preserving order.
func (s *Suite) TestCases() []api.TestCase {
	tests := make([]api.TestCase, 0, len(s.Cases))
	for _, c := range s.Cases {
		tests = append(tests, api.TestCase{
			Input:       c.Input,
			Expected:    c.Expected,
			Description: c.Description,
		})
	}
	return tests
}

// Submission returns the code under test, reading CodeFile relative to the
// current directory when no inline code is present.
func (s *Suite) Submission() (string, error) {
	if s.Code != "" {
		return s.Code, nil
	}
	if s.CodeFile == "" {
		return "", fmt.Errorf("suite %q has neither code nor code_file", s.Description)
	}
	b, err := os.ReadFile(s.CodeFile)
	if err != nil {
		return "", fmt.Errorf("read code_file: %w", err)
	}
	return string(b), nil
}

// Load reads and parses a suite file, decompressing .zst files on the fly.
func Load(path string) (*Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open suite: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open zstd stream: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	return Parse(r)
}

// Parse decodes a suite from TOML.
func Parse(r io.Reader) (*Suite, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read suite: %w", err)
	}

	var s Suite
	if err := toml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse suite: %w", err)
	}
	if s.Language == "" {
		return nil, fmt.Errorf("suite %q does not name a language", s.Description)
	}
	if len(s.Cases) == 0 {
		return nil, fmt.Errorf("suite %q has no cases", s.Description)
	}
	return &s, nil
}
