// Package api holds the data model shared between the harness and its
// consumers. Values are plain data; all behaviour lives in the runner and
// compare packages.
package api

// TestCase is one (input, expected, description) triple from an algorithm's
// fixed catalog. Input maps parameter names to dynamically typed values:
// numbers, strings, arrays, or nested arrays/mappings as produced by JSON or
// TOML decoding. Test cases are created once and shared read-only across
// runs; nothing in the harness mutates them.
type TestCase struct {
	Input       map[string]any `json:"input"`
	Expected    any            `json:"expected"`
	Description string         `json:"description"`
}

// TestResult is the outcome of running a single TestCase. Exactly one is
// produced per input case per run, in the same order. Optional fields are
// pointers and omitted from JSON when absent.
type TestResult struct {
	Passed      bool   `json:"passed"`
	Expected    any    `json:"expected"`
	Actual      any    `json:"actual,omitempty"`
	Description string `json:"description"`

	// Wall time spent inside the single test-case execution, not the
	// whole run. Absent when the case never executed (e.g. validation
	// short-circuit).
	ExecutionMs *float64 `json:"execution_ms,omitempty"`

	// Error carries validation, runtime and timeout messages. A plain
	// wrong answer is not an error: Passed is false and both values are
	// populated for inspection.
	Error *string `json:"error,omitempty"`
}

// RunReport is the envelope the CLI layer wraps around a finished run for
// rendering or serialization. The library surface itself returns the bare
// result slice.
type RunReport struct {
	RunID    string `json:"run_id"`
	Language string `json:"language"`

	Passed int `json:"passed"`
	Total  int `json:"total"`

	TotalTimeMs int64        `json:"total_time_ms"`
	Results     []TestResult `json:"results"`
}

// Failed is a convenience counter for renderers.
func (r RunReport) Failed() int { return r.Total - r.Passed }
