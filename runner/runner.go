// Package runner implements the test-execution harness: the lifecycle
// contract shared by all execution strategies, the native (in-process
// JavaScript) strategy, the simulated (no-runtime) strategy, and the
// registry that selects among them by language.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/algoview/harness/api"
	"github.com/google/uuid"
)

// ExecContext is the opaque, strategy-specific state produced by
// PrepareContext and consumed by ExecuteTestCase and CleanupContext. It is
// owned by a single RunTests invocation and never shared across runs.
type ExecContext any

// Lifecycle is the contract every execution strategy implements. The Runner
// drives it strictly in order: validate once, prepare once, execute each
// test case, clean up.
type Lifecycle interface {
	// Language returns the identifier the strategy was built for.
	Language() string

	// ValidateCode performs the language-specific static check. An error
	// short-circuits the run: every test case reports the same failure
	// and nothing executes.
	ValidateCode(code string) error

	// PrepareContext performs one-time setup, e.g. extracting a callable
	// from the source text. An error here is fatal to the whole run.
	PrepareContext(ctx context.Context, code string) (ExecContext, error)

	// ExecuteTestCase runs a single case. Errors are reported inside the
	// returned TestResult, never as a Go error, so one bad case cannot
	// abort its siblings.
	ExecuteTestCase(ctx context.Context, ec ExecContext, tc api.TestCase) api.TestResult

	// CleanupContext releases whatever PrepareContext acquired. Called
	// exactly once when prepare succeeded, however many cases failed.
	CleanupContext(ec ExecContext)
}

// PreparationError is the only failure that crosses the RunTests boundary as
// an error. It distinguishes "could not even try" from per-case failures,
// which are always encoded into the result slice.
type PreparationError struct {
	Language string
	Err      error
}

func (e *PreparationError) Error() string {
	return fmt.Sprintf("prepare %s context: %v", e.Language, e.Err)
}

func (e *PreparationError) Unwrap() error { return e.Err }

// Gatherer observes run progress. It mirrors the result-gatherer pattern of
// the evaluation pipeline: purely observational, never affecting results.
type Gatherer interface {
	StartRun(runID string, language string, total int)
	StartCase(i int, description string)
	FinishCase(i int, res api.TestResult)
	FinishRun(err error)
}

type noopGatherer struct{}

func (noopGatherer) StartRun(string, string, int) {}

func (noopGatherer) StartCase(int, string) {}

func (noopGatherer) FinishCase(int, api.TestResult) {}

func (noopGatherer) FinishRun(error) {}

// Runner drives a Lifecycle through the shared template. One Runner may
// serve many sequential runs; concurrent runs each need their own Runner
// since the execution context is per-run state.
type Runner struct {
	lifecycle Lifecycle
	gatherer  Gatherer
}

// New wraps a strategy lifecycle into a Runner.
func New(l Lifecycle) *Runner {
	return &Runner{lifecycle: l, gatherer: noopGatherer{}}
}

// Language returns the wrapped strategy's language identifier.
func (r *Runner) Language() string { return r.lifecycle.Language() }

// SetGatherer attaches a progress observer. Pass nil to detach.
func (r *Runner) SetGatherer(g Gatherer) {
	if g == nil {
		r.gatherer = noopGatherer{}
		return
	}
	r.gatherer = g
}

// RunTests verifies the submitted code against the test battery and returns
// one result per case, in input order. Validation failures and per-case
// faults are absorbed into the results; only a *PreparationError is returned
// as an error.
func (r *Runner) RunTests(ctx context.Context, code string, tests []api.TestCase) ([]api.TestResult, error) {
	runID := uuid.NewString()
	r.gatherer.StartRun(runID, r.lifecycle.Language(), len(tests))

	if err := r.lifecycle.ValidateCode(code); err != nil {
		results := r.shortCircuit(tests, err)
		r.gatherer.FinishRun(nil)
		return results, nil
	}

	ec, err := r.lifecycle.PrepareContext(ctx, code)
	if err != nil {
		perr := &PreparationError{Language: r.lifecycle.Language(), Err: err}
		r.gatherer.FinishRun(perr)
		return nil, perr
	}
	defer r.lifecycle.CleanupContext(ec)

	results := make([]api.TestResult, 0, len(tests))
	for i, tc := range tests {
		r.gatherer.StartCase(i, tc.Description)
		res := r.executeOne(ctx, ec, tc)
		results = append(results, res)
		r.gatherer.FinishCase(i, res)
	}

	r.gatherer.FinishRun(nil)
	return results, nil
}

// executeOne times a single case and contains any panic escaping the
// strategy so that sibling cases still run.
func (r *Runner) executeOne(ctx context.Context, ec ExecContext, tc api.TestCase) (res api.TestResult) {
	started := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			res = failedResult(tc, fmt.Sprintf("execution panic: %v", rec))
		}
		elapsed := float64(time.Since(started).Microseconds()) / 1000.0
		res.ExecutionMs = &elapsed
	}()
	return r.lifecycle.ExecuteTestCase(ctx, ec, tc)
}

func (r *Runner) shortCircuit(tests []api.TestCase, verr error) []api.TestResult {
	msg := verr.Error()
	results := make([]api.TestResult, 0, len(tests))
	for i, tc := range tests {
		r.gatherer.StartCase(i, tc.Description)
		res := api.TestResult{
			Passed:      false,
			Expected:    tc.Expected,
			Actual:      nil,
			Description: tc.Description,
			Error:       &msg,
		}
		results = append(results, res)
		r.gatherer.FinishCase(i, res)
	}
	return results
}

func failedResult(tc api.TestCase, msg string) api.TestResult {
	return api.TestResult{
		Passed:      false,
		Expected:    tc.Expected,
		Description: tc.Description,
		Error:       &msg,
	}
}
