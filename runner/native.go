package runner

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/algoview/harness/api"
	"github.com/algoview/harness/compare"
	"github.com/dop251/goja"
	"github.com/dop251/goja/parser"
)

const (
	// DefaultExecTimeout bounds a single test-case invocation.
	DefaultExecTimeout = 1000 * time.Millisecond
	// DefaultPrepareTimeout bounds evaluating the submission's top-level
	// code while extracting the callable.
	DefaultPrepareTimeout = 5000 * time.Millisecond
)

// unsafePatterns is a conservative static screen against accidental unsafe
// code. It is not a security boundary: a determined adversary is out of
// scope for this harness.
var unsafePatterns = []struct {
	re   *regexp.Regexp
	name string
}{
	{regexp.MustCompile(`\bprocess\b`), "process object access"},
	{regexp.MustCompile(`\bglobalThis\b`), "globalThis access"},
	{regexp.MustCompile(`\bwindow\b`), "window access"},
	{regexp.MustCompile(`\bdocument\b`), "document access"},
	{regexp.MustCompile(`\brequire\s*\(`), "module require"},
	{regexp.MustCompile(`\bimport\s`), "module import"},
	{regexp.MustCompile(`\bexport\s`), "module export"},
	{regexp.MustCompile(`\beval\s*\(`), "dynamic eval"},
	{regexp.MustCompile(`\bFunction\s*\(`), "Function constructor"},
	{regexp.MustCompile(`\bfetch\s*\(`), "network fetch"},
	{regexp.MustCompile(`\bXMLHttpRequest\b`), "XMLHttpRequest"},
	{regexp.MustCompile(`\bchild_process\b`), "child process spawn"},
}

var (
	namedFnRe = regexp.MustCompile(
		`function\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*\(([^)]*)\)`)
	boundFnRe = regexp.MustCompile(
		`(?:const|let|var)\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*=\s*(?:async\s+)?function\s*\(([^)]*)\)`)
	arrowFnRe = regexp.MustCompile(
		`(?:const|let|var)\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*=\s*(?:async\s*)?\(([^)]*)\)\s*=>`)
	bareArrowRe = regexp.MustCompile(
		`(?:const|let|var)\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*=\s*(?:async\s+)?([A-Za-z_$][A-Za-z0-9_$]*)\s*=>`)
)

// Native evaluates JavaScript submissions inside the host process using an
// embedded goja runtime. It is the strategy for the one language family the
// host can execute itself; everything else goes through Simulated.
type Native struct {
	execTimeout    time.Duration
	prepareTimeout time.Duration
}

// NativeOption adjusts the construction-time limits.
type NativeOption func(*Native)

// WithExecTimeout overrides the per-test-case execution timeout.
func WithExecTimeout(d time.Duration) NativeOption {
	return func(n *Native) { n.execTimeout = d }
}

// WithPrepareTimeout overrides the top-level evaluation budget.
func WithPrepareTimeout(d time.Duration) NativeOption {
	return func(n *Native) { n.prepareTimeout = d }
}

// NewNative builds the in-process JavaScript strategy.
func NewNative(opts ...NativeOption) *Native {
	n := &Native{
		execTimeout:    DefaultExecTimeout,
		prepareTimeout: DefaultPrepareTimeout,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Native) Language() string { return "javascript" }

// ValidateCode parses the submission and screens it against the denylist.
func (n *Native) ValidateCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errors.New("submission is empty")
	}
	for _, p := range unsafePatterns {
		if p.re.MatchString(code) {
			return fmt.Errorf("unsafe construct: %s", p.name)
		}
	}
	if _, err := parser.ParseFile(nil, "submission.js", code, 0); err != nil {
		return fmt.Errorf("syntax error: %v", err)
	}
	return nil
}

type nativeContext struct {
	vm     *goja.Runtime
	fn     goja.Callable
	params []string
}

// PrepareContext evaluates the submission's top level and extracts the
// single callable it declares, together with its parameter names. Arguments
// are later bound to test-case input values by parameter name.
func (n *Native) PrepareContext(ctx context.Context, code string) (ExecContext, error) {
	name, params, ok := detectCallable(code)
	if !ok {
		return nil, errors.New("could not detect function name")
	}

	prog, err := goja.Compile("submission.js", code, false)
	if err != nil {
		return nil, fmt.Errorf("compile submission: %w", err)
	}

	vm := goja.New()
	timer := time.AfterFunc(n.prepareTimeout, func() {
		vm.Interrupt("top-level evaluation timed out")
	})
	_, err = vm.RunProgram(prog)
	timer.Stop()
	vm.ClearInterrupt()
	if err != nil {
		return nil, fmt.Errorf("evaluate submission: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fn, ok := goja.AssertFunction(vm.Get(name))
	if !ok {
		return nil, fmt.Errorf("declaration %q is not callable", name)
	}

	return &nativeContext{vm: vm, fn: fn, params: params}, nil
}

// ExecuteTestCase invokes the callable under a completion-vs-timer race. On
// timeout the runtime is interrupted, so even a tight synchronous loop
// cannot wedge the host; the case is reported as failed with a timeout
// message and the run moves on.
func (n *Native) ExecuteTestCase(ctx context.Context, ec ExecContext, tc api.TestCase) api.TestResult {
	nc := ec.(*nativeContext)

	args := make([]goja.Value, 0, len(nc.params))
	for _, p := range nc.params {
		v, ok := tc.Input[p]
		if !ok {
			return failedResult(tc, fmt.Sprintf("no input value for parameter %q", p))
		}
		args = append(args, nc.vm.ToValue(v))
	}

	type outcome struct {
		value any
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- outcome{err: fmt.Errorf("runtime panic: %v", rec)}
			}
		}()
		v, err := nc.fn(goja.Undefined(), args...)
		if err != nil {
			done <- outcome{err: err}
			return
		}
		done <- outcome{value: settle(v)}
	}()

	timer := time.NewTimer(n.execTimeout)
	defer timer.Stop()

	var out outcome
	select {
	case out = <-done:
	case <-timer.C:
		nc.vm.Interrupt("execution timed out")
		<-done
		nc.vm.ClearInterrupt()
		return failedResult(tc, fmt.Sprintf("execution timed out after %s", n.execTimeout))
	case <-ctx.Done():
		nc.vm.Interrupt("run cancelled")
		<-done
		nc.vm.ClearInterrupt()
		return failedResult(tc, fmt.Sprintf("run cancelled: %v", ctx.Err()))
	}

	if out.err != nil {
		return failedResult(tc, executionErrMessage(out.err))
	}
	if err, ok := out.value.(error); ok {
		return failedResult(tc, executionErrMessage(err))
	}

	return api.TestResult{
		Passed:      compare.Equal(tc.Expected, out.value),
		Expected:    tc.Expected,
		Actual:      out.value,
		Description: tc.Description,
	}
}

// CleanupContext drops the runtime; the callable holds no external
// resources.
func (n *Native) CleanupContext(ec ExecContext) {}

// settle exports a goja value, unwrapping an already settled promise so that
// async submissions work. Goja drains the microtask queue before control
// returns to Go, so a promise still pending here will never settle.
func settle(v goja.Value) any {
	exp := v.Export()
	p, ok := exp.(*goja.Promise)
	if !ok {
		return exp
	}
	switch p.State() {
	case goja.PromiseStateFulfilled:
		return p.Result().Export()
	case goja.PromiseStateRejected:
		return fmt.Errorf("promise rejected: %v", p.Result())
	default:
		return errors.New("asynchronous result never settled")
	}
}

func executionErrMessage(err error) string {
	var iErr *goja.InterruptedError
	if errors.As(err, &iErr) {
		return fmt.Sprintf("execution interrupted: %v", iErr.Value())
	}
	var jsErr *goja.Exception
	if errors.As(err, &jsErr) {
		return fmt.Sprintf("runtime error: %s", jsErr.Value().String())
	}
	return err.Error()
}

// detectCallable scans the submission for the first top-level callable
// declaration: a named function, or a const/let/var binding to a function or
// arrow expression. Returns the callable's name and declared parameter
// names.
func detectCallable(code string) (string, []string, bool) {
	type match struct {
		index  int
		name   string
		params string
	}
	best := match{index: -1}
	consider := func(loc []int, name, params string) {
		if loc == nil {
			return
		}
		if best.index == -1 || loc[0] < best.index {
			best = match{index: loc[0], name: name, params: params}
		}
	}

	for _, re := range []*regexp.Regexp{namedFnRe, boundFnRe, arrowFnRe} {
		if m := re.FindStringSubmatchIndex(code); m != nil {
			consider(m, code[m[2]:m[3]], code[m[4]:m[5]])
		}
	}
	if m := bareArrowRe.FindStringSubmatchIndex(code); m != nil {
		consider(m, code[m[2]:m[3]], code[m[4]:m[5]])
	}

	if best.index == -1 {
		return "", nil, false
	}
	return best.name, splitParams(best.params), true
}

func splitParams(list string) []string {
	parts := strings.Split(list, ",")
	params := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		// drop default values and rest markers
		if i := strings.IndexAny(p, "= "); i >= 0 {
			p = p[:i]
		}
		p = strings.TrimPrefix(p, "...")
		if p != "" {
			params = append(params, p)
		}
	}
	return params
}
