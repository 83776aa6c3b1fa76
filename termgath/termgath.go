// Package termgath renders harness run progress and reports to the
// terminal. It implements runner.Gatherer.
package termgath

import (
	"fmt"
	"time"

	"github.com/algoview/harness/api"
	"github.com/fatih/color"
)

var (
	passMark = color.New(color.FgGreen, color.Bold).Sprint("PASS")
	failMark = color.New(color.FgRed, color.Bold).Sprint("FAIL")
	errText  = color.New(color.FgYellow).SprintfFunc()
)

type TerminalGatherer struct {
	StartedAt time.Time

	total  int
	passed int
}

func New() *TerminalGatherer { return &TerminalGatherer{StartedAt: time.Now()} }

func (t *TerminalGatherer) StartRun(runID string, language string, total int) {
	t.StartedAt = time.Now()
	t.total = total
	t.passed = 0
	fmt.Printf("== Run %s (%s, %d cases) ==\n", runID, language, total)
}

func (t *TerminalGatherer) StartCase(i int, description string) {
	fmt.Printf("-> case %d: %s\n", i+1, description)
}

func (t *TerminalGatherer) FinishCase(i int, res api.TestResult) {
	mark := failMark
	if res.Passed {
		mark = passMark
		t.passed++
	}
	timing := ""
	if res.ExecutionMs != nil {
		timing = fmt.Sprintf(" (%.2fms)", *res.ExecutionMs)
	}
	fmt.Printf("<- case %d: %s%s\n", i+1, mark, timing)
	if res.Error != nil {
		fmt.Printf("   %s\n", errText("error: %s", *res.Error))
	} else if !res.Passed {
		fmt.Printf("   expected %v, got %v\n", res.Expected, res.Actual)
	}
}

func (t *TerminalGatherer) FinishRun(err error) {
	dur := time.Since(t.StartedAt).Round(time.Millisecond)
	if err != nil {
		fmt.Printf("== Run failed: %v ==\n", err)
		return
	}
	fmt.Printf("== %d/%d passed in %s ==\n", t.passed, t.total, dur)
}

// PrintReport renders a finished run collected elsewhere, e.g. from a batch
// of concurrently executed suites.
func PrintReport(rep api.RunReport) {
	fmt.Printf("== Run %s (%s): %d/%d passed in %dms ==\n",
		rep.RunID, rep.Language, rep.Passed, rep.Total, rep.TotalTimeMs)
	for i, res := range rep.Results {
		mark := failMark
		if res.Passed {
			mark = passMark
		}
		fmt.Printf("  case %d: %s %s\n", i+1, mark, res.Description)
		if res.Error != nil {
			fmt.Printf("    %s\n", errText("error: %s", *res.Error))
		} else if !res.Passed {
			fmt.Printf("    expected %v, got %v\n", res.Expected, res.Actual)
		}
	}
}
