package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/algoview/harness/api"
	"github.com/algoview/harness/internal/environment"
	"github.com/algoview/harness/internal/scenario"
	"github.com/algoview/harness/runner"
	"github.com/algoview/harness/termgath"
	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

func main() {
	cmd := &cli.Command{
		Name:      "check",
		Usage:     "verify algorithm submissions against scenario suites",
		ArgsUsage: "suite.toml [suite.toml ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "lang",
				Usage: "override the language named by the suite",
			},
			&cli.StringFlag{
				Name:  "code",
				Usage: "path to a submission file overriding the suite's code",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "per-case execution timeout for the native strategy",
			},
			&cli.BoolFlag{
				Name:  "list",
				Usage: "list supported languages and exit",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("check failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))

	envCfg, err := environment.ReadEnvConfig()
	if err != nil {
		return err
	}

	reg := buildRegistry(cmd.Duration("timeout"), envCfg)

	if cmd.Bool("list") {
		fmt.Println(strings.Join(reg.ListSupported(), "\n"))
		return nil
	}

	files := cmd.Args().Slice()
	if len(files) == 0 {
		return cli.Exit("no suite files given", 2)
	}

	if len(files) == 1 {
		rep, err := runSuite(ctx, reg, cmd, files[0], termgath.New())
		if err != nil {
			return err
		}
		if rep.Failed() > 0 {
			return cli.Exit(fmt.Sprintf("%d of %d cases failed", rep.Failed(), rep.Total), 1)
		}
		return nil
	}

	// independent suites run concurrently; each gets its own runner and
	// context, sharing only the registry
	reports := make([]api.RunReport, len(files))
	errs, gctx := errgroup.WithContext(ctx)
	for i, path := range files {
		i, path := i, path
		errs.Go(func() error {
			rep, err := runSuite(gctx, reg, cmd, path, nil)
			if err != nil {
				return fmt.Errorf("suite %s: %w", path, err)
			}
			reports[i] = rep
			return nil
		})
	}
	if err := errs.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, rep := range reports {
		termgath.PrintReport(rep)
		failed += rep.Failed()
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d cases failed across %d suites", failed, len(files)), 1)
	}
	return nil
}

func buildRegistry(timeoutFlag time.Duration, envCfg *environment.Config) *runner.Registry {
	execTimeout := runner.DefaultExecTimeout
	if envCfg.ExecTimeout > 0 {
		execTimeout = envCfg.ExecTimeout
	}
	if timeoutFlag > 0 {
		execTimeout = timeoutFlag
	}
	prepareTimeout := runner.DefaultPrepareTimeout
	if envCfg.PrepareTimeout > 0 {
		prepareTimeout = envCfg.PrepareTimeout
	}

	reg := runner.DefaultRegistry()
	for _, lang := range reg.ListSupported() {
		if runner.NativeCapable(lang) {
			reg.Register(lang, func() runner.Lifecycle {
				return runner.NewNative(
					runner.WithExecTimeout(execTimeout),
					runner.WithPrepareTimeout(prepareTimeout),
				)
			})
			continue
		}
		if envCfg.SimLatency > 0 {
			reg.Register(lang, func() runner.Lifecycle {
				return runner.NewSimulated(lang, runner.WithLatency(envCfg.SimLatency))
			})
		}
	}
	return reg
}

func runSuite(ctx context.Context, reg *runner.Registry, cmd *cli.Command, path string, gath runner.Gatherer) (api.RunReport, error) {
	suite, err := scenario.Load(path)
	if err != nil {
		return api.RunReport{}, err
	}

	language := suite.Language
	if l := cmd.String("lang"); l != "" {
		language = l
	}

	code, err := suite.Submission()
	if err != nil {
		return api.RunReport{}, err
	}
	if p := cmd.String("code"); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return api.RunReport{}, fmt.Errorf("read submission: %w", err)
		}
		code = string(b)
	}

	r, err := reg.CreateRunner(language)
	if err != nil {
		return api.RunReport{}, err
	}
	if gath != nil {
		r.SetGatherer(gath)
	}

	slog.Debug("running suite",
		"path", path, "language", language, "cases", len(suite.Cases))

	started := time.Now()
	results, err := r.RunTests(ctx, code, suite.TestCases())
	if err != nil {
		return api.RunReport{}, err
	}

	rep := api.RunReport{
		RunID:       uuid.NewString(),
		Language:    language,
		Total:       len(results),
		TotalTimeMs: time.Since(started).Milliseconds(),
		Results:     results,
	}
	for _, res := range results {
		if res.Passed {
			rep.Passed++
		}
	}
	return rep, nil
}
