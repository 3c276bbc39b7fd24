package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sadewadee/vquest/runner"
	"github.com/sadewadee/vquest/runner/alignrunner"
	"github.com/sadewadee/vquest/runner/filerunner"
	"github.com/sadewadee/vquest/runner/lambdaaws"
	"github.com/sadewadee/vquest/runner/s3runner"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := runner.ParseConfig(args, os.Stdout, os.Stderr)
	if err != nil {
		if !errors.Is(err, runner.ErrNothingToDo) && runner.ExitCode(err) != runner.ExitOK {
			fmt.Fprintln(os.Stderr, err)
		}

		return runner.ExitCode(err)
	}

	if cfg.ShowVersion {
		fmt.Println(runner.VersionString())

		return runner.ExitOK
	}

	if cfg.Verbose > 0 {
		runner.Banner(os.Stderr, 0)
	}

	log := cfg.Logger

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan

		log.Warn().Msg("Received signal, shutting down...")

		cancel()
	}()

	log.Debug().Int("run_mode", cfg.RunMode).Msg("Starting")

	runnerInstance, err := runnerFactory(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return runner.ExitCode(err)
	}

	if err := runnerInstance.Run(ctx); err != nil {
		_ = runnerInstance.Close(ctx)

		fmt.Fprintln(os.Stderr, err)

		return runner.ExitCode(err)
	}

	_ = runnerInstance.Close(ctx)

	log.Info().Msg("Done.")

	return runner.ExitOK
}

func runnerFactory(cfg *runner.Config) (runner.Runner, error) {
	switch cfg.RunMode {
	case runner.RunModeFile:
		return filerunner.New(cfg)
	case runner.RunModeAlign:
		return alignrunner.New(cfg)
	case runner.RunModeS3:
		return s3runner.New(cfg)
	case runner.RunModeAwsLambda:
		return lambdaaws.New(cfg)
	default:
		return nil, fmt.Errorf("%w: %d", runner.ErrInvalidRunMode, cfg.RunMode)
	}
}
