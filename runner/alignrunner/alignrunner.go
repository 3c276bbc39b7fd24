package alignrunner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/sadewadee/vquest/internal/airr"
	"github.com/sadewadee/vquest/internal/domain"
	"github.com/sadewadee/vquest/internal/logging"
	"github.com/sadewadee/vquest/runner"
)

// alignRunner prints the aligned sequences as FASTA and writes no files
type alignRunner struct {
	cfg    *runner.Config
	client runner.Submitter
	out    io.Writer
	log    zerolog.Logger
}

func New(cfg *runner.Config) (runner.Runner, error) {
	if cfg.RunMode != runner.RunModeAlign {
		return nil, fmt.Errorf("%w: %d", runner.ErrInvalidRunMode, cfg.RunMode)
	}

	client, err := cfg.NewClient()
	if err != nil {
		return nil, err
	}

	return &alignRunner{
		cfg:    cfg,
		client: client,
		out:    os.Stdout,
		log:    logging.Component(cfg.Logger, "alignrunner"),
	}, nil
}

func (r *alignRunner) Run(ctx context.Context) error {
	vcfg, err := r.cfg.VQuestConfig()
	if err != nil {
		return fmt.Errorf("%w: %w", runner.ErrUsage, err)
	}

	out, err := runner.Submit(ctx, r.client, vcfg, true)
	if err != nil {
		return err
	}

	fasta, err := airr.ToFASTA(out.Collapsed[domain.AIRRFile])
	if err != nil {
		return err
	}

	r.log.Info().Msg("Writing FASTA to stdout")

	_, err = io.WriteString(r.out, fasta)

	return err
}

func (r *alignRunner) Close(context.Context) error {
	return nil
}
