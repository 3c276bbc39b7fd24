package s3runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/rs/zerolog"

	"github.com/sadewadee/vquest/internal/logging"
	"github.com/sadewadee/vquest/runner"
)

type s3Runner struct {
	cfg    *runner.Config
	client runner.Submitter
	runID  string
	out    io.Writer
	log    zerolog.Logger
}

func New(cfg *runner.Config) (runner.Runner, error) {
	if cfg.RunMode != runner.RunModeS3 {
		return nil, fmt.Errorf("%w: %d", runner.ErrInvalidRunMode, cfg.RunMode)
	}

	if cfg.S3Uploader == nil {
		return nil, fmt.Errorf("%w: S3 uploader not configured", runner.ErrUsage)
	}

	client, err := cfg.NewClient()
	if err != nil {
		return nil, err
	}

	return &s3Runner{
		cfg:    cfg,
		client: client,
		runID:  runner.NewRunID(),
		out:    os.Stdout,
		log:    logging.Component(cfg.Logger, "s3runner"),
	}, nil
}

func (r *s3Runner) Run(ctx context.Context) error {
	vcfg, err := r.cfg.VQuestConfig()
	if err != nil {
		return fmt.Errorf("%w: %w", runner.ErrUsage, err)
	}

	out, err := runner.Submit(ctx, r.client, vcfg, r.cfg.Collapse)
	if err != nil {
		return err
	}

	files, err := out.Files(r.cfg.XLSX)
	if err != nil {
		return err
	}

	r.log.Info().Str("run_id", r.runID).Int("files", len(files)).Msgf("Uploading %d files to s3://%s", len(files), r.cfg.S3Bucket)

	if _, err := runner.UploadFiles(ctx, r.cfg.S3Uploader, r.cfg.S3Bucket, r.cfg.S3Prefix, r.runID, files); err != nil {
		return err
	}

	_, err = fmt.Fprintf(r.out, "s3://%s/%s/\n", r.cfg.S3Bucket, path.Join(r.cfg.S3Prefix, r.runID))

	return err
}

func (r *s3Runner) Close(context.Context) error {
	return nil
}
