package filerunner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/sadewadee/vquest/internal/logging"
	"github.com/sadewadee/vquest/runner"
)

type fileRunner struct {
	cfg    *runner.Config
	client runner.Submitter
	log    zerolog.Logger
}

func New(cfg *runner.Config) (runner.Runner, error) {
	if cfg.RunMode != runner.RunModeFile {
		return nil, fmt.Errorf("%w: %d", runner.ErrInvalidRunMode, cfg.RunMode)
	}

	client, err := cfg.NewClient()
	if err != nil {
		return nil, err
	}

	return &fileRunner{
		cfg:    cfg,
		client: client,
		log:    logging.Component(cfg.Logger, "filerunner"),
	}, nil
}

func (r *fileRunner) Run(ctx context.Context) error {
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

	return WriteFiles(r.cfg.OutDir, files, r.log)
}

func (r *fileRunner) Close(context.Context) error {
	return nil
}

// WriteFiles writes each file under dir, creating directories as needed
func WriteFiles(dir string, files map[string][]byte, log zerolog.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, name := range runner.SortedNames(files) {
		outputPath := filepath.Join(dir, filepath.FromSlash(name))

		if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		log.Info().Str("path", outputPath).Msgf("Writing %s", outputPath)

		if err := os.WriteFile(outputPath, files[name], 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputPath, err)
		}
	}

	return nil
}
