package lambdaaws

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"

	"github.com/sadewadee/vquest/internal/domain"
	"github.com/sadewadee/vquest/internal/logging"
	"github.com/sadewadee/vquest/internal/options"
	"github.com/sadewadee/vquest/internal/vquest"
	"github.com/sadewadee/vquest/runner"
	"github.com/sadewadee/vquest/s3uploader"
)

// Input is the event payload. Options are layered over the options the
// function was started with.
type Input struct {
	Options  map[string]any `json:"options"`
	Collapse *bool          `json:"collapse,omitempty"`
	S3Bucket string         `json:"s3_bucket,omitempty"`
	S3Prefix string         `json:"s3_prefix,omitempty"`
}

// Output is returned to the caller. Results are inlined unless they were
// uploaded to S3.
type Output struct {
	RunID     string                 `json:"run_id"`
	Collapsed domain.CollapsedResult `json:"collapsed,omitempty"`
	Batches   []domain.BatchResult   `json:"batches,omitempty"`
	Location  string                 `json:"location,omitempty"`
	Keys      []string               `json:"keys,omitempty"`
}

type lambdaAwsRunner struct {
	cfg         *runner.Config
	client      runner.Submitter
	newUploader func(ctx context.Context) (runner.S3Uploader, error)
	warmer      Warmer
	log         zerolog.Logger
}

func New(cfg *runner.Config) (runner.Runner, error) {
	if cfg.RunMode != runner.RunModeAwsLambda {
		return nil, fmt.Errorf("%w: %d", runner.ErrInvalidRunMode, cfg.RunMode)
	}

	client, err := cfg.NewClient()
	if err != nil {
		return nil, err
	}

	ans := lambdaAwsRunner{
		cfg:    cfg,
		client: client,
		warmer: newSelfInvoker(),
		log:    logging.Component(cfg.Logger, "lambda"),
	}

	ans.newUploader = func(ctx context.Context) (runner.S3Uploader, error) {
		if cfg.S3Uploader != nil {
			return cfg.S3Uploader, nil
		}

		return s3uploader.New(ctx, s3uploader.Config{
			AccessKey: cfg.AwsAccessKey,
			SecretKey: cfg.AwsSecretKey,
			Region:    cfg.AwsRegion,
			Logger:    logging.Component(cfg.Logger, "s3"),
		})
	}

	return &ans, nil
}

func (l *lambdaAwsRunner) Run(context.Context) error {
	lambda.Start(l.handler)

	return nil
}

func (l *lambdaAwsRunner) Close(context.Context) error {
	return nil
}

func (l *lambdaAwsRunner) handler(ctx context.Context, event json.RawMessage) (any, error) {
	if warmup, ok := IsWarmupEvent(event); ok {
		return HandleWarmup(ctx, l.warmer, warmup, l.log), nil
	}

	var input Input
	if err := json.Unmarshal(event, &input); err != nil {
		return nil, fmt.Errorf("%w: invalid event: %w", runner.ErrUsage, err)
	}

	return l.process(ctx, input)
}

func (l *lambdaAwsRunner) process(ctx context.Context, input Input) (*Output, error) {
	runID := runner.NewRunID()
	log := l.log.With().Str("run_id", runID).Logger()

	vcfg, err := vquest.ConfigFromOptions(options.Layer(l.cfg.Options, input.Options))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", runner.ErrUsage, err)
	}

	collapse := l.cfg.Collapse
	if input.Collapse != nil {
		collapse = *input.Collapse
	}

	log.Info().Bool("collapse", collapse).Msg("Processing V-QUEST request")

	out, err := runner.Submit(ctx, l.client, vcfg, collapse)
	if err != nil {
		return nil, err
	}

	ans := &Output{RunID: runID}

	bucket := input.S3Bucket
	if bucket == "" {
		bucket = l.cfg.S3Bucket
	}

	if bucket == "" {
		ans.Collapsed = out.Collapsed
		ans.Batches = out.Batches

		return ans, nil
	}

	prefix := input.S3Prefix
	if prefix == "" {
		prefix = l.cfg.S3Prefix
	}

	files, err := out.Files(l.cfg.XLSX && collapse)
	if err != nil {
		return nil, err
	}

	uploader, err := l.newUploader(ctx)
	if err != nil {
		return nil, err
	}

	ans.Keys, err = runner.UploadFiles(ctx, uploader, bucket, prefix, runID, files)
	if err != nil {
		return nil, err
	}

	ans.Location = fmt.Sprintf("s3://%s/%s/", bucket, path.Join(prefix, runID))

	log.Info().Str("location", ans.Location).Msg("Results uploaded")

	return ans, nil
}
