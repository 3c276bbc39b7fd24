package s3uploader

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// Config for the uploader. Without keys the default AWS credential chain is used.
type Config struct {
	AccessKey string
	SecretKey string
	Region    string
	// Endpoint overrides the S3 endpoint, e.g. for MinIO or tests
	Endpoint  string
	PathStyle bool
	Logger    zerolog.Logger
}

type Uploader struct {
	client *s3.Client
	log    zerolog.Logger
}

func New(ctx context.Context, cfg Config) (*Uploader, error) {
	var opts []func(*config.LoadOptions) error

	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}

		o.UsePathStyle = cfg.PathStyle
	})

	return &Uploader{client: client, log: cfg.Logger}, nil
}

func (u *Uploader) Upload(ctx context.Context, bucketName, key string, body io.Reader) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(ContentType(key)),
	})
	if err != nil {
		return fmt.Errorf("failed to upload s3://%s/%s: %w", bucketName, key, err)
	}

	u.log.Info().Str("bucket", bucketName).Str("key", key).Msgf("Uploaded s3://%s/%s", bucketName, key)

	return nil
}

// ContentType picks the object content type from the key extension
func ContentType(key string) string {
	switch path.Ext(key) {
	case ".tsv":
		return "text/tab-separated-values"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".fasta", ".fa":
		return "text/x-fasta"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".html":
		return "text/html"
	default:
		return "application/octet-stream"
	}
}
