package runner

import (
	"bytes"
	"context"
	"path"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// UploadConcurrency bounds parallel S3 uploads. Uploads never touch V-QUEST.
const UploadConcurrency = 4

// NewRunID names one run's output prefix
func NewRunID() string {
	return uuid.New().String()
}

// UploadFiles stores files under prefix/runID/ and returns the keys written, sorted
func UploadFiles(ctx context.Context, uploader S3Uploader, bucket, prefix, runID string, files map[string][]byte) ([]string, error) {
	names := SortedNames(files)
	keys := make([]string, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(UploadConcurrency)

	for i, name := range names {
		key := path.Join(prefix, runID, name)
		keys[i] = key

		g.Go(func() error {
			return uploader.Upload(ctx, bucket, key, bytes.NewReader(files[name]))
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return keys, nil
}
