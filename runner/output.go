package runner

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"path"
	"slices"

	"github.com/sadewadee/vquest/internal/domain"
	"github.com/sadewadee/vquest/internal/export"
	"github.com/sadewadee/vquest/internal/vquest"
)

// XLSXFile is the workbook written next to the collapsed AIRR table
const XLSXFile = "vquest_airr.xlsx"

// Submitter is the part of vquest.Client the runners use
type Submitter interface {
	Submit(ctx context.Context, cfg vquest.Config) (domain.CollapsedResult, error)
	SubmitBatches(ctx context.Context, cfg vquest.Config) ([]domain.BatchResult, error)
}

// Output holds one run's results. Exactly one of Collapsed and Batches is set.
type Output struct {
	Collapsed domain.CollapsedResult
	Batches   []domain.BatchResult
}

// Submit runs the request, collapsing the batches if asked to
func Submit(ctx context.Context, client Submitter, cfg vquest.Config, collapse bool) (*Output, error) {
	if collapse {
		collapsed, err := client.Submit(ctx, cfg)
		if err != nil {
			return nil, err
		}

		return &Output{Collapsed: collapsed}, nil
	}

	batches, err := client.SubmitBatches(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Output{Batches: batches}, nil
}

// Files lays the output out by relative path: collapsed files at the top
// level, batch files under 001/, 002/ and so on. With xlsx the collapsed
// AIRR table is also converted to a workbook.
func (o *Output) Files(xlsx bool) (map[string][]byte, error) {
	files := make(map[string][]byte)

	if o.Collapsed != nil {
		for name, text := range o.Collapsed {
			files[name] = []byte(text)
		}

		if xlsx {
			var buf bytes.Buffer
			if err := export.AIRRToXLSX(o.Collapsed[domain.AIRRFile], &buf); err != nil {
				return nil, err
			}

			files[XLSXFile] = buf.Bytes()
		}

		return files, nil
	}

	if xlsx {
		return nil, fmt.Errorf("%w: -xlsx needs collapsed results", ErrUsage)
	}

	for i, batch := range o.Batches {
		dir := BatchDir(i)
		for name, data := range batch {
			files[path.Join(dir, name)] = data
		}
	}

	return files, nil
}

// BatchDir names the directory for the batch at index i
func BatchDir(i int) string {
	return fmt.Sprintf("%03d", i+1)
}

// SortedNames lists file names in a stable order
func SortedNames(files map[string][]byte) []string {
	return slices.Sorted(maps.Keys(files))
}
