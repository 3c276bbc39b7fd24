package vquest

import (
	"fmt"
	"os"

	"github.com/sadewadee/vquest/internal/domain"
	"github.com/sadewadee/vquest/internal/seqio"
)

// ParseRecords collects the inline sequences followed by the sequences in
// fileSequences, in file order
func ParseRecords(cfg Config) ([]domain.Record, error) {
	var records []domain.Record

	if cfg.Sequences != "" {
		format, err := seqio.DetectFormat(cfg.Sequences)
		if err != nil {
			return nil, err
		}

		inline, err := seqio.ParseString(cfg.Sequences, format)
		if err != nil {
			return nil, err
		}

		records = append(records, inline...)
	}

	if cfg.FileSequences != "" {
		format, err := seqio.FormatForPath(cfg.FileSequences)
		if err != nil {
			return nil, err
		}

		fromFile, err := parseFile(cfg.FileSequences, format)
		if err != nil {
			return nil, err
		}

		records = append(records, fromFile...)
	}

	return records, nil
}

func parseFile(path string, format seqio.Format) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sequence file: %w", err)
	}
	defer f.Close()

	return seqio.Parse(f, format)
}
