// Package seqio reads and writes sequence records in FASTA and FASTQ format.
package seqio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/biogo/biogo/alphabet"
	bioseqio "github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/biogo/seq/linear"

	"github.com/sadewadee/vquest/internal/domain"
)

// Format is a supported sequence file format
type Format int

const (
	FASTA Format = iota + 1
	FASTQ
)

// Width is the line width used when writing FASTA
const Width = 60

// ErrUnrecognizedFormat is returned when input text or a file extension maps to no known format
var ErrUnrecognizedFormat = errors.New("sequence format not recognized")

var extensions = map[string]Format{
	".fasta": FASTA,
	".fa":    FASTA,
	".fna":   FASTA,
	".fastq": FASTQ,
	".fq":    FASTQ,
}

func (f Format) String() string {
	switch f {
	case FASTA:
		return "fasta"
	case FASTQ:
		return "fastq"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// DetectFormat picks a format from the leading character of inline text
func DetectFormat(text string) (Format, error) {
	switch {
	case strings.HasPrefix(text, "@"):
		return FASTQ, nil
	case strings.HasPrefix(text, ">"):
		return FASTA, nil
	default:
		return 0, ErrUnrecognizedFormat
	}
}

// FormatForPath picks a format from a file name extension
func FormatForPath(path string) (Format, error) {
	format, ok := extensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return 0, fmt.Errorf("%w for %s", ErrUnrecognizedFormat, path)
	}

	return format, nil
}

// Parse reads all records from r in file order
func Parse(r io.Reader, format Format) ([]domain.Record, error) {
	var reader bioseqio.Reader

	switch format {
	case FASTA:
		reader = fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAredundant))
	case FASTQ:
		reader = fastq.NewReader(r, linear.NewQSeq("", nil, alphabet.DNAredundant, alphabet.Sanger))
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedFormat, format)
	}

	var records []domain.Record

	sc := bioseqio.NewScanner(reader)
	for sc.Next() {
		records = append(records, toRecord(sc.Seq()))
	}

	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", format, err)
	}

	return records, nil
}

// ParseString is Parse over inline text
func ParseString(text string, format Format) ([]domain.Record, error) {
	return Parse(strings.NewReader(text), format)
}

func toRecord(s seq.Sequence) domain.Record {
	letters := make([]byte, s.Len())
	for i := range letters {
		letters[i] = byte(s.At(i).L)
	}

	return domain.Record{
		ID:          s.Name(),
		Description: s.Description(),
		Letters:     string(letters),
	}
}

// Write serializes records as FASTA wrapped at Width columns
func Write(w io.Writer, records []domain.Record) error {
	fw := fasta.NewWriter(w, Width)

	for _, r := range records {
		s := linear.NewSeq(r.ID, alphabet.BytesToLetters([]byte(r.Letters)), alphabet.DNAredundant)
		s.Desc = r.Description

		if _, err := fw.Write(s); err != nil {
			return fmt.Errorf("failed to write record %s: %w", r.ID, err)
		}
	}

	return nil
}

// FormatFASTA returns records serialized as FASTA text
func FormatFASTA(records []domain.Record) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, records); err != nil {
		return "", err
	}

	return buf.String(), nil
}
