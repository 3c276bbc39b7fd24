// Package airr reads AIRR rearrangement tables as returned by V-QUEST.
package airr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sadewadee/vquest/internal/domain"
)

const (
	ColumnSequenceID        = "sequence_id"
	ColumnSequence          = "sequence"
	ColumnSequenceAlignment = "sequence_alignment"
)

var (
	// ErrMissingColumn is returned when the table lacks a column needed for conversion
	ErrMissingColumn = errors.New("missing AIRR column")

	// ErrMalformedTable is returned for rows with more fields than the header
	ErrMalformedTable = errors.New("malformed AIRR table")
)

// Table is a parsed tab-separated table with a header row
type Table struct {
	Header []string
	Rows   [][]string
}

// Parse reads a tab-separated table. Fields are never quoted, blank lines
// are skipped and rows shorter than the header are padded.
func Parse(tsv string) (*Table, error) {
	table := &Table{}

	for line := range strings.Lines(tsv) {
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")

		if table.Header == nil {
			table.Header = fields
			continue
		}

		if len(fields) > len(table.Header) {
			return nil, fmt.Errorf("%w: row %d has %d fields, header has %d", ErrMalformedTable, len(table.Rows)+1, len(fields), len(table.Header))
		}

		for len(fields) < len(table.Header) {
			fields = append(fields, "")
		}

		table.Rows = append(table.Rows, fields)
	}

	return table, nil
}

// Column returns the index of the named column or -1
func (t *Table) Column(name string) int {
	for i, col := range t.Header {
		if col == name {
			return i
		}
	}

	return -1
}

// Records converts each row to a record holding the aligned sequence, or
// the input sequence when the row has no alignment
func (t *Table) Records() ([]domain.Record, error) {
	idCol := t.Column(ColumnSequenceID)
	seqCol := t.Column(ColumnSequence)
	alnCol := t.Column(ColumnSequenceAlignment)

	for name, idx := range map[string]int{
		ColumnSequenceID:        idCol,
		ColumnSequence:          seqCol,
		ColumnSequenceAlignment: alnCol,
	} {
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	records := make([]domain.Record, 0, len(t.Rows))

	for _, row := range t.Rows {
		letters := row[alnCol]
		if letters == "" {
			letters = row[seqCol]
		}

		records = append(records, domain.Record{ID: row[idCol], Letters: letters})
	}

	return records, nil
}

// ToFASTA extracts sequence_id and sequence_alignment from an AIRR table as
// unwrapped FASTA, one record per row
func ToFASTA(tsv string) (string, error) {
	table, err := Parse(tsv)
	if err != nil {
		return "", err
	}

	if table.Header == nil {
		return "", nil
	}

	records, err := table.Records()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, rec := range records {
		b.WriteString(">" + rec.Header() + "\n" + rec.Letters + "\n")
	}

	return b.String(), nil
}
