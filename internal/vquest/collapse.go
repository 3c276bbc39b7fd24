package vquest

import (
	"fmt"
	"strings"

	"github.com/sadewadee/vquest/internal/domain"
)

// Collapse merges per-batch archives as though all sequences had been sent
// in one request. Parameters.txt is taken from the first batch; the AIRR
// table keeps the first batch's header and appends the data rows of the
// rest. The AIRR text always ends with a single newline.
func Collapse(batches []domain.BatchResult) (domain.CollapsedResult, error) {
	output := make(domain.CollapsedResult, 2)

	for i, batch := range batches {
		params, ok := batch[domain.ParametersFile]
		if !ok {
			return nil, fmt.Errorf("%w: batch %d has no %s", ErrMissingResultFile, i+1, domain.ParametersFile)
		}

		airr, ok := batch[domain.AIRRFile]
		if !ok {
			return nil, fmt.Errorf("%w: batch %d has no %s", ErrMissingResultFile, i+1, domain.AIRRFile)
		}

		if _, seen := output[domain.ParametersFile]; !seen {
			output[domain.ParametersFile] = string(params)
		}

		if table, seen := output[domain.AIRRFile]; !seen {
			output[domain.AIRRFile] = strings.ReplaceAll(string(airr), "\r\n", "\n")
		} else {
			output[domain.AIRRFile] = table + strings.Join(dataRows(string(airr)), "\n")
		}

		// batches disagree on whether the table ends with a newline
		if !strings.HasSuffix(output[domain.AIRRFile], "\n") {
			output[domain.AIRRFile] += "\n"
		}
	}

	return output, nil
}

// dataRows returns the lines of a table after its header
func dataRows(table string) []string {
	lines := splitLines(table)
	if len(lines) <= 1 {
		return nil
	}

	return lines[1:]
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}
