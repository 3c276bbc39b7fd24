package vquest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadewadee/vquest/internal/domain"
)

func batch(params, airr string) domain.BatchResult {
	return domain.BatchResult{
		domain.ParametersFile: []byte(params),
		domain.AIRRFile:       []byte(airr),
	}
}

func TestCollapse(t *testing.T) {
	tests := []struct {
		name     string
		batches  []domain.BatchResult
		expected domain.CollapsedResult
	}{
		{
			name:    "Single batch verbatim",
			batches: []domain.BatchResult{batch("params\n", "h1\th2\nr1\tx\n")},
			expected: domain.CollapsedResult{
				domain.ParametersFile: "params\n",
				domain.AIRRFile:       "h1\th2\nr1\tx\n",
			},
		},
		{
			name:    "Single batch gets trailing newline",
			batches: []domain.BatchResult{batch("params", "h1\th2\nr1\tx")},
			expected: domain.CollapsedResult{
				domain.ParametersFile: "params",
				domain.AIRRFile:       "h1\th2\nr1\tx\n",
			},
		},
		{
			name: "Two batches share one header",
			batches: []domain.BatchResult{
				batch("first", "h1\th2\nr1\ta\nr2\tb\n"),
				batch("second", "h1\th2\nr3\tc\nr4\td\n"),
			},
			expected: domain.CollapsedResult{
				domain.ParametersFile: "first",
				domain.AIRRFile:       "h1\th2\nr1\ta\nr2\tb\nr3\tc\nr4\td\n",
			},
		},
		{
			name: "Inconsistent trailing newlines",
			batches: []domain.BatchResult{
				batch("first", "h\nr1"),
				batch("second", "h\nr2\n"),
				batch("third", "h\nr3"),
			},
			expected: domain.CollapsedResult{
				domain.ParametersFile: "first",
				domain.AIRRFile:       "h\nr1\nr2\nr3\n",
			},
		},
		{
			name: "Header-only batch",
			batches: []domain.BatchResult{
				batch("first", "h\nr1\n"),
				batch("second", "h\n"),
			},
			expected: domain.CollapsedResult{
				domain.ParametersFile: "first",
				domain.AIRRFile:       "h\nr1\n",
			},
		},
		{
			name: "CRLF rows",
			batches: []domain.BatchResult{
				batch("first", "h\nr1\n"),
				batch("second", "h\r\nr2\r\n"),
			},
			expected: domain.CollapsedResult{
				domain.ParametersFile: "first",
				domain.AIRRFile:       "h\nr1\nr2\n",
			},
		},
		{
			name: "CRLF first batch",
			batches: []domain.BatchResult{
				batch("first", "h\r\nr1\r\n"),
				batch("second", "h\nr2\n"),
			},
			expected: domain.CollapsedResult{
				domain.ParametersFile: "first",
				domain.AIRRFile:       "h\nr1\nr2\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Collapse(tt.batches)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCollapseIgnoresOtherEntries(t *testing.T) {
	b := batch("p", "h\nr\n")
	b["11_Parameters.txt"] = []byte("extra")

	result, err := Collapse([]domain.BatchResult{b})
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestCollapseMissingFile(t *testing.T) {
	_, err := Collapse([]domain.BatchResult{
		batch("p", "h\nr\n"),
		{domain.ParametersFile: []byte("p")},
	})

	assert.ErrorIs(t, err, ErrMissingResultFile)
	assert.Contains(t, err.Error(), "batch 2")
}
