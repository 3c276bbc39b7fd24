// Package archive extracts V-QUEST ZIP responses.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/sadewadee/vquest/internal/domain"
)

// ErrCorruptArchive is returned when response data is not a readable ZIP container
var ErrCorruptArchive = errors.New("corrupt archive")

// Unzip reads every entry of a ZIP blob into memory, keyed by entry name.
// Directory entries are skipped.
func Unzip(data []byte) (domain.BatchResult, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}

	result := make(domain.BatchResult, len(zr.File))

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}

		content, err := readEntry(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptArchive, f.Name, err)
		}

		result[f.Name] = content
	}

	return result, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// Names returns the entry names of a batch result in sorted order
func Names(result domain.BatchResult) []string {
	names := make([]string, 0, len(result))
	for name := range result {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
