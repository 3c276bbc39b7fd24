package vquest

import (
	"errors"

	"github.com/sadewadee/vquest/internal/response"
)

var (
	// ErrMissingRequiredOption is returned before any network activity when
	// species, receptorOrLocusType or sequence input is missing
	ErrMissingRequiredOption = errors.New("species, receptorOrLocusType, and fileSequences and/or sequences are required options")

	// ErrUnsupportedResultFormat is returned for any result format other than AIRR in a ZIP archive
	ErrUnsupportedResultFormat = errors.New("unsupported result format")

	// ErrNoSequences is returned when the configured input holds no records
	ErrNoSequences = errors.New("no sequences supplied")

	// ErrMissingResultFile is returned when a batch archive lacks a file needed to collapse results
	ErrMissingResultFile = errors.New("missing result file")
)

// ServerError carries the messages from a V-QUEST error page
type ServerError = response.ServerError
