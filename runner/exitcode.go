package runner

import (
	"errors"
	"flag"
	"io/fs"
	"net"
	"net/url"

	"github.com/sadewadee/vquest/internal/airr"
	"github.com/sadewadee/vquest/internal/archive"
	"github.com/sadewadee/vquest/internal/options"
	"github.com/sadewadee/vquest/internal/response"
	"github.com/sadewadee/vquest/internal/seqio"
	"github.com/sadewadee/vquest/internal/transport"
	"github.com/sadewadee/vquest/internal/vquest"
)

// Exit codes returned by the command line tool
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitUsage      = 2
	ExitInput      = 3
	ExitServer     = 4
	ExitConnection = 5
)

// ExitCode maps an error to the process exit status
func ExitCode(err error) int {
	var (
		serverErr *vquest.ServerError
		urlErr    *url.Error
		netErr    net.Error
	)

	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return ExitOK
	case errors.Is(err, ErrNothingToDo):
		return ExitFailure
	case errors.Is(err, ErrUsage),
		errors.Is(err, ErrInvalidRunMode),
		errors.Is(err, options.ErrInvalidConfig),
		errors.Is(err, options.ErrInvalidValue):
		return ExitUsage
	case errors.Is(err, vquest.ErrMissingRequiredOption),
		errors.Is(err, vquest.ErrUnsupportedResultFormat),
		errors.Is(err, vquest.ErrNoSequences),
		errors.Is(err, seqio.ErrUnrecognizedFormat),
		errors.Is(err, fs.ErrNotExist):
		return ExitInput
	case errors.As(err, &serverErr),
		errors.Is(err, response.ErrUnexpectedResponse):
		return ExitServer
	case errors.Is(err, transport.ErrUnexpectedStatus),
		errors.Is(err, archive.ErrCorruptArchive),
		errors.Is(err, vquest.ErrMissingResultFile),
		errors.Is(err, airr.ErrMissingColumn),
		errors.Is(err, airr.ErrMalformedTable),
		errors.As(err, &urlErr),
		errors.As(err, &netErr):
		return ExitConnection
	default:
		return ExitFailure
	}
}
