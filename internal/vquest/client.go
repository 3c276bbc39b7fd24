// Package vquest submits sequences to IMGT/V-QUEST in rate-limited batches
// and reassembles the archived results.
//
// Batches are always sent one at a time with a pause in between; the
// service is shared and limits how many sequences one request may carry.
// Concurrent Submit calls each keep their own pacing, so callers running
// several at once are responsible for not overloading the service.
package vquest

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/sadewadee/vquest/internal/archive"
	"github.com/sadewadee/vquest/internal/chunk"
	"github.com/sadewadee/vquest/internal/domain"
	"github.com/sadewadee/vquest/internal/response"
	"github.com/sadewadee/vquest/internal/seqio"
	"github.com/sadewadee/vquest/internal/transport"
)

const (
	// DefaultURL is the V-QUEST analysis form endpoint
	DefaultURL = "https://www.imgt.org/IMGT_vquest/analysis"

	// DefaultDelay is the pause between consecutive batch submissions
	DefaultDelay = time.Second

	// DefaultChunkSize is the most sequences V-QUEST accepts in one request
	DefaultChunkSize = 50
)

// Transport posts a form and returns the raw response
type Transport interface {
	Post(ctx context.Context, target string, form url.Values) (*transport.Response, error)
}

// SleepFunc pauses for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// Client submits V-QUEST requests. A Client holds no per-request state and
// may be shared.
type Client struct {
	transport Transport
	url       string
	delay     time.Duration
	chunkSize int
	log       zerolog.Logger
	sleep     SleepFunc
}

// Option configures a Client
type Option func(*Client)

// WithTransport replaces the default HTTP transport
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithURL sets the form endpoint
func WithURL(u string) Option {
	return func(c *Client) {
		c.url = u
	}
}

// WithDelay sets the pause between batches
func WithDelay(d time.Duration) Option {
	return func(c *Client) {
		c.delay = d
	}
}

// WithChunkSize sets the number of sequences per request
func WithChunkSize(n int) Option {
	return func(c *Client) {
		c.chunkSize = n
	}
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// WithSleep replaces the function used for the pause between batches
func WithSleep(fn SleepFunc) Option {
	return func(c *Client) {
		c.sleep = fn
	}
}

// New creates a Client
func New(opts ...Option) *Client {
	c := &Client{
		url:       DefaultURL,
		delay:     DefaultDelay,
		chunkSize: DefaultChunkSize,
		log:       zerolog.Nop(),
		sleep:     sleepContext,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		c.transport = transport.NewDefault()
	}

	if c.chunkSize < 1 {
		c.chunkSize = DefaultChunkSize
	}

	return c
}

// Submit sends every configured sequence and returns the collapsed results
func (c *Client) Submit(ctx context.Context, cfg Config) (domain.CollapsedResult, error) {
	batches, err := c.SubmitBatches(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return Collapse(batches)
}

// SubmitBatches sends every configured sequence and returns the raw archive
// contents of each batch, in submission order. The first failing batch
// aborts the whole call and no partial results are returned.
func (c *Client) SubmitBatches(ctx context.Context, cfg Config) ([]domain.BatchResult, error) {
	if err := cfg.ValidateRequired(); err != nil {
		return nil, err
	}

	if err := cfg.ValidateResultFormat(); err != nil {
		return nil, err
	}

	records, err := ParseRecords(cfg)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrNoSequences
	}

	c.log.Info().Int("sequences", len(records)).Msgf("Starting request batch for %d sequences total", len(records))

	var outputs []domain.BatchResult

	for group := range chunk.Seq(chunk.Values(records), c.chunkSize) {
		if len(outputs) > 0 {
			if err := c.sleep(ctx, c.delay); err != nil {
				return nil, err
			}
		}

		result, err := c.submitChunk(ctx, cfg, group)
		if err != nil {
			return nil, fmt.Errorf("batch %d: %w", len(outputs)+1, err)
		}

		outputs = append(outputs, result)
	}

	return outputs, nil
}

func (c *Client) submitChunk(ctx context.Context, cfg Config, records []domain.Record) (domain.BatchResult, error) {
	c.log.Info().Int("sequences", len(records)).Msgf("Sending request with %d sequences...", len(records))

	text, err := seqio.FormatFASTA(records)
	if err != nil {
		return nil, err
	}

	resp, err := c.transport.Post(ctx, c.url, cfg.forChunk(text).Form())
	if err != nil {
		return nil, err
	}

	c.log.Debug().Str("content_type", resp.ContentType).Int("status", resp.StatusCode).
		Msgf("Received data of type %s", resp.ContentType)

	if err := response.Classify(resp.Body, resp.ContentType); err != nil {
		return nil, err
	}

	if resp.StatusCode != 0 && !resp.OK() {
		return nil, resp.StatusError()
	}

	return archive.Unzip(resp.Body)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
