// Package fiobank is a client for the Fio banka account statement API.
//
// A Client fetches statements for one account token and returns them as
// normalized records:
//
//	client := fiobank.New(token, fiobank.WithDecimal())
//	it, err := client.Period(ctx, "2016-08-01", "2016-08-31")
//	if err != nil {
//		return err
//	}
//	for it.Next() {
//		tx := it.Transaction()
//		fmt.Println(fiobank.DateValue(tx.Date), tx.Amount)
//	}
//	return it.Err()
package fiobank

import (
	"net/http"
	"time"

	"cloud.google.com/go/civil"

	"fjacquet/fiobank/internal/logging"
	"fjacquet/fiobank/internal/models"
	"fjacquet/fiobank/internal/transport"
)

// Client talks to the Fio API on behalf of a single account token.
// It is immutable after New.
type Client struct {
	fetcher transport.Fetcher
	mode    models.NumericMode
	now     func() time.Time
	logger  logging.Logger
}

type options struct {
	mode       models.NumericMode
	fetcher    transport.Fetcher
	logger     logging.Logger
	baseURL    string
	httpClient *http.Client
	retry      transport.RetryPolicy
	now        func() time.Time
}

// Option configures a Client.
type Option func(*options)

// WithDecimal makes amounts exact decimals instead of binary floats.
func WithDecimal() Option {
	return WithNumericMode(models.NumericDecimal)
}

// WithNumericMode sets how amounts are represented.
func WithNumericMode(mode models.NumericMode) Option {
	return func(o *options) { o.mode = mode }
}

// WithFetcher replaces the HTTP transport. WithBaseURL, WithHTTPClient and
// WithRetry have no effect when it is set.
func WithFetcher(f Fetcher) Option {
	return func(o *options) { o.fetcher = f }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

func WithRetry(p RetryPolicy) Option {
	return func(o *options) { o.retry = p }
}

// WithClock sets the source of "today" used by Info.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New creates a Client for token.
func New(token string, opts ...Option) *Client {
	o := options{
		mode:  models.NumericFloat,
		retry: transport.DefaultRetryPolicy(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.NewLogrusAdapter("warn", "text")
	}
	if o.fetcher == nil {
		o.fetcher = transport.NewHTTPFetcher(o.baseURL, token, o.httpClient, o.retry, o.logger)
	}
	if o.mode == models.NumericFloat {
		o.logger.Warn("Amounts are parsed as float64 and may lose precision, use WithDecimal for exact values",
			logging.Field{Key: logging.FieldMode, Value: o.mode.String()})
	}

	return &Client{
		fetcher: o.fetcher,
		mode:    o.mode,
		now:     o.now,
		logger:  o.logger,
	}
}

// Mode reports how the client represents amounts.
func (c *Client) Mode() NumericMode {
	return c.mode
}

// StringValue dereferences an optional string field, returning "" for nil.
func StringValue(s *string) string { return models.StringValue(s) }

// DateValue formats an optional date as YYYY-MM-DD, returning "" for nil.
func DateValue(d *civil.Date) string { return models.DateValue(d) }

// AmountValue formats an optional amount, returning "" for nil.
func AmountValue(a *Amount) string { return models.AmountValue(a) }
