package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"golang.org/x/net/context/ctxhttp"

	"fjacquet/fiobank/internal/fioerror"
	"fjacquet/fiobank/internal/logging"
	"fjacquet/fiobank/internal/schema"
)

// maxErrorBody bounds how much of a failed response is kept in HTTPError.
const maxErrorBody = 512

// Fetcher retrieves the decoded document for one endpoint call. A nil
// document with a nil error means the API answered with an empty body.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint Endpoint, params Params) (schema.Document, error)
}

// RetryPolicy controls how throttled requests are retried.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// DefaultRetryPolicy returns 3 attempts, 500ms initial delay and a 2 minute cap.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     2 * time.Minute,
	}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	if p.InitialDelay > 0 {
		eb.InitialInterval = p.InitialDelay
	}
	if p.MaxDelay > 0 {
		eb.MaxInterval = p.MaxDelay
	}
	eb.MaxElapsedTime = 0
	eb.Reset()

	retries := p.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(eb, uint64(retries)), ctx)
}

// HTTPFetcher fetches documents from the Fio REST API.
type HTTPFetcher struct {
	baseURL string
	token   string
	client  *http.Client
	retry   RetryPolicy
	logger  logging.Logger
}

// NewHTTPFetcher creates an HTTPFetcher. Empty baseURL means DefaultBaseURL,
// nil client means http.DefaultClient and nil logger discards output.
func NewHTTPFetcher(baseURL, token string, client *http.Client, retry RetryPolicy, logger logging.Logger) *HTTPFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &HTTPFetcher{
		baseURL: baseURL,
		token:   token,
		client:  client,
		retry:   retry,
		logger:  logger,
	}
}

// Fetch issues a GET for endpoint, retrying while the API throttles.
func (f *HTTPFetcher) Fetch(ctx context.Context, endpoint Endpoint, params Params) (schema.Document, error) {
	target, err := BuildURL(f.baseURL, endpoint, f.token, params)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	logger := f.logger.WithFields(
		logging.Field{Key: logging.FieldEndpoint, Value: string(endpoint)},
		logging.Field{Key: logging.FieldRequestID, Value: requestID},
	)

	var (
		body    []byte
		attempt int
	)
	start := time.Now()
	operation := func() error {
		attempt++
		logger.Debug("Requesting statement", logging.Field{Key: logging.FieldAttempt, Value: attempt})
		b, err := f.get(ctx, endpoint, target, requestID)
		if err != nil {
			var throttled *fioerror.ThrottlingError
			if errors.As(err, &throttled) {
				return err
			}
			return backoff.Permanent(err)
		}
		body = b
		return nil
	}
	notify := func(err error, delay time.Duration) {
		logger.WithError(err).Warn("Request throttled, retrying",
			logging.Field{Key: logging.FieldAttempt, Value: attempt},
			logging.Field{Key: logging.FieldStatus, Value: statusCode(err)},
			logging.Field{Key: logging.FieldDelay, Value: delay.String()})
	}

	if err := backoff.RetryNotify(operation, f.retry.backOff(ctx), notify); err != nil {
		logger.WithError(err).Debug("Request failed",
			logging.Field{Key: logging.FieldAttempt, Value: attempt},
			logging.Field{Key: logging.FieldStatus, Value: statusCode(err)})
		return nil, err
	}

	logger.Debug("Request completed",
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()},
		logging.Field{Key: logging.FieldAttempt, Value: attempt})

	return decode(endpoint, body)
}

func (f *HTTPFetcher) get(ctx context.Context, endpoint Endpoint, target, requestID string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		// url.Error would embed the token-bearing URL
		return nil, fmt.Errorf("%s: failed to create request", endpoint)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := ctxhttp.Do(ctx, f.client, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("%s: request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &fioerror.ThrottlingError{StatusCode: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &fioerror.HTTPError{
			StatusCode: resp.StatusCode,
			Endpoint:   string(endpoint),
			Body:       string(bytes.TrimSpace(snippet)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response: %w", endpoint, err)
	}
	return body, nil
}

// statusCode returns the HTTP status carried by err, or 0 when the request
// never got a response.
func statusCode(err error) int {
	var throttled *fioerror.ThrottlingError
	if errors.As(err, &throttled) {
		return throttled.StatusCode
	}
	var httpErr *fioerror.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

func decode(endpoint Endpoint, body []byte) (schema.Document, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc schema.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: failed to decode response: %w", endpoint, err)
	}
	return doc, nil
}
