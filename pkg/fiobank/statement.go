package fiobank

import (
	"context"
	"fmt"
	"strconv"

	"fjacquet/fiobank/internal/dateutils"
	"fjacquet/fiobank/internal/fioerror"
	"fjacquet/fiobank/internal/logging"
	"fjacquet/fiobank/internal/schema"
	"fjacquet/fiobank/internal/transport"
)

// LastParams moves the download watermark before Last fetches.
// At most one of FromID and FromDate may be set.
type LastParams struct {
	// FromID makes the next download start after this transaction ID.
	FromID string
	// FromDate makes the next download start after this date. It accepts
	// the same values as Period. nil, "" and nil pointers leave it unset.
	FromDate any
}

// Info returns the account information from today's statement.
func (c *Client) Info(ctx context.Context) (Info, error) {
	today := dateutils.ToISODate(dateutils.Today(c.now))
	doc, err := c.fetch(ctx, transport.EndpointPeriods, transport.Params{
		transport.ParamFromDate: today,
		transport.ParamToDate:   today,
	})
	if err != nil {
		return Info{}, err
	}
	return schema.ParseInfo(doc, c.mode)
}

// Period returns the transactions between from and to, both inclusive.
// Bounds may be civil.Date, civil.DateTime, time.Time or a string starting
// with YYYY-MM-DD.
func (c *Client) Period(ctx context.Context, from, to any) (*TransactionIterator, error) {
	doc, err := c.period(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return schema.ParseTransactions(doc, c.mode)
}

// Transactions fetches one period statement and returns both its account
// information and its transactions.
func (c *Client) Transactions(ctx context.Context, from, to any) (Info, *TransactionIterator, error) {
	doc, err := c.period(ctx, from, to)
	if err != nil {
		return Info{}, nil, err
	}
	return c.parseStatement(doc)
}

func (c *Client) period(ctx context.Context, from, to any) (Document, error) {
	params, err := periodParams(from, to)
	if err != nil {
		return nil, err
	}
	return c.fetch(ctx, transport.EndpointPeriods, params)
}

// Statement returns the transactions of official statement number of year.
func (c *Client) Statement(ctx context.Context, year, number int) (*TransactionIterator, error) {
	doc, err := c.fetch(ctx, transport.EndpointByID, transport.Params{
		transport.ParamYear:   strconv.Itoa(year),
		transport.ParamNumber: strconv.Itoa(number),
	})
	if err != nil {
		return nil, err
	}
	return schema.ParseTransactions(doc, c.mode)
}

// Last returns the transactions since the last download and advances the
// server-side watermark. With params set, the watermark is moved first.
func (c *Client) Last(ctx context.Context, params LastParams) (*TransactionIterator, error) {
	doc, err := c.last(ctx, params)
	if err != nil {
		return nil, err
	}
	return schema.ParseTransactions(doc, c.mode)
}

// LastTransactions is Last returning the account information as well.
func (c *Client) LastTransactions(ctx context.Context, params LastParams) (Info, *TransactionIterator, error) {
	doc, err := c.last(ctx, params)
	if err != nil {
		return Info{}, nil, err
	}
	return c.parseStatement(doc)
}

func (c *Client) last(ctx context.Context, params LastParams) (Document, error) {
	if err := c.setLast(ctx, params); err != nil {
		return nil, err
	}
	return c.fetch(ctx, transport.EndpointLast, nil)
}

func (c *Client) setLast(ctx context.Context, params LastParams) error {
	hasID := params.FromID != ""
	hasDate := !dateutils.IsUnset(params.FromDate)
	switch {
	case hasID && hasDate:
		return &fioerror.UsageError{Msg: "only one of FromID and FromDate can be set"}
	case hasID:
		_, err := c.fetcher.Fetch(ctx, transport.EndpointSetLastID, transport.Params{
			transport.ParamFromID: params.FromID,
		})
		return err
	case hasDate:
		date, err := dateutils.CoerceDate(params.FromDate)
		if err != nil {
			return err
		}
		_, err = c.fetcher.Fetch(ctx, transport.EndpointSetLastDate, transport.Params{
			transport.ParamFromDate: dateutils.ToISODate(date),
		})
		return err
	}
	return nil
}

// fetch requires a non-empty document.
func (c *Client) fetch(ctx context.Context, endpoint transport.Endpoint, params transport.Params) (Document, error) {
	doc, err := c.fetcher.Fetch(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		c.logger.Debug("Empty response", logging.Field{Key: logging.FieldEndpoint, Value: string(endpoint)})
		return nil, fmt.Errorf("%s: %w", endpoint, fioerror.ErrNoData)
	}
	return doc, nil
}

func (c *Client) parseStatement(doc Document) (Info, *TransactionIterator, error) {
	info, err := schema.ParseInfo(doc, c.mode)
	if err != nil {
		return Info{}, nil, err
	}
	it, err := schema.ParseTransactions(doc, c.mode)
	if err != nil {
		return Info{}, nil, err
	}
	return info, it, nil
}

func periodParams(from, to any) (transport.Params, error) {
	start, err := dateutils.CoerceDate(from)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	end, err := dateutils.CoerceDate(to)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	return transport.Params{
		transport.ParamFromDate: dateutils.ToISODate(start),
		transport.ParamToDate:   dateutils.ToISODate(end),
	}, nil
}
