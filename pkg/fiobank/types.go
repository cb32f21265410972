package fiobank

import (
	"fjacquet/fiobank/internal/fioerror"
	"fjacquet/fiobank/internal/models"
	"fjacquet/fiobank/internal/schema"
	"fjacquet/fiobank/internal/transport"
)

type (
	Info                = models.Info
	Transaction         = models.Transaction
	Amount              = models.Amount
	NumericMode         = models.NumericMode
	Record              = schema.Record
	Document            = schema.Document
	TransactionIterator = schema.TransactionIterator
	Fetcher             = transport.Fetcher
	Endpoint            = transport.Endpoint
	Params              = transport.Params
	RetryPolicy         = transport.RetryPolicy
)

const (
	NumericFloat   = models.NumericFloat
	NumericDecimal = models.NumericDecimal
)

const (
	EndpointPeriods     = transport.EndpointPeriods
	EndpointByID        = transport.EndpointByID
	EndpointLast        = transport.EndpointLast
	EndpointSetLastID   = transport.EndpointSetLastID
	EndpointSetLastDate = transport.EndpointSetLastDate
)

type (
	UsageError       = fioerror.UsageError
	ThrottlingError  = fioerror.ThrottlingError
	HTTPError        = fioerror.HTTPError
	SchemaDriftError = fioerror.SchemaDriftError
	ParseError       = fioerror.ParseError
	TypeError        = fioerror.TypeError
)

var (
	ErrNoData            = fioerror.ErrNoData
	ErrMalformedDocument = fioerror.ErrMalformedDocument
)

// DefaultRetryPolicy returns the retry policy used when WithRetry is not given.
func DefaultRetryPolicy() RetryPolicy {
	return transport.DefaultRetryPolicy()
}
