// Package fioerror defines the error types returned by the statement client.
package fioerror

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when the API answered successfully but the body was
// empty where a statement was required.
var ErrNoData = errors.New("no data available")

// ErrMalformedDocument is returned when a statement document lacks the
// accountStatement envelope.
var ErrMalformedDocument = errors.New("malformed statement document")

// UsageError represents a call with conflicting or invalid parameters.
// It is raised before any request is issued.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return "usage error: " + e.Msg
}

// ThrottlingError is raised when the API refuses a request because the token
// was used too recently.
type ThrottlingError struct {
	StatusCode int
}

func (e *ThrottlingError) Error() string {
	return "Token can be used only once per 30s"
}

// HTTPError represents any non-success response other than throttling.
type HTTPError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: unexpected status %d: %s", e.Endpoint, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
}

// SchemaDriftError is raised when a response carries a wire key that the
// mapping table for its record type does not know, or two keys that differ
// only in case. Duplicates names the other key in the latter case.
type SchemaDriftError struct {
	Record     string
	Key        string
	Duplicates string
}

func (e *SchemaDriftError) Error() string {
	if e.Duplicates != "" {
		return fmt.Sprintf("%s: field %q duplicates %q in response", e.Record, e.Key, e.Duplicates)
	}
	return fmt.Sprintf("%s: unknown field %q in response", e.Record, e.Key)
}

// ParseError represents a value that could not be converted to its field type.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s='%s': %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TypeError represents a value of a type the converter does not accept.
type TypeError struct {
	Field    string
	Value    any
	Expected string
}

func (e *TypeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: expected %s, got %T", e.Field, e.Expected, e.Value)
	}
	return fmt.Sprintf("expected %s, got %T", e.Expected, e.Value)
}
