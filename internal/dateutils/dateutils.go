// Package dateutils provides common date operations used throughout the application.
package dateutils

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"fjacquet/fiobank/internal/fioerror"
)

// DateLayoutISO is the layout of the date prefix in API values and URLs.
const DateLayoutISO = "2006-01-02"

var errDateFormat = errors.New("expected YYYY-MM-DD")

// CoerceDate normalizes date-like values into a calendar date.
//
// Accepted inputs are civil.Date (returned unchanged), civil.DateTime and
// time.Time (time part dropped, in the value's own location) and strings whose
// first ten characters are a YYYY-MM-DD date. Any other string fails with a
// *fioerror.ParseError, any other type with a *fioerror.TypeError.
func CoerceDate(value any) (civil.Date, error) {
	switch v := value.(type) {
	case civil.Date:
		return v, nil
	case civil.DateTime:
		return v.Date, nil
	case time.Time:
		return civil.DateOf(v), nil
	case *time.Time:
		if v != nil {
			return civil.DateOf(*v), nil
		}
	case string:
		return parseISOPrefix(v)
	}
	return civil.Date{}, &fioerror.TypeError{Value: value, Expected: "date, time or YYYY-MM-DD string"}
}

// IsUnset reports whether value carries no date: nil, an empty string or a
// nil pointer.
func IsUnset(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	}
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func parseISOPrefix(s string) (civil.Date, error) {
	prefix := s
	if len(prefix) > len(DateLayoutISO) {
		prefix = prefix[:len(DateLayoutISO)]
	}
	t, err := time.Parse(DateLayoutISO, prefix)
	if err != nil {
		return civil.Date{}, &fioerror.ParseError{Field: "date", Value: s, Err: errDateFormat}
	}
	return civil.DateOf(t), nil
}

// Today returns the current calendar date as reported by now.
func Today(now func() time.Time) civil.Date {
	if now == nil {
		now = time.Now
	}
	return civil.DateOf(now())
}

// ToISODate formats a calendar date as YYYY-MM-DD.
func ToISODate(d civil.Date) string {
	return d.String()
}
