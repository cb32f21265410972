// Package transport builds Fio API request URLs and fetches statement
// documents over HTTP.
package transport

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the production Fio API root.
const DefaultBaseURL = "https://fioapi.fio.cz/v1/rest/"

// Endpoint names one of the fixed Fio API operations.
type Endpoint string

const (
	EndpointPeriods     Endpoint = "periods"
	EndpointByID        Endpoint = "by-id"
	EndpointLast        Endpoint = "last"
	EndpointSetLastID   Endpoint = "set-last-id"
	EndpointSetLastDate Endpoint = "set-last-date"
)

// Request parameter names used in the endpoint templates.
const (
	ParamFromDate = "from_date"
	ParamToDate   = "to_date"
	ParamYear     = "year"
	ParamNumber   = "number"
	ParamFromID   = "from_id"
)

// Params holds the values substituted into an endpoint template.
type Params map[string]string

var templates = map[Endpoint]string{
	EndpointPeriods:     "periods/{token}/{from_date}/{to_date}/transactions.json",
	EndpointByID:        "by-id/{token}/{year}/{number}/transactions.json",
	EndpointLast:        "last/{token}/transactions.json",
	EndpointSetLastID:   "set-last-id/{token}/{from_id}/",
	EndpointSetLastDate: "set-last-date/{token}/{from_date}/",
}

// BuildURL returns the full request URL for endpoint. The token and every
// parameter are path-escaped.
func BuildURL(baseURL string, endpoint Endpoint, token string, params Params) (string, error) {
	tmpl, ok := templates[endpoint]
	if !ok {
		return "", fmt.Errorf("unknown endpoint %q", endpoint)
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(baseURL, "/"))
	b.WriteByte('/')

	rest := tmpl
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("endpoint %s: unterminated placeholder", endpoint)
		}
		b.WriteString(rest[:open])
		name := rest[open+1 : open+end]

		var value string
		if name == "token" {
			value = token
		} else {
			v, ok := params[name]
			if !ok {
				return "", fmt.Errorf("endpoint %s: missing parameter %q", endpoint, name)
			}
			value = v
		}
		b.WriteString(url.PathEscape(value))
		rest = rest[open+end+1:]
	}
	return b.String(), nil
}
