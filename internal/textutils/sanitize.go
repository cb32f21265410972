// Package textutils provides value cleanup helpers applied to raw API fields.
package textutils

import "strings"

// Converter turns a sanitized, non-nil value into its field type.
type Converter func(value any) (any, error)

// Sanitize trims string values and treats blank strings as nil. When convert
// is given and the value is not nil, the converted value is returned.
// Non-string values pass through unchanged, including 0 and false.
func Sanitize(value any, convert Converter) (any, error) {
	if s, ok := value.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			value = nil
		} else {
			value = s
		}
	}
	if convert != nil && value != nil {
		return convert(value)
	}
	return value, nil
}
