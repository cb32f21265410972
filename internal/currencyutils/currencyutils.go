// Package currencyutils recognizes amounts embedded in free-text transaction fields.
package currencyutils

import (
	"regexp"
	"strings"
)

// amountPattern matches "<number> <ISO currency code>" at the start of a text,
// e.g. "650.00 HRK" or "-308 EUR".
var amountPattern = regexp.MustCompile(`^-?\d+(\.\d+)? [A-Z]{3}`)

// IsAmountText reports whether text starts with an amount followed by a
// three-letter currency code.
func IsAmountText(text string) bool {
	return amountPattern.MatchString(text)
}

// SplitAmount splits an amount text into its numeric part and currency code.
// ok is false when text does not start with an amount.
func SplitAmount(text string) (amount, currency string, ok bool) {
	match := amountPattern.FindString(text)
	if match == "" {
		return "", "", false
	}
	amount, currency, _ = strings.Cut(match, " ")
	return amount, currency, true
}
