// Package schema maps the numbered, loosely typed statement wire format onto
// the canonical record fields.
package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/fiobank/internal/dateutils"
	"fjacquet/fiobank/internal/models"
)

// Converter turns a sanitized, non-nil wire value into its canonical type.
type Converter func(value any, mode models.NumericMode) (any, error)

// Field is the canonical name and converter for one wire key.
type Field struct {
	Name    string
	Convert Converter
}

// Table maps lowercase wire keys to fields.
type Table map[string]Field

// Lookup finds the field for a wire key, ignoring case.
func (t Table) Lookup(wireKey string) (Field, bool) {
	f, ok := t[strings.ToLower(wireKey)]
	return f, ok
}

// Names returns every canonical field name of the table.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for _, f := range t {
		names = append(names, f.Name)
	}
	return names
}

// TransactionTable follows the column set of the bank's IBSchema.
var TransactionTable = Table{
	"column0":  {"date", ToDate},
	"column1":  {"amount", ToAmount},
	"column2":  {models.FieldAccountNumber, ToString},
	"column3":  {models.FieldBankCode, ToString},
	"column4":  {"constant_symbol", ToString},
	"column5":  {"variable_symbol", ToString},
	"column6":  {"specific_symbol", ToString},
	"column7":  {"user_identification", ToString},
	"column8":  {"type", ToString},
	"column9":  {"executor", ToString},
	"column10": {"account_name", ToString},
	"column12": {"bank_name", ToString},
	"column14": {"currency", ToString},
	"column16": {"recipient_message", ToString},
	"column17": {"instruction_id", ToString},
	"column18": {models.FieldSpecification, ToString},
	"column22": {"transaction_id", ToString},
	"column25": {"comment", ToString},
	"column26": {"bic", ToString},
	"column27": {"reference", ToString},
}

// InfoTable covers every key of the accountStatement.info block.
var InfoTable = Table{
	"accountid":      {models.FieldAccountNumber, ToString},
	"bankid":         {models.FieldBankCode, ToString},
	"currency":       {"currency", ToString},
	"iban":           {"iban", ToString},
	"bic":            {"bic", ToString},
	"openingbalance": {"opening_balance", ToAmount},
	"closingbalance": {"balance", ToAmount},
	"datestart":      {"date_start", ToDate},
	"dateend":        {"date_end", ToDate},
	"yearlist":       {"year_list", ToString},
	"idlist":         {"id_list", ToString},
	"idfrom":         {"id_from", ToString},
	"idto":           {"id_to", ToString},
	"idlastdownload": {"id_last_download", ToString},
}

// ToString renders a scalar the way it appears on the wire.
func ToString(value any, _ models.NumericMode) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case decimal.Decimal:
		return v.String(), nil
	}
	return fmt.Sprint(value), nil
}

// ToAmount converts through the client's numeric mode.
func ToAmount(value any, mode models.NumericMode) (any, error) {
	return mode.ParseAmount(value)
}

// ToDate coerces the value into a calendar date.
func ToDate(value any, _ models.NumericMode) (any, error) {
	return dateutils.CoerceDate(value)
}
