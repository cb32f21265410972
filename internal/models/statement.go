// Package models defines the normalized records produced from statement responses.
package models

import "cloud.google.com/go/civil"

// Canonical field names shared by both record types.
const (
	FieldAccountNumber     = "account_number"
	FieldBankCode          = "bank_code"
	FieldAccountNumberFull = "account_number_full"
	FieldSpecification     = "specification"
	FieldOriginalAmount    = "original_amount"
	FieldOriginalCurrency  = "original_currency"
)

// Info describes the account a statement belongs to.
// Fields the response did not carry are nil.
type Info struct {
	AccountNumber     *string     `mapstructure:"account_number" json:"account_number" yaml:"account_number"`
	BankCode          *string     `mapstructure:"bank_code" json:"bank_code" yaml:"bank_code"`
	AccountNumberFull *string     `mapstructure:"account_number_full" json:"account_number_full" yaml:"account_number_full"`
	Currency          *string     `mapstructure:"currency" json:"currency" yaml:"currency"`
	IBAN              *string     `mapstructure:"iban" json:"iban" yaml:"iban"`
	BIC               *string     `mapstructure:"bic" json:"bic" yaml:"bic"`
	OpeningBalance    *Amount     `mapstructure:"opening_balance" json:"opening_balance,omitempty" yaml:"opening_balance,omitempty"`
	Balance           *Amount     `mapstructure:"balance" json:"balance" yaml:"balance"`
	DateStart         *civil.Date `mapstructure:"date_start" json:"date_start,omitempty" yaml:"date_start,omitempty"`
	DateEnd           *civil.Date `mapstructure:"date_end" json:"date_end,omitempty" yaml:"date_end,omitempty"`
	YearList          *string     `mapstructure:"year_list" json:"year_list,omitempty" yaml:"year_list,omitempty"`
	IDList            *string     `mapstructure:"id_list" json:"id_list,omitempty" yaml:"id_list,omitempty"`
	IDFrom            *string     `mapstructure:"id_from" json:"id_from,omitempty" yaml:"id_from,omitempty"`
	IDTo              *string     `mapstructure:"id_to" json:"id_to,omitempty" yaml:"id_to,omitempty"`
	IDLastDownload    *string     `mapstructure:"id_last_download" json:"id_last_download,omitempty" yaml:"id_last_download,omitempty"`
}

// Transaction is one movement on the account.
type Transaction struct {
	TransactionID      *string     `mapstructure:"transaction_id" json:"transaction_id" yaml:"transaction_id"`
	Date               *civil.Date `mapstructure:"date" json:"date" yaml:"date"`
	Amount             *Amount     `mapstructure:"amount" json:"amount" yaml:"amount"`
	Currency           *string     `mapstructure:"currency" json:"currency" yaml:"currency"`
	AccountNumber      *string     `mapstructure:"account_number" json:"account_number" yaml:"account_number"`
	AccountName        *string     `mapstructure:"account_name" json:"account_name" yaml:"account_name"`
	BankCode           *string     `mapstructure:"bank_code" json:"bank_code" yaml:"bank_code"`
	BIC                *string     `mapstructure:"bic" json:"bic" yaml:"bic"`
	BankName           *string     `mapstructure:"bank_name" json:"bank_name" yaml:"bank_name"`
	ConstantSymbol     *string     `mapstructure:"constant_symbol" json:"constant_symbol" yaml:"constant_symbol"`
	VariableSymbol     *string     `mapstructure:"variable_symbol" json:"variable_symbol" yaml:"variable_symbol"`
	SpecificSymbol     *string     `mapstructure:"specific_symbol" json:"specific_symbol" yaml:"specific_symbol"`
	UserIdentification *string     `mapstructure:"user_identification" json:"user_identification" yaml:"user_identification"`
	RecipientMessage   *string     `mapstructure:"recipient_message" json:"recipient_message" yaml:"recipient_message"`
	Type               *string     `mapstructure:"type" json:"type" yaml:"type"`
	Executor           *string     `mapstructure:"executor" json:"executor" yaml:"executor"`
	Specification      *string     `mapstructure:"specification" json:"specification" yaml:"specification"`
	Comment            *string     `mapstructure:"comment" json:"comment" yaml:"comment"`
	InstructionID      *string     `mapstructure:"instruction_id" json:"instruction_id" yaml:"instruction_id"`
	Reference          *string     `mapstructure:"reference" json:"reference" yaml:"reference"`
	AccountNumberFull  *string     `mapstructure:"account_number_full" json:"account_number_full" yaml:"account_number_full"`
	OriginalAmount     *Amount     `mapstructure:"original_amount" json:"original_amount" yaml:"original_amount"`
	OriginalCurrency   *string     `mapstructure:"original_currency" json:"original_currency" yaml:"original_currency"`
}

// StringValue dereferences an optional string, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// DateValue formats an optional date as YYYY-MM-DD, returning "" for nil.
func DateValue(d *civil.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// AmountValue formats an optional amount, returning "" for nil.
func AmountValue(a *Amount) string {
	if a == nil {
		return ""
	}
	return a.String()
}
