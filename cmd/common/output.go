// Package common contains shared functionality for command handlers
package common

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"fjacquet/fiobank/internal/config"
	"fjacquet/fiobank/internal/fileutils"
	"fjacquet/fiobank/internal/models"
)

// TransactionRow is the flat CSV form of a transaction.
type TransactionRow struct {
	TransactionID      string `csv:"transaction_id"`
	Date               string `csv:"date"`
	Amount             string `csv:"amount"`
	Currency           string `csv:"currency"`
	AccountNumber      string `csv:"account_number"`
	AccountName        string `csv:"account_name"`
	BankCode           string `csv:"bank_code"`
	BIC                string `csv:"bic"`
	BankName           string `csv:"bank_name"`
	ConstantSymbol     string `csv:"constant_symbol"`
	VariableSymbol     string `csv:"variable_symbol"`
	SpecificSymbol     string `csv:"specific_symbol"`
	UserIdentification string `csv:"user_identification"`
	RecipientMessage   string `csv:"recipient_message"`
	Type               string `csv:"type"`
	Executor           string `csv:"executor"`
	Specification      string `csv:"specification"`
	Comment            string `csv:"comment"`
	InstructionID      string `csv:"instruction_id"`
	Reference          string `csv:"reference"`
	AccountNumberFull  string `csv:"account_number_full"`
	OriginalAmount     string `csv:"original_amount"`
	OriginalCurrency   string `csv:"original_currency"`
}

// InfoRow is the flat CSV form of account information.
type InfoRow struct {
	AccountNumber     string `csv:"account_number"`
	BankCode          string `csv:"bank_code"`
	AccountNumberFull string `csv:"account_number_full"`
	Currency          string `csv:"currency"`
	IBAN              string `csv:"iban"`
	BIC               string `csv:"bic"`
	OpeningBalance    string `csv:"opening_balance"`
	Balance           string `csv:"balance"`
	DateStart         string `csv:"date_start"`
	DateEnd           string `csv:"date_end"`
	IDFrom            string `csv:"id_from"`
	IDTo              string `csv:"id_to"`
	IDLastDownload    string `csv:"id_last_download"`
}

// NewTransactionRow flattens tx, rendering null fields as empty cells.
func NewTransactionRow(tx models.Transaction) TransactionRow {
	s := models.StringValue
	return TransactionRow{
		TransactionID:      s(tx.TransactionID),
		Date:               models.DateValue(tx.Date),
		Amount:             models.AmountValue(tx.Amount),
		Currency:           s(tx.Currency),
		AccountNumber:      s(tx.AccountNumber),
		AccountName:        s(tx.AccountName),
		BankCode:           s(tx.BankCode),
		BIC:                s(tx.BIC),
		BankName:           s(tx.BankName),
		ConstantSymbol:     s(tx.ConstantSymbol),
		VariableSymbol:     s(tx.VariableSymbol),
		SpecificSymbol:     s(tx.SpecificSymbol),
		UserIdentification: s(tx.UserIdentification),
		RecipientMessage:   s(tx.RecipientMessage),
		Type:               s(tx.Type),
		Executor:           s(tx.Executor),
		Specification:      s(tx.Specification),
		Comment:            s(tx.Comment),
		InstructionID:      s(tx.InstructionID),
		Reference:          s(tx.Reference),
		AccountNumberFull:  s(tx.AccountNumberFull),
		OriginalAmount:     models.AmountValue(tx.OriginalAmount),
		OriginalCurrency:   s(tx.OriginalCurrency),
	}
}

// NewInfoRow flattens info, rendering null fields as empty cells.
func NewInfoRow(info models.Info) InfoRow {
	s := models.StringValue
	return InfoRow{
		AccountNumber:     s(info.AccountNumber),
		BankCode:          s(info.BankCode),
		AccountNumberFull: s(info.AccountNumberFull),
		Currency:          s(info.Currency),
		IBAN:              s(info.IBAN),
		BIC:               s(info.BIC),
		OpeningBalance:    models.AmountValue(info.OpeningBalance),
		Balance:           models.AmountValue(info.Balance),
		DateStart:         models.DateValue(info.DateStart),
		DateEnd:           models.DateValue(info.DateEnd),
		IDFrom:            s(info.IDFrom),
		IDTo:              s(info.IDTo),
		IDLastDownload:    s(info.IDLastDownload),
	}
}

// Printer renders statement data in the configured output format.
type Printer struct {
	Format    string
	Delimiter rune
}

// NewPrinter creates a Printer from the output section of cfg.
func NewPrinter(cfg *config.Config) Printer {
	delim := ','
	if cfg.Output.Delimiter != "" {
		delim = []rune(cfg.Output.Delimiter)[0]
	}
	return Printer{Format: cfg.Output.Format, Delimiter: delim}
}

// statementOutput is the JSON/YAML shape of a statement with its info block.
type statementOutput struct {
	Info         models.Info          `json:"info" yaml:"info"`
	Transactions []models.Transaction `json:"transactions" yaml:"transactions"`
}

// WriteInfo renders account information.
func (p Printer) WriteInfo(w io.Writer, info models.Info) error {
	if p.Format == config.FormatCSV {
		return p.writeCSV(w, []InfoRow{NewInfoRow(info)})
	}
	return p.encode(w, info)
}

// CheckTransactions reports whether transactions can be rendered with or
// without the account information block. Commands call it before fetching.
func (p Printer) CheckTransactions(withInfo bool) error {
	if withInfo && p.Format == config.FormatCSV {
		return fmt.Errorf("account info cannot be written as csv together with transactions")
	}
	return nil
}

// WriteTransactions renders transactions, with the account information
// block first when info is not nil. CSV output cannot carry the info block.
func (p Printer) WriteTransactions(w io.Writer, info *models.Info, txs []models.Transaction) error {
	if err := p.CheckTransactions(info != nil); err != nil {
		return err
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	if p.Format == config.FormatCSV {
		rows := make([]TransactionRow, 0, len(txs))
		for _, tx := range txs {
			rows = append(rows, NewTransactionRow(tx))
		}
		return p.writeCSV(w, rows)
	}
	if info != nil {
		return p.encode(w, statementOutput{Info: *info, Transactions: txs})
	}
	return p.encode(w, txs)
}

func (p Printer) encode(w io.Writer, v any) error {
	switch p.Format {
	case config.FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("error writing YAML data: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported output format: %s", p.Format)
}

func (p Printer) writeCSV(w io.Writer, rows any) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = p.Delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// OpenOutput returns stdout for an empty path, or creates the file and its
// parent directories.
func OpenOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := fileutils.CreateFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// WriteTo opens path (stdout when empty), runs write and closes it.
func WriteTo(path string, write func(io.Writer) error) (err error) {
	out, err := OpenOutput(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(out)
}

// WriteTransactions writes txs to path with p.
func WriteTransactions(path string, p Printer, info *models.Info, txs []models.Transaction) error {
	return WriteTo(path, func(w io.Writer) error {
		return p.WriteTransactions(w, info, txs)
	})
}
