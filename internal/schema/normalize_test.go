package schema

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/fiobank/internal/fioerror"
	"fjacquet/fiobank/internal/models"
)

var transactionKeys = []string{
	"transaction_id", "date", "amount", "currency", "account_number",
	"account_name", "bank_code", "bic", "bank_name", "constant_symbol",
	"variable_symbol", "specific_symbol", "user_identification",
	"recipient_message", "type", "executor", "specification", "comment",
	"instruction_id", "account_number_full", "original_amount",
	"original_currency", "reference",
}

func keys(r Record) []string {
	out := make([]string, 0, len(r))
	for k := range r {
		out = append(out, k)
	}
	return out
}

func TestNormalizeInfo_Fixture(t *testing.T) {
	doc := loadStatement(t)

	info, record, err := NormalizeInfo(infoBlock(t, doc), models.NumericFloat)
	require.NoError(t, err)

	assert.Equal(t, "1234567890", *info.AccountNumber)
	assert.Equal(t, "2010", *info.BankCode)
	assert.Equal(t, "CZK", *info.Currency)
	assert.Equal(t, "1234567890/2010", *info.AccountNumberFull)
	assert.Equal(t, 2060.52, info.Balance.Float64())
	assert.Equal(t, civil.Date{Year: 2016, Month: time.August, Day: 3}, *info.DateStart)
	assert.Equal(t, "7356347221", *info.IDFrom)
	assert.Nil(t, info.YearList)
	assert.Nil(t, info.IDLastDownload)

	assert.ElementsMatch(t, []string{
		"account_number", "bank_code", "currency", "iban", "bic",
		"opening_balance", "balance", "date_start", "date_end",
		"id_from", "id_to", "account_number_full",
	}, keys(record))
}

func TestNormalizeInfo_Parse(t *testing.T) {
	tests := []struct {
		wireKey string
		sdkKey  string
	}{
		{"accountId", "account_number"},
		{"bankId", "bank_code"},
		{"currency", "currency"},
		{"iban", "iban"},
		{"bic", "bic"},
		{"closingBalance", "balance"},
	}

	doc := loadStatement(t)
	raw := infoBlock(t, doc)
	_, record, err := NormalizeInfo(raw, models.NumericDecimal)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.wireKey, func(t *testing.T) {
			switch v := record[tt.sdkKey].(type) {
			case models.Amount:
				assert.Equal(t, raw[tt.wireKey].(json.Number).String(), v.String())
			default:
				assert.Equal(t, raw[tt.wireKey], v)
			}
		})
	}
}

func TestNormalizeInfo_CaseInsensitive(t *testing.T) {
	plain := map[string]any{"accountId": "1234567890", "bankId": "2010"}
	shouty := map[string]any{"acCOUNTid": "1234567890", "BANKID": "2010"}

	a, ra, err := NormalizeInfo(plain, models.NumericFloat)
	require.NoError(t, err)
	b, rb, err := NormalizeInfo(shouty, models.NumericFloat)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, ra, rb)
}

func TestNormalizeInfo_EndToEndScenario(t *testing.T) {
	raw := map[string]any{
		"accountId":      "1234567890",
		"bankId":         "2010",
		"currency":       "CZK",
		"closingBalance": json.Number("2060.52"),
	}

	_, record, err := NormalizeInfo(raw, models.NumericFloat)
	require.NoError(t, err)

	assert.Equal(t, "1234567890", record["account_number"])
	assert.Equal(t, "2010", record["bank_code"])
	assert.Equal(t, "CZK", record["currency"])
	assert.Equal(t, 2060.52, record["balance"].(models.Amount).Float64())
	assert.Equal(t, "1234567890/2010", record["account_number_full"])
}

func TestNormalize_AccountNumberFull(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[string]any
		expected any
	}{
		{
			name:     "both present",
			raw:      map[string]any{"column2": map[string]any{"value": json.Number("10000000002")}, "column3": map[string]any{"value": "2010"}},
			expected: "10000000002/2010",
		},
		{
			name:     "bank code null",
			raw:      map[string]any{"column2": map[string]any{"value": json.Number("10000000002")}, "column3": map[string]any{"value": nil}},
			expected: nil,
		},
		{
			name:     "bank code blank",
			raw:      map[string]any{"column2": map[string]any{"value": "10000000002"}, "column3": map[string]any{"value": "  "}},
			expected: nil,
		},
		{
			name:     "account number missing",
			raw:      map[string]any{"column3": map[string]any{"value": "2010"}},
			expected: nil,
		},
		{
			name:     "only account number",
			raw:      map[string]any{"column2": map[string]any{"value": "1"}},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, record, err := NormalizeTransaction(tt.raw, models.NumericFloat)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, record["account_number_full"])
		})
	}
}

func TestNormalizeTransaction_KeySet(t *testing.T) {
	doc := loadStatement(t)
	entries, err := TransactionEntries(doc)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, entry := range entries {
		_, record, err := NormalizeTransaction(entry, models.NumericFloat)
		require.NoError(t, err)
		assert.ElementsMatch(t, transactionKeys, keys(record))
	}
}

func TestNormalizeTransaction_Parse(t *testing.T) {
	tests := []struct {
		wireKey  string
		sdkKey   string
		expected any
	}{
		{"column0", "date", civil.Date{Year: 2015, Month: time.August, Day: 30}},
		{"column1", "amount", 30.8},
		{"column2", "account_number", "30.8"},
		{"column3", "bank_code", "30.8"},
		{"column4", "constant_symbol", "30.8"},
		{"column5", "variable_symbol", "30.8"},
		{"column6", "specific_symbol", "30.8"},
		{"column7", "user_identification", "30.8"},
		{"column8", "type", "30.8"},
		{"column9", "executor", "30.8"},
		{"column10", "account_name", "30.8"},
		{"column12", "bank_name", "30.8"},
		{"column14", "currency", "30.8"},
		{"column16", "recipient_message", "30.8"},
		{"column17", "instruction_id", "30.8"},
		{"column18", "specification", "30.8"},
		{"column22", "transaction_id", "30.8"},
		{"column25", "comment", "30.8"},
		{"column26", "bic", "30.8"},
		{"column27", "reference", "30.8"},
	}

	for _, tt := range tests {
		t.Run(tt.wireKey, func(t *testing.T) {
			entry := firstEntry(t, loadStatement(t))
			value := any(json.Number("30.8"))
			if tt.wireKey == "column0" {
				value = "2015-08-30"
			}
			entry[tt.wireKey] = map[string]any{"value": value}

			_, record, err := NormalizeTransaction(entry, models.NumericFloat)
			require.NoError(t, err)

			got := record[tt.sdkKey]
			if a, ok := got.(models.Amount); ok {
				got = a.Float64()
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeTransaction_Unsanitized(t *testing.T) {
	entry := firstEntry(t, loadStatement(t))
	entry["column10"] = map[string]any{"value": "             Honza\n"}

	tx, _, err := NormalizeTransaction(entry, models.NumericFloat)
	require.NoError(t, err)
	assert.Equal(t, "Honza", *tx.AccountName)
}

func TestNormalizeTransaction_NoneAndMissing(t *testing.T) {
	t.Run("null cell", func(t *testing.T) {
		entry := firstEntry(t, loadStatement(t))
		require.Nil(t, entry["column10"])

		tx, record, err := NormalizeTransaction(entry, models.NumericFloat)
		require.NoError(t, err)
		assert.Nil(t, tx.AccountName)
		assert.Contains(t, record, "account_name")
		assert.Nil(t, record["account_name"])
	})

	t.Run("missing cell", func(t *testing.T) {
		entry := firstEntry(t, loadStatement(t))
		delete(entry, "column10")

		tx, record, err := NormalizeTransaction(entry, models.NumericFloat)
		require.NoError(t, err)
		assert.Nil(t, tx.AccountName)
		assert.Contains(t, record, "account_name")
	})
}

func TestNormalizeTransaction_OriginalAmount(t *testing.T) {
	tests := []struct {
		input    string
		amount   string
		currency string
	}{
		{"650.00 HRK", "650.0", "HRK"},
		{"-308 EUR", "-308.0", "EUR"},
		{"46052.01 HUF", "46052.01", "HUF"},
	}

	for _, tt := range tests {
		for _, mode := range []models.NumericMode{models.NumericFloat, models.NumericDecimal} {
			t.Run(tt.input+"/"+mode.String(), func(t *testing.T) {
				entry := firstEntry(t, loadStatement(t))
				entry["column18"] = map[string]any{"value": tt.input}

				tx, _, err := NormalizeTransaction(entry, mode)
				require.NoError(t, err)

				assert.Equal(t, tt.input, *tx.Specification)
				require.NotNil(t, tx.OriginalAmount)
				assert.Equal(t, mode, tx.OriginalAmount.Mode())
				assert.True(t, decimal.RequireFromString(tt.amount).Equal(tx.OriginalAmount.Decimal()))
				assert.Equal(t, tt.currency, *tx.OriginalCurrency)
			})
		}
	}
}

func TestNormalizeTransaction_NoOriginalAmount(t *testing.T) {
	entry := firstEntry(t, loadStatement(t))
	entry["column18"] = map[string]any{"value": "foo"}

	tx, record, err := NormalizeTransaction(entry, models.NumericFloat)
	require.NoError(t, err)
	assert.Equal(t, "foo", *tx.Specification)
	assert.Nil(t, tx.OriginalAmount)
	assert.Nil(t, tx.OriginalCurrency)
	assert.Contains(t, record, "original_amount")
	assert.Nil(t, record["original_amount"])
}

func TestNormalizeTransaction_DecimalVsFloat(t *testing.T) {
	entry := firstEntry(t, loadStatement(t))

	dec, _, err := NormalizeTransaction(entry, models.NumericDecimal)
	require.NoError(t, err)
	flt, _, err := NormalizeTransaction(entry, models.NumericFloat)
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("-130.0").Equal(dec.Amount.Value().(decimal.Decimal)))
	assert.Equal(t, -130.0, flt.Amount.Value())
	assert.Equal(t, dec.Amount.StringFixed(2), flt.Amount.StringFixed(2))
}

func TestNormalizeTransaction_Fixture(t *testing.T) {
	entries, err := TransactionEntries(loadStatement(t))
	require.NoError(t, err)

	tx, _, err := NormalizeTransaction(entries[1], models.NumericDecimal)
	require.NoError(t, err)

	assert.Equal(t, "7356347222", *tx.TransactionID)
	assert.Equal(t, civil.Date{Year: 2016, Month: time.August, Day: 30}, *tx.Date)
	assert.Equal(t, "10000000002/2010", *tx.AccountNumberFull)
	assert.Equal(t, "0558", *tx.ConstantSymbol)
	assert.Equal(t, "12345678902", *tx.InstructionID)
	assert.Equal(t, "HRK", *tx.OriginalCurrency)
	assert.Nil(t, tx.Comment)
}

func TestNormalize_SchemaDrift(t *testing.T) {
	t.Run("unknown transaction column", func(t *testing.T) {
		entry := firstEntry(t, loadStatement(t))
		entry["column99"] = map[string]any{"value": "x"}

		_, _, err := NormalizeTransaction(entry, models.NumericFloat)
		var drift *fioerror.SchemaDriftError
		require.True(t, errors.As(err, &drift))
		assert.Equal(t, "column99", drift.Key)
		assert.Equal(t, "transaction", drift.Record)
	})

	t.Run("unknown info key", func(t *testing.T) {
		_, _, err := NormalizeInfo(map[string]any{"accountId": "1", "overdraft": json.Number("5")}, models.NumericFloat)
		var drift *fioerror.SchemaDriftError
		assert.True(t, errors.As(err, &drift))
	})

	t.Run("keys differing only in case", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			_, _, err := NormalizeInfo(map[string]any{"accountId": "1", "ACCOUNTID": "2"}, models.NumericFloat)
			var drift *fioerror.SchemaDriftError
			require.True(t, errors.As(err, &drift))
			assert.Equal(t, "info", drift.Record)
			assert.Equal(t, "accountId", drift.Key)
			assert.Equal(t, "ACCOUNTID", drift.Duplicates)
		}
	})

	t.Run("case duplicate with empty cell is ignored", func(t *testing.T) {
		_, r, err := NormalizeInfo(map[string]any{"accountId": "1", "ACCOUNTID": nil}, models.NumericFloat)
		require.NoError(t, err)
		assert.Equal(t, "1", r[models.FieldAccountNumber])
	})

	t.Run("unknown but empty cell is ignored", func(t *testing.T) {
		entry := firstEntry(t, loadStatement(t))
		entry["column99"] = nil
		entry["column98"] = map[string]any{"value": nil}

		_, _, err := NormalizeTransaction(entry, models.NumericFloat)
		assert.NoError(t, err)
	})
}

func TestNormalize_MalformedValues(t *testing.T) {
	t.Run("unparseable date", func(t *testing.T) {
		entry := firstEntry(t, loadStatement(t))
		entry["column0"] = map[string]any{"value": "21:03:42"}

		_, _, err := NormalizeTransaction(entry, models.NumericFloat)
		var parseErr *fioerror.ParseError
		assert.True(t, errors.As(err, &parseErr))
	})

	t.Run("unparseable amount", func(t *testing.T) {
		entry := firstEntry(t, loadStatement(t))
		entry["column1"] = map[string]any{"value": "lots"}

		_, _, err := NormalizeTransaction(entry, models.NumericDecimal)
		var parseErr *fioerror.ParseError
		assert.True(t, errors.As(err, &parseErr))
	})

	t.Run("cell without value", func(t *testing.T) {
		entry := firstEntry(t, loadStatement(t))
		entry["column8"] = map[string]any{"name": "Typ"}

		_, _, err := NormalizeTransaction(entry, models.NumericFloat)
		var parseErr *fioerror.ParseError
		assert.True(t, errors.As(err, &parseErr))
	})
}

func TestTableLookup(t *testing.T) {
	f, ok := InfoTable.Lookup("ClosingBalance")
	require.True(t, ok)
	assert.Equal(t, "balance", f.Name)

	_, ok = TransactionTable.Lookup("column11")
	assert.False(t, ok)

	for key := range TransactionTable {
		assert.Equal(t, key, toLowerASCII(key), "table keys must be lowercase")
	}
	for key := range InfoTable {
		assert.Equal(t, key, toLowerASCII(key), "table keys must be lowercase")
	}
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
