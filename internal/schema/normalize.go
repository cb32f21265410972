package schema

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"fjacquet/fiobank/internal/currencyutils"
	"fjacquet/fiobank/internal/fioerror"
	"fjacquet/fiobank/internal/models"
	"fjacquet/fiobank/internal/textutils"
)

// Record is a normalized record keyed by canonical field name.
type Record map[string]any

// Normalize maps a raw wire record through table. Cells may be bare values
// or {"value": ...} wrappers; nil and absent cells are equivalent.
// Two non-nil cells whose keys differ only in case are a SchemaDriftError.
// When fill is set, every canonical field of the table is present in the
// result, nil when unseen. account_number_full is always recomputed.
func Normalize(raw map[string]any, table Table, mode models.NumericMode, fill bool, record string) (Record, error) {
	out := make(Record, len(table)+3)
	seen := make(map[string]string, len(raw))

	for key, cell := range raw {
		value, err := cellValue(key, cell)
		if err != nil {
			return nil, err
		}
		if value == nil {
			continue
		}
		field, ok := table.Lookup(key)
		if !ok {
			return nil, &fioerror.SchemaDriftError{Record: record, Key: key}
		}
		if other, dup := seen[field.Name]; dup {
			first, second := other, key
			if second < first {
				first, second = second, first
			}
			return nil, &fioerror.SchemaDriftError{Record: record, Key: second, Duplicates: first}
		}
		seen[field.Name] = key
		converted, err := textutils.Sanitize(value, func(v any) (any, error) {
			return field.Convert(v, mode)
		})
		if err != nil {
			return nil, fmt.Errorf("%s field %s: %w", record, field.Name, err)
		}
		if converted != nil {
			out[field.Name] = converted
		}
	}

	if fill {
		for _, name := range table.Names() {
			if _, ok := out[name]; !ok {
				out[name] = nil
			}
		}
	}

	out[models.FieldAccountNumberFull] = accountNumberFull(out)
	return out, nil
}

func cellValue(key string, cell any) (any, error) {
	wrapped, ok := cell.(map[string]any)
	if !ok {
		return cell, nil
	}
	value, ok := wrapped["value"]
	if !ok {
		return nil, &fioerror.ParseError{Field: key, Value: fmt.Sprint(cell), Err: fmt.Errorf("cell has no value")}
	}
	return value, nil
}

func accountNumberFull(r Record) any {
	number, ok1 := r[models.FieldAccountNumber].(string)
	bank, ok2 := r[models.FieldBankCode].(string)
	if !ok1 || !ok2 {
		return nil
	}
	return number + "/" + bank
}

// addOriginalAmount derives original_amount and original_currency from a
// specification such as "650.00 HRK".
func addOriginalAmount(r Record, mode models.NumericMode) error {
	r[models.FieldOriginalAmount] = nil
	r[models.FieldOriginalCurrency] = nil

	detail, ok := r[models.FieldSpecification].(string)
	if !ok {
		return nil
	}
	amount, currency, ok := currencyutils.SplitAmount(detail)
	if !ok {
		return nil
	}
	parsed, err := mode.ParseAmount(amount)
	if err != nil {
		return fmt.Errorf("transaction field %s: %w", models.FieldOriginalAmount, err)
	}
	r[models.FieldOriginalAmount] = parsed
	r[models.FieldOriginalCurrency] = currency
	return nil
}

// NormalizeInfo normalizes an accountStatement.info block.
func NormalizeInfo(raw map[string]any, mode models.NumericMode) (models.Info, Record, error) {
	var info models.Info
	r, err := Normalize(raw, InfoTable, mode, false, "info")
	if err != nil {
		return info, nil, err
	}
	if err := decode(r, &info); err != nil {
		return info, nil, err
	}
	return info, r, nil
}

// NormalizeTransaction normalizes one entry of the transaction list.
func NormalizeTransaction(raw map[string]any, mode models.NumericMode) (models.Transaction, Record, error) {
	var tx models.Transaction
	r, err := Normalize(raw, TransactionTable, mode, true, "transaction")
	if err != nil {
		return tx, nil, err
	}
	if err := addOriginalAmount(r, mode); err != nil {
		return tx, nil, err
	}
	if err := decode(r, &tx); err != nil {
		return tx, nil, err
	}
	return tx, r, nil
}

func decode(r Record, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      result,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(map[string]any(r)); err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}
	return nil
}
