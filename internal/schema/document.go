package schema

import (
	"fmt"

	"fjacquet/fiobank/internal/fioerror"
	"fjacquet/fiobank/internal/models"
)

// Document is a decoded statement response.
type Document = map[string]any

func accountStatement(doc Document) (map[string]any, error) {
	statement, ok := doc["accountStatement"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing accountStatement", fioerror.ErrMalformedDocument)
	}
	return statement, nil
}

// InfoBlock returns accountStatement.info.
func InfoBlock(doc Document) (map[string]any, error) {
	statement, err := accountStatement(doc)
	if err != nil {
		return nil, err
	}
	info, ok := statement["info"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing accountStatement.info", fioerror.ErrMalformedDocument)
	}
	return info, nil
}

// TransactionEntries returns accountStatement.transactionList.transaction.
// A null list or missing transaction key yields no entries.
func TransactionEntries(doc Document) ([]map[string]any, error) {
	statement, err := accountStatement(doc)
	if err != nil {
		return nil, err
	}
	list, ok := statement["transactionList"].(map[string]any)
	if !ok {
		return nil, nil
	}
	raw, ok := list["transaction"].([]any)
	if !ok {
		return nil, nil
	}
	entries := make([]map[string]any, 0, len(raw))
	for i, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: transaction %d is %T", fioerror.ErrMalformedDocument, i, item)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ParseInfo normalizes the info block of a statement document.
func ParseInfo(doc Document, mode models.NumericMode) (models.Info, error) {
	raw, err := InfoBlock(doc)
	if err != nil {
		return models.Info{}, err
	}
	info, _, err := NormalizeInfo(raw, mode)
	return info, err
}

// ParseTransactions returns a lazy iterator over the transactions of a
// statement document.
func ParseTransactions(doc Document, mode models.NumericMode) (*TransactionIterator, error) {
	entries, err := TransactionEntries(doc)
	if err != nil {
		return nil, err
	}
	return NewTransactionIterator(entries, mode), nil
}
