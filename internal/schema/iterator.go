package schema

import (
	"fmt"

	"fjacquet/fiobank/internal/models"
)

// TransactionIterator yields normalized transactions in response order.
// It is single pass: once exhausted or stopped by an error it stays done.
//
//	for it.Next() {
//		tx := it.Transaction()
//	}
//	if err := it.Err(); err != nil { ... }
type TransactionIterator struct {
	entries []map[string]any
	mode    models.NumericMode
	pos     int
	current models.Transaction
	record  Record
	err     error
}

// NewTransactionIterator creates an iterator over raw transaction entries.
func NewTransactionIterator(entries []map[string]any, mode models.NumericMode) *TransactionIterator {
	return &TransactionIterator{entries: entries, mode: mode}
}

// Next normalizes the next entry. It returns false when the entries are
// exhausted or an entry fails to normalize.
func (it *TransactionIterator) Next() bool {
	if it.err != nil || it.pos >= len(it.entries) {
		it.entries = nil
		return false
	}
	entry := it.entries[it.pos]
	it.pos++

	tx, record, err := NormalizeTransaction(entry, it.mode)
	if err != nil {
		it.err = fmt.Errorf("transaction %d: %w", it.pos-1, err)
		it.current, it.record = models.Transaction{}, nil
		return false
	}
	it.current, it.record = tx, record
	return true
}

// Transaction returns the transaction produced by the last call to Next.
func (it *TransactionIterator) Transaction() models.Transaction {
	return it.current
}

// Record returns the canonical mapping view of the current transaction.
func (it *TransactionIterator) Record() Record {
	return it.record
}

// Err returns the normalization error that stopped the iteration, if any.
func (it *TransactionIterator) Err() error {
	return it.err
}

// Collect drains the remaining transactions.
func (it *TransactionIterator) Collect() ([]models.Transaction, error) {
	var txs []models.Transaction
	for it.Next() {
		txs = append(txs, it.Transaction())
	}
	return txs, it.Err()
}
