package schema

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// loadStatement decodes the shared statement fixture the same way the
// transport does, so numbers arrive as json.Number.
func loadStatement(t *testing.T) Document {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "transactions.json"))
	require.NoError(t, err)

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc Document
	require.NoError(t, dec.Decode(&doc))
	return doc
}

func firstEntry(t *testing.T, doc Document) map[string]any {
	t.Helper()
	entries, err := TransactionEntries(doc)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	return entries[0]
}

func infoBlock(t *testing.T, doc Document) map[string]any {
	t.Helper()
	info, err := InfoBlock(doc)
	require.NoError(t, err)
	return info
}
