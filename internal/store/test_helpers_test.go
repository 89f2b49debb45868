package store

import (
	"fmt"
	"path/filepath"
	"testing"
)

// createTestStore creates a store backed by a temp-dir database.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRecord creates a program record with minimal plausible fields.
func createTestRecord(n int) Record {
	return Record{
		ID:         fmt.Sprintf("handle-%04d", n),
		Name:       fmt.Sprintf("kernel_%04d", n),
		KernelHash: fmt.Sprintf("hash-%04d", n),
		Params:     []string{"in", "n", "out"},
		Body:       []byte(`{"body":[],"params":["in","n","out"]}`),
	}
}
