package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loopkit/loopc/internal/store"
)

func TestCompile_Text(t *testing.T) {
	out, err := executeCommand("compile", "testdata/scale.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "✓ Compiled kernel_")
	assert.Contains(t, out, "out[i] = in[i] * c")
	assert.Contains(t, out, "kernel hash: ")
}

func TestCompile_JSON(t *testing.T) {
	out, err := executeCommand("--format", "json", "compile", "testdata/scale.yaml")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, data["name"], "kernel_")
	assert.Equal(t, []any{"c", "in", "n", "out"}, data["params"])
}

func TestCompile_WritesListing(t *testing.T) {
	listingPath := filepath.Join(t.TempDir(), "scale.txt")

	_, err := executeCommand("compile", "testdata/scale.yaml", "-o", listingPath)
	require.NoError(t, err)

	listing, err := os.ReadFile(listingPath)
	require.NoError(t, err)
	assert.Contains(t, string(listing), "for i = 0; i <= n - 1; i = i + 1 {")
}

func TestCompile_RecordsInRegistry(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "registry.db")

	_, err := executeCommand("compile", "testdata/scale.yaml", "--db", dbPath)
	require.NoError(t, err)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	records, err := st.ListPrograms(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"c", "in", "n", "out"}, records[0].Params)
	assert.NotEmpty(t, records[0].KernelHash)
}

func TestCompile_CyclicKernelFails(t *testing.T) {
	out, err := executeCommand("compile", "testdata/cycle.yaml")
	require.Error(t, err)

	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, ErrCodeSchedule)
}

func TestCompile_MissingFileFails(t *testing.T) {
	_, err := executeCommand("compile", "testdata/nope.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
