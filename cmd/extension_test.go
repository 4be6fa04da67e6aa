package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExtension(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extension script is a shell script")
	}
	dir := t.TempDir()
	script := `#!/bin/sh
echo "args=$*"
echo "` + EnvLedgerFile + `=$` + EnvLedgerFile + `"
echo "` + EnvVerbose + `=$` + EnvVerbose + `"
exit 3
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tpnl-hello"), []byte(script), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	oldLedger, oldVerbose, oldOut := *ledgerFile, *verbose, stdout
	t.Cleanup(func() { *ledgerFile, *verbose, stdout = oldLedger, oldVerbose, oldOut })
	out := new(bytes.Buffer)
	*ledgerFile, *verbose, stdout = "/tmp/random_ledger.jsonl", true, out

	found, code := RunExtension("hello", []string{"a", "b"})
	assert.True(t, found)
	assert.Equal(t, 3, code)
	assert.Contains(t, out.String(), "args=a b\n")
	assert.Contains(t, out.String(), EnvLedgerFile+"=/tmp/random_ledger.jsonl\n")
	assert.Contains(t, out.String(), EnvVerbose+"=true\n")
}

func TestRunExtension_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	found, code := RunExtension("nope", nil)
	assert.False(t, found)
	assert.Equal(t, 0, code)
}
