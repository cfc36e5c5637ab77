package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// installExtension writes an ivl-<name> shell script in a directory added
// to PATH.
func installExtension(t *testing.T, name, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts in this test")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, ExtensionPrefix+name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestRunExtension(t *testing.T) {
	installExtension(t, "hello", `echo "args=$*"
echo "IVL_LEDGER=$IVL_LEDGER"
echo "IVL_CURRENCY=$IVL_CURRENCY"
echo "IVL_LOG_LEVEL=$IVL_LOG_LEVEL"
`)
	out := setGlobals(t, "/tmp/ledger.jsonl", "")
	*currency = "XYZ"
	*Verbose = true

	found, code := RunExtension("hello", []string{"a", "b"})
	assert.True(t, found)
	assert.Equal(t, 0, code)
	assert.Equal(t, "args=a b\nIVL_LEDGER=/tmp/ledger.jsonl\nIVL_CURRENCY=XYZ\nIVL_LOG_LEVEL=debug\n", out.String())
}

func TestRunExtension_ExitCode(t *testing.T) {
	installExtension(t, "fail", "exit 3\n")
	setGlobals(t, "", "")

	found, code := RunExtension("fail", nil)
	assert.True(t, found)
	assert.Equal(t, 3, code)
}

func TestRunExtension_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	found, code := RunExtension("does-not-exist", nil)
	assert.False(t, found)
	assert.Equal(t, 0, code)
}
