package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunNumbers(t *testing.T) {
	code, out, _ := runCmd("0", "35302")
	assert.Equal(t, 0, code)
	assert.Equal(t, "zero\ntrzydzieści pięć tysięcy trzysta dwa\n", out)
}

func TestRunUnit(t *testing.T) {
	code, out, _ := runCmd("-unit", "metr", "1", "3", "1000")
	assert.Equal(t, 0, code)
	assert.Equal(t, "jeden metr\ntrzy metry\ntysiąc metrów\n", out)

	code, _, errOut := runCmd("-unit", "parsek", "1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `unknown unit "parsek"`)
}

func TestRunAmount(t *testing.T) {
	code, out, _ := runCmd("-amount", "123,45")
	assert.Equal(t, 0, code)
	assert.Equal(t, "sto dwadzieścia trzy złote czterdzieści pięć groszy\n", out)

	code, out, _ = runCmd("-amount", "-digits", "123.45")
	assert.Equal(t, 0, code)
	assert.Equal(t, "sto dwadzieścia trzy złote 45/100\n", out)

	code, _, _ = runCmd("-amount", "-unit", "metr", "1")
	assert.Equal(t, 2, code)

	code, out, errOut := runCmd("-amount", "1e3")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "malformed")
}

func TestRunErrors(t *testing.T) {
	code, out, errOut := runCmd("7", "-7", "1"+strings.Repeat("0", 78))
	assert.Equal(t, 1, code)
	assert.Equal(t, "siedem\n", out)
	assert.Contains(t, errOut, "negative")
	assert.Contains(t, errOut, "78 digits")

	code, _, errOut = runCmd(strings.Repeat("9", 100000))
	assert.Equal(t, 1, code)
	assert.Less(t, len(errOut), 300)

	code, _, _ = runCmd()
	assert.Equal(t, 2, code)
}

func TestRunUnitsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kot:\n  nom_sg: kot\n  nom_pl: koty\n  gen_pl: kotów\n"), 0o600))

	code, out, _ := runCmd("-units-file", path, "-unit", "kot", "2", "5")
	assert.Equal(t, 0, code)
	assert.Equal(t, "dwa koty\npięć kotów\n", out)

	code, out, _ = runCmd("-units-file", path, "-units")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "kot\tkot, koty, kotów\n")
	assert.Contains(t, out, "metr\tmetr, metry, metrów\n")
}
