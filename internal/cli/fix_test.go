package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFix_WritesCorrectedOutput(t *testing.T) {
	path := writeFile(t, "letter.txt", "Grem s Ljubljane in s bratom.")
	out := filepath.Join(t.TempDir(), "fixed.txt")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewFixCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-o", out, path})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "fixed 2 mismatch(es)")

	fixed, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Grem z Ljubljane in z bratom.", string(fixed))

	// The input file is untouched when --output is given.
	original, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Grem s Ljubljane in s bratom.", string(original))
}

func TestFix_InPlaceByDefault(t *testing.T) {
	path := writeFile(t, "letter.txt", "Grem s Ljubljane.")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewFixCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)

	fixed, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Grem z Ljubljane.", string(fixed))
}

func TestFix_CleanFileIsNoop(t *testing.T) {
	path := writeFile(t, "letter.txt", "Prišel je s prijateljem.")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewFixCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "fixed 0 mismatch(es)")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Prišel je s prijateljem.", string(content))
}

func TestFixAndReport_JournalRoundTrip(t *testing.T) {
	path := writeFile(t, "letter.txt", "Grem s Ljubljane.")
	db := filepath.Join(t.TempDir(), "run.db")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	fixCmd := NewFixCommand(rootOpts)
	fixCmd.SetOut(buf)
	fixCmd.SetArgs([]string{"--journal", db, path})
	require.NoError(t, fixCmd.Execute())

	buf.Reset()
	reportCmd := NewReportCommand(rootOpts)
	reportCmd.SetOut(buf)
	reportCmd.SetArgs([]string{db})
	require.NoError(t, reportCmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "2 event(s)")
	assert.Contains(t, output, "scan")
	assert.Contains(t, output, "accept\ts → z")
}

func TestReport_MissingJournal(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewReportCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.db")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
