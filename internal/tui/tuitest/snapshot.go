// Package tuitest holds helpers for testing rendered views.
package tuitest

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "update snapshot files")

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// StripANSI removes terminal escape sequences from s
func StripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

// AssertSnapshot compares output (with escape sequences stripped) against
// testdata/<test name>.snap. Only -update writes snapshot files.
func AssertSnapshot(t *testing.T, output string) {
	t.Helper()

	output = StripANSI(output)
	snapshotPath := filepath.Join("testdata", strings.ToLower(strings.ReplaceAll(t.Name(), "/", "_"))+".snap")

	if *update {
		require.NoError(t, os.MkdirAll(filepath.Dir(snapshotPath), 0755))
		require.NoError(t, os.WriteFile(snapshotPath, []byte(output), 0644))
		t.Logf("updated snapshot: %s", snapshotPath)
		return
	}

	snapshot, err := os.ReadFile(snapshotPath)
	if errors.Is(err, os.ErrNotExist) {
		t.Fatalf("snapshot file not found: %s. run with -update to create it.", snapshotPath)
	}
	require.NoError(t, err)

	require.Equal(t, string(snapshot), output, "snapshot does not match. run with -update to update it.")
}
