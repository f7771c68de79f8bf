package summary_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuzzmerge/internal/summary"
)

const sampleSummary = `# fuzz results for alice
🟢 100
🔴 200
some prose the tooling wrote
🟢 20_3
🔴	40
🟡 999
500
`

func TestParseString_ExtractsMatchingLines(t *testing.T) {
	t.Parallel()

	entries, err := summary.ParseString(sampleSummary, "alice")
	require.NoError(t, err)

	require.Len(t, entries, 4)
	assert.Equal(t, summary.Entry{Team: "alice", Trace: "100", Status: summary.StatusPass}, entries[0])
	assert.Equal(t, summary.Entry{Team: "alice", Trace: "200", Status: summary.StatusFail}, entries[1])
	assert.Equal(t, summary.Entry{Team: "alice", Trace: "20_3", Status: summary.StatusPass}, entries[2])
	assert.Equal(t, summary.Entry{Team: "alice", Trace: "40", Status: summary.StatusFail}, entries[3])
}

func TestParseString_IgnoresNonMatchingLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
	}{
		{"prose", "all traces passed today"},
		{"wrong glyph", "🟡 123"},
		{"no identifier", "🟢"},
		{"identifier first", "123 🟢"},
		{"empty", ""},
		{"identifier without glyph", "500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			entries, err := summary.ParseString(tt.line, "bob")
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestParseString_OneEntryPerLine(t *testing.T) {
	t.Parallel()

	// Only the first glyph/identifier pair on a line counts.
	entries, err := summary.ParseString("🟢 100 🔴 200", "alice")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "100", entries[0].Trace)
	assert.Equal(t, summary.StatusPass, entries[0].Status)
}

func TestParseString_IdentifierGrammar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want string
	}{
		{"plain digits", "🟢 100", "100"},
		{"compound", "🟢 20_3", "20_3"},
		{"multi compound", "🔴 1_2_3", "1_2_3"},
		{"trailing underscore dropped", "🟢 100_", "100"},
		{"double underscore stops", "🟢 1__2", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			entries, err := summary.ParseString(tt.line, "alice")
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.want, entries[0].Trace)
		})
	}
}

func TestParseString_EmptyInput(t *testing.T) {
	t.Parallel()

	entries, err := summary.ParseString("", "alice")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocate_FiltersAndSorts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{
		"summary_bob.txt",
		"summary_alice.txt",
		"summary_.txt",       // empty team
		"notes.txt",          // wrong prefix
		"summary_carol.json", // wrong suffix
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("🟢 1\n"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "summary_dir.txt"), 0o755))

	files, err := summary.Locate(dir)
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, "alice", files[0].Team)
	assert.Equal(t, "bob", files[1].Team)
	assert.Equal(t, filepath.Join(dir, "summary_alice.txt"), files[0].Path)
}

func TestLocate_MissingDirIsNotAnError(t *testing.T) {
	t.Parallel()

	files, err := summary.Locate(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestParseFile_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "summary_alice.txt")
	require.NoError(t, os.WriteFile(path, []byte("🟢 100\n🔴 200\n"), 0o644))

	entries, err := summary.ParseFile(summary.File{Team: "alice", Path: path})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "200", entries[1].Trace)
	assert.Equal(t, summary.StatusFail, entries[1].Status)
}
