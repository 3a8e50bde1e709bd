package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/efermi/coolreader/api"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLibrary(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "Books")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sf"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.fb2"), []byte("<FictionBook/>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.xyz"), []byte("?"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sf", "dune.epub"), []byte("epub"), 0o644))

	f, err := os.Create(filepath.Join(dir, "multi.zip"))
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for _, name := range []string{"one.fb2", "two.txt"} {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	t.Setenv("COOLREADER_ROOT", dir)
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-level=error", "--depth=5", "--sort=FILENAME"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestScanCommand(t *testing.T) {
	dir := setupLibrary(t)
	out, err := run(t, "scan", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1 directories, 1 archives, 4 documents")
}

func TestScanCommandUsesConfiguredRoot(t *testing.T) {
	dir := setupLibrary(t)
	out, err := run(t, "scan")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, dir+":"), out)
}

func TestLsCommand(t *testing.T) {
	dir := setupLibrary(t)
	out, err := run(t, "ls", dir)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "ZIP")
	assert.Contains(t, lines[0], "multi.zip (2 documents)")
	assert.Contains(t, lines[1], "sf/")
	assert.Contains(t, lines[2], "FB2")
	assert.Contains(t, lines[2], "a.fb2")
}

func TestTreeCommand(t *testing.T) {
	dir := setupLibrary(t)
	out, err := run(t, "tree", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "sf/")
	assert.Contains(t, out, "dune.epub")
	assert.Contains(t, out, "one.fb2")
}

func TestFindCommand(t *testing.T) {
	dir := setupLibrary(t)
	out, err := run(t, "find", dir, "DUNE")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "sf", "dune.epub"))
	assert.Contains(t, out, "1 found")
}

func TestExportCommand(t *testing.T) {
	dir := setupLibrary(t)
	out, err := run(t, "export", dir)
	require.NoError(t, err)

	var rec api.EntryRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, dir, rec.PathName)
	assert.Len(t, rec.Dirs, 2)
	assert.Len(t, rec.Files, 1)
	require.NotNil(t, rec.Parent)
	assert.Equal(t, "@root", rec.Parent.PathName)
}

func TestQueryCommand(t *testing.T) {
	dir := setupLibrary(t)
	out, err := run(t, "query", dir, `$[?(@.format == "EPUB")]`, "--values=false")
	require.NoError(t, err)
	var recs []api.EntryRecord
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "dune.epub", recs[0].FileName)

	_, err = run(t, "query", dir, "$[?(@.format ==", "--values=false")
	assert.Error(t, err)
}

func TestGroupsCommand(t *testing.T) {
	dir := setupLibrary(t)
	out, err := run(t, "groups", dir, "titles")
	require.NoError(t, err)
	assert.Contains(t, out, "Books by title")
	assert.Contains(t, out, "D")

	_, err = run(t, "groups", dir, "colour")
	assert.ErrorContains(t, err, "unknown dimension")
}

func TestInvalidSortOrderIsRejected(t *testing.T) {
	dir := setupLibrary(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"ls", dir, "--sort=SIDEWAYS"})
	assert.ErrorContains(t, rootCmd.Execute(), "unknown sort order")
}
