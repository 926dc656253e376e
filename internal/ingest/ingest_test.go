package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/revenue-parser/internal/common"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestScanDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.pdf"), []byte("%PDF-1.4"))
	writeFile(t, filepath.Join(root, "a.PDF"), []byte("%PDF-1.4"))
	writeFile(t, filepath.Join(root, "notes.txt"), []byte("x"))
	writeFile(t, filepath.Join(root, "2024", "march.pdf"), []byte("%PDF-1.4"))
	writeFile(t, filepath.Join(root, ".cache", "hidden.pdf"), []byte("%PDF-1.4"))

	paths, stats, err := ScanDirectory(root, nil, true)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "2024", "march.pdf"),
		filepath.Join(root, "a.PDF"),
		filepath.Join(root, "b.pdf"),
	}, paths)
	assert.Equal(t, uint32(3), stats.Matched)
	assert.Equal(t, uint32(2), stats.Skipped)
	assert.Zero(t, stats.Failed)
}

func TestScanDirectory_IncludeHiddenAndCustomExts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".cache", "hidden.pdf"), []byte("%PDF-1.4"))
	writeFile(t, filepath.Join(root, "scan.tiff"), []byte("II*"))

	paths, _, err := ScanDirectory(root, nil, false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, ".cache", "hidden.pdf")}, paths)

	paths, _, err = ScanDirectory(root, []string{".TIFF"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "scan.tiff")}, paths)
}

func TestScanDirectory_Errors(t *testing.T) {
	_, _, err := ScanDirectory("  ", nil, true)
	assert.Error(t, err)

	_, _, err = ScanDirectory(filepath.Join(t.TempDir(), "missing"), nil, true)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.pdf")
	writeFile(t, path, []byte("%PDF-1.4 body"))

	doc, err := LoadDocument(path, 1)
	require.NoError(t, err)
	assert.Equal(t, "statement.pdf", doc.FileName)
	assert.Equal(t, []byte("%PDF-1.4 body"), doc.Data)

	big := filepath.Join(dir, "big.pdf")
	writeFile(t, big, make([]byte, 1024*1024+1))
	_, err = LoadDocument(big, 1)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Equal(t, "File size must be less than 1MB", common.UserMessage(err))

	_, err = LoadDocument(dir, 1)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = LoadDocument(filepath.Join(dir, "missing.pdf"), 1)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsHidden(t *testing.T) {
	assert.True(t, IsHidden("/data/.git"))
	assert.True(t, IsHidden(".env.pdf"))
	assert.False(t, IsHidden("/data/statement.pdf"))
	assert.False(t, IsHidden("."))
}

func receive(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case p, ok := <-ch:
		require.True(t, ok, "channel closed")
		return p
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
		return ""
	}
}

func TestStartWatcher_InitialScanAndNewFiles(t *testing.T) {
	root := t.TempDir()
	existing := filepath.Join(root, "existing.pdf")
	writeFile(t, existing, []byte("%PDF-1.4"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := StartWatcher(ctx, WatchConfig{
		Roots:       []string{root},
		InitialScan: true,
		SkipHidden:  true,
		Debounce:    50 * time.Millisecond,
	})
	require.NoError(t, err)

	assert.Equal(t, existing, receive(t, events))

	writeFile(t, filepath.Join(root, "ignored.txt"), []byte("x"))
	added := filepath.Join(root, "new.pdf")
	writeFile(t, added, []byte("%PDF-1.4"))
	assert.Equal(t, added, receive(t, events))

	cancel()
	for range events {
	}
}

func TestStartWatcher_NoRoots(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{})
	assert.Error(t, err)
}
