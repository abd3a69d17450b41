package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SavePDF(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	stored, err := store.SavePDF(strings.NewReader("%PDF-1.4 content"), "report.pdf")
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(stored, "_report.pdf"))

	data, err := os.ReadFile(filepath.Join(dir, "uploads", stored))
	assert.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 content", string(data))
}

func TestFileStore_SavePDF_StripsClientPath(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	stored, err := store.SavePDF(strings.NewReader("x"), "../../etc/report.pdf")
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(stored, "_report.pdf"))
	assert.NotContains(t, stored, "/")
}

func TestFileStore_SavePDF_RejectsOtherExtensions(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.SavePDF(strings.NewReader("x"), "report.txt")
	assert.Error(t, err)
}

func TestFileStore_SavePDF_UniqueNames(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.SavePDF(strings.NewReader("a"), "report.pdf")
	require.NoError(t, err)
	second, err := store.SavePDF(strings.NewReader("b"), "report.pdf")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestFileStore_Remove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	stored, err := store.SavePDF(strings.NewReader("x"), "report.pdf")
	require.NoError(t, err)

	assert.NoError(t, store.Remove(stored))
	_, err = os.Stat(filepath.Join(dir, stored))
	assert.True(t, os.IsNotExist(err))

	// missing files and empty names are not errors
	assert.NoError(t, store.Remove(stored))
	assert.NoError(t, store.Remove(""))
}
