package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskArchiveRoundTrip(t *testing.T) {
	archive, err := NewDiskArchive(t.TempDir())
	require.NoError(t, err)

	data := []byte(`{"app_id":"com.example.app"}`)
	require.NoError(t, archive.Store("analysis-com.example.app-2024-03-01.json", data))

	got, err := archive.Retrieve("analysis-com.example.app-2024-03-01.json")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestDiskArchiveList(t *testing.T) {
	archive, err := NewDiskArchive(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, archive.Store("analysis-one.json", []byte("{}")))
	require.NoError(t, archive.Store("analysis-two.json", []byte("{}")))
	require.NoError(t, archive.Store("other.json", []byte("{}")))

	names, err := archive.List("analysis-")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"analysis-one.json", "analysis-two.json"}, names)
}

func TestDiskArchiveDelete(t *testing.T) {
	archive, err := NewDiskArchive(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, archive.Store("analysis.json", []byte("{}")))
	require.NoError(t, archive.Delete("analysis.json"))

	_, err = archive.Retrieve("analysis.json")
	assert.Error(t, err)
}

func TestDiskArchiveFlattensPaths(t *testing.T) {
	dir := t.TempDir()
	archive, err := NewDiskArchive(dir)
	require.NoError(t, err)

	require.NoError(t, archive.Store("../escape.json", []byte("{}")))

	// The file lands inside the archive directory, not beside it.
	_, err = os.Stat(filepath.Join(dir, "escape.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "escape.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskArchiveRequiresDirectory(t *testing.T) {
	_, err := NewDiskArchive("")
	assert.Error(t, err)
}

func TestDiskArchiveRetrieveMissing(t *testing.T) {
	archive, err := NewDiskArchive(t.TempDir())
	require.NoError(t, err)

	_, err = archive.Retrieve("missing.json")
	assert.Error(t, err)
}
