//go:build !integration

package workflow

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	dir := writeWorkflowFiles(t, map[string]string{
		"ci.yml":      "jobs:\n  test:\n    runs-on: ubuntu-latest\n  build:\n    runs-on: self-hosted\n",
		"release.yml": "jobs:\n  release:\n    runs-on: ubuntu-latest\n",
	})
	files := []string{filepath.Join(dir, "ci.yml"), filepath.Join(dir, "release.yml")}

	result := Scan(files, nil)

	assert.Equal(t, []string{"ubuntu-latest", "self-hosted", "ubuntu-latest"}, result.Tags, "Tags should keep duplicates in file order")
	assert.Equal(t, []string{"ubuntu-latest", "self-hosted"}, result.UniqueTags(), "UniqueTags should keep first-seen order")
	assert.Empty(t, result.Skipped)
	require.Len(t, result.Files, 2)
	assert.Equal(t, FileTags{Path: files[0], Tags: []string{"ubuntu-latest", "self-hosted"}}, result.Files[0])

	sources := result.Sources()
	assert.Equal(t, files, sources["ubuntu-latest"], "ubuntu-latest is declared by both files")
	assert.Equal(t, files[:1], sources["self-hosted"])
}

func TestScan_SkipsBadFiles(t *testing.T) {
	dir := writeWorkflowFiles(t, map[string]string{
		"broken.yml": "jobs: [unclosed\n",
		"ci.yml":     "jobs:\n  build:\n    runs-on: ubuntu-latest\n",
	})
	files := []string{
		filepath.Join(dir, "broken.yml"),
		filepath.Join(dir, "missing.yml"),
		filepath.Join(dir, "ci.yml"),
	}

	var reported []string
	result := Scan(files, func(err *FileError) {
		reported = append(reported, err.Path)
	})

	assert.Equal(t, []string{"ubuntu-latest"}, result.UniqueTags(), "good files should still be scanned")
	assert.Equal(t, files[:2], reported, "each bad file should be reported once, in order")
	require.Len(t, result.Skipped, 2)
	assert.Equal(t, files[0], result.Skipped[0].Path)
	assert.Equal(t, files[1], result.Skipped[1].Path)
}

func TestScan_NoFiles(t *testing.T) {
	result := Scan(nil, nil)

	assert.NotNil(t, result.Tags)
	assert.Empty(t, result.Tags)
	assert.Equal(t, []string{}, result.UniqueTags())
	assert.Empty(t, result.Skipped)
}

func TestScan_Idempotent(t *testing.T) {
	dir := writeWorkflowFiles(t, map[string]string{
		"a.yml": "jobs:\n  x:\n    runs-on: [self-hosted, {group: gpu}]\n",
		"b.yml": "jobs:\n  y:\n    runs-on: ubuntu-latest\n",
	})
	files, err := DiscoverFiles(dir)
	require.NoError(t, err)

	first := Scan(files, nil)
	second := Scan(files, nil)

	assert.Equal(t, first.UniqueTags(), second.UniqueTags(), "scanning the same files twice should give the same tags")
	assert.Equal(t, first.Files, second.Files)
}
