//go:build !integration

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/githubnext/runner-guard/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for the watch goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type checkResult struct {
	report *Report
	err    error
}

func TestRunWatch(t *testing.T) {
	workspace := writeWorkspace(t, map[string]string{
		"ci.yml": "jobs:\n  build:\n    runs-on: ubuntu-latest\n",
	})
	allowed := "ubuntu-latest"
	results := make(chan checkResult, 16)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stdout, stderr syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- RunWatch(ctx, WatchConfig{
			Check:    CheckOptions{Workspace: workspace, AllowedRunners: &allowed},
			Debounce: 20 * time.Millisecond,
			OnCheck: func(report *Report, err error) {
				results <- checkResult{report: report, err: err}
			},
		}, &stdout, &stderr)
	}()

	first := waitForCheck(t, results)
	require.NoError(t, first.err, "initial check should pass")
	assert.Equal(t, []string{"ubuntu-latest"}, first.report.RunnerTags)

	staged := filepath.Join(workspace, "gpu.yml")
	require.NoError(t, os.WriteFile(staged, []byte("jobs:\n  train:\n    runs-on: gpu\n"), 0o644))
	require.NoError(t, os.Rename(staged, filepath.Join(workspace, constants.GetWorkflowDir(), "gpu.yml")))

	second := waitForCheck(t, results)
	require.Error(t, second.err, "the new file declares a disallowed tag")
	assert.Equal(t, []string{"ubuntu-latest", "gpu"}, second.report.RunnerTags, "files are scanned in lexical order, ci.yml before gpu.yml")
	assert.Equal(t, []string{"gpu"}, second.report.Disallowed)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err, "cancelling should stop the watch cleanly")
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
	assert.Contains(t, stderr.String(), "Watching")
	assert.Contains(t, stdout.String(), "runner-tags=")
}

func TestRunWatch_MissingDir(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := RunWatch(context.Background(), WatchConfig{
		Check: CheckOptions{Workspace: t.TempDir()},
	}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to discover workflow files")
}

func TestIsWorkflowFile(t *testing.T) {
	assert.True(t, isWorkflowFile("/repo/.github/workflows/ci.yml"))
	assert.True(t, isWorkflowFile("release.yaml"))
	assert.False(t, isWorkflowFile("README.md"))
	assert.False(t, isWorkflowFile("ci.yml.swp"))
}

func waitForCheck(t *testing.T, results <-chan checkResult) checkResult {
	t.Helper()
	select {
	case result := <-results:
		return result
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for a check")
		return checkResult{}
	}
}
