//go:build !integration

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/githubnext/runner-guard/pkg/constants"
	"github.com/stretchr/testify/require"
)

// writeWorkspace creates a temporary repository with the given workflow
// files (path relative to .github/workflows -> content) and returns its root.
func writeWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()
	workspace := t.TempDir()
	dir := filepath.Join(workspace, constants.GetWorkflowDir())
	require.NoError(t, os.MkdirAll(dir, 0o755), "creating workflow dir")
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "creating %s", filepath.Dir(path))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "writing %s", path)
	}
	return workspace
}

// recordingHost is an actions.Host that records everything it is told.
type recordingHost struct {
	inputs map[constants.InputName]string

	mu       sync.Mutex
	outputs  map[constants.OutputName]string
	infos    []string
	warnings []string
	errors   []string
}

func newRecordingHost(allowedRunners string) *recordingHost {
	return &recordingHost{
		inputs:  map[constants.InputName]string{constants.AllowedRunnersInput: allowedRunners},
		outputs: map[constants.OutputName]string{},
	}
}

func (h *recordingHost) Input(name constants.InputName) string {
	return h.inputs[name]
}

func (h *recordingHost) SetOutput(name constants.OutputName, value string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.outputs[name] = value
}

func (h *recordingHost) Infof(format string, args ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.infos = append(h.infos, fmt.Sprintf(format, args...))
}

func (h *recordingHost) Warningf(format string, args ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.warnings = append(h.warnings, fmt.Sprintf(format, args...))
}

func (h *recordingHost) Errorf(format string, args ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, fmt.Sprintf(format, args...))
}

func (h *recordingHost) runnerTags() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.outputs[constants.RunnerTagsOutput]
}

// twoWorkflows declares ubuntu-latest, self-hosted, ubuntu-latest across two files.
var twoWorkflows = map[string]string{
	"ci.yml": `name: CI
on: push
jobs:
  test:
    runs-on: ubuntu-latest
    steps:
      - run: make test
  build:
    runs-on: self-hosted
    steps:
      - run: make build
`,
	"release.yaml": `name: Release
on:
  release:
    types: [published]
jobs:
  publish:
    runs-on: ubuntu-latest
    steps:
      - run: make release
`,
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
