package workflow

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/githubnext/runner-guard/pkg/constants"
	"github.com/githubnext/runner-guard/pkg/fileutil"
	"github.com/githubnext/runner-guard/pkg/logger"
)

var discoveryLog = logger.New("workflow:discovery")

// DiscoveryError means the workflow directory could not be enumerated. Unlike
// FileError it aborts the whole check.
type DiscoveryError struct {
	Dir string
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("failed to discover workflow files in %s: %v", e.Dir, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// DiscoverFiles returns every *.yml and *.yaml file below dir, recursively,
// as absolute paths in lexical order. Dotfiles and dot directories are
// included. dir must be an absolute path to an
// existing directory.
func DiscoverFiles(dir string) ([]string, error) {
	cleanDir, err := fileutil.ValidateAbsolutePath(dir)
	if err != nil {
		return nil, &DiscoveryError{Dir: dir, Err: err}
	}

	info, err := os.Stat(cleanDir)
	if err != nil {
		return nil, &DiscoveryError{Dir: cleanDir, Err: err}
	}
	if !info.IsDir() {
		return nil, &DiscoveryError{Dir: cleanDir, Err: errors.New("not a directory")}
	}

	matches, err := doublestar.Glob(os.DirFS(cleanDir), constants.WorkflowFilePattern,
		doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, &DiscoveryError{Dir: cleanDir, Err: err}
	}

	files := make([]string, 0, len(matches))
	for _, match := range matches {
		files = append(files, filepath.Join(cleanDir, filepath.FromSlash(match)))
	}
	sort.Strings(files)

	discoveryLog.Printf("Discovered %d workflow files in %s", len(files), cleanDir)
	return files, nil
}
