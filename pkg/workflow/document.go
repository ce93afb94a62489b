package workflow

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/githubnext/runner-guard/pkg/logger"
	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

var documentLog = logger.New("workflow:document")

// FileError reports a workflow file that could not be read or parsed. It is
// recoverable: the file is skipped and the scan continues.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("Error processing file %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// ErrMultipleDocuments is returned for content holding more than one
// non-empty YAML document. A workflow file is a single document.
var ErrMultipleDocuments = errors.New("expected a single YAML document")

// ParseDocument decodes the YAML document in content into an untyped value.
// Mappings decode as yaml.MapSlice so job declaration order survives.
// Empty content, or content whose only documents are empty, yields nil.
func ParseDocument(content []byte) (any, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil
	}

	file, err := parser.ParseBytes(content, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var bodies []ast.Node
	for _, d := range file.Docs {
		if d != nil && d.Body != nil {
			bodies = append(bodies, d.Body)
		}
	}
	switch len(bodies) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, fmt.Errorf("failed to parse YAML: %w, found %d", ErrMultipleDocuments, len(bodies))
	}

	var doc any
	if err := yaml.NodeToValue(bodies[0], &doc, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return doc, nil
}

// ParseFile reads and decodes the workflow file at path. Failures are
// returned as *FileError.
func ParseFile(path string) (any, error) {
	documentLog.Printf("Parsing workflow file: %s", path)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: fmt.Errorf("failed to read file: %w", err)}
	}

	doc, err := ParseDocument(content)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return doc, nil
}
