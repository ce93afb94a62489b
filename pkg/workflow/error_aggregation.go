package workflow

import (
	"errors"

	"github.com/githubnext/runner-guard/pkg/logger"
)

var errorAggregationLog = logger.New("workflow:error_aggregation")

// ErrorCollector accumulates recoverable per-file errors during a scan so
// they can be reported together once the scan is done.
type ErrorCollector struct {
	errors []*FileError
}

// NewErrorCollector creates an empty collector.
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{errors: make([]*FileError, 0)}
}

// Add records err. Errors that are not *FileError are wrapped with path.
func (c *ErrorCollector) Add(path string, err error) {
	if err == nil {
		return
	}
	var fileErr *FileError
	if !errors.As(err, &fileErr) {
		fileErr = &FileError{Path: path, Err: err}
	}
	errorAggregationLog.Printf("Collected file error: %v", fileErr)
	c.errors = append(c.errors, fileErr)
}

// HasErrors returns true if any errors have been collected.
func (c *ErrorCollector) HasErrors() bool {
	return len(c.errors) > 0
}

// Count returns the number of errors collected.
func (c *ErrorCollector) Count() int {
	return len(c.errors)
}

// Errors returns the collected errors in the order they were added.
func (c *ErrorCollector) Errors() []*FileError {
	return c.errors
}

// Error returns the collected errors joined with errors.Join, or nil.
func (c *ErrorCollector) Error() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	}
	errs := make([]error, len(c.errors))
	for i, err := range c.errors {
		errs[i] = err
	}
	return errors.Join(errs...)
}
