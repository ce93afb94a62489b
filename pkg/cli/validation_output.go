package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/githubnext/runner-guard/pkg/console"
)

// ReportedError wraps an error that has already been shown to the user, so
// the caller only needs to turn it into an exit status.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// FormatCommandError formats err for console output.
func FormatCommandError(err error) string {
	if err == nil {
		return ""
	}
	return console.FormatErrorMessage(err.Error())
}

// PrintCommandError prints err to w unless it was already reported.
func PrintCommandError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var reported *ReportedError
	if errors.As(err, &reported) {
		return
	}
	fmt.Fprintln(w, FormatCommandError(err))
}
