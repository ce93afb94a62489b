package actions

import (
	"fmt"
	"io"
	"sync"

	"github.com/githubnext/runner-guard/pkg/console"
	"github.com/githubnext/runner-guard/pkg/constants"
)

// LocalHost is the Host used from a terminal. Inputs come from flags,
// outputs are printed as name=value lines and messages are styled for the
// console.
type LocalHost struct {
	inputs map[constants.InputName]string
	stdout io.Writer
	stderr io.Writer

	mu      sync.Mutex
	outputs map[constants.OutputName]string
}

// NewLocalHost creates a LocalHost writing outputs to stdout and messages to
// stderr. A nil stdout suppresses printing outputs; they are still recorded.
func NewLocalHost(stdout, stderr io.Writer, inputs map[constants.InputName]string) *LocalHost {
	if inputs == nil {
		inputs = map[constants.InputName]string{}
	}
	return &LocalHost{
		inputs:  inputs,
		stdout:  stdout,
		stderr:  stderr,
		outputs: map[constants.OutputName]string{},
	}
}

func (h *LocalHost) Input(name constants.InputName) string {
	return h.inputs[name]
}

func (h *LocalHost) SetOutput(name constants.OutputName, value string) {
	h.mu.Lock()
	h.outputs[name] = value
	h.mu.Unlock()
	if h.stdout != nil {
		fmt.Fprintf(h.stdout, "%s=%s\n", name, value)
	}
}

// Output returns a value previously passed to SetOutput.
func (h *LocalHost) Output(name constants.OutputName) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	value, ok := h.outputs[name]
	return value, ok
}

func (h *LocalHost) Infof(format string, args ...any) {
	fmt.Fprintln(h.stderr, console.FormatInfoMessage(fmt.Sprintf(format, args...)))
}

func (h *LocalHost) Warningf(format string, args ...any) {
	fmt.Fprintln(h.stderr, console.FormatWarningMessage(fmt.Sprintf(format, args...)))
}

func (h *LocalHost) Errorf(format string, args ...any) {
	fmt.Fprintln(h.stderr, console.FormatErrorMessage(fmt.Sprintf(format, args...)))
}
