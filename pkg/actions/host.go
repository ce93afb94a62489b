// Package actions connects the check to the process that invoked it: either
// a GitHub Actions runner or a terminal.
package actions

import (
	"github.com/githubnext/runner-guard/pkg/constants"
)

// Host is the channel through which the check reads its inputs, publishes
// outputs and reports problems.
type Host interface {
	// Input returns the named input, or "" when it is not set.
	Input(name constants.InputName) string
	// SetOutput publishes a named output value.
	SetOutput(name constants.OutputName, value string)
	// Infof writes an informational line.
	Infof(format string, args ...any)
	// Warningf reports a recoverable problem.
	Warningf(format string, args ...any)
	// Errorf reports the failure that makes the run fail.
	Errorf(format string, args ...any)
}

// WithInputs returns a Host that answers Input from inputs first and falls
// back to host for names inputs does not hold.
func WithInputs(host Host, inputs map[constants.InputName]string) Host {
	if len(inputs) == 0 {
		return host
	}
	return &inputOverrideHost{Host: host, inputs: inputs}
}

type inputOverrideHost struct {
	Host
	inputs map[constants.InputName]string
}

func (h *inputOverrideHost) Input(name constants.InputName) string {
	if value, ok := h.inputs[name]; ok {
		return value
	}
	return h.Host.Input(name)
}
