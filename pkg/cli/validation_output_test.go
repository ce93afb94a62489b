//go:build !integration

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/githubnext/runner-guard/pkg/policy"
	"github.com/stretchr/testify/assert"
)

func TestFormatCommandError(t *testing.T) {
	assert.Empty(t, FormatCommandError(nil), "nil error should format as empty string")
	assert.Contains(t, FormatCommandError(errors.New("unknown flag: --foo")), "unknown flag: --foo")
}

func TestPrintCommandError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectEmpty bool
	}{
		{name: "nil error", err: nil, expectEmpty: true},
		{name: "plain error is printed", err: errors.New("invalid repo format: octo"), expectEmpty: false},
		{name: "reported error is not printed again", err: &ReportedError{Err: &policy.DisallowedError{Tags: []string{"gpu"}}}, expectEmpty: true},
		{name: "wrapped reported error is not printed again", err: fmt.Errorf("check: %w", &ReportedError{Err: errors.New("x")}), expectEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintCommandError(&buf, tt.err)
			if tt.expectEmpty {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tt.err.Error())
		})
	}
}

func TestReportedError_Unwrap(t *testing.T) {
	inner := &policy.DisallowedError{Tags: []string{"gpu"}}
	err := &ReportedError{Err: inner}

	var disallowed *policy.DisallowedError
	assert.True(t, errors.As(err, &disallowed), "ReportedError should unwrap to the original error")
	assert.Equal(t, inner.Error(), err.Error())
}
