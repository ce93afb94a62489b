//go:build !integration

package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAllowlist(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		wildcard bool
	}{
		{name: "space separated", input: "ubuntu-latest self-hosted", expected: []string{"ubuntu-latest", "self-hosted"}},
		{name: "repeated spaces", input: "  ubuntu-latest    self-hosted  ", expected: []string{"ubuntu-latest", "self-hosted"}},
		{name: "newlines and tabs", input: "ubuntu-latest\n\tself-hosted\n", expected: []string{"ubuntu-latest", "self-hosted"}},
		{name: "repeats dropped", input: "a b a", expected: []string{"a", "b"}},
		{name: "empty input", input: "", expected: []string{}},
		{name: "whitespace only", input: " \n\t ", expected: []string{}},
		{name: "wildcard", input: "*", expected: []string{"*"}, wildcard: true},
		{name: "wildcard among tags", input: "ubuntu-latest *", expected: []string{"ubuntu-latest", "*"}, wildcard: true},
		{name: "star inside a tag is not a wildcard", input: "ubuntu-*", expected: []string{"ubuntu-*"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allow := ParseAllowlist(tt.input)
			assert.Equal(t, tt.expected, allow.Tokens(), "ParseAllowlist(%q) tokens", tt.input)
			assert.Equal(t, tt.wildcard, allow.Wildcard(), "ParseAllowlist(%q) wildcard", tt.input)
		})
	}
}

func TestAllowlist_Allows(t *testing.T) {
	allow := ParseAllowlist("ubuntu-latest self-hosted")

	assert.True(t, allow.Allows("ubuntu-latest"))
	assert.True(t, allow.Allows("self-hosted"))
	assert.False(t, allow.Allows("windows-latest"))
	assert.False(t, allow.Allows("Ubuntu-Latest"), "matching should be exact")
	assert.True(t, ParseAllowlist("*").Allows("anything"), "wildcard should allow any tag")
}

func TestAllowlist_Merge(t *testing.T) {
	base := ParseAllowlist("ubuntu-latest")
	merged := base.Merge("self-hosted", " ", "ubuntu-latest", " gpu ")

	assert.Equal(t, []string{"ubuntu-latest", "self-hosted", "gpu"}, merged.Tokens())
	assert.Equal(t, []string{"ubuntu-latest"}, base.Tokens(), "Merge should not modify the receiver")
	assert.Equal(t, "ubuntu-latest self-hosted gpu", merged.String())
}

func TestAllowlist_ZeroValue(t *testing.T) {
	var allow Allowlist
	assert.Equal(t, []string{}, allow.Tokens())
	assert.False(t, allow.Wildcard())
	assert.False(t, allow.Allows("ubuntu-latest"))
}
