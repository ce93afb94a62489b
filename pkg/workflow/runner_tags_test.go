//go:build !integration

package workflow

import (
	"math"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseYAML(t *testing.T, content string) any {
	t.Helper()
	doc, err := ParseDocument([]byte(content))
	require.NoError(t, err, "test YAML should parse")
	return doc
}

func TestExtractRunnerTags(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		expected []string
	}{
		{
			name:     "no jobs field",
			yaml:     "name: ci\non: push\n",
			expected: []string{},
		},
		{
			name:     "empty jobs",
			yaml:     "jobs: {}\n",
			expected: []string{},
		},
		{
			name:     "string runs-on",
			yaml:     "jobs:\n  build:\n    runs-on: ubuntu-latest\n",
			expected: []string{"ubuntu-latest"},
		},
		{
			name:     "sequence runs-on",
			yaml:     "jobs:\n  build:\n    runs-on: [ubuntu-latest, windows-latest]\n",
			expected: []string{"ubuntu-latest", "windows-latest"},
		},
		{
			name:     "sequence runs-on keeps duplicates",
			yaml:     "jobs:\n  build:\n    runs-on:\n      - self-hosted\n      - linux\n      - self-hosted\n",
			expected: []string{"self-hosted", "linux", "self-hosted"},
		},
		{
			name:     "mapping runs-on is serialized",
			yaml:     "jobs:\n  build:\n    runs-on:\n      group: ubuntu-group\n",
			expected: []string{`{"group":"ubuntu-group"}`},
		},
		{
			name:     "multiple jobs follow declaration order",
			yaml:     "jobs:\n  zeta:\n    runs-on: ubuntu-latest\n  alpha:\n    runs-on: windows-latest\n  mid:\n    runs-on: [macos-latest, ubuntu-latest]\n",
			expected: []string{"ubuntu-latest", "windows-latest", "macos-latest", "ubuntu-latest"},
		},
		{
			name:     "matrix expression is kept as text",
			yaml:     "jobs:\n  test:\n    strategy:\n      matrix:\n        os: [ubuntu-latest]\n    runs-on: \"${{ matrix.os }}\"\n",
			expected: []string{"${{ matrix.os }}"},
		},
		{
			name:     "job without runs-on contributes nothing",
			yaml:     "jobs:\n  call:\n    uses: octo/ci/.github/workflows/reusable.yml@main\n  build:\n    runs-on: ubuntu-latest\n",
			expected: []string{"ubuntu-latest"},
		},
		{
			name:     "job that is not a mapping is skipped",
			yaml:     "jobs:\n  broken: just-a-string\n  other: [1, 2]\n  build:\n    runs-on: ubuntu-latest\n",
			expected: []string{"ubuntu-latest"},
		},
		{
			name:     "jobs that is not a mapping",
			yaml:     "jobs: [build, test]\n",
			expected: []string{},
		},
		{
			name:     "null jobs",
			yaml:     "jobs:\n",
			expected: []string{},
		},
		{
			name:     "null and empty runs-on contribute nothing",
			yaml:     "jobs:\n  a:\n    runs-on:\n  b:\n    runs-on: \"\"\n",
			expected: []string{},
		},
		{
			name:     "falsy scalar runs-on contributes nothing",
			yaml:     "jobs:\n  a:\n    runs-on: false\n  b:\n    runs-on: 0\n  c:\n    runs-on: 0.0\n  d:\n    runs-on: ubuntu-latest\n",
			expected: []string{"ubuntu-latest"},
		},
		{
			name:     "truthy non-string scalars are serialized",
			yaml:     "jobs:\n  a:\n    runs-on: true\n  b:\n    runs-on: 1.5\n",
			expected: []string{"true", "1.5"},
		},
		{
			name:     "non-string sequence items are serialized and nulls dropped",
			yaml:     "jobs:\n  a:\n    runs-on: [self-hosted, null, 42, {group: gpu}]\n",
			expected: []string{"self-hosted", "42", `{"group":"gpu"}`},
		},
		{
			name:     "scalar runs-on that is not a string",
			yaml:     "jobs:\n  a:\n    runs-on: 42\n",
			expected: []string{"42"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractRunnerTags(parseYAML(t, tt.yaml))
			assert.Equal(t, tt.expected, result, "ExtractRunnerTags should return the declared tags")
		})
	}
}

func TestIsFalsy(t *testing.T) {
	tests := []struct {
		value    any
		expected bool
	}{
		{value: nil, expected: true},
		{value: "", expected: true},
		{value: false, expected: true},
		{value: 0, expected: true},
		{value: uint64(0), expected: true},
		{value: int64(0), expected: true},
		{value: 0.0, expected: true},
		{value: math.NaN(), expected: true},
		{value: "0", expected: false},
		{value: "false", expected: false},
		{value: true, expected: false},
		{value: uint64(2), expected: false},
		{value: -1.5, expected: false},
		{value: []any{}, expected: false},
		{value: yaml.MapSlice{}, expected: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, isFalsy(tt.value), "isFalsy(%#v)", tt.value)
	}
}

func TestExtractRunnerTags_NonDocumentInput(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{name: "nil", input: nil},
		{name: "string", input: "jobs"},
		{name: "number", input: 42},
		{name: "sequence", input: []any{"ubuntu-latest"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractRunnerTags(tt.input)
			require.NotNil(t, result, "ExtractRunnerTags should never return nil")
			assert.Empty(t, result, "non-document input should yield no tags")
		})
	}
}

func TestExtractRunnerTags_PlainMaps(t *testing.T) {
	doc := map[string]any{
		"jobs": map[string]any{
			"test":  map[string]any{"runs-on": "windows-latest"},
			"build": map[string]any{"runs-on": []any{"ubuntu-latest", "self-hosted"}},
		},
	}

	assert.Equal(t, []string{"ubuntu-latest", "self-hosted", "windows-latest"}, ExtractRunnerTags(doc),
		"plain maps should be walked in sorted key order")
}

func TestExtractRunnerTags_MappingKeyOrderIsCanonical(t *testing.T) {
	first := ExtractRunnerTags(parseYAML(t, "jobs:\n  a:\n    runs-on:\n      group: large\n      labels: [linux, x64]\n"))
	second := ExtractRunnerTags(parseYAML(t, "jobs:\n  a:\n    runs-on:\n      labels: [linux, x64]\n      group: large\n"))

	require.Len(t, first, 1)
	assert.Equal(t, first, second, "the same selector written in a different key order should yield the same tag")
	assert.Equal(t, `{"group":"large","labels":["linux","x64"]}`, first[0])
}

func TestExtractRunnerTags_Pure(t *testing.T) {
	doc := parseYAML(t, "jobs:\n  build:\n    runs-on: [ubuntu-latest, self-hosted]\n")

	first := ExtractRunnerTags(doc)
	first[0] = "mutated"
	second := ExtractRunnerTags(doc)

	assert.Equal(t, []string{"ubuntu-latest", "self-hosted"}, second, "each call should return a fresh slice")
}
