// Package constants holds names shared between the action metadata, the CLI
// and the check itself.
package constants

import "path/filepath"

// CommandPrefix is the invocation prefix used in help text examples.
type CommandPrefix string

// InputName is the name of a GitHub Actions input.
type InputName string

// OutputName is the name of a GitHub Actions output.
type OutputName string

// EnvVar is the name of an environment variable.
type EnvVar string

// CLIName is the binary name used in help examples.
const CLIName CommandPrefix = "runner-guard"

const (
	// AllowedRunnersInput holds the whitespace-separated allowlist.
	AllowedRunnersInput InputName = "allowed-runners"

	// RunnerTagsOutput receives the JSON array of unique runner tags.
	RunnerTagsOutput OutputName = "runner-tags"
)

// WildcardRunner in the allowlist permits every runner tag.
const WildcardRunner = "*"

// RunsOnKey is the job field that declares the runner.
const RunsOnKey = "runs-on"

// JobsKey is the top-level workflow field holding job definitions.
const JobsKey = "jobs"

// WorkflowFilePattern matches workflow files relative to the workflow dir.
const WorkflowFilePattern = "**/*.{yml,yaml}"

const (
	WorkspaceEnv     EnvVar = "GITHUB_WORKSPACE"
	GitHubActionsEnv EnvVar = "GITHUB_ACTIONS"
	WatchDebounceEnv EnvVar = "RUNNER_GUARD_WATCH_DEBOUNCE_MS"
)

// DefaultWatchDebounceMs is how long watch waits after the last change
// before rescanning.
const DefaultWatchDebounceMs = 200

// GetWorkflowDir returns the workflow directory relative to a workspace.
func GetWorkflowDir() string {
	return filepath.Join(".github", "workflows")
}
