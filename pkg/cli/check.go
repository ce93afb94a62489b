package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/githubnext/runner-guard/pkg/actions"
	"github.com/githubnext/runner-guard/pkg/constants"
	"github.com/githubnext/runner-guard/pkg/fileutil"
	"github.com/githubnext/runner-guard/pkg/logger"
	"github.com/githubnext/runner-guard/pkg/policy"
	"github.com/githubnext/runner-guard/pkg/workflow"
)

var checkLog = logger.New("cli:check")

// LabelSource returns the runner labels registered to a repository.
type LabelSource func(ctx context.Context, repoRef string) ([]string, error)

// CheckConfig holds configuration for one check run. All environment lookups
// have already happened; RunCheck reads nothing from the process environment.
type CheckConfig struct {
	// Workspace is the repository root. Empty means the current directory.
	Workspace string
	// WorkflowDir is relative to Workspace unless absolute. Empty means
	// .github/workflows.
	WorkflowDir string
	// RegisteredRunnersRepo, when set, adds the labels of the self-hosted
	// runners registered to that repository to the allowlist.
	RegisteredRunnersRepo string
	// Labels looks up RegisteredRunnersRepo.
	Labels LabelSource
}

// SkippedFile is a workflow file left out of the check.
type SkippedFile struct {
	Path  string `json:"path" console:"header:File"`
	Error string `json:"error" console:"header:Error,maxlen:80"`
}

// Report is everything a check run found, whether it passed or not.
type Report struct {
	Workspace      string              `json:"workspace" console:"header:Workspace"`
	WorkflowDir    string              `json:"workflow_dir" console:"header:Workflow directory"`
	Wildcard       bool                `json:"wildcard" console:"header:Wildcard"`
	Passed         bool                `json:"passed" console:"header:Passed"`
	Error          string              `json:"error,omitempty" console:"header:Error,omitempty"`
	Files          []workflow.FileTags `json:"files" console:"title:Workflow Files"`
	Skipped        []SkippedFile       `json:"skipped" console:"title:Skipped Files,omitempty"`
	RunnerTags     []string            `json:"runner_tags" console:"title:Runner Tags"`
	AllowedRunners []string            `json:"allowed_runners" console:"title:Allowed Runners"`
	Disallowed     []string            `json:"disallowed" console:"title:Disallowed Runner Tags,omitempty"`
}

func newReport(workspace string) *Report {
	return &Report{
		Workspace:      workspace,
		Files:          []workflow.FileTags{},
		Skipped:        []SkippedFile{},
		RunnerTags:     []string{},
		AllowedRunners: []string{},
		Disallowed:     []string{},
	}
}

// RunCheck discovers the workflow files, collects their runner tags,
// publishes them as the runner-tags output and checks them against the
// allowed-runners input read from host.
//
// The returned Report is never nil. A non-nil error means the check failed,
// either because of disallowed tags (*policy.DisallowedError) or because the
// run itself could not complete; the failure has already been reported
// through host.Errorf.
func RunCheck(ctx context.Context, config CheckConfig, host actions.Host) (report *Report, err error) {
	report = newReport(config.Workspace)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected panic: %v", r)
		}
		if err == nil {
			report.Passed = true
			return
		}
		report.Passed = false
		report.Error = failureMessage(err)
		host.Errorf("%s", report.Error)
	}()

	return report, runCheck(ctx, config, host, report)
}

func runCheck(ctx context.Context, config CheckConfig, host actions.Host, report *Report) error {
	workflowDir := config.WorkflowDir
	if workflowDir == "" {
		workflowDir = constants.GetWorkflowDir()
	}
	dir, err := fileutil.ResolveDir(config.Workspace, workflowDir)
	if err != nil {
		return &workflow.DiscoveryError{Dir: workflowDir, Err: err}
	}
	report.WorkflowDir = dir
	checkLog.Printf("Running check: workspace=%s, dir=%s", config.Workspace, dir)

	files, err := workflow.DiscoverFiles(dir)
	if err != nil {
		return err
	}
	host.Infof("Found %d workflow files to analyze", len(files))

	scan := workflow.Scan(files, func(fileErr *workflow.FileError) {
		host.Warningf("%s", fileErr.Error())
	})
	report.Files = scan.Files
	for _, skipped := range scan.Skipped {
		report.Skipped = append(report.Skipped, SkippedFile{Path: skipped.Path, Error: skipped.Err.Error()})
	}

	tags := scan.UniqueTags()
	report.RunnerTags = tags
	encoded, err := EncodeRunnerTags(tags)
	if err != nil {
		return err
	}
	host.Infof("Unique runner tags found: %s", encoded)
	host.SetOutput(constants.RunnerTagsOutput, encoded)

	allow := policy.ParseAllowlist(host.Input(constants.AllowedRunnersInput))
	if config.RegisteredRunnersRepo != "" {
		if config.Labels == nil {
			return fmt.Errorf("no label source configured for %s", config.RegisteredRunnersRepo)
		}
		labels, err := config.Labels(ctx, config.RegisteredRunnersRepo)
		if err != nil {
			return err
		}
		checkLog.Printf("Registered runner labels for %s: %v", config.RegisteredRunnersRepo, labels)
		allow = allow.Merge(labels...)
	}
	report.AllowedRunners = allow.Tokens()
	host.Infof("Allowed runners: %s", allow.String())

	verdict := policy.Check(tags, allow)
	report.Disallowed = verdict.Disallowed
	report.Wildcard = verdict.Wildcard
	if err := verdict.Err(); err != nil {
		return err
	}

	host.Infof("%s", verdict.Describe())
	return nil
}

// EncodeRunnerTags renders tags as the JSON array published in the
// runner-tags output. A nil slice encodes as [].
func EncodeRunnerTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tags); err != nil {
		return "", fmt.Errorf("failed to encode runner tags: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// failureMessage is the text reported through the host's failure channel.
// Policy violations are reported as-is; anything else is a run failure.
func failureMessage(err error) string {
	var disallowed *policy.DisallowedError
	if errors.As(err, &disallowed) {
		return err.Error()
	}
	return "Action failed with error: " + err.Error()
}
