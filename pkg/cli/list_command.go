package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/githubnext/runner-guard/pkg/console"
	"github.com/githubnext/runner-guard/pkg/constants"
	"github.com/githubnext/runner-guard/pkg/envutil"
	"github.com/githubnext/runner-guard/pkg/fileutil"
	"github.com/githubnext/runner-guard/pkg/logger"
	"github.com/githubnext/runner-guard/pkg/workflow"
	"github.com/spf13/cobra"
)

var listLog = logger.New("cli:list_command")

// ListConfig holds configuration for the list command
type ListConfig struct {
	Workspace   string
	WorkflowDir string
	JSONOutput  bool
	Verbose     bool
}

// TagUsage is one runner tag and the workflow files declaring it.
type TagUsage struct {
	Tag   string   `json:"tag" console:"header:Tag"`
	Files []string `json:"files" console:"header:Declared in"`
}

// ListResult is the output of the list command.
type ListResult struct {
	WorkflowDir string        `json:"workflow_dir" console:"header:Workflow directory"`
	Tags        []TagUsage    `json:"tags" console:"title:Runner Tags"`
	Skipped     []SkippedFile `json:"skipped" console:"title:Skipped Files,omitempty"`
}

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the runner tags declared by the workflows",
		Long: `List every runner tag declared in a runs-on field under .github/workflows,
together with the workflow files that declare it. No allowlist is applied.

Examples:
  ` + string(constants.CLIName) + ` list               # Table of tags and files
  ` + string(constants.CLIName) + ` list --json        # Same, as JSON
  ` + string(constants.CLIName) + ` list -w ../repo    # List another checkout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace, _ := cmd.Flags().GetString("workspace")
			dir, _ := cmd.Flags().GetString("dir")
			jsonOutput, _ := cmd.Flags().GetBool("json")
			verbose, _ := cmd.Flags().GetBool("verbose")
			if workspace == "" {
				workspace = envutil.GetStringFromEnv(string(constants.WorkspaceEnv), ".", listLog)
			}
			return RunList(ListConfig{
				Workspace:   workspace,
				WorkflowDir: dir,
				JSONOutput:  jsonOutput,
				Verbose:     verbose,
			}, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	addLocationFlags(cmd)
	addJSONFlag(cmd)

	return cmd
}

// RunList scans the workflow directory and prints each runner tag with the
// files declaring it. Tags are listed in first-seen order.
func RunList(config ListConfig, stdout, stderr io.Writer) error {
	workflowDir := config.WorkflowDir
	if workflowDir == "" {
		workflowDir = constants.GetWorkflowDir()
	}
	dir, err := fileutil.ResolveDir(config.Workspace, workflowDir)
	if err != nil {
		return &workflow.DiscoveryError{Dir: workflowDir, Err: err}
	}
	listLog.Printf("Listing runner tags in %s", dir)

	files, err := workflow.DiscoverFiles(dir)
	if err != nil {
		return err
	}
	if config.Verbose {
		fmt.Fprintln(stderr, console.FormatVerboseMessage(fmt.Sprintf("Found %d workflow files in %s", len(files), dir)))
	}

	scan := workflow.Scan(files, func(fileErr *workflow.FileError) {
		fmt.Fprintln(stderr, console.FormatWarningMessage(fileErr.Error()))
	})

	result := ListResult{
		WorkflowDir: dir,
		Tags:        tagUsages(dir, scan),
		Skipped:     []SkippedFile{},
	}
	for _, skipped := range scan.Skipped {
		result.Skipped = append(result.Skipped, SkippedFile{Path: relativePath(dir, skipped.Path), Error: skipped.Err.Error()})
	}

	if config.JSONOutput {
		return writeJSON(stdout, result)
	}

	if len(result.Tags) == 0 {
		fmt.Fprintln(stderr, console.FormatInfoMessage("No runner tags found"))
		return nil
	}

	fmt.Fprint(stdout, console.RenderStruct(result))
	return nil
}

func tagUsages(dir string, scan *workflow.ScanResult) []TagUsage {
	sources := scan.Sources()
	tags := scan.UniqueTags()
	usages := make([]TagUsage, 0, len(tags))
	for _, tag := range tags {
		files := make([]string, 0, len(sources[tag]))
		for _, path := range sources[tag] {
			files = append(files, relativePath(dir, path))
		}
		usages = append(usages, TagUsage{Tag: tag, Files: files})
	}
	return usages
}

// relativePath returns path relative to dir with forward slashes, or path
// unchanged when it is not under dir.
func relativePath(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
