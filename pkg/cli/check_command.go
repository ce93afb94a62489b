package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/githubnext/runner-guard/pkg/actions"
	"github.com/githubnext/runner-guard/pkg/console"
	"github.com/githubnext/runner-guard/pkg/constants"
	"github.com/githubnext/runner-guard/pkg/envutil"
	"github.com/githubnext/runner-guard/pkg/logger"
	"github.com/githubnext/runner-guard/pkg/runners"
	"github.com/spf13/cobra"
)

var checkCommandLog = logger.New("cli:check_command")

// CheckOptions holds the command-line configuration of check and watch.
type CheckOptions struct {
	Workspace   string
	WorkflowDir string
	// AllowedRunners overrides the allowed-runners input when non-nil.
	AllowedRunners        *string
	RegisteredRunnersRepo string
	JSONOutput            bool
	Verbose               bool
	// InActions selects the GitHub Actions host instead of the terminal one.
	InActions bool
}

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fail if any workflow job runs on a runner outside the allowlist",
		Long: `Scan every .yml and .yaml file under .github/workflows, collect the runner tags
declared by each job's runs-on field, and fail if any tag is not in the allowlist.

The allowlist is a whitespace-separated list of runner tags. The token "*" allows
every runner. Inside GitHub Actions it is read from the allowed-runners input and
the unique tags found are published as the runner-tags output (a JSON array),
whether or not the check passes.

Files that cannot be read or parsed are reported and skipped.

Examples:
  ` + string(constants.CLIName) + ` check -a "ubuntu-latest self-hosted"     # Allow two runner tags
  ` + string(constants.CLIName) + ` check -a "*"                             # Report tags, allow everything
  ` + string(constants.CLIName) + ` check -w ../repo -a ubuntu-latest        # Check another checkout
  ` + string(constants.CLIName) + ` check --allow-registered-runners octo/ci # Also allow registered runner labels
  ` + string(constants.CLIName) + ` check --json -a ubuntu-latest            # Print the full report as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := readCheckOptions(cmd)
			opts.InActions = envutil.GetBoolFromEnv(string(constants.GitHubActionsEnv))
			return RunCheckCommand(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	addLocationFlags(cmd)
	addPolicyFlags(cmd)
	addJSONFlag(cmd)

	return cmd
}

// RunCheckCommand runs one check with opts, writing outputs and the JSON
// report to stdout and messages to stderr.
func RunCheckCommand(ctx context.Context, opts CheckOptions, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	config := newCheckConfig(opts)
	checkCommandLog.Printf("Running check command: workspace=%s, dir=%s, actions=%v", config.Workspace, config.WorkflowDir, opts.InActions)

	if opts.Verbose {
		fmt.Fprintln(stderr, console.FormatVerboseMessage("Workspace: "+config.Workspace))
	}

	report, err := RunCheck(ctx, config, newHost(opts, stdout, stderr))

	if opts.JSONOutput {
		if encodeErr := writeJSON(stdout, report); encodeErr != nil {
			return encodeErr
		}
	} else if opts.Verbose {
		fmt.Fprint(stderr, console.RenderStruct(report))
	}
	if err != nil {
		return &ReportedError{Err: err}
	}
	return nil
}

// newCheckConfig resolves the workspace once, at the boundary.
func newCheckConfig(opts CheckOptions) CheckConfig {
	workspace := opts.Workspace
	if workspace == "" {
		workspace = envutil.GetStringFromEnv(string(constants.WorkspaceEnv), ".", checkCommandLog)
	}

	config := CheckConfig{
		Workspace:             workspace,
		WorkflowDir:           opts.WorkflowDir,
		RegisteredRunnersRepo: opts.RegisteredRunnersRepo,
	}
	if opts.RegisteredRunnersRepo != "" {
		config.Labels = fetchRegisteredLabels
	}
	return config
}

// newHost picks the GitHub Actions host or the terminal one. In JSON mode
// outputs are not printed separately; they are part of the report.
func newHost(opts CheckOptions, stdout, stderr io.Writer) actions.Host {
	var host actions.Host
	if opts.InActions {
		host = actions.NewGitHubHost()
	} else {
		outputs := stdout
		if opts.JSONOutput {
			outputs = nil
		}
		host = actions.NewLocalHost(outputs, stderr, nil)
	}

	if opts.AllowedRunners != nil {
		host = actions.WithInputs(host, map[constants.InputName]string{
			constants.AllowedRunnersInput: *opts.AllowedRunners,
		})
	}
	return host
}

func fetchRegisteredLabels(ctx context.Context, repoRef string) ([]string, error) {
	client, err := runners.NewClient()
	if err != nil {
		return nil, err
	}
	return runners.FetchLabels(ctx, client, repoRef)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}
