package cli

import (
	"github.com/githubnext/runner-guard/pkg/constants"
	"github.com/spf13/cobra"
)

// addJSONFlag adds the --json/-j flag.
func addJSONFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false, "Output results in JSON format")
}

// addLocationFlags adds --workspace/-w and --dir/-d.
func addLocationFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("workspace", "w", "", "Repository root (default: $"+string(constants.WorkspaceEnv)+" or the current directory)")
	cmd.Flags().StringP("dir", "d", "", "Workflow directory, relative to the workspace (default: "+constants.GetWorkflowDir()+")")
}

// addPolicyFlags adds the allowlist flags shared by check and watch.
func addPolicyFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("allowed-runners", "a", "", "Whitespace-separated runner tags to allow; \"*\" allows all (default: the "+string(constants.AllowedRunnersInput)+" action input)")
	cmd.Flags().String("allow-registered-runners", "", "Also allow the labels of self-hosted runners registered to this repository (owner/repo)")
}

// readCheckOptions collects the check flags of cmd.
func readCheckOptions(cmd *cobra.Command) CheckOptions {
	workspace, _ := cmd.Flags().GetString("workspace")
	dir, _ := cmd.Flags().GetString("dir")
	allowed, _ := cmd.Flags().GetString("allowed-runners")
	registered, _ := cmd.Flags().GetString("allow-registered-runners")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	verbose, _ := cmd.Flags().GetBool("verbose")

	opts := CheckOptions{
		Workspace:             workspace,
		WorkflowDir:           dir,
		RegisteredRunnersRepo: registered,
		JSONOutput:            jsonOutput,
		Verbose:               verbose,
	}
	if cmd.Flags().Changed("allowed-runners") {
		opts.AllowedRunners = &allowed
	}
	return opts
}
