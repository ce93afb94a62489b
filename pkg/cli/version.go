package cli

import (
	"fmt"
	"strings"

	"github.com/githubnext/runner-guard/pkg/constants"
	"github.com/githubnext/runner-guard/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

var versionLog = logger.New("cli:version")

// version is set from main with the value injected at link time.
var version = "dev"

// SetVersionInfo records the build version.
func SetVersionInfo(v string) {
	version = v
}

// GetVersion returns the build version.
func GetVersion() string {
	return version
}

// isReleaseVersion reports whether v is a semantic version without a
// prerelease suffix. The leading "v" is optional.
func isReleaseVersion(v string) bool {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.IsValid(v) && semver.Prerelease(v) == ""
}

// describeVersion renders v for the version command.
func describeVersion(v string) string {
	versionLog.Printf("Describing version: %s", v)
	if isReleaseVersion(v) {
		if !strings.HasPrefix(v, "v") {
			v = "v" + v
		}
		return fmt.Sprintf("%s version %s", constants.CLIName, semver.Canonical(v))
	}
	return fmt.Sprintf("%s version %s (development build)", constants.CLIName, v)
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), describeVersion(GetVersion()))
		},
	}
}
