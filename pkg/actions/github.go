package actions

import (
	"github.com/githubnext/runner-guard/pkg/constants"
	"github.com/githubnext/runner-guard/pkg/logger"
	"github.com/sethvargo/go-githubactions"
)

var githubLog = logger.New("actions:github")

// GitHubHost is the Host used inside a GitHub Actions job. Inputs come from
// INPUT_* variables, outputs go to $GITHUB_OUTPUT and problems become
// workflow command annotations.
type GitHubHost struct {
	action *githubactions.Action
}

// NewGitHubHost creates a GitHubHost. Options are passed to
// githubactions.New; tests use them to replace the writer and environment.
func NewGitHubHost(opts ...githubactions.Option) *GitHubHost {
	return &GitHubHost{action: githubactions.New(opts...)}
}

func (h *GitHubHost) Input(name constants.InputName) string {
	value := h.action.GetInput(string(name))
	githubLog.Printf("Input %s=%q", name, value)
	return value
}

func (h *GitHubHost) SetOutput(name constants.OutputName, value string) {
	githubLog.Printf("Output %s=%s", name, value)
	h.action.SetOutput(string(name), value)
}

func (h *GitHubHost) Infof(format string, args ...any) {
	h.action.Infof(format+"\n", args...)
}

func (h *GitHubHost) Warningf(format string, args ...any) {
	h.action.Warningf(format, args...)
}

func (h *GitHubHost) Errorf(format string, args ...any) {
	h.action.Errorf(format, args...)
}
