// Package repoutil provides utility functions for working with GitHub repository slugs and URLs.
package repoutil

import (
	"fmt"
	"strings"

	"github.com/githubnext/runner-guard/pkg/logger"
)

var log = logger.New("repoutil:repoutil")

// SplitRepoSlug splits a repository slug (owner/repo) into owner and repo parts.
// Returns an error if the slug format is invalid.
func SplitRepoSlug(slug string) (owner, repo string, err error) {
	log.Printf("Splitting repo slug: %s", slug)
	parts := strings.Split(slug, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo format: %s", slug)
	}
	return parts[0], parts[1], nil
}

// ParseGitHubURL extracts the owner and repo from a GitHub URL.
// Handles both SSH (git@github.com:owner/repo.git) and HTTPS (https://github.com/owner/repo.git) formats.
func ParseGitHubURL(url string) (owner, repo string, err error) {
	var repoPath string
	if after, ok := strings.CutPrefix(url, "git@github.com:"); ok {
		repoPath = after
	} else if _, after, ok := strings.Cut(url, "github.com/"); ok {
		repoPath = after
	} else {
		return "", "", fmt.Errorf("URL does not appear to be a GitHub repository: %s", url)
	}
	repoPath = strings.TrimSuffix(strings.TrimSuffix(repoPath, "/"), ".git")
	return SplitRepoSlug(repoPath)
}

// ParseRepoRef accepts either an owner/repo slug or a GitHub URL.
func ParseRepoRef(ref string) (owner, repo string, err error) {
	ref = strings.TrimSpace(ref)
	if strings.Contains(ref, "github.com") {
		return ParseGitHubURL(ref)
	}
	return SplitRepoSlug(ref)
}
