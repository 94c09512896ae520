package config

import (
	"os/exec"
	"regexp"
	"strings"
)

// Matches both SSH and HTTPS GitHub remotes:
//
//	git@github.com:owner/repo.git
//	https://github.com/owner/repo.git
var githubRemoteRe = regexp.MustCompile(`github\.com[:/]([^/]+/[^/.]+)`)

// detectGitHubRepo asks git for the origin remote and extracts owner/repo.
// Returns "" when not in a git repository or the remote is not GitHub;
// callers treat that as unconfigured.
func detectGitHubRepo() string {
	out, err := exec.Command("git", "remote", "get-url", "origin").Output()
	if err != nil {
		return ""
	}

	return ParseGitHubRemote(strings.TrimSpace(string(out)))
}

// ParseGitHubRemote extracts "owner/repo" from a git remote URL.
func ParseGitHubRemote(url string) string {
	m := githubRemoteRe.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return strings.TrimSuffix(m[1], ".git")
}
