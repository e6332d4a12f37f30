package orchestrator

import (
	"os"
	"strings"

	"github.com/Yates-Labs/automigrate/internal/adapter"
)

// extractRepoName extracts the repository name from a path or URL
func extractRepoName(repo string) string {
	repo = strings.TrimSuffix(repo, "/")

	name := repo
	if lastSlash := strings.LastIndex(repo, "/"); lastSlash >= 0 && lastSlash < len(repo)-1 {
		name = repo[lastSlash+1:]
	}

	// Remove .git suffix if present
	if len(name) > 4 && strings.HasSuffix(name, ".git") {
		name = name[:len(name)-4]
	}

	return name
}

// detectPlatform detects the source platform from a project argument
// Returns platform, owner, and repo name
func detectPlatform(project string) (adapter.SourcePlatform, string, string) {
	if strings.Contains(project, "github.com") {
		owner, repo := parseHostedGitURL(project, "github.com")
		return adapter.PlatformGitHub, owner, repo
	}

	if isDir(project) {
		return adapter.PlatformLocal, "", extractRepoName(project)
	}

	// Anything else is handed to git, which clones URLs it understands
	return adapter.PlatformGit, "", extractRepoName(project)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// parseHostedGitURL is a generic parser for hosted git services
func parseHostedGitURL(url, host string) (owner, repo string) {
	// Remove protocol if present
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimPrefix(url, "ssh://")
	url = strings.TrimPrefix(url, "git@")

	// Replace colon with slash for SSH URLs
	url = strings.Replace(url, ":", "/", 1)

	url = strings.TrimPrefix(url, host+"/")
	url = strings.TrimSuffix(url, "/")
	url = strings.TrimSuffix(url, ".git")

	// Drop browser paths such as /tree/main
	parts := strings.Split(url, "/")
	if len(parts) >= 2 {
		return parts[0], strings.TrimSuffix(parts[1], ".git")
	}

	return "", url
}
