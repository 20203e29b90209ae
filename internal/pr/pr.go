// Package pr lists open pull requests for a repository resolved from
// an argument, the environment, or the enclosing working tree.
package pr

import (
	"fmt"
	"os"
	"strings"

	git "github.com/go-git/go-git/v5"

	"github.com/gho-cli/gho/internal/account"
	"github.com/gho-cli/gho/internal/github"
	"github.com/gho-cli/gho/internal/keychain"
	"github.com/gho-cli/gho/internal/models"
	"github.com/gho-cli/gho/internal/repo"
	"github.com/gho-cli/gho/internal/storage"
)

var newClient = github.NewClient

// List returns open pull requests for the given owner/repo spec, or
// for the detected repository when the spec is empty.
func List(st storage.Storage, vault keychain.Vault, spec string, limit int) ([]models.PullRequestSummary, error) {
	_, token, err := account.GetActiveWithToken(st, vault)
	if err != nil {
		return nil, err
	}

	var owner, name string
	if spec != "" {
		owner, name, err = repo.ParseSpec(spec)
	} else {
		owner, name, err = DetectRepo()
	}
	if err != nil {
		return nil, err
	}

	prs, err := newClient(token).ListPullRequests(owner, name, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.PullRequestSummary, len(prs))
	for i, p := range prs {
		summaries[i] = models.PullRequestSummary{
			Number:    p.Number,
			Title:     p.Title,
			Author:    p.User.Login,
			Branch:    p.Head.Branch,
			Mergeable: p.Mergeable,
			// Both would need extra API calls (workflow runs, check runs).
			ActionsInProgress: false,
			CIStatus:          "unknown",
		}
	}
	return summaries, nil
}

// DetectRepo resolves owner/repo from GITHUB_REPOSITORY or, failing
// that, from the origin remote of the enclosing git repository.
func DetectRepo() (owner, name string, err error) {
	if spec := os.Getenv("GITHUB_REPOSITORY"); spec != "" {
		return repo.ParseSpec(spec)
	}

	r, err := git.PlainOpenWithOptions(".", &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", "", fmt.Errorf("no repository detected, provide an owner/repo argument: %w", err)
	}
	remote, err := r.Remote("origin")
	if err != nil {
		return "", "", fmt.Errorf("no origin remote, provide an owner/repo argument: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", fmt.Errorf("origin remote has no URL, provide an owner/repo argument")
	}
	return parseRemoteURL(urls[0])
}

// parseRemoteURL extracts owner/repo from the SSH and HTTPS GitHub
// remote URL forms.
func parseRemoteURL(url string) (owner, name string, err error) {
	if path, ok := strings.CutPrefix(url, "git@github.com:"); ok {
		return repo.ParseSpec(strings.TrimSuffix(path, ".git"))
	}
	if path, ok := strings.CutPrefix(url, "https://github.com/"); ok {
		return repo.ParseSpec(strings.TrimSuffix(path, ".git"))
	}
	return "", "", fmt.Errorf("unrecognized remote URL format %q", url)
}
