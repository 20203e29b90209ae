// Package repo implements repository listing and cloning against the
// active account.
package repo

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gho-cli/gho/internal/account"
	"github.com/gho-cli/gho/internal/github"
	"github.com/gho-cli/gho/internal/keychain"
	"github.com/gho-cli/gho/internal/models"
	"github.com/gho-cli/gho/internal/storage"
	"github.com/gho-cli/gho/internal/style"
)

// Test seams: the API client factory and the git invocation.
var (
	newClient = github.NewClient

	runGit = func(args ...string) error {
		cmd := exec.Command("git", args...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("git %s failed: %w", args[0], err)
		}
		return nil
	}
)

// List lists repositories for the active account. An explicit org
// wins, then the account's default org, then the account user's repos.
func List(st storage.Storage, vault keychain.Vault, org string, limit int) ([]models.Repository, error) {
	acc, token, err := account.GetActiveWithToken(st, vault)
	if err != nil {
		return nil, err
	}
	client := newClient(token)

	if org == "" {
		org = acc.DefaultOrg
	}
	if org != "" {
		return client.ListOrgRepos(org, limit)
	}
	return client.ListUserRepos(acc.Username, limit)
}

// Clone clones a single owner/repo using the active account's protocol
// and clone directory.
func Clone(st storage.Storage, vault keychain.Vault, spec string) error {
	acc, _, err := account.GetActiveWithToken(st, vault)
	if err != nil {
		return err
	}

	owner, name, err := ParseSpec(spec)
	if err != nil {
		return err
	}

	target := targetDir(acc, name)
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("directory %q already exists", target)
	}

	return runGit("clone", CloneURL(owner, name, acc.Protocol), target)
}

// CloneOrg clones every listed repository of an organization, skipping
// pre-existing directories and continuing past per-repo failures. It
// returns the names that were cloned.
func CloneOrg(st storage.Storage, vault keychain.Vault, org string, limit int) ([]string, error) {
	acc, token, err := account.GetActiveWithToken(st, vault)
	if err != nil {
		return nil, err
	}

	repos, err := newClient(token).ListOrgRepos(org, limit)
	if err != nil {
		return nil, err
	}
	return cloneAll(acc, repos), nil
}

// cloneAll applies the per-repository skip/continue policy: a single
// clone failure or existing directory is reported, never fatal.
func cloneAll(acc *models.Account, repos []models.Repository) []string {
	var cloned []string
	for _, r := range repos {
		url := r.SSHURL
		if acc.Protocol == models.ProtocolHTTPS {
			url = r.CloneURL
		}

		target := targetDir(acc, r.Name)
		if _, err := os.Stat(target); err == nil {
			fmt.Fprintf(os.Stderr, "%s skipping %s (already exists)\n", style.WarnPrefix, r.Name)
			continue
		}

		if err := runGit("clone", url, target); err != nil {
			fmt.Fprintf(os.Stderr, "%s failed to clone %s: %v\n", style.ErrorPrefix, r.Name, err)
			continue
		}
		cloned = append(cloned, r.Name)
	}
	return cloned
}

// ParseSpec splits an owner/repo argument.
func ParseSpec(spec string) (owner, name string, err error) {
	parts := strings.Split(spec, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository format %q, expected owner/repo", spec)
	}
	return parts[0], parts[1], nil
}

// CloneURL builds the clone URL for the given protocol.
func CloneURL(owner, name string, protocol models.Protocol) string {
	if protocol == models.ProtocolHTTPS {
		return fmt.Sprintf("https://github.com/%s/%s.git", owner, name)
	}
	return fmt.Sprintf("git@github.com:%s/%s.git", owner, name)
}

func targetDir(acc *models.Account, name string) string {
	if acc.CloneDir != "" {
		return filepath.Join(acc.CloneDir, name)
	}
	return name
}
