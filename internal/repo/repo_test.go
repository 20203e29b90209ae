package repo

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gho-cli/gho/internal/github"
	"github.com/gho-cli/gho/internal/models"
	"github.com/gho-cli/gho/internal/testutil"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		owner     string
		repo      string
		expectErr bool
	}{
		{name: "Valid", spec: "octocat/hello-world", owner: "octocat", repo: "hello-world"},
		{name: "No slash", spec: "invalid", expectErr: true},
		{name: "Too many parts", spec: "a/b/c", expectErr: true},
		{name: "Empty owner", spec: "/repo", expectErr: true},
		{name: "Empty repo", spec: "owner/", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, name, err := ParseSpec(tt.spec)
			if tt.expectErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid repository format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.repo, name)
		})
	}
}

func TestCloneURL(t *testing.T) {
	assert.Equal(t, "git@github.com:octocat/hello-world.git",
		CloneURL("octocat", "hello-world", models.ProtocolSSH))
	assert.Equal(t, "https://github.com/octocat/hello-world.git",
		CloneURL("octocat", "hello-world", models.ProtocolHTTPS))
}

// activeStorage returns storage and vault pre-loaded with one active account.
func activeStorage(acc models.Account) (*testutil.MemStorage, *testutil.MemVault) {
	st := &testutil.MemStorage{}
	st.Accounts.Add(acc)
	st.Accounts.ActiveAccountID = acc.ID
	vault := testutil.NewMemVault()
	vault.Tokens[acc.ID] = "tok-" + acc.ID
	return st, vault
}

func withGit(t *testing.T, fn func(args ...string) error) *[][]string {
	t.Helper()
	var calls [][]string
	old := runGit
	runGit = func(args ...string) error {
		calls = append(calls, args)
		if fn != nil {
			return fn(args...)
		}
		return nil
	}
	t.Cleanup(func() { runGit = old })
	return &calls
}

func withServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	old := newClient
	newClient = func(token string) *github.Client {
		client := github.NewClient(token)
		client.BaseURL = server.URL
		return client
	}
	t.Cleanup(func() { newClient = old })
	return server
}

func TestListPrefersExplicitOrgThenDefaultOrg(t *testing.T) {
	var gotPaths []string
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)
		fmt.Fprint(w, `[]`)
	})

	st, vault := activeStorage(models.Account{
		ID: "a", Kind: models.KindPersonal, Username: "alice",
		DefaultOrg: "homeorg", Protocol: models.ProtocolSSH,
	})

	_, err := List(st, vault, "acme", 0)
	require.NoError(t, err)
	_, err = List(st, vault, "", 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"/orgs/acme/repos", "/orgs/homeorg/repos"}, gotPaths)
}

func TestListFallsBackToUserRepos(t *testing.T) {
	var gotPath string
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `[{"name":"dotfiles","full_name":"alice/dotfiles","owner":{"login":"alice"}}]`)
	})

	st, vault := activeStorage(models.Account{
		ID: "a", Kind: models.KindPersonal, Username: "alice", Protocol: models.ProtocolSSH,
	})

	repos, err := List(st, vault, "", 0)
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "dotfiles", repos[0].Name)
	assert.Equal(t, "/users/alice/repos", gotPath)
}

func TestListRequiresActiveAccount(t *testing.T) {
	st := &testutil.MemStorage{}
	vault := testutil.NewMemVault()

	_, err := List(st, vault, "", 0)
	assert.Error(t, err)
}

func TestCloneBuildsTargetFromCloneDir(t *testing.T) {
	cloneDir := t.TempDir()
	st, vault := activeStorage(models.Account{
		ID: "a", Kind: models.KindPersonal, Username: "alice",
		Protocol: models.ProtocolHTTPS, CloneDir: cloneDir,
	})
	calls := withGit(t, nil)

	require.NoError(t, Clone(st, vault, "octocat/hello-world"))

	require.Len(t, *calls, 1)
	assert.Equal(t, []string{
		"clone",
		"https://github.com/octocat/hello-world.git",
		filepath.Join(cloneDir, "hello-world"),
	}, (*calls)[0])
}

func TestCloneRefusesExistingDirectory(t *testing.T) {
	cloneDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(cloneDir, "hello-world"), 0755))

	st, vault := activeStorage(models.Account{
		ID: "a", Kind: models.KindPersonal, Username: "alice",
		Protocol: models.ProtocolSSH, CloneDir: cloneDir,
	})
	calls := withGit(t, nil)

	err := Clone(st, vault, "octocat/hello-world")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Empty(t, *calls)
}

func TestCloneRejectsMalformedSpec(t *testing.T) {
	st, vault := activeStorage(models.Account{
		ID: "a", Kind: models.KindPersonal, Username: "alice", Protocol: models.ProtocolSSH,
	})
	calls := withGit(t, nil)

	err := Clone(st, vault, "invalid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid repository format")
	assert.Empty(t, *calls)
}

func TestCloneOrgSkipsAndContinues(t *testing.T) {
	cloneDir := t.TempDir()
	// "beta" already exists on disk and must be skipped.
	require.NoError(t, os.Mkdir(filepath.Join(cloneDir, "beta"), 0755))

	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orgs/acme/repos", r.URL.Path)
		fmt.Fprint(w, `[
			{"name":"alpha","full_name":"acme/alpha","ssh_url":"git@github.com:acme/alpha.git","clone_url":"https://github.com/acme/alpha.git","owner":{"login":"acme"}},
			{"name":"beta","full_name":"acme/beta","ssh_url":"git@github.com:acme/beta.git","clone_url":"https://github.com/acme/beta.git","owner":{"login":"acme"}},
			{"name":"gamma","full_name":"acme/gamma","ssh_url":"git@github.com:acme/gamma.git","clone_url":"https://github.com/acme/gamma.git","owner":{"login":"acme"}},
			{"name":"delta","full_name":"acme/delta","ssh_url":"git@github.com:acme/delta.git","clone_url":"https://github.com/acme/delta.git","owner":{"login":"acme"}}
		]`)
	})

	// "gamma" fails to clone and must be reported but not fatal.
	calls := withGit(t, func(args ...string) error {
		if args[2] == filepath.Join(cloneDir, "gamma") {
			return errors.New("exit status 128")
		}
		return nil
	})

	st, vault := activeStorage(models.Account{
		ID: "a", Kind: models.KindWork, Username: "alice",
		Protocol: models.ProtocolSSH, CloneDir: cloneDir,
	})

	cloned, err := CloneOrg(st, vault, "acme", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "delta"}, cloned)
	assert.Len(t, *calls, 3, "beta must be skipped before invoking git")
	assert.Equal(t, "git@github.com:acme/alpha.git", (*calls)[0][1])
}
