package pr

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gho-cli/gho/internal/github"
	"github.com/gho-cli/gho/internal/models"
	"github.com/gho-cli/gho/internal/testutil"
)

func TestParseRemoteURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		owner     string
		repo      string
		expectErr bool
	}{
		{name: "SSH", url: "git@github.com:octocat/hello-world.git", owner: "octocat", repo: "hello-world"},
		{name: "HTTPS", url: "https://github.com/octocat/hello-world.git", owner: "octocat", repo: "hello-world"},
		{name: "HTTPS without suffix", url: "https://github.com/octocat/hello-world", owner: "octocat", repo: "hello-world"},
		{name: "Other host", url: "git@gitlab.com:octocat/hello-world.git", expectErr: true},
		{name: "Not a URL", url: "hello-world", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, name, err := parseRemoteURL(tt.url)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.repo, name)
		})
	}
}

func TestDetectRepoFromEnvironment(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "octocat/hello-world")

	owner, name, err := DetectRepo()
	require.NoError(t, err)
	assert.Equal(t, "octocat", owner)
	assert.Equal(t, "hello-world", name)
}

func TestDetectRepoRejectsMalformedEnvironment(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "not-a-spec")

	_, _, err := DetectRepo()
	assert.Error(t, err)
}

func TestListMapsPullRequestsToSummaries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/hello-world/pulls", r.URL.Path)
		fmt.Fprint(w, `[
			{"number":7,"title":"Add feature","user":{"login":"alice"},"head":{"ref":"feature"},"mergeable":true},
			{"number":8,"title":"Fix bug","user":{"login":"bob"},"head":{"ref":"bugfix"}}
		]`)
	}))
	t.Cleanup(server.Close)

	old := newClient
	newClient = func(token string) *github.Client {
		client := github.NewClient(token)
		client.BaseURL = server.URL
		return client
	}
	t.Cleanup(func() { newClient = old })

	st := &testutil.MemStorage{}
	st.Accounts.Add(models.Account{ID: "a", Kind: models.KindPersonal, Username: "alice", Protocol: models.ProtocolSSH})
	st.Accounts.ActiveAccountID = "a"
	vault := testutil.NewMemVault()
	vault.Tokens["a"] = "tok-a"

	prs, err := List(st, vault, "octocat/hello-world", 0)
	require.NoError(t, err)
	require.Len(t, prs, 2)

	assert.Equal(t, 7, prs[0].Number)
	assert.Equal(t, "Add feature", prs[0].Title)
	assert.Equal(t, "alice", prs[0].Author)
	assert.Equal(t, "feature", prs[0].Branch)
	require.NotNil(t, prs[0].Mergeable)
	assert.True(t, *prs[0].Mergeable)
	assert.False(t, prs[0].ActionsInProgress)
	assert.Equal(t, "unknown", prs[0].CIStatus)

	assert.Nil(t, prs[1].Mergeable)
}

func TestListRequiresActiveAccount(t *testing.T) {
	st := &testutil.MemStorage{}
	vault := testutil.NewMemVault()

	_, err := List(st, vault, "octocat/hello-world", 0)
	assert.Error(t, err)
}

func TestListRejectsMalformedSpec(t *testing.T) {
	st := &testutil.MemStorage{}
	st.Accounts.Add(models.Account{ID: "a", Kind: models.KindPersonal, Username: "alice", Protocol: models.ProtocolSSH})
	st.Accounts.ActiveAccountID = "a"
	vault := testutil.NewMemVault()
	vault.Tokens["a"] = "tok-a"

	_, err := List(st, vault, "invalid", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid repository format")
}
