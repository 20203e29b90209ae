package models

import "fmt"

// Kind partitions accounts into personal and work identities.
type Kind string

const (
	KindPersonal Kind = "personal"
	KindWork     Kind = "work"
)

// ParseKind checks if the given string is a valid account Kind
func ParseKind(kind string) (Kind, error) {
	switch Kind(kind) {
	case KindPersonal:
		return KindPersonal, nil
	case KindWork:
		return KindWork, nil
	default:
		return "", fmt.Errorf("invalid account kind %q: must be 'personal' or 'work'", kind)
	}
}

// Protocol selects how clone URLs are constructed.
type Protocol string

const (
	ProtocolSSH   Protocol = "ssh"
	ProtocolHTTPS Protocol = "https"
)

// ParseProtocol checks if the given string is a valid Protocol.
// The empty string maps to the SSH default.
func ParseProtocol(protocol string) (Protocol, error) {
	switch Protocol(protocol) {
	case "":
		return ProtocolSSH, nil
	case ProtocolSSH:
		return ProtocolSSH, nil
	case ProtocolHTTPS:
		return ProtocolHTTPS, nil
	default:
		return "", fmt.Errorf("invalid protocol %q: must be 'ssh' or 'https'", protocol)
	}
}

// Account is a single GitHub identity. Tokens are never part of this
// record; they live in the keychain, addressed by ID.
type Account struct {
	ID         string   `json:"id"`
	Kind       Kind     `json:"kind"`
	Username   string   `json:"username"`
	DefaultOrg string   `json:"default_org,omitempty"`
	Protocol   Protocol `json:"protocol"`
	CloneDir   string   `json:"clone_dir,omitempty"`
}

// AccountsFile is the registry of all accounts plus the active pointer.
// It is persisted as-is to the accounts document.
type AccountsFile struct {
	Personal        []Account `json:"personal"`
	Work            []Account `json:"work"`
	ActiveAccountID string    `json:"active_account_id,omitempty"`
}

// All returns every account, personal first then work, each in
// insertion order. The ordering is an observable contract: listing and
// interactive selection both index into it.
func (f *AccountsFile) All() []Account {
	all := make([]Account, 0, len(f.Personal)+len(f.Work))
	all = append(all, f.Personal...)
	all = append(all, f.Work...)
	return all
}

// Find returns a pointer to the account with the given ID, scanning
// personal then work, or nil if absent. The pointer aliases the
// registry's backing slice, so it doubles as a mutable lookup.
func (f *AccountsFile) Find(id string) *Account {
	for i := range f.Personal {
		if f.Personal[i].ID == id {
			return &f.Personal[i]
		}
	}
	for i := range f.Work {
		if f.Work[i].ID == id {
			return &f.Work[i]
		}
	}
	return nil
}

// Active resolves the active pointer through Find. Returns nil when no
// account is active or the pointer does not resolve.
func (f *AccountsFile) Active() *Account {
	if f.ActiveAccountID == "" {
		return nil
	}
	return f.Find(f.ActiveAccountID)
}

// Add appends the account to the partition matching its kind. It does
// not check for duplicates; uniqueness is the caller's contract.
func (f *AccountsFile) Add(account Account) {
	if account.Kind == KindWork {
		f.Work = append(f.Work, account)
		return
	}
	f.Personal = append(f.Personal, account)
}

// Remove deletes the account with the given ID and returns the removed
// record, or nil if absent. Removing the active account clears the
// active pointer rather than leaving it dangling.
func (f *AccountsFile) Remove(id string) *Account {
	for i := range f.Personal {
		if f.Personal[i].ID == id {
			removed := f.Personal[i]
			f.Personal = append(f.Personal[:i], f.Personal[i+1:]...)
			if f.ActiveAccountID == id {
				f.ActiveAccountID = ""
			}
			return &removed
		}
	}
	for i := range f.Work {
		if f.Work[i].ID == id {
			removed := f.Work[i]
			f.Work = append(f.Work[:i], f.Work[i+1:]...)
			if f.ActiveAccountID == id {
				f.ActiveAccountID = ""
			}
			return &removed
		}
	}
	return nil
}

// StateFile holds last-used convenience values. It round-trips through
// storage but no command currently writes meaningful values into it.
type StateFile struct {
	LastOrg  string `json:"last_org,omitempty"`
	LastRepo string `json:"last_repo,omitempty"`
}

// Repository is the subset of the GitHub repository object we consume.
type Repository struct {
	Name     string          `json:"name"`
	FullName string          `json:"full_name"`
	HTMLURL  string          `json:"html_url"`
	SSHURL   string          `json:"ssh_url"`
	CloneURL string          `json:"clone_url"`
	PushedAt string          `json:"pushed_at,omitempty"`
	Owner    RepositoryOwner `json:"owner"`
}

// RepositoryOwner identifies the owning user or organization.
type RepositoryOwner struct {
	Login string `json:"login"`
}

// PullRequest is the subset of the GitHub pull request object we consume.
type PullRequest struct {
	Number    int             `json:"number"`
	Title     string          `json:"title"`
	User      PullRequestUser `json:"user"`
	Head      PullRequestHead `json:"head"`
	Mergeable *bool           `json:"mergeable,omitempty"`
}

// PullRequestUser is the pull request author.
type PullRequestUser struct {
	Login string `json:"login"`
}

// PullRequestHead carries the head branch name.
type PullRequestHead struct {
	Branch string `json:"ref"`
}

// PullRequestSummary is the flattened row printed by `gho pr list`.
type PullRequestSummary struct {
	Number            int    `json:"number"`
	Title             string `json:"title"`
	Author            string `json:"author"`
	Branch            string `json:"branch"`
	Mergeable         *bool  `json:"mergeable,omitempty"`
	ActionsInProgress bool   `json:"actions_in_progress"`
	CIStatus          string `json:"ci_status"`
}
