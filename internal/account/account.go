// Package account implements the account lifecycle: every operation is
// a load-mutate-save cycle over the accounts document, sequenced with
// keychain writes so that a registered account always has a usable
// token and a deleted account never keeps one (modulo the documented
// best-effort cleanup paths).
package account

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/gho-cli/gho/internal/keychain"
	"github.com/gho-cli/gho/internal/models"
	"github.com/gho-cli/gho/internal/prompt"
	"github.com/gho-cli/gho/internal/storage"
)

var (
	// ErrDuplicateAccount is returned when adding an ID that already
	// exists in either partition.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrNotFound is returned when an operation references an unknown
	// account ID.
	ErrNotFound = errors.New("account not found")

	// ErrNoActiveAccount is returned when no active account is set or
	// the active pointer does not resolve.
	ErrNoActiveAccount = errors.New("no active account configured")

	// ErrTTYRequired is returned by interactive selection off a terminal.
	ErrTTYRequired = errors.New("interactive selection requires a terminal")

	// ErrNoAccounts is returned by interactive selection with an empty registry.
	ErrNoAccounts = errors.New("no accounts configured")
)

// Test seams, overridden the same way cmd overrides os.Exit.
var (
	isTerminal = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd()))
	}
	selectOption = prompt.Select
)

// AddOptions carries the inputs for Add. Token is the only field that
// never reaches the accounts document.
type AddOptions struct {
	ID         string
	Username   string
	Kind       models.Kind
	Token      string
	DefaultOrg string
	Protocol   models.Protocol
	CloneDir   string
}

// Add registers a new account. The token is written to the vault
// before the registry is touched; if persisting the registry then
// fails, the vault entry is removed again (best effort) so no orphaned
// secret outlives a failed add.
func Add(st storage.Storage, vault keychain.Vault, opts AddOptions) error {
	accounts, err := st.LoadAccounts()
	if err != nil {
		return err
	}

	if accounts.Find(opts.ID) != nil {
		return fmt.Errorf("account %q: %w", opts.ID, ErrDuplicateAccount)
	}

	if err := vault.Store(opts.ID, opts.Token); err != nil {
		return err
	}

	accounts.Add(models.Account{
		ID:         opts.ID,
		Kind:       opts.Kind,
		Username:   opts.Username,
		DefaultOrg: opts.DefaultOrg,
		Protocol:   opts.Protocol,
		CloneDir:   opts.CloneDir,
	})

	// The first account ever added becomes active.
	if accounts.ActiveAccountID == "" {
		accounts.ActiveAccountID = opts.ID
	}

	if err := st.SaveAccounts(accounts); err != nil {
		// Roll back the vault write so the secret does not outlive the
		// failed registration. Deletion failure is swallowed; the save
		// error is the one worth surfacing.
		_ = vault.Delete(opts.ID)
		return err
	}
	return nil
}

// List returns the registry as loaded from storage.
func List(st storage.Storage) (*models.AccountsFile, error) {
	return st.LoadAccounts()
}

// Switch makes the given account active. No vault interaction.
func Switch(st storage.Storage, id string) error {
	accounts, err := st.LoadAccounts()
	if err != nil {
		return err
	}

	if accounts.Find(id) == nil {
		return fmt.Errorf("account %q: %w", id, ErrNotFound)
	}

	accounts.ActiveAccountID = id
	return st.SaveAccounts(accounts)
}

// SwitchInteractive presents every account and switches to the chosen
// one, returning its ID.
func SwitchInteractive(st storage.Storage) (string, error) {
	if !isTerminal() {
		return "", ErrTTYRequired
	}

	accounts, err := st.LoadAccounts()
	if err != nil {
		return "", err
	}

	all := accounts.All()
	if len(all) == 0 {
		return "", ErrNoAccounts
	}

	options := make([]string, len(all))
	for i, acc := range all {
		marker := ""
		if accounts.ActiveAccountID == acc.ID {
			marker = " (active)"
		}
		options[i] = fmt.Sprintf("%s (%s)%s", acc.ID, acc.Username, marker)
	}

	selection, err := selectOption("Select account:", options)
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}

	// The account ID is the label text before the first parenthesis.
	id, _, _ := strings.Cut(selection, "(")
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("could not parse selection %q", selection)
	}

	if err := Switch(st, id); err != nil {
		return "", err
	}
	return id, nil
}

// Show returns the active account, without its token.
func Show(st storage.Storage) (*models.Account, error) {
	accounts, err := st.LoadAccounts()
	if err != nil {
		return nil, err
	}

	active := accounts.Active()
	if active == nil {
		return nil, ErrNoActiveAccount
	}
	acc := *active
	return &acc, nil
}

// Remove deletes an account. The registry mutation is persisted first;
// the vault entry is then deleted best-effort. A leftover vault entry
// is inert without a registry record, so a failed deletion does not
// roll the removal back.
func Remove(st storage.Storage, vault keychain.Vault, id string) error {
	accounts, err := st.LoadAccounts()
	if err != nil {
		return err
	}

	if accounts.Remove(id) == nil {
		return fmt.Errorf("account %q: %w", id, ErrNotFound)
	}

	if err := st.SaveAccounts(accounts); err != nil {
		return err
	}

	_ = vault.Delete(id)
	return nil
}

// GetActiveWithToken resolves the active account and its token. This
// is the credential entry point for every remote operation.
func GetActiveWithToken(st storage.Storage, vault keychain.Vault) (*models.Account, string, error) {
	acc, err := Show(st)
	if err != nil {
		return nil, "", err
	}

	token, err := vault.Retrieve(acc.ID)
	if err != nil {
		return nil, "", err
	}
	return acc, token, nil
}
