// Package testutil provides in-memory storage and vault doubles for
// lifecycle and command tests.
package testutil

import (
	"fmt"

	"github.com/gho-cli/gho/internal/models"
)

// MemStorage is an in-memory Storage with injectable failures. Loads
// return copies so a failed operation cannot leak partial mutations
// back into the "persisted" state.
type MemStorage struct {
	Accounts models.AccountsFile
	State    models.StateFile
	LoadErr  error
	SaveErr  error
	Saves    int
}

func (m *MemStorage) LoadAccounts() (*models.AccountsFile, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	cp := models.AccountsFile{
		Personal:        append([]models.Account(nil), m.Accounts.Personal...),
		Work:            append([]models.Account(nil), m.Accounts.Work...),
		ActiveAccountID: m.Accounts.ActiveAccountID,
	}
	return &cp, nil
}

func (m *MemStorage) SaveAccounts(accounts *models.AccountsFile) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saves++
	m.Accounts = models.AccountsFile{
		Personal:        append([]models.Account(nil), accounts.Personal...),
		Work:            append([]models.Account(nil), accounts.Work...),
		ActiveAccountID: accounts.ActiveAccountID,
	}
	return nil
}

func (m *MemStorage) LoadState() (*models.StateFile, error) {
	cp := m.State
	return &cp, nil
}

func (m *MemStorage) SaveState(state *models.StateFile) error {
	m.State = *state
	return nil
}

// MemVault is an in-memory Vault recording delete calls, with
// injectable failures.
type MemVault struct {
	Tokens      map[string]string
	StoreErr    error
	RetrieveErr error
	DeleteErr   error
	Deletes     []string
}

func NewMemVault() *MemVault {
	return &MemVault{Tokens: map[string]string{}}
}

func (v *MemVault) Store(accountID, token string) error {
	if v.StoreErr != nil {
		return v.StoreErr
	}
	v.Tokens[accountID] = token
	return nil
}

func (v *MemVault) Retrieve(accountID string) (string, error) {
	if v.RetrieveErr != nil {
		return "", v.RetrieveErr
	}
	token, ok := v.Tokens[accountID]
	if !ok {
		return "", fmt.Errorf("no token for %q", accountID)
	}
	return token, nil
}

func (v *MemVault) Delete(accountID string) error {
	v.Deletes = append(v.Deletes, accountID)
	if v.DeleteErr != nil {
		return v.DeleteErr
	}
	delete(v.Tokens, accountID)
	return nil
}
