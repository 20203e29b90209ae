// Package keychain stores per-account tokens in the OS credential store.
package keychain

import (
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// serviceName is the keyring service under which all gho tokens live.
const serviceName = "gho"

// envOverrides are checked, in order, before the OS store on retrieval.
// An override always wins; this is the test/CI escape hatch.
var envOverrides = []string{"GH_TOKEN", "GITHUB_TOKEN"}

// Vault is the secret-store capability consumed by the lifecycle
// layer. Entries are keyed by account ID.
type Vault interface {
	Store(accountID, token string) error
	Retrieve(accountID string) (string, error)
	Delete(accountID string) error
}

// SystemVault backs Vault with the OS credential store via go-keyring.
type SystemVault struct{}

// System returns the OS-backed vault.
func System() *SystemVault {
	return &SystemVault{}
}

// Store writes the token for the given account ID.
func (v *SystemVault) Store(accountID, token string) error {
	if err := keyring.Set(serviceName, accountID, token); err != nil {
		return fmt.Errorf("failed to store token for %q: %w", accountID, err)
	}
	return nil
}

// Retrieve returns the token for the given account ID. Environment
// overrides bypass the OS store entirely.
func (v *SystemVault) Retrieve(accountID string) (string, error) {
	for _, name := range envOverrides {
		if token := os.Getenv(name); token != "" {
			return token, nil
		}
	}
	token, err := keyring.Get(serviceName, accountID)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve token for %q: %w", accountID, err)
	}
	return token, nil
}

// Delete removes the token for the given account ID.
func (v *SystemVault) Delete(accountID string) error {
	if err := keyring.Delete(serviceName, accountID); err != nil {
		return fmt.Errorf("failed to delete token for %q: %w", accountID, err)
	}
	return nil
}

// MaskToken hides the middle of a token for display. Tokens of eight
// characters or fewer are masked entirely.
func MaskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + "..." + token[len(token)-4:]
}
