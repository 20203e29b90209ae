// Package storage persists the accounts and state documents.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/gho-cli/gho/internal/config"
	"github.com/gho-cli/gho/internal/models"
)

// Storage is the persistence capability consumed by the lifecycle
// layer. Tests substitute an in-memory implementation.
type Storage interface {
	LoadAccounts() (*models.AccountsFile, error)
	SaveAccounts(accounts *models.AccountsFile) error
	LoadState() (*models.StateFile, error)
	SaveState(state *models.StateFile) error
}

// FilesystemStorage reads and writes JSON documents under the gho
// configuration directory. An absent file reads as the empty default;
// the directory is created on first write.
type FilesystemStorage struct {
	cfg config.Config
}

// New creates storage rooted at the given configuration.
func New(cfg config.Config) *FilesystemStorage {
	return &FilesystemStorage{cfg: cfg}
}

// NewDefault creates storage rooted at the default configuration directory.
func NewDefault() (*FilesystemStorage, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	return New(cfg), nil
}

// LoadAccounts reads the accounts document. A missing file yields the
// all-empty registry, not an error.
func (s *FilesystemStorage) LoadAccounts() (*models.AccountsFile, error) {
	accounts := &models.AccountsFile{}
	if err := s.loadDocument(s.cfg.AccountsPath(), accounts); err != nil {
		return nil, err
	}
	normalizeProtocols(accounts)
	return accounts, nil
}

// SaveAccounts writes the accounts document.
func (s *FilesystemStorage) SaveAccounts(accounts *models.AccountsFile) error {
	return s.saveDocument(s.cfg.AccountsPath(), accounts)
}

// LoadState reads the state document, defaulting when absent.
func (s *FilesystemStorage) LoadState() (*models.StateFile, error) {
	state := &models.StateFile{}
	if err := s.loadDocument(s.cfg.StatePath(), state); err != nil {
		return nil, err
	}
	return state, nil
}

// SaveState writes the state document.
func (s *FilesystemStorage) SaveState(state *models.StateFile) error {
	return s.saveDocument(s.cfg.StatePath(), state)
}

func (s *FilesystemStorage) loadDocument(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// saveDocument writes a document via temp-file-plus-atomic-rename while
// holding an advisory lock, so a concurrent gho invocation cannot
// observe a torn file. Whole-cycle read-then-overwrite races between
// processes are not coordinated.
func (s *FilesystemStorage) saveDocument(path string, doc any) error {
	if err := os.MkdirAll(s.cfg.Dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", s.cfg.Dir, err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	lock := flock.New(s.cfg.LockPath())
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock %s: %w", s.cfg.LockPath(), err)
	}
	defer lock.Unlock()

	tmp, err := os.CreateTemp(s.cfg.Dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set mode on %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// normalizeProtocols applies the ssh default to accounts whose
// protocol field is absent in a hand-edited document.
func normalizeProtocols(accounts *models.AccountsFile) {
	for i := range accounts.Personal {
		if accounts.Personal[i].Protocol == "" {
			accounts.Personal[i].Protocol = models.ProtocolSSH
		}
	}
	for i := range accounts.Work {
		if accounts.Work[i].Protocol == "" {
			accounts.Work[i].Protocol = models.ProtocolSSH
		}
	}
}
