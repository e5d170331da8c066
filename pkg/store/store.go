// Package store is the console's local System of Record: the in-progress
// creation draft, the session token, and an append-only audit log of every
// mutating action, all as files under one data directory.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/CampusFoundry/ums-console/pkg/wizard"
)

const (
	draftFile = "draft.json"
	tokenFile = "session.token"
	auditFile = "audit.log"
)

// AuditEvent is a single entry in the audit log.
type AuditEvent struct {
	Timestamp time.Time `json:"timestamp"`
	UseCase   string    `json:"use_case"`
	Target    string    `json:"target"`
	Status    string    `json:"status"`
	Details   string    `json:"details,omitempty"`
}

// Store manages the file-based local state.
type Store struct {
	dataDir string
	mu      sync.Mutex
}

// NewStore creates a store manager. It ensures the data directory exists.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("could not create data directory %s: %w", dataDir, err)
	}
	return &Store{dataDir: dataDir}, nil
}

// LoadDraft reads the persisted wizard state. A missing file yields a fresh
// wizard at step one.
func (s *Store) LoadDraft() (*wizard.Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dataDir, draftFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return wizard.New(), nil
		}
		return nil, fmt.Errorf("failed to read draft file: %w", err)
	}

	var w wizard.Wizard
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	if w.Step < wizard.FirstStep {
		w.Step = wizard.FirstStep
	}
	return &w, nil
}

// SaveDraft persists the wizard state between invocations.
func (s *Store) SaveDraft(w *wizard.Wizard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	path := filepath.Join(s.dataDir, draftFile)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write draft file: %w", err)
	}
	return nil
}

// ClearDraft discards the persisted draft, if any.
func (s *Store) ClearDraft() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dataDir, draftFile)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove draft file: %w", err)
	}
	return nil
}

// Token returns the persisted access token, empty when unauthenticated.
func (s *Store) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dataDir, tokenFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SaveToken persists the session's access token.
func (s *Store) SaveToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dataDir, tokenFile)
	if err := os.WriteFile(path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// ClearToken discards the persisted session, leaving the console
// unauthenticated.
func (s *Store) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dataDir, tokenFile)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// AppendToAuditLog appends a new event to the audit log file.
func (s *Store) AppendToAuditLog(event AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	path := filepath.Join(s.dataDir, auditFile)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log for writing: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(string(data) + "\n"); err != nil {
		return fmt.Errorf("failed to write to audit log: %w", err)
	}

	return nil
}
