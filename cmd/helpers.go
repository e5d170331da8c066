package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/CampusFoundry/ums-console/pkg/store"
	"github.com/CampusFoundry/ums-console/pkg/umsapi"
	"github.com/CampusFoundry/ums-console/pkg/wizard"
)

// logAndAudit provides a consistent way to log structured messages to the console
// and also append a human-readable event to the audit.log file.
func logAndAudit(s *store.Store, useCase, target, level, details string, args ...interface{}) {
	// Structured logging for console/log collection
	logArgs := append([]interface{}{"use_case", useCase, "target", target}, args...)

	// Plain text audit log for human-readable history. Appended before any
	// exit so failed mutating actions still leave a trace.
	event := store.AuditEvent{
		Timestamp: time.Now(),
		UseCase:   useCase,
		Target:    target,
		Status:    level,
		Details:   fmt.Sprintf("%s (%v)", details, args),
	}
	if err := s.AppendToAuditLog(event); err != nil {
		slog.Warn("Failed to write to audit log", "error", err)
	}

	switch level {
	case "warn":
		slog.Warn(details, logArgs...)
	case "error":
		slog.Error(details, logArgs...)
	case "fatal":
		// Log as error and then exit.
		slog.Error(details, logArgs...)
		os.Exit(1)
	default:
	}
}

// newStore opens the local state directory from config.
func newStore() *store.Store {
	dataDir := viper.GetString("data_dir")
	if dataDir == "" {
		dataDir = "./data"
	}
	s, err := store.NewStore(dataDir)
	if err != nil {
		slog.Error("Failed to create store", "error", err)
		os.Exit(1)
	}
	return s
}

// newClient builds the backend client with the persisted session token, if
// any. A 401 from any call clears the session before the error surfaces.
func newClient(s *store.Store) *umsapi.Client {
	apiURL := viper.GetString("api_url")

	token, err := s.Token()
	if err != nil {
		slog.Error("Failed to read session token", "error", err)
		os.Exit(1)
	}

	client, err := umsapi.NewClient(apiURL, token)
	if err != nil {
		slog.Error("Failed to create API client", "error", err)
		os.Exit(1)
	}
	client.OnUnauthorized(func() {
		if err := s.ClearToken(); err != nil {
			slog.Warn("Failed to clear session token", "error", err)
		}
	})
	return client
}

// loadDraft reads the persisted creation draft, a fresh one when none exists.
func loadDraft(s *store.Store) *wizard.Wizard {
	w, err := s.LoadDraft()
	if err != nil {
		slog.Error("Failed to load draft", "error", err)
		os.Exit(1)
	}
	return w
}

// saveDraft persists the creation draft.
func saveDraft(s *store.Store, w *wizard.Wizard) {
	if err := s.SaveDraft(w); err != nil {
		slog.Error("Failed to save draft", "error", err)
		os.Exit(1)
	}
}

// printJSON writes a value as indented JSON on stdout.
func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		slog.Error("Failed to encode output", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
