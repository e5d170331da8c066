package store

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/CampusFoundry/ums-console/pkg/wizard"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestLoadDraftMissingYieldsFreshWizard(t *testing.T) {
	s := newTestStore(t)
	w, err := s.LoadDraft()
	if err != nil {
		t.Fatalf("LoadDraft: %v", err)
	}
	if w.Step != wizard.FirstStep {
		t.Errorf("step: got %d, want %d", w.Step, wizard.FirstStep)
	}
	if w.Form.UMSName != "" {
		t.Errorf("fresh draft should be empty, got name %q", w.Form.UMSName)
	}
}

func TestDraftRoundTrip(t *testing.T) {
	s := newTestStore(t)

	w := wizard.New()
	w.Form.UMSName = "UY1"
	w.Form.AdminEmail = "root@uy1.cm"
	w.AddRole("Registrar", "manages enrollment")
	w.SetMatriculeFormat("{{school}}/{{sequence}}")
	w.Next()
	w.Next()

	if err := s.SaveDraft(w); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}

	loaded, err := s.LoadDraft()
	if err != nil {
		t.Fatalf("LoadDraft: %v", err)
	}
	if loaded.Step != 3 {
		t.Errorf("step: got %d, want 3", loaded.Step)
	}
	if loaded.Form.UMSName != "UY1" {
		t.Errorf("name: got %q", loaded.Form.UMSName)
	}
	if len(loaded.Form.Roles) != 1 || loaded.Form.Roles[0].Name != "Registrar" {
		t.Errorf("roles: %+v", loaded.Form.Roles)
	}
	if loaded.Form.MatriculeConfig == nil || loaded.Form.MatriculeConfig.Format != "{{school}}/{{sequence}}" {
		t.Errorf("matricule config: %+v", loaded.Form.MatriculeConfig)
	}
	if len(loaded.Journal) != len(w.Journal) {
		t.Errorf("journal: got %d entries, want %d", len(loaded.Journal), len(w.Journal))
	}
}

func TestLoadDraftClampsStep(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, draftFile), []byte(`{"step":0,"form":{}}`), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := s.LoadDraft()
	if err != nil {
		t.Fatalf("LoadDraft: %v", err)
	}
	if w.Step != wizard.FirstStep {
		t.Errorf("step: got %d, want %d", w.Step, wizard.FirstStep)
	}
}

func TestClearDraft(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveDraft(wizard.New()); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}
	if err := s.ClearDraft(); err != nil {
		t.Fatalf("ClearDraft: %v", err)
	}
	// Clearing again is not an error.
	if err := s.ClearDraft(); err != nil {
		t.Errorf("second ClearDraft: %v", err)
	}
	w, err := s.LoadDraft()
	if err != nil {
		t.Fatalf("LoadDraft: %v", err)
	}
	if w.Step != wizard.FirstStep {
		t.Errorf("cleared draft should reload fresh, step %d", w.Step)
	}
}

func TestTokenLifecycle(t *testing.T) {
	s := newTestStore(t)

	token, err := s.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if token != "" {
		t.Errorf("missing token file should yield empty, got %q", token)
	}

	if err := s.SaveToken("abc123\n"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	token, err = s.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if token != "abc123" {
		t.Errorf("token should be trimmed: got %q", token)
	}

	if err := s.ClearToken(); err != nil {
		t.Fatalf("ClearToken: %v", err)
	}
	token, _ = s.Token()
	if token != "" {
		t.Errorf("token after clear: got %q", token)
	}
}

func TestTokenFilePermissions(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := s.SaveToken("secret"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, tokenFile))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token file mode: got %o, want 0600", perm)
	}
}

func TestAppendToAuditLog(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	events := []AuditEvent{
		{Timestamp: time.Now(), UseCase: "submit_ums", Target: "UY1", Status: "success"},
		{Timestamp: time.Now(), UseCase: "delete_ums", Target: "u2", Status: "failure", Details: "not found"},
	}
	for _, ev := range events {
		if err := s.AppendToAuditLog(ev); err != nil {
			t.Fatalf("AppendToAuditLog: %v", err)
		}
	}

	f, err := os.Open(filepath.Join(dir, auditFile))
	if err != nil {
		t.Fatalf("open audit log: %v", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 2 {
		t.Fatalf("audit lines: got %d, want 2", len(lines))
	}

	var first AuditEvent
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("unmarshal first line: %v", err)
	}
	if first.UseCase != "submit_ums" || first.Status != "success" {
		t.Errorf("first event: %+v", first)
	}
	if !strings.Contains(lines[1], "not found") {
		t.Errorf("second line should carry details: %q", lines[1])
	}
}
