package wizard

import (
	"strings"
	"testing"
	"time"

	"github.com/CampusFoundry/ums-console/pkg/models"
)

func TestPreviewRendersSampleValues(t *testing.T) {
	cfg := &models.MatriculeConfig{
		Format:         "{{school}}/{{faculty}}/{{year}}/{{sequence}}",
		Placeholders:   map[string]string{"school": "UY1", "faculty": "SCI"},
		SequenceLength: 4,
	}
	if got := Preview(cfg); got != "UY1/SCI/24/0001" {
		t.Errorf("Preview: got %q, want %q", got, "UY1/SCI/24/0001")
	}
}

func TestPreviewIsDeterministic(t *testing.T) {
	cfg := &models.MatriculeConfig{
		Format:         "{{dept}}-{{sequence}}",
		Placeholders:   map[string]string{"dept": "CS"},
		SequenceLength: 6,
	}
	first := Preview(cfg)
	for i := 0; i < 5; i++ {
		if got := Preview(cfg); got != first {
			t.Fatalf("Preview not deterministic: %q vs %q", got, first)
		}
	}
	if first != "CS-000001" {
		t.Errorf("Preview: got %q, want %q", first, "CS-000001")
	}
}

func TestPreviewEmptyFormat(t *testing.T) {
	if got := Preview(nil); got != EmptyFormatPreview {
		t.Errorf("nil config: got %q", got)
	}
	if got := Preview(&models.MatriculeConfig{}); got != EmptyFormatPreview {
		t.Errorf("empty format: got %q", got)
	}
}

func TestPreviewUnresolvedTokensStayLiteral(t *testing.T) {
	cfg := &models.MatriculeConfig{
		Format:         "{{school}}/{{faculty}}/{{sequence}}",
		Placeholders:   map[string]string{"school": "UY1", "faculty": ""},
		SequenceLength: 3,
	}
	got := Preview(cfg)
	if got != "UY1/{{faculty}}/001" {
		t.Errorf("Preview: got %q, want %q", got, "UY1/{{faculty}}/001")
	}
}

func TestExamplesUseCurrentYear(t *testing.T) {
	cfg := &models.MatriculeConfig{
		Format:         "{{year}}-{{sequence}}",
		Placeholders:   map[string]string{},
		SequenceLength: 4,
	}
	examples := Examples(cfg)
	if len(examples) != 3 {
		t.Fatalf("Examples: got %d entries, want 3", len(examples))
	}
	year := time.Now().Format("06")
	for _, ex := range examples {
		if !strings.HasPrefix(ex, year+"-") {
			t.Errorf("example %q should start with the current year %q", ex, year)
		}
		if len(ex) != len(year)+1+4 {
			t.Errorf("example %q has wrong sequence width", ex)
		}
	}
}

func TestExamplesMissingSequenceLength(t *testing.T) {
	// A draft persisted without a sequenceLength key decodes to zero; the
	// randomized examples must clamp it like the preview does instead of
	// panicking.
	cfg := &models.MatriculeConfig{
		Format:       "{{sequence}}",
		Placeholders: map[string]string{},
	}
	examples := Examples(cfg)
	if len(examples) != 3 {
		t.Fatalf("Examples: got %d entries, want 3", len(examples))
	}
	for _, ex := range examples {
		if len(ex) != 1 || ex[0] < '1' || ex[0] > '9' {
			t.Errorf("example %q should be a single non-zero digit", ex)
		}
	}
}

func TestExamplesEmptyFormat(t *testing.T) {
	if got := Examples(nil); got != nil {
		t.Errorf("nil config: got %v", got)
	}
}

func TestSetSequenceLengthBounds(t *testing.T) {
	w := New()
	if err := w.SetSequenceLength(0); err == nil {
		t.Error("sequence length 0 should be rejected")
	}
	if err := w.SetSequenceLength(11); err == nil {
		t.Error("sequence length 11 should be rejected")
	}
	if err := w.SetSequenceLength(10); err != nil {
		t.Errorf("sequence length 10: %v", err)
	}
	if w.Form.MatriculeConfig.SequenceLength != 10 {
		t.Errorf("stored length: got %d", w.Form.MatriculeConfig.SequenceLength)
	}
}

func TestNormalizePlaceholderKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Faculty", "faculty"},
		{"  Faculty Code  ", "faculty_code"},
		{"dept-code", "dept_code"},
		{"école!", "cole"},
		{"a_b_9", "a_b_9"},
	}
	for _, tc := range tests {
		if got := NormalizePlaceholderKey(tc.in); got != tc.want {
			t.Errorf("NormalizePlaceholderKey(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAddPlaceholderRejectsReservedAndBlank(t *testing.T) {
	w := New()
	if err := w.AddPlaceholder("sequence", ""); err == nil {
		t.Error("sequence is reserved")
	}
	if err := w.AddPlaceholder("Year", ""); err == nil {
		t.Error("year is reserved, case-insensitively via normalization")
	}
	if err := w.AddPlaceholder("   ", ""); err == nil {
		t.Error("blank key should be rejected")
	}
	if err := w.AddPlaceholder("faculty", models.PlaceholderFaculty); err != nil {
		t.Fatalf("AddPlaceholder: %v", err)
	}
	cfg := w.Form.MatriculeConfig
	if _, ok := cfg.Placeholders["faculty"]; !ok {
		t.Error("faculty key should exist with empty value")
	}
	if cfg.PlaceholderTypes["faculty"] != models.PlaceholderFaculty {
		t.Errorf("type tag: got %q", cfg.PlaceholderTypes["faculty"])
	}
}

func TestUpdateAndRemovePlaceholder(t *testing.T) {
	w := New()
	if err := w.UpdatePlaceholder("School", "UY1", models.PlaceholderSchool); err != nil {
		t.Fatalf("UpdatePlaceholder: %v", err)
	}
	if w.Form.MatriculeConfig.Placeholders["school"] != "UY1" {
		t.Errorf("value: got %q", w.Form.MatriculeConfig.Placeholders["school"])
	}

	w.RemovePlaceholder("school")
	if _, ok := w.Form.MatriculeConfig.Placeholders["school"]; ok {
		t.Error("placeholder should be removed")
	}
	if _, ok := w.Form.MatriculeConfig.PlaceholderTypes["school"]; ok {
		t.Error("type tag should be removed with the key")
	}
}

func TestApplyTemplate(t *testing.T) {
	w := New()
	if err := w.ApplyTemplate("nonexistent"); err == nil {
		t.Error("unknown template should fail")
	}

	if err := w.ApplyTemplate("university-faculty"); err != nil {
		t.Fatalf("ApplyTemplate: %v", err)
	}
	cfg := w.Form.MatriculeConfig
	if cfg.Format != "{{school}}/{{faculty}}/{{year}}/{{sequence}}" {
		t.Errorf("format: got %q", cfg.Format)
	}
	if cfg.SequenceLength != 4 {
		t.Errorf("sequence length: got %d", cfg.SequenceLength)
	}

	// The template's maps must be copied, not aliased.
	cfg.Placeholders["school"] = "UY1"
	for _, tpl := range MatriculeTemplates {
		if tpl.Name == "university-faculty" && tpl.Placeholders["school"] != "" {
			t.Error("ApplyTemplate must deep-copy the template maps")
		}
	}
}

func TestSetMatriculeFormatInitializesConfig(t *testing.T) {
	w := New()
	w.SetMatriculeFormat("{{sequence}}")

	cfg := w.Form.MatriculeConfig
	if cfg == nil {
		t.Fatal("config should be lazily created")
	}
	if cfg.SequenceLength != 4 {
		t.Errorf("default sequence length: got %d, want 4", cfg.SequenceLength)
	}
	if got := Preview(cfg); got != "0001" {
		t.Errorf("Preview: got %q, want 0001", got)
	}
}
