package wizard

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/CampusFoundry/ums-console/pkg/models"
)

// Matricule sequence length bounds.
const (
	MinSequenceLength = 1
	MaxSequenceLength = 10
)

// Preview sample values. The real sequence number is allocated server-side
// at student creation; previews always use these fixed samples so the output
// is deterministic.
const (
	sampleSequence = 1
	sampleYear     = "24"
)

// EmptyFormatPreview is shown instead of a blank string when no format has
// been configured yet.
const EmptyFormatPreview = "No format configured. Configure format below..."

// matricule returns the draft's config, creating an empty one on first use.
func (w *Wizard) matricule() *models.MatriculeConfig {
	if w.Form.MatriculeConfig == nil {
		w.Form.MatriculeConfig = &models.MatriculeConfig{
			Placeholders:   map[string]string{},
			SequenceLength: 4,
		}
	}
	if w.Form.MatriculeConfig.Placeholders == nil {
		w.Form.MatriculeConfig.Placeholders = map[string]string{}
	}
	return w.Form.MatriculeConfig
}

// SetMatriculeFormat replaces the format template string.
func (w *Wizard) SetMatriculeFormat(format string) {
	w.matricule().Format = format
	w.record("matricule_format:%s", format)
}

// SetSequenceLength sets the zero-padded width of the sequence token.
func (w *Wizard) SetSequenceLength(n int) error {
	if n < MinSequenceLength || n > MaxSequenceLength {
		return fmt.Errorf("sequence length %d out of range [%d,%d]", n, MinSequenceLength, MaxSequenceLength)
	}
	w.matricule().SequenceLength = n
	w.record("matricule_seq_len:%d", n)
	return nil
}

// NormalizePlaceholderKey lowercases a key and collapses it to a safe token
// form (letters, digits and underscores).
func NormalizePlaceholderKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteRune('_')
		}
	}
	return b.String()
}

// AddPlaceholder registers a named placeholder with an empty value. Blank
// keys and the built-in sequence/year tokens are rejected.
func (w *Wizard) AddPlaceholder(key string, typ models.PlaceholderType) error {
	key = NormalizePlaceholderKey(key)
	if key == "" {
		return fmt.Errorf("placeholder key must not be blank")
	}
	if key == "sequence" || key == "year" {
		return fmt.Errorf("placeholder key %q is reserved", key)
	}
	cfg := w.matricule()
	if _, exists := cfg.Placeholders[key]; !exists {
		cfg.Placeholders[key] = ""
	}
	if typ != "" {
		if cfg.PlaceholderTypes == nil {
			cfg.PlaceholderTypes = map[string]models.PlaceholderType{}
		}
		cfg.PlaceholderTypes[key] = typ
	}
	w.record("matricule_add_placeholder:%s", key)
	return nil
}

// UpdatePlaceholder sets the value, and optionally the type tag, of an
// existing or new key.
func (w *Wizard) UpdatePlaceholder(key, value string, typ models.PlaceholderType) error {
	key = NormalizePlaceholderKey(key)
	if key == "" {
		return fmt.Errorf("placeholder key must not be blank")
	}
	cfg := w.matricule()
	cfg.Placeholders[key] = value
	if typ != "" {
		if cfg.PlaceholderTypes == nil {
			cfg.PlaceholderTypes = map[string]models.PlaceholderType{}
		}
		cfg.PlaceholderTypes[key] = typ
	}
	w.record("matricule_set_placeholder:%s", key)
	return nil
}

// RemovePlaceholder deletes a key's value and its type tag.
func (w *Wizard) RemovePlaceholder(key string) {
	key = NormalizePlaceholderKey(key)
	cfg := w.matricule()
	delete(cfg.Placeholders, key)
	delete(cfg.PlaceholderTypes, key)
	w.record("matricule_remove_placeholder:%s", key)
}

// MatriculeTemplate is a predefined quick-start configuration for a common
// institution setup.
type MatriculeTemplate struct {
	Name           string
	Description    string
	Format         string
	Placeholders   map[string]string
	Types          map[string]models.PlaceholderType
	SequenceLength int
}

// MatriculeTemplates are the built-in quick-start suggestions.
var MatriculeTemplates = []MatriculeTemplate{
	{
		Name:           "university-faculty",
		Description:    "Institution code, faculty, 2-digit year, 4-digit sequence",
		Format:         "{{school}}/{{faculty}}/{{year}}/{{sequence}}",
		Placeholders:   map[string]string{"school": "", "faculty": ""},
		Types:          map[string]models.PlaceholderType{"school": models.PlaceholderSchool, "faculty": models.PlaceholderFaculty},
		SequenceLength: 4,
	},
	{
		Name:           "department-year",
		Description:    "Department code, 2-digit year, 5-digit sequence",
		Format:         "{{department}}-{{year}}-{{sequence}}",
		Placeholders:   map[string]string{"department": ""},
		Types:          map[string]models.PlaceholderType{"department": models.PlaceholderDepartment},
		SequenceLength: 5,
	},
	{
		Name:           "simple-sequence",
		Description:    "Institution code and a 6-digit sequence",
		Format:         "{{school}}{{sequence}}",
		Placeholders:   map[string]string{"school": ""},
		Types:          map[string]models.PlaceholderType{"school": models.PlaceholderSchool},
		SequenceLength: 6,
	},
}

// ApplyTemplate wholesale-replaces the matricule configuration from a named
// template.
func (w *Wizard) ApplyTemplate(name string) error {
	for _, tpl := range MatriculeTemplates {
		if tpl.Name != name {
			continue
		}
		placeholders := make(map[string]string, len(tpl.Placeholders))
		for k, v := range tpl.Placeholders {
			placeholders[k] = v
		}
		types := make(map[string]models.PlaceholderType, len(tpl.Types))
		for k, v := range tpl.Types {
			types[k] = v
		}
		w.Form.MatriculeConfig = &models.MatriculeConfig{
			Format:           tpl.Format,
			Placeholders:     placeholders,
			PlaceholderTypes: types,
			SequenceLength:   tpl.SequenceLength,
		}
		w.record("matricule_template:%s", name)
		return nil
	}
	return fmt.Errorf("unknown matricule template %q", name)
}

// Preview renders the format with fixed sample data. Custom tokens resolve
// from the placeholder map; {{sequence}} and {{year}} are built-ins; tokens
// that resolve to nothing stay literal in the output. Pure: the same config
// always yields the same string.
func Preview(cfg *models.MatriculeConfig) string {
	if cfg == nil || cfg.Format == "" {
		return EmptyFormatPreview
	}
	return render(cfg, sampleSequence, sampleYear)
}

// Examples renders three previews with randomized sequence numbers and the
// real current 2-digit year, to illustrate how generated matricules vary.
func Examples(cfg *models.MatriculeConfig) []string {
	if cfg == nil || cfg.Format == "" {
		return nil
	}
	year := time.Now().Format("06")
	// Clamp the width like render does: a config decoded without a
	// sequenceLength must not zero out the random range.
	width := cfg.SequenceLength
	if width < MinSequenceLength {
		width = MinSequenceLength
	}
	limit := 1
	for i := 0; i < width; i++ {
		limit *= 10
	}
	out := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		out = append(out, render(cfg, 1+rand.Intn(limit-1), year))
	}
	return out
}

func render(cfg *models.MatriculeConfig, sequence int, year string) string {
	result := cfg.Format
	for key, value := range cfg.Placeholders {
		if value == "" {
			continue
		}
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	width := cfg.SequenceLength
	if width < MinSequenceLength {
		width = MinSequenceLength
	}
	result = strings.ReplaceAll(result, "{{sequence}}", fmt.Sprintf("%0*d", width, sequence))
	result = strings.ReplaceAll(result, "{{year}}", year)
	return result
}
