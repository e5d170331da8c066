package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the draft is complete enough to submit: required
// institution and administrator fields via struct tags, plus cross-field
// checks the tags cannot express. All problems are reported together.
func (w *Wizard) Validate() error {
	var problems []string

	if err := validate.Struct(&w.Form); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			problems = append(problems, fmt.Sprintf("%s fails %q", fe.Field(), fe.Tag()))
		}
	}

	if cfg := w.Form.MatriculeConfig; cfg != nil {
		if cfg.SequenceLength < MinSequenceLength || cfg.SequenceLength > MaxSequenceLength {
			problems = append(problems, fmt.Sprintf("matricule sequence length %d out of range [%d,%d]",
				cfg.SequenceLength, MinSequenceLength, MaxSequenceLength))
		}
	}

	for _, role := range w.Form.Roles {
		if role.Name == "" {
			problems = append(problems, "every role needs a name")
			break
		}
	}

	if dual := w.DualTierModules(); len(dual) > 0 {
		problems = append(problems, fmt.Sprintf("modules selected at more than one tier: %s", strings.Join(dual, ", ")))
	}

	if len(problems) > 0 {
		return fmt.Errorf("draft is not ready to submit: %s", strings.Join(problems, "; "))
	}
	return nil
}
