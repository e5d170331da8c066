// Package wizard implements the UMS creation draft: a five-step document
// state machine mutated exclusively through named transitions, so every
// change is journaled and the draft can be audited or replayed.
package wizard

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/CampusFoundry/ums-console/pkg/models"
)

const (
	// FirstStep..LastStep bound the creation flow: institution profile,
	// administrator, roles & users, modules & platforms, review/submit.
	FirstStep = 1
	LastStep  = 5
)

// Wizard holds the draft document and the step pointer. All mutation goes
// through the methods below; each applied transition is appended to the
// journal.
type Wizard struct {
	Step    int            `json:"step"`
	Form    models.UMSForm `json:"form"`
	Journal []string       `json:"journal,omitempty"`
}

// New returns a wizard at the first step with an all-empty draft.
func New() *Wizard {
	return &Wizard{Step: FirstStep}
}

func (w *Wizard) record(action string, args ...any) {
	if len(args) > 0 {
		action = fmt.Sprintf(action, args...)
	}
	w.Journal = append(w.Journal, action)
}

// --- Step navigation ---

// Next advances one step, clamped at the last step.
func (w *Wizard) Next() {
	if w.Step < LastStep {
		w.Step++
	}
	w.record("next_step:%d", w.Step)
}

// Prev goes back one step, clamped at the first step.
func (w *Wizard) Prev() {
	if w.Step > FirstStep {
		w.Step--
	}
	w.record("prev_step:%d", w.Step)
}

// GoTo jumps to an arbitrary step. Bounds are the caller's responsibility;
// commands validate before calling.
func (w *Wizard) GoTo(step int) {
	w.Step = step
	w.record("goto_step:%d", step)
}

// Reset discards the whole draft, step pointer included.
func (w *Wizard) Reset() {
	*w = *New()
	w.record("reset")
}

// --- Role / user sub-editor ---

// AddRole appends a role, defaulting any omitted fields. It never fails.
func (w *Wizard) AddRole(name, description string) *models.Role {
	role := models.Role{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Permissions: []string{},
		Users:       []models.RoleUser{},
	}
	w.Form.Roles = append(w.Form.Roles, role)
	w.record("add_role:%s", role.ID)
	return &w.Form.Roles[len(w.Form.Roles)-1]
}

// RoleByID resolves a draft role by its local id. Stable across removals,
// unlike positional indices.
func (w *Wizard) RoleByID(id string) (*models.Role, int) {
	for i := range w.Form.Roles {
		if w.Form.Roles[i].ID == id {
			return &w.Form.Roles[i], i
		}
	}
	return nil, -1
}

// UpdateRole merges the non-empty fields into the role at index. An index
// outside the slice fails loudly instead of corrupting state.
func (w *Wizard) UpdateRole(index int, name, description string, permissions []string) error {
	if index < 0 || index >= len(w.Form.Roles) {
		return fmt.Errorf("role index %d out of range (have %d roles)", index, len(w.Form.Roles))
	}
	role := &w.Form.Roles[index]
	if name != "" {
		role.Name = name
	}
	if description != "" {
		role.Description = description
	}
	if permissions != nil {
		role.Permissions = permissions
	}
	w.record("update_role:%s", role.ID)
	return nil
}

// RemoveRole drops the role at index. Later roles shift down; callers
// holding positions must re-resolve by id afterwards.
func (w *Wizard) RemoveRole(index int) error {
	if index < 0 || index >= len(w.Form.Roles) {
		return fmt.Errorf("role index %d out of range (have %d roles)", index, len(w.Form.Roles))
	}
	id := w.Form.Roles[index].ID
	w.Form.Roles = append(w.Form.Roles[:index], w.Form.Roles[index+1:]...)
	w.record("remove_role:%s", id)
	return nil
}

// AddUserToRole appends a user to the role at roleIndex. The password is
// always freshly generated here, never caller-supplied, and IsPrimary starts
// false; MarkPrimaryUser is the explicit affordance for promotion. The
// returned user carries the one chance to read the password.
func (w *Wizard) AddUserToRole(roleIndex int, email string) (*models.RoleUser, error) {
	if roleIndex < 0 || roleIndex >= len(w.Form.Roles) {
		return nil, fmt.Errorf("role index %d out of range (have %d roles)", roleIndex, len(w.Form.Roles))
	}
	password, err := GeneratePassword(DefaultPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	role := &w.Form.Roles[roleIndex]
	role.Users = append(role.Users, models.RoleUser{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  password,
		IsPrimary: false,
	})
	user := &role.Users[len(role.Users)-1]
	w.record("add_user:%s:%s", role.ID, user.ID)
	return user, nil
}

// UpdateUserInRole merges the non-empty fields into one nested user.
func (w *Wizard) UpdateUserInRole(roleIndex, userIndex int, email string) error {
	role, user, err := w.userAt(roleIndex, userIndex)
	if err != nil {
		return err
	}
	if email != "" {
		user.Email = email
	}
	w.record("update_user:%s:%s", role.ID, user.ID)
	return nil
}

// RemoveUserFromRole drops one nested user.
func (w *Wizard) RemoveUserFromRole(roleIndex, userIndex int) error {
	role, user, err := w.userAt(roleIndex, userIndex)
	if err != nil {
		return err
	}
	role.Users = append(role.Users[:userIndex], role.Users[userIndex+1:]...)
	w.record("remove_user:%s:%s", role.ID, user.ID)
	return nil
}

// MarkPrimaryUser promotes one user to primary and demotes the others in the
// same role.
func (w *Wizard) MarkPrimaryUser(roleIndex, userIndex int) error {
	role, _, err := w.userAt(roleIndex, userIndex)
	if err != nil {
		return err
	}
	for i := range role.Users {
		role.Users[i].IsPrimary = i == userIndex
	}
	w.record("mark_primary:%s:%s", role.ID, role.Users[userIndex].ID)
	return nil
}

func (w *Wizard) userAt(roleIndex, userIndex int) (*models.Role, *models.RoleUser, error) {
	if roleIndex < 0 || roleIndex >= len(w.Form.Roles) {
		return nil, nil, fmt.Errorf("role index %d out of range (have %d roles)", roleIndex, len(w.Form.Roles))
	}
	role := &w.Form.Roles[roleIndex]
	if userIndex < 0 || userIndex >= len(role.Users) {
		return nil, nil, fmt.Errorf("user index %d out of range (role %q has %d users)", userIndex, role.Name, len(role.Users))
	}
	return role, &role.Users[userIndex], nil
}
