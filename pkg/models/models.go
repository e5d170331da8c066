package models

import (
	"fmt"
	"strings"
	"time"
)

// InstitutionType classifies a UMS instance.
type InstitutionType string

const (
	TypeUniversity InstitutionType = "University"
	TypeCollege    InstitutionType = "College"
	TypeSchool     InstitutionType = "School"
)

// Tier is a pricing tier for a selected module.
type Tier string

const (
	TierBasic    Tier = "basic"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// ValidTier reports whether s is one of the known pricing tiers.
func ValidTier(s string) bool {
	switch Tier(s) {
	case TierBasic, TierStandard, TierPremium:
		return true
	}
	return false
}

// ModuleSelection identifies one selected module at one tier. The backend
// still speaks the legacy "<name>_<tier>" token form, so the composite key
// round-trips through Token / ParseModuleToken.
type ModuleSelection struct {
	Name string `json:"name"`
	Tier Tier   `json:"tier"`
}

// Token renders the selection in the wire form the backend expects.
func (m ModuleSelection) Token() string {
	return m.Name + "_" + string(m.Tier)
}

// ParseModuleToken splits a "<name>_<tier>" token. Module names may themselves
// contain underscores; only the last segment is treated as the tier.
func ParseModuleToken(token string) (ModuleSelection, error) {
	i := strings.LastIndex(token, "_")
	if i <= 0 || i == len(token)-1 {
		return ModuleSelection{}, fmt.Errorf("malformed module token %q", token)
	}
	name, tier := token[:i], token[i+1:]
	if !ValidTier(tier) {
		return ModuleSelection{}, fmt.Errorf("module token %q has unknown tier %q", token, tier)
	}
	return ModuleSelection{Name: name, Tier: Tier(tier)}, nil
}

// RoleUser is an operator account nested under a draft role. The password is
// generated once at creation time and is not recoverable afterwards.
type RoleUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	IsPrimary bool   `json:"isPrimary"`
}

// Role is a draft role with its nested users.
type Role struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Permissions []string   `json:"permissions"`
	Users       []RoleUser `json:"users"`
}

// Platforms holds the per-instance platform toggles. DesktopOffices has set
// semantics; order is not significant.
type Platforms struct {
	TeacherApp     bool     `json:"teacherApp"`
	StudentApp     bool     `json:"studentApp"`
	DesktopOffices []string `json:"desktopOffices"`
}

// PlaceholderType tags a custom matricule placeholder with its semantic scope.
type PlaceholderType string

const (
	PlaceholderSchool     PlaceholderType = "school"
	PlaceholderFaculty    PlaceholderType = "faculty"
	PlaceholderDepartment PlaceholderType = "department"
)

// MatriculeConfig describes how student matricules (institution IDs) are
// formatted. Format contains {{key}} tokens; "sequence" and "year" are
// built-ins resolved at preview/generation time, every other token must
// resolve from Placeholders.
type MatriculeConfig struct {
	Format           string                     `json:"format"`
	Placeholders     map[string]string          `json:"placeholders"`
	PlaceholderTypes map[string]PlaceholderType `json:"placeholderTypes,omitempty"`
	SequenceLength   int                        `json:"sequenceLength"`
}

// UMSForm is the draft document the creation wizard mutates. It is local
// state only; the server-shaped UMS entity below is what comes back after
// submission.
type UMSForm struct {
	UMSName        string          `json:"umsName" validate:"required"`
	UMSDescription string          `json:"umsDescription" validate:"required"`
	UMSTagline     string          `json:"umsTagline,omitempty"`
	UMSWebsite     string          `json:"umsWebsite,omitempty" validate:"omitempty,url"`
	UMSType        InstitutionType `json:"umsType,omitempty" validate:"omitempty,oneof=University College School"`
	UMSSize        string          `json:"umsSize,omitempty"`
	UMSLogo        string          `json:"umsLogo,omitempty"`
	UMSPhoto       string          `json:"umsPhoto,omitempty"`

	AdminName  string `json:"adminName" validate:"required"`
	AdminEmail string `json:"adminEmail" validate:"required,email"`
	AdminPhone string `json:"adminPhone,omitempty"`
	Enable2FA  bool   `json:"enable2FA"`

	Roles     []Role            `json:"roles"`
	Modules   []ModuleSelection `json:"modules"`
	Platforms Platforms         `json:"platforms"`

	MatriculeConfig *MatriculeConfig `json:"matriculeConfig,omitempty"`
}

// ModuleTokens renders the selected modules in wire form.
func (f *UMSForm) ModuleTokens() []string {
	tokens := make([]string, 0, len(f.Modules))
	for _, m := range f.Modules {
		tokens = append(tokens, m.Token())
	}
	return tokens
}

// --- Server-shaped entities ---

// UMS is a persisted instance as returned by the backend.
type UMS struct {
	ID             string           `json:"_id"`
	UMSName        string           `json:"umsName"`
	UMSDescription string           `json:"umsDescription"`
	UMSTagline     string           `json:"umsTagline,omitempty"`
	UMSWebsite     string           `json:"umsWebsite,omitempty"`
	UMSType        InstitutionType  `json:"umsType,omitempty"`
	UMSLogoURL     string           `json:"umsLogoUrl,omitempty"`
	UMSPhotoURL    string           `json:"umsPhotoUrl,omitempty"`
	Modules        []string         `json:"modules,omitempty"`
	Platforms      *Platforms       `json:"platforms,omitempty"`
	Matricule      *MatriculeConfig `json:"matriculeConfig,omitempty"`
	CreatedAt      time.Time        `json:"createdAt,omitzero"`
	UpdatedAt      time.Time        `json:"updatedAt,omitzero"`
}

// Department is a secondary entity owned by a UMS instance.
type Department struct {
	ID          string `json:"_id"`
	UMSID       string `json:"umsId,omitempty"`
	Name        string `json:"name"`
	Code        string `json:"code,omitempty"` // server-computed
	Description string `json:"description,omitempty"`
}

// Program belongs to a department.
type Program struct {
	ID            string `json:"_id"`
	UMSID         string `json:"umsId,omitempty"`
	DepartmentID  string `json:"departmentId,omitempty"`
	Name          string `json:"name"`
	Code          string `json:"code,omitempty"`
	Description   string `json:"description,omitempty"`
	DurationYears int    `json:"durationYears,omitempty"`
}

// Student is an enrolled student record. Matricule is assigned server-side
// from the instance's matricule configuration at creation time.
type Student struct {
	ID        string `json:"_id"`
	UMSID     string `json:"umsId,omitempty"`
	ProgramID string `json:"programId,omitempty"`
	Matricule string `json:"matricule,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
}

// RemoteRole is a persisted role as the backend returns it, distinct from
// the local draft Role.
type RemoteRole struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	Users       []User   `json:"users,omitempty"`
}

// User is an authenticated account profile (GET /users/me and role users).
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// PermissionGroup is one group from GET /permissions/grouped.
type PermissionGroup struct {
	Group       string   `json:"group"`
	Permissions []string `json:"permissions"`
}

// TokenResponse is the auth endpoints' payload.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}
