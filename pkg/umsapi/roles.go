package umsapi

import (
	"context"
	"net/http"

	"github.com/CampusFoundry/ums-console/pkg/models"
)

// RoleInput carries the writable fields of a persisted role. Every field is
// omitted when empty so an update only patches what the caller set.
type RoleInput struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// RoleUserInput attaches an account to a role.
type RoleUserInput struct {
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	IsPrimary bool   `json:"isPrimary"`
}

// ListRoles returns all persisted roles.
func (c *Client) ListRoles(ctx context.Context) ([]models.RemoteRole, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/roles", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.RemoteRole](body)
}

// GetRole fetches one role by id.
func (c *Client) GetRole(ctx context.Context, id string) (*models.RemoteRole, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/roles/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.RemoteRole](body)
}

// CreateRole creates a role.
func (c *Client) CreateRole(ctx context.Context, in RoleInput) (*models.RemoteRole, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/roles", nil, in)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.RemoteRole](body)
}

// UpdateRole replaces a role's writable fields.
func (c *Client) UpdateRole(ctx context.Context, id string, in RoleInput) (*models.RemoteRole, error) {
	body, err := c.doRequest(ctx, http.MethodPut, "/roles/"+id, nil, in)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.RemoteRole](body)
}

// DeleteRole removes a role by id.
func (c *Client) DeleteRole(ctx context.Context, id string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/roles/"+id, nil, nil)
	return err
}

// SetRolePermissions replaces the permission set of a role.
func (c *Client) SetRolePermissions(ctx context.Context, id string, permissions []string) (*models.RemoteRole, error) {
	payload := map[string][]string{"permissions": permissions}
	body, err := c.doRequest(ctx, http.MethodPut, "/roles/"+id+"/permissions", nil, payload)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.RemoteRole](body)
}

// RoleUsers lists the accounts attached to a role.
func (c *Client) RoleUsers(ctx context.Context, id string) ([]models.User, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/roles/"+id+"/users", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.User](body)
}

// AddRoleUser attaches an account to a role.
func (c *Client) AddRoleUser(ctx context.Context, id string, in RoleUserInput) (*models.User, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/roles/"+id+"/users", nil, in)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.User](body)
}

// RemoveRoleUser detaches an account from a role.
func (c *Client) RemoveRoleUser(ctx context.Context, id, userID string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/roles/"+id+"/users/"+userID, nil, nil)
	return err
}

// GroupedPermissions returns the permission catalog grouped by feature area.
func (c *Client) GroupedPermissions(ctx context.Context) ([]models.PermissionGroup, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/permissions/grouped", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.PermissionGroup](body)
}
