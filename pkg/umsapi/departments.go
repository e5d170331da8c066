package umsapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/CampusFoundry/ums-console/pkg/models"
)

// DepartmentInput carries the writable fields of a department. Every field
// is omitted when empty so an update only patches what the caller set.
type DepartmentInput struct {
	UMSID       string `json:"umsId,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// ListDepartments returns the departments of a UMS instance.
func (c *Client) ListDepartments(ctx context.Context, umsID string) ([]models.Department, error) {
	query := url.Values{}
	if umsID != "" {
		query.Set("umsId", umsID)
	}
	body, err := c.doRequest(ctx, http.MethodGet, "/departments", query, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Department](body)
}

// CreateDepartment creates a department and returns the server-shaped entity,
// including its computed code.
func (c *Client) CreateDepartment(ctx context.Context, in DepartmentInput) (*models.Department, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/departments", nil, in)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.Department](body)
}

// UpdateDepartment patches a department by id.
func (c *Client) UpdateDepartment(ctx context.Context, id string, in DepartmentInput) (*models.Department, error) {
	body, err := c.doRequest(ctx, http.MethodPatch, "/departments/"+id, nil, in)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.Department](body)
}

// DeleteDepartment removes a department by id.
func (c *Client) DeleteDepartment(ctx context.Context, id string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/departments/"+id, nil, nil)
	return err
}
