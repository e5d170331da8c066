package umsapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/CampusFoundry/ums-console/pkg/models"
)

// ProgramInput carries the writable fields of a program. Every field is
// omitted when empty so an update only patches what the caller set.
type ProgramInput struct {
	UMSID         string `json:"umsId,omitempty"`
	DepartmentID  string `json:"departmentId,omitempty"`
	Name          string `json:"name,omitempty"`
	Description   string `json:"description,omitempty"`
	DurationYears int    `json:"durationYears,omitempty"`
}

// ListPrograms returns the programs of a UMS instance.
func (c *Client) ListPrograms(ctx context.Context, umsID string) ([]models.Program, error) {
	query := url.Values{}
	if umsID != "" {
		query.Set("umsId", umsID)
	}
	body, err := c.doRequest(ctx, http.MethodGet, "/programs", query, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Program](body)
}

// CreateProgram creates a program and returns the server-shaped entity.
func (c *Client) CreateProgram(ctx context.Context, in ProgramInput) (*models.Program, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/programs", nil, in)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.Program](body)
}

// UpdateProgram patches a program by id.
func (c *Client) UpdateProgram(ctx context.Context, id string, in ProgramInput) (*models.Program, error) {
	body, err := c.doRequest(ctx, http.MethodPatch, "/programs/"+id, nil, in)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.Program](body)
}

// DeleteProgram removes a program by id.
func (c *Client) DeleteProgram(ctx context.Context, id string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/programs/"+id, nil, nil)
	return err
}
