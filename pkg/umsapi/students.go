package umsapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/CampusFoundry/ums-console/pkg/models"
)

// StudentInput carries the writable fields of a student. The matricule is
// assigned server-side; it never appears in the input. Every field is
// omitted when empty so an update only patches what the caller set.
type StudentInput struct {
	UMSID     string `json:"umsId,omitempty"`
	ProgramID string `json:"programId,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

// ListStudents returns students for a UMS instance, optionally paginated.
func (c *Client) ListStudents(ctx context.Context, umsID string, page, limit int) ([]models.Student, error) {
	query := url.Values{}
	if umsID != "" {
		query.Set("umsId", umsID)
	}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	body, err := c.doRequest(ctx, http.MethodGet, "/students", query, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Student](body)
}

// SearchStudents runs a free-text search over student records.
func (c *Client) SearchStudents(ctx context.Context, umsID, term string) ([]models.Student, error) {
	query := url.Values{}
	if umsID != "" {
		query.Set("umsId", umsID)
	}
	query.Set("q", term)
	body, err := c.doRequest(ctx, http.MethodGet, "/students/search", query, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Student](body)
}

// StudentsByProgram lists the students enrolled in one program.
func (c *Client) StudentsByProgram(ctx context.Context, programID string) ([]models.Student, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/students/program/"+programID, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Student](body)
}

// CreateStudent creates one student and returns the server-shaped record,
// matricule included.
func (c *Client) CreateStudent(ctx context.Context, in StudentInput) (*models.Student, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/students", nil, in)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.Student](body)
}

// BulkCreateStudents creates many students in one call and returns the
// created records.
func (c *Client) BulkCreateStudents(ctx context.Context, in []StudentInput) ([]models.Student, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/students/bulk", nil, in)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Student](body)
}

// UpdateStudent patches a student by id.
func (c *Client) UpdateStudent(ctx context.Context, id string, in StudentInput) (*models.Student, error) {
	body, err := c.doRequest(ctx, http.MethodPatch, "/students/"+id, nil, in)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.Student](body)
}

// DeleteStudent removes a student by id.
func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/students/"+id, nil, nil)
	return err
}
