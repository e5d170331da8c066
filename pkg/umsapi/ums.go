package umsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/CampusFoundry/ums-console/pkg/models"
)

// ListUMS returns every UMS instance visible to the session.
func (c *Client) ListUMS(ctx context.Context) ([]models.UMS, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/ums", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.UMS](body)
}

// GetUMS fetches one instance by id.
func (c *Client) GetUMS(ctx context.Context, id string) (*models.UMS, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/ums/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.UMS](body)
}

// UpdateUMS patches a persisted instance with the given fields.
func (c *Client) UpdateUMS(ctx context.Context, id string, fields map[string]any) (*models.UMS, error) {
	body, err := c.doRequest(ctx, http.MethodPatch, "/ums/"+id, nil, fields)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.UMS](body)
}

// DeleteUMS removes a persisted instance.
func (c *Client) DeleteUMS(ctx context.Context, id string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/ums/"+id, nil, nil)
	return err
}

// CreateUMS submits a completed draft as one multipart form-data POST. Logo
// and photo become binary file parts when they reference local data; roles,
// modules and platforms travel as JSON-encoded string fields.
func (c *Client) CreateUMS(ctx context.Context, form *models.UMSForm) (*models.UMS, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"umsName":        form.UMSName,
		"umsDescription": form.UMSDescription,
		"umsTagline":     form.UMSTagline,
		"umsWebsite":     form.UMSWebsite,
		"umsType":        string(form.UMSType),
		"umsSize":        form.UMSSize,
		"adminName":      form.AdminName,
		"adminEmail":     form.AdminEmail,
		"adminPhone":     form.AdminPhone,
		"enable2FA":      fmt.Sprintf("%t", form.Enable2FA),
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	for name, value := range map[string]any{
		"roles":     form.Roles,
		"modules":   form.ModuleTokens(),
		"platforms": form.Platforms,
	} {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", name, err)
		}
		if err := w.WriteField(name, string(encoded)); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	if form.MatriculeConfig != nil {
		encoded, err := json.Marshal(form.MatriculeConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to encode matriculeConfig: %w", err)
		}
		if err := w.WriteField("matriculeConfig", string(encoded)); err != nil {
			return nil, fmt.Errorf("failed to write form field matriculeConfig: %w", err)
		}
	}

	for field, ref := range map[string]string{"umsLogo": form.UMSLogo, "umsPhoto": form.UMSPhoto} {
		part, err := resolveImage(ref, field)
		if err != nil {
			return nil, ValidationError("%v", err)
		}
		if part == nil {
			// Remote URL references stay plain fields the backend copies.
			if ref != "" {
				if err := w.WriteField(field, ref); err != nil {
					return nil, fmt.Errorf("failed to write form field %s: %w", field, err)
				}
			}
			continue
		}
		fw, err := w.CreateFormFile(field, part.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to create file part %s: %w", field, err)
		}
		if _, err := fw.Write(part.Content); err != nil {
			return nil, fmt.Errorf("failed to write file part %s: %w", field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	body, err := c.doRaw(ctx, http.MethodPost, "/ums", w.FormDataContentType(), buf.Bytes())
	if err != nil {
		return nil, err
	}
	return decodeObject[models.UMS](body)
}

// doRaw sends a pre-encoded payload with an explicit content type, under the
// same retry and error-mapping contract as doRequest.
func (c *Client) doRaw(ctx context.Context, method, path, contentType string, payload []byte) ([]byte, error) {
	endpoint := c.BaseURL + path

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Accept", "application/json")
		if c.Token != "" {
			req.Header.Set("Authorization", "Bearer "+c.Token)
		}

		slog.Debug("Making API request", "method", method, "url", endpoint, "attempt", attempt+1)

		res, httpErr := c.HTTPClient.Do(req)
		if httpErr != nil {
			return nil, newError(KindNetwork, "could not reach the UMS backend", httpErr)
		}

		if res.StatusCode >= 500 {
			io.Copy(io.Discard, res.Body)
			res.Body.Close()
			lastErr = newError(KindUnknown, fmt.Sprintf("server error (status %d)", res.StatusCode), nil)
			if attempt == 0 {
				slog.Warn("API returned server error, retrying once...", "status_code", res.StatusCode, "url", endpoint)
				continue
			}
			return nil, lastErr
		}

		respBody, err := io.ReadAll(res.Body)
		res.Body.Close()
		if err != nil {
			return nil, newError(KindNetwork, "failed to read response body", err)
		}

		return c.checkStatus(res.StatusCode, respBody)
	}

	return nil, lastErr
}
