// Package umsapi is the HTTP client for the UMS provisioning backend. Every
// service method attaches the session's bearer token, retries once on a 5xx
// response, and reports failures as tagged *Error values.
package umsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the UMS backend REST API.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client

	// onUnauthorized fires on any 401, before the error is returned. It is
	// global and unconditional: the session is gone no matter which call
	// tripped it.
	onUnauthorized func()
}

// NewClient creates a backend client. Token may be empty for the
// unauthenticated auth endpoints.
func NewClient(baseURL, token string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL must be provided")
	}
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: time.Minute,
		},
	}, nil
}

// OnUnauthorized registers the hook invoked when any request comes back 401.
// The console uses it to clear the persisted session.
func (c *Client) OnUnauthorized(fn func()) { c.onUnauthorized = fn }

// doRequest performs one API call with the client contract: bearer auth,
// exactly one automatic retry on a 5xx response, and status-to-kind error
// mapping. body, when non-nil, is JSON-encoded.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s %s payload: %w", method, path, err)
		}
	}

	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
		if err != nil {
			return nil, err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
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

// checkStatus maps a non-retryable response to the tagged error taxonomy.
func (c *Client) checkStatus(status int, body []byte) ([]byte, error) {
	switch {
	case status == http.StatusNoContent:
		return nil, nil
	case status >= 200 && status < 300:
		return body, nil
	case status == http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, newError(KindUnauthorized, "session expired, please log in again", nil)
	case status == http.StatusConflict:
		return nil, newError(KindConflict, "a resource with that name already exists", nil)
	case status == http.StatusNotFound:
		return nil, newError(KindNotFound, serverMessage(body, "the requested resource was not found"), nil)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return nil, newError(KindValidation, serverMessage(body, "the request was rejected as invalid"), nil)
	default:
		return nil, newError(KindUnknown, serverMessage(body, fmt.Sprintf("request failed with status %d", status)), nil)
	}
}

// serverMessage pulls the human-readable message field out of an error
// payload, falling back when the body carries none.
func serverMessage(body []byte, fallback string) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return fallback
}

// decodeList decodes a list response that may be either a bare JSON array or
// an envelope {success, data, message}. A null or absent payload yields an
// empty slice, never nil.
func decodeList[T any](body []byte) ([]T, error) {
	payload := unwrapEnvelope(body)

	var items []T
	if len(payload) > 0 && string(payload) != "null" {
		if err := json.Unmarshal(payload, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal list response: %w", err)
		}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// decodeObject decodes a single-object response, unwrapping the optional
// envelope first.
func decodeObject[T any](body []byte) (*T, error) {
	payload := unwrapEnvelope(body)

	var item T
	if err := json.Unmarshal(payload, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &item, nil
}

// unwrapEnvelope returns the data field when body is an envelope, otherwise
// body unchanged.
func unwrapEnvelope(body []byte) []byte {
	var envelope struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Success != nil {
		return envelope.Data
	}
	return body
}
