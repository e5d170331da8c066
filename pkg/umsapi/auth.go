package umsapi

import (
	"context"
	"net/http"

	"github.com/CampusFoundry/ums-console/pkg/models"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RootLogin authenticates a root operator and returns the access token.
func (c *Client) RootLogin(ctx context.Context, email, password string) (string, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/auth/root/login", nil, credentials{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	token, err := decodeObject[models.TokenResponse](body)
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// RootCreate registers the first root operator account and returns its token.
func (c *Client) RootCreate(ctx context.Context, name, email, password string) (string, error) {
	payload := struct {
		Name string `json:"name"`
		credentials
	}{Name: name, credentials: credentials{Email: email, Password: password}}

	body, err := c.doRequest(ctx, http.MethodPost, "/auth/root/create", nil, payload)
	if err != nil {
		return "", err
	}
	token, err := decodeObject[models.TokenResponse](body)
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// Me returns the profile backing the current session token.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/users/me", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject[models.User](body)
}
