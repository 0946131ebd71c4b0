package api

import (
	"context"
	"net/http"
)

// LoginResponse is the shape shared by the login and register endpoints.
// Token and RefreshToken may be absent; the session store only persists
// what is present.
type LoginResponse struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	UserID       string `json:"userId"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Registration is the payload for the register endpoint.
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	body := map[string]string{"username": username, "password": password}
	var resp LoginResponse
	if err := c.do(ctx, "login", http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, reg Registration) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, "register", http.MethodPost, "/api/auth/register", reg, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RefreshToken exchanges the long-lived refresh token for a new bearer token.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	body := map[string]string{"refreshToken": refreshToken}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, "refresh", http.MethodPost, "/api/auth/refresh-token", body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &Error{Status: http.StatusOK, Message: "refresh response missing token"}
	}
	return resp.Token, nil
}

// Logout notifies the backend that the given token's session is over. The
// response body is ignored. Callers treat failures as best-effort.
func (c *Client) Logout(ctx context.Context, token string) error {
	headers := map[string]string{}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return c.send(ctx, "logout", http.MethodPost, "/api/auth/logout", nil, headers, nil)
}
