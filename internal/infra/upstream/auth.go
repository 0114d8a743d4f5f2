package upstream

import (
	"context"
	"net/http"
)

type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	var out User
	if err := c.sendJSON(ctx, "auth.signup", http.MethodPost, "/api/auth/signup/", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.sendJSON(ctx, "auth.login", http.MethodPost, "/api/auth/login/", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var out User
	if err := c.getJSON(ctx, "auth.me", "/api/auth/me/", token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
