// ABOUTME: Account operations: signup, login, and password recovery
// ABOUTME: Login yields the user id that the session store persists
package api

import (
	"context"
	"errors"
	"net/http"
)

type SignupRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type LoginResponse struct {
	UserID  string `json:"user_id"`
	Message string `json:"message,omitempty"`
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	return c.write(ctx, "signup", http.MethodPost, "/signup", req, nil)
}

// Login exchanges credentials for a user id. A success response without a
// user id is treated as a failure.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var resp LoginResponse
	if err := c.write(ctx, "login", http.MethodPost, "/login", body, &resp); err != nil {
		return LoginResponse{}, err
	}
	if resp.UserID == "" {
		return LoginResponse{}, &Error{Op: "login", Message: GenericMessage, Cause: errors.New("response missing user_id")}
	}
	return resp, nil
}

// ForgotPassword asks the backend to send a reset token to email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.write(ctx, "forgot password", http.MethodPost, "/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword sets a new password using an emailed token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "new_password": newPassword}
	return c.write(ctx, "reset password", http.MethodPost, "/reset-password", body, nil)
}
