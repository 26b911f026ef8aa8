// ABOUTME: Account entry forms: login, signup, password recovery, and reset
// ABOUTME: Login returns the identity; persisting it is the host's job
package viewmodel

import (
	"context"
	"strings"

	"github.com/harperreed/riwora/api"
	"github.com/harperreed/riwora/session"
)

type LoginForm struct {
	Email    string
	Password string

	client *api.Client
}

func NewLoginForm(client *api.Client) *LoginForm {
	return &LoginForm{client: client}
}

func (f *LoginForm) Submit(ctx context.Context) (session.Identity, Dialog, error) {
	email := strings.TrimSpace(f.Email)
	if email == "" || f.Password == "" {
		d, err := reject("Please enter both email and password.", nil)
		return session.Identity{}, d, err
	}
	resp, err := f.client.Login(ctx, email, f.Password)
	if err != nil {
		d, err := reject(serverMessage(err, "Invalid email or password."), err)
		return session.Identity{}, d, err
	}
	return session.Identity{UserID: resp.UserID}, successDialog("Logged in successfully!"), nil
}

type SignupForm struct {
	FirstName   string
	LastName    string
	CompanyName string
	Email       string
	Password    string

	client *api.Client
}

func NewSignupForm(client *api.Client) *SignupForm {
	return &SignupForm{client: client}
}

func (f *SignupForm) Submit(ctx context.Context) (Dialog, error) {
	req := api.SignupRequest{
		FirstName:   strings.TrimSpace(f.FirstName),
		LastName:    strings.TrimSpace(f.LastName),
		CompanyName: strings.TrimSpace(f.CompanyName),
		Email:       strings.TrimSpace(f.Email),
		Password:    f.Password,
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return reject("All fields except company name are required.", nil)
	}
	if err := f.client.Signup(ctx, req); err != nil {
		return reject(serverMessage(err, "Signup failed due to an unknown error."), err)
	}
	return successDialog("Account created successfully!"), nil
}

type RecoveryForm struct {
	Email string

	client *api.Client
}

func NewRecoveryForm(client *api.Client) *RecoveryForm {
	return &RecoveryForm{client: client}
}

func (f *RecoveryForm) Submit(ctx context.Context) (Dialog, error) {
	email := strings.TrimSpace(f.Email)
	if email == "" {
		return reject("Please enter your email.", nil)
	}
	if err := f.client.ForgotPassword(ctx, email); err != nil {
		return reject(serverMessage(err, "User not found."), err)
	}
	return successDialog("Password reset link sent to your email."), nil
}

type ResetPasswordForm struct {
	Token       string
	NewPassword string

	client *api.Client
}

func NewResetPasswordForm(client *api.Client) *ResetPasswordForm {
	return &ResetPasswordForm{client: client}
}

func (f *ResetPasswordForm) Submit(ctx context.Context) (Dialog, error) {
	token := strings.TrimSpace(f.Token)
	if token == "" || f.NewPassword == "" {
		return reject("Please fill in all fields.", nil)
	}
	if err := f.client.ResetPassword(ctx, token, f.NewPassword); err != nil {
		return reject(serverMessage(err, "Password reset failed."), err)
	}
	return successDialog("Password has been reset. You can log in now."), nil
}
