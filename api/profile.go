// ABOUTME: Account profile, notification preference, dashboard, and password operations
// ABOUTME: Profile reads always carry a notifications block
package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/harperreed/riwora/models"
)

// ProfileUpdate lists the editable profile fields; empty fields are left alone.
type ProfileUpdate struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

// Dashboard fetches the aggregate counters. The refresh parameter defeats
// intermediate caches.
func (c *Client) Dashboard(ctx context.Context, uid string) models.Dashboard {
	if uid == "" {
		c.missingIdentity("dashboard")
		return models.EmptyDashboard()
	}
	q := url.Values{"refresh": {strconv.FormatInt(c.now().UnixMilli(), 10)}}

	var out models.Dashboard
	if !c.read(ctx, "dashboard", "/dashboard/"+url.PathEscape(uid), q, &out) {
		return models.EmptyDashboard()
	}
	if out.Tasks == nil {
		out.Tasks = []models.Task{}
	}
	return out
}

// Profile returns the user's profile or nil.
func (c *Client) Profile(ctx context.Context, uid string) *models.User {
	if uid == "" {
		c.missingIdentity("profile")
		return nil
	}
	var user models.User
	if !c.read(ctx, "profile", "/profile", userQuery(uid), &user) {
		return nil
	}
	if user.Notifications == nil {
		user.Notifications = &models.NotificationPrefs{}
	}
	return &user
}

func (c *Client) UpdateProfile(ctx context.Context, uid string, updates ProfileUpdate) error {
	if uid == "" {
		return ErrMissingIdentity
	}
	body := struct {
		UserID  string        `json:"user_id"`
		Updates ProfileUpdate `json:"updates"`
	}{uid, updates}
	return c.write(ctx, "update profile", http.MethodPut, "/profile", body, nil)
}

func (c *Client) UpdateNotifications(ctx context.Context, uid string, prefs models.NotificationPrefs) error {
	if uid == "" {
		return ErrMissingIdentity
	}
	body := struct {
		UserID  string                   `json:"user_id"`
		Updates models.NotificationPrefs `json:"updates"`
	}{uid, prefs}
	return c.write(ctx, "update notifications", http.MethodPut, "/notifications", body, nil)
}

func (c *Client) ChangePassword(ctx context.Context, uid, current, next string) error {
	if uid == "" {
		return ErrMissingIdentity
	}
	body := map[string]string{
		"user_id":          uid,
		"current_password": current,
		"new_password":     next,
	}
	return c.write(ctx, "change password", http.MethodPost, "/security/change-password", body, nil)
}
