// ABOUTME: Account screen: profile, notification preferences, and password change
// ABOUTME: Notification toggles apply locally first and roll back on failure
package viewmodel

import (
	"context"

	"github.com/harperreed/riwora/api"
	"github.com/harperreed/riwora/models"
)

type Profile struct {
	*Value[models.User]
	env Env
}

func NewProfile(env Env) *Profile {
	env = env.withDefaults()
	value := NewValue[models.User](func(ctx context.Context) (*models.User, error) {
		uid, err := env.Identity.Require()
		if err != nil {
			return nil, err
		}
		return env.API.Profile(ctx, uid), nil
	}, WithLogger(env.Logger))
	return &Profile{Value: value, env: env}
}

func (p *Profile) UpdateProfile(ctx context.Context, updates api.ProfileUpdate) (Dialog, error) {
	uid, err := p.env.Identity.Require()
	if err != nil {
		return reject("User ID is missing.", err)
	}
	if err := p.env.API.UpdateProfile(ctx, uid, updates); err != nil {
		p.env.Logger.Warn("update profile failed", "err", err)
		return reject(serverMessage(err, "Failed to update profile."), err)
	}
	_ = ignoreStale(p.Load())
	return successDialog("Profile updated successfully!"), nil
}

// SetNotifications saves prefs, showing them immediately and restoring the
// previous preferences if the server rejects the change.
func (p *Profile) SetNotifications(ctx context.Context, prefs models.NotificationPrefs) (Dialog, error) {
	uid, err := p.env.Identity.Require()
	if err != nil {
		return reject("User ID is missing.", err)
	}

	prev := p.Get()
	if prev != nil {
		next := *prev
		next.Notifications = &prefs
		p.Set(next)
	}

	if err := p.env.API.UpdateNotifications(ctx, uid, prefs); err != nil {
		if prev != nil {
			p.Set(*prev)
		}
		p.env.Logger.Warn("update notifications failed", "err", err)
		return reject(serverMessage(err, "Failed to update notifications"), err)
	}
	return successDialog("Notification preferences updated."), nil
}

// ChangePassword validates the confirmation locally before calling the server.
func (p *Profile) ChangePassword(ctx context.Context, current, next, confirm string) (Dialog, error) {
	if current == "" || next == "" || confirm == "" {
		return reject("Please fill in all fields.", nil)
	}
	if next != confirm {
		return reject("New passwords do not match.", nil)
	}
	uid, err := p.env.Identity.Require()
	if err != nil {
		return reject("User not found.", err)
	}
	if err := p.env.API.ChangePassword(ctx, uid, current, next); err != nil {
		return reject(serverMessage(err, "An unknown error occurred."), err)
	}
	return successDialog("Password updated successfully."), nil
}
