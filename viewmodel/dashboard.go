// ABOUTME: Dashboard screen: aggregate counters plus the user's task list
// ABOUTME: Clears before each reload and follows the shared dashboard trigger
package viewmodel

import (
	"context"

	"github.com/harperreed/riwora/models"
)

type Dashboard struct {
	*Value[models.Dashboard]
}

func NewDashboard(env Env) *Dashboard {
	env = env.withDefaults()
	value := NewValue[models.Dashboard](func(ctx context.Context) (*models.Dashboard, error) {
		uid, err := env.Identity.Require()
		if err != nil {
			empty := models.EmptyDashboard()
			return &empty, err
		}
		d := env.API.Dashboard(ctx, uid)
		return &d, nil
	}, ClearBeforeSet(), WithLogger(env.Logger))
	value.Watch(env.Triggers.Dashboard)
	return &Dashboard{Value: value}
}

// Data returns the loaded counters, or the all-zero fallback.
func (d *Dashboard) Data() models.Dashboard {
	if v := d.Get(); v != nil {
		return *v
	}
	return models.EmptyDashboard()
}

func (d *Dashboard) TaskRows() []TaskRow {
	return taskRows(d.Data().Tasks)
}
