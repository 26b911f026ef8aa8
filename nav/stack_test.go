// ABOUTME: Tests for the navigation stack and route params
package nav

import (
	"testing"

	"github.com/harperreed/riwora/models"
	"github.com/harperreed/riwora/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStackRootFollowsIdentity(t *testing.T) {
	assert.Equal(t, Login, NewStack(session.Identity{}).Current().Route)
	assert.Equal(t, Dashboard, NewStack(session.Identity{UserID: "u1"}).Current().Route)
}

func TestPushValidatesParams(t *testing.T) {
	s := NewStack(session.Identity{UserID: "u1"})

	require.NoError(t, s.Push(Customer, CustomerListParams{Type: models.CustomerBeBack}))
	require.NoError(t, s.Push(CustomerProfile, CustomerProfileParams{Customer: models.Customer{ID: "c1"}}))
	assert.Equal(t, 3, s.Depth())

	assert.Error(t, s.Push(CustomerProfile, nil))
	assert.Error(t, s.Push(LeadPage, TasksPageParams{}))
	assert.Error(t, s.Push(Profile, DashboardParams{}))
	assert.Error(t, s.Push(MessageDetail, MessageDetailParams{}))
	assert.Error(t, s.Push("Nowhere", nil))
	assert.Equal(t, 3, s.Depth())

	p, ok := ParamsAs[CustomerProfileParams](s.Current())
	require.True(t, ok)
	assert.Equal(t, "c1", p.Customer.ID)
}

func TestPopNeverRemovesRoot(t *testing.T) {
	s := NewStack(session.Identity{UserID: "u1"})
	require.NoError(t, s.Push(Tasks, nil))

	top, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, Tasks, top.Route)

	_, ok = s.Pop()
	assert.False(t, ok)
	assert.Equal(t, Dashboard, s.Current().Route)
}

func TestNavigateReturnsToExistingRoute(t *testing.T) {
	s := NewStack(session.Identity{UserID: "u1"})
	require.NoError(t, s.Push(Customer, CustomerListParams{Type: models.CustomerNew}))
	require.NoError(t, s.Push(CustomerAdd, CustomerListParams{Type: models.CustomerNew}))

	var seen []Route
	s.OnChange(func(e Entry) { seen = append(seen, e.Route) })

	require.NoError(t, s.Navigate(Dashboard, DashboardParams{RefreshTrigger: 42}))
	assert.Equal(t, 1, s.Depth())
	p, ok := ParamsAs[DashboardParams](s.Current())
	require.True(t, ok)
	assert.Equal(t, uint64(42), p.RefreshTrigger)
	assert.Equal(t, []Route{Dashboard}, seen)
}

func TestResetAfterLogout(t *testing.T) {
	s := NewStack(session.Identity{UserID: "u1"})
	require.NoError(t, s.Push(Profile, nil))
	require.NoError(t, s.Reset(Login, nil))

	assert.Equal(t, []Entry{{Route: Login}}, s.Entries())
}

func TestRouteMetadata(t *testing.T) {
	assert.True(t, Login.Public())
	assert.False(t, Dashboard.Public())
	assert.Equal(t, "Open Leads", OpenLeads.Title())
	assert.Len(t, All, len(titles))
}
