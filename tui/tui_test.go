// ABOUTME: Tests for the TUI host driving screens against the sandbox backend
// ABOUTME: Commands are executed inline so every async load completes before assertions
package tui

import (
	"context"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/riwora/api"
	"github.com/harperreed/riwora/db"
	"github.com/harperreed/riwora/models"
	"github.com/harperreed/riwora/nav"
	"github.com/harperreed/riwora/session"
	"github.com/harperreed/riwora/viewmodel"
	"github.com/harperreed/riwora/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "ada@example.com"
	testPassword = "pw"
)

func setupSandbox(t *testing.T) (*api.Client, string) {
	t.Helper()
	database, err := db.OpenDatabase(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	ts := httptest.NewServer(web.NewServer(database, nil))
	t.Cleanup(ts.Close)

	client := api.NewClient(ts.URL + web.BasePath)
	ctx := context.Background()
	require.NoError(t, client.Signup(ctx, api.SignupRequest{FirstName: "Ada", LastName: "Lovelace", Email: testEmail, Password: testPassword}))
	resp, err := client.Login(ctx, testEmail, testPassword)
	require.NoError(t, err)
	return client, resp.UserID
}

func loggedIn(t *testing.T) (Model, *api.Client, string) {
	t.Helper()
	client, uid := setupSandbox(t)
	m := NewModel(context.Background(), Options{
		Env:    viewmodel.Env{API: client, Identity: session.Identity{UserID: uid}},
		Client: client,
	})
	m, cmd := m.Start()
	return drain(t, m, cmd), client, uid
}

// drain runs cmd and every command it produces, feeding results to Update.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100, "command loop did not settle")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case nil, tea.QuitMsg:
		default:
			updated, c := m.Update(msg)
			m = updated.(Model)
			queue = append(queue, c)
		}
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, cmd := m.Update(keyMsg(k))
		m = drain(t, updated.(Model), cmd)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = press(t, m, string(r))
	}
	return m
}

func TestStartsAtLoginWithoutIdentity(t *testing.T) {
	client, _ := setupSandbox(t)
	m, _ := NewModel(context.Background(), Options{Client: client}).Start()
	assert.Equal(t, nav.Login, m.Route())
	assert.Contains(t, m.View(), "Welcome back")
}

func TestLoginPersistsIdentityAndResets(t *testing.T) {
	client, uid := setupSandbox(t)
	var saved string
	m, cmd := NewModel(context.Background(), Options{
		Client:       client,
		SaveIdentity: func(id string) error { saved = id; return nil },
	}).Start()
	m = drain(t, m, cmd)

	m = typeText(t, m, testEmail)
	m = press(t, m, "enter")
	m = typeText(t, m, testPassword)
	m = press(t, m, "enter")

	assert.Equal(t, uid, saved)
	assert.Equal(t, nav.Dashboard, m.Route())
	assert.Equal(t, 1, m.stack.Depth())
	assert.Equal(t, uid, m.env.Identity.UserID)
	require.NotNil(t, m.Dialog())
	assert.Equal(t, viewmodel.TitleSuccess, m.Dialog().Title)
}

func TestLoginRejectedShowsDialog(t *testing.T) {
	client, _ := setupSandbox(t)
	m, _ := NewModel(context.Background(), Options{Client: client}).Start()

	m = typeText(t, m, testEmail)
	m = press(t, m, "enter")
	m = typeText(t, m, "wrong")
	m = press(t, m, "enter")

	assert.Equal(t, nav.Login, m.Route())
	require.NotNil(t, m.Dialog())
	assert.True(t, m.Dialog().IsError())

	m = press(t, m, "x")
	assert.Nil(t, m.Dialog(), "any key dismisses the dialog")
}

func TestSignupLinkFromLogin(t *testing.T) {
	client, _ := setupSandbox(t)
	m, _ := NewModel(context.Background(), Options{Client: client}).Start()

	m = press(t, m, "ctrl+n")
	assert.Equal(t, nav.SignUp, m.Route())
	m = press(t, m, "esc")
	assert.Equal(t, nav.Login, m.Route())
}

func TestBackNeverPopsRoot(t *testing.T) {
	m, _, _ := loggedIn(t)
	m = press(t, m, "esc")
	assert.Equal(t, nav.Dashboard, m.Route())
}

func TestAddCustomerFromList(t *testing.T) {
	m, _, _ := loggedIn(t)

	m = press(t, m, "u")
	require.Equal(t, nav.Customer, m.Route())
	m = press(t, m, "a")
	require.Equal(t, nav.CustomerAdd, m.Route())

	for _, v := range []string{"Grace", "Hopper", "grace@example.com", "555"} {
		m = typeText(t, m, v)
		m = press(t, m, "enter")
	}
	// type is prefilled; notes left blank
	m = press(t, m, "enter", "enter")

	require.NotNil(t, m.Dialog())
	assert.Equal(t, viewmodel.TitleSuccess, m.Dialog().Title)
	assert.Equal(t, nav.Customer, m.Route())

	m = press(t, m, "enter") // dismiss
	assert.Contains(t, m.View(), "Grace Hopper")
}

func TestSwitchCustomerListReplacesParams(t *testing.T) {
	m, _, _ := loggedIn(t)
	m = press(t, m, "u", "l")

	assert.Equal(t, nav.Customer, m.Route())
	assert.Equal(t, 2, m.stack.Depth())
	p, ok := nav.ParamsAs[nav.CustomerListParams](m.stack.Current())
	require.True(t, ok)
	assert.Equal(t, models.CustomerBeBack, p.Type)
}

func TestTaskEditsStayLocal(t *testing.T) {
	client, uid := setupSandbox(t)
	_, err := client.AddTask(context.Background(), uid, api.TaskInput{Title: "Call back", Status: models.TaskNotStarted, Priority: models.PriorityLow})
	require.NoError(t, err)

	m, cmd := NewModel(context.Background(), Options{
		Env:    viewmodel.Env{API: client, Identity: session.Identity{UserID: uid}},
		Client: client,
	}).Start()
	m = drain(t, m, cmd)
	assert.Contains(t, m.View(), "Call back")

	m = press(t, m, "enter")
	require.Equal(t, nav.TasksPage, m.Route())
	assert.NotContains(t, m.View(), "will not be saved")

	m = press(t, m, "s")
	assert.Contains(t, m.View(), "In Progress")
	assert.Contains(t, m.View(), "will not be saved")

	tasks := client.Tasks(context.Background(), uid)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.TaskNotStarted, tasks[0].Status)
}

func TestConversationSend(t *testing.T) {
	m, client, uid := loggedIn(t)
	ctx := context.Background()
	_, err := client.AddCustomer(ctx, uid, api.CustomerInput{FirstName: "Grace", LastName: "Hopper", Email: "g@example.com", Phone: "1", Type: models.CustomerNew})
	require.NoError(t, err)
	customers := client.CustomersByType(ctx, uid, models.CustomerNew)
	require.Len(t, customers, 1)

	m, cmd := m.push(nav.MessageDetail, nav.MessageDetailParams{CustomerID: customers[0].ID})
	m = drain(t, m, cmd)
	assert.Contains(t, m.View(), "Grace Hopper")

	m = typeText(t, m, "hello there")
	m = press(t, m, "enter")

	view := m.View()
	assert.Contains(t, view, "hello there")
	assert.NotContains(t, view, "(sending)")
	assert.Len(t, client.Conversation(ctx, uid, customers[0].ID), 1)
}

func TestSearchAsYouType(t *testing.T) {
	m, client, uid := loggedIn(t)
	_, err := client.AddCustomer(context.Background(), uid, api.CustomerInput{FirstName: "Grace", LastName: "Hopper", Email: "g@example.com", Phone: "1", Type: models.CustomerPending})
	require.NoError(t, err)

	m = press(t, m, "/")
	require.Equal(t, nav.RecentSearch, m.Route())
	assert.Contains(t, m.View(), "Start typing")

	m = typeText(t, m, "Hop")
	assert.Contains(t, m.View(), "Grace Hopper")

	m = press(t, m, "enter")
	assert.Equal(t, nav.CustomerProfile, m.Route())
}

func TestNotificationToggle(t *testing.T) {
	m, client, uid := loggedIn(t)
	m = press(t, m, "p", "n")
	require.Equal(t, nav.Notifications, m.Route())

	before := client.Profile(context.Background(), uid)
	require.NotNil(t, before)
	require.NotNil(t, before.Notifications)

	m = press(t, m, " ")
	assert.Nil(t, m.Dialog())

	after := client.Profile(context.Background(), uid)
	require.NotNil(t, after.Notifications)
	assert.Equal(t, !before.Notifications.PushNotifications, after.Notifications.PushNotifications)
}

func TestLogoutClearsIdentity(t *testing.T) {
	client, uid := setupSandbox(t)
	cleared := false
	m, cmd := NewModel(context.Background(), Options{
		Env:           viewmodel.Env{API: client, Identity: session.Identity{UserID: uid}},
		Client:        client,
		ClearIdentity: func() error { cleared = true; return nil },
	}).Start()
	m = drain(t, m, cmd)

	m = press(t, m, "p", "x")
	assert.True(t, cleared)
	assert.Equal(t, nav.Login, m.Route())
	assert.Equal(t, 1, m.stack.Depth())
	assert.False(t, m.env.Identity.Present())
}
