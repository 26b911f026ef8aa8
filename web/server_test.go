// ABOUTME: End-to-end tests driving the sandbox through the REST gateway client
// ABOUTME: Each test gets a fresh in-memory database behind httptest
package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harperreed/riwora/api"
	"github.com/harperreed/riwora/db"
	"github.com/harperreed/riwora/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSandbox(t *testing.T) (*api.Client, *Server) {
	t.Helper()
	database, err := db.OpenDatabase(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	srv := NewServer(database, nil)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return api.NewClient(ts.URL + BasePath), srv
}

func signupAndLogin(t *testing.T, c *api.Client) string {
	t.Helper()
	ctx := context.Background()
	err := c.Signup(ctx, api.SignupRequest{
		FirstName: "Ada", LastName: "Lovelace", CompanyName: "Engines",
		Email: "ada@example.com", Password: "s3cret",
	})
	require.NoError(t, err)

	resp, err := c.Login(ctx, "ada@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, resp.UserID)
	return resp.UserID
}

func TestAccountFlow(t *testing.T) {
	c, _ := setupSandbox(t)
	ctx := context.Background()
	uid := signupAndLogin(t, c)

	_, err := c.Login(ctx, "ada@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", api.UserMessage(err))

	err = c.Signup(ctx, api.SignupRequest{FirstName: "A", LastName: "L", Email: "ada@example.com", Password: "x"})
	assert.Equal(t, "Email already registered", api.UserMessage(err))

	require.NoError(t, c.UpdateProfile(ctx, uid, api.ProfileUpdate{CompanyName: "Analytical"}))
	require.NoError(t, c.UpdateNotifications(ctx, uid, models.NotificationPrefs{NewMessages: true}))

	user := c.Profile(ctx, uid)
	require.NotNil(t, user)
	assert.Equal(t, "Analytical", user.CompanyName)
	require.NotNil(t, user.Notifications)
	assert.True(t, user.Notifications.NewMessages)

	err = c.ChangePassword(ctx, uid, "nope", "next")
	assert.Equal(t, "Current password is incorrect", api.UserMessage(err))
	require.NoError(t, c.ChangePassword(ctx, uid, "s3cret", "next"))
	_, err = c.Login(ctx, "ada@example.com", "next")
	assert.NoError(t, err)
}

func TestCustomerFlow(t *testing.T) {
	c, _ := setupSandbox(t)
	ctx := context.Background()
	uid := signupAndLogin(t, c)

	added, err := c.AddCustomer(ctx, uid, api.CustomerInput{FirstName: "Grace", LastName: "Hopper", Phone: "555"})
	require.NoError(t, err)
	require.NotEmpty(t, added.ID)

	news := c.NewCustomers(ctx, uid)
	require.Len(t, news, 1)
	assert.Equal(t, "Grace Hopper", news[0].FullName())
	assert.Empty(t, c.PendingCustomers(ctx, uid))

	require.NoError(t, c.UpdateCustomer(ctx, added.ID, api.CustomerInput{Type: models.CustomerBeBack}))
	assert.Len(t, c.BeBackCustomers(ctx, uid), 1)

	detail := c.Customer(ctx, added.ID)
	require.NotNil(t, detail)
	assert.Equal(t, "555", detail.Phone)
	assert.Nil(t, c.Customer(ctx, "missing"))

	note, err := c.AddCustomerNote(ctx, added.ID, "Visit", "Liked the lamp")
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
	notes := c.CustomerNotes(ctx, added.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, note.ID, notes[0].ID)

	assert.Len(t, c.SearchCustomers(ctx, "hopper"), 1)
	results := c.Search(ctx, "grace")
	assert.Len(t, results.Customers, 1)

	assert.Empty(t, c.CustomerPurchases(ctx, added.ID))

	_, err = c.AddCustomer(ctx, uid, api.CustomerInput{FirstName: "Only"})
	assert.Equal(t, "First and last name are required", api.UserMessage(err))
}

func TestDealsTasksAndDashboard(t *testing.T) {
	c, _ := setupSandbox(t)
	ctx := context.Background()
	uid := signupAndLogin(t, c)

	deal, err := c.AddDeal(ctx, uid, "Sofa", "Leather three-seater")
	require.NoError(t, err)
	assert.Equal(t, models.DealOpen, deal.Status)
	assert.Len(t, c.OpenDeals(ctx, uid), 1)
	assert.Empty(t, c.ClosedDeals(ctx, uid))

	task, err := c.AddTask(ctx, uid, api.TaskInput{Title: "Call back", Status: "In Progress", Priority: models.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, models.TaskInProgress, task.Status)

	tasks := c.Tasks(ctx, uid)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)

	_, err = c.AddCustomer(ctx, uid, api.CustomerInput{FirstName: "New", LastName: "Person"})
	require.NoError(t, err)

	d := c.Dashboard(ctx, uid)
	assert.Equal(t, 1, d.OpenDeals)
	assert.Equal(t, 1, d.NewCustomers)
	assert.Len(t, d.Tasks, 1)
}

func TestMessaging(t *testing.T) {
	c, _ := setupSandbox(t)
	ctx := context.Background()
	uid := signupAndLogin(t, c)

	cust, err := c.AddCustomer(ctx, uid, api.CustomerInput{FirstName: "Grace", LastName: "Hopper"})
	require.NoError(t, err)

	sent, err := c.SendMessage(ctx, uid, cust.ID, "hello")
	require.NoError(t, err)
	assert.NotEmpty(t, sent.ID)
	assert.Equal(t, "hello", sent.Message)

	thread := c.Conversation(ctx, uid, cust.ID)
	require.Len(t, thread, 1)
	assert.Equal(t, sent.ID, thread[0].ID)
	assert.Len(t, c.Messages(ctx, uid), 1)

	_, err = c.SendMessage(ctx, uid, cust.ID, "   ")
	assert.Error(t, err)
}

func TestPasswordReset(t *testing.T) {
	c, _ := setupSandbox(t)
	ctx := context.Background()
	signupAndLogin(t, c)

	require.NoError(t, c.ForgotPassword(ctx, "ada@example.com"))
	err := c.ForgotPassword(ctx, "ghost@example.com")
	assert.Equal(t, "Not found", api.UserMessage(err))

	err = c.ResetPassword(ctx, "bogus", "next")
	assert.Equal(t, "Not found", api.UserMessage(err))
}

func TestListsRequireUser(t *testing.T) {
	_, srv := setupSandbox(t)

	for _, path := range []string{"/tasks", "/open-deals", "/new-customers", "/messages", "/profile"} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, BasePath+path, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Contains(t, rec.Body.String(), `"error"`, path)
	}
}

func TestMalformedBody(t *testing.T) {
	_, srv := setupSandbox(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, BasePath+"/login", nil)
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, rec.Body.String())
}
