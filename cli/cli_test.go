// ABOUTME: End-to-end tests for the cobra command tree
// ABOUTME: Each test gets a temp config and data dir pointing at an httptest sandbox
package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/riwora/db"
	"github.com/harperreed/riwora/viewmodel"
	"github.com/harperreed/riwora/web"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t       *testing.T
	cfgPath string
	apiURL  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database, err := db.OpenDatabase(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	ts := httptest.NewServer(web.NewServer(database, nil))
	t.Cleanup(ts.Close)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	data, err := json.Marshal(map[string]string{
		"api_url":  ts.URL + web.BasePath,
		"data_dir": filepath.Join(dir, "data"),
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfgPath, data, 0600))

	return &harness{t: t, cfgPath: cfgPath, apiURL: ts.URL + web.BasePath}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	root := NewRoot("test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(append([]string{"--config", h.cfgPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, "riwora %s", strings.Join(args, " "))
	return out
}

func (h *harness) signupAndLogin() {
	h.t.Helper()
	h.mustRun("signup", "--first-name", "Ada", "--last-name", "Lovelace", "--email", "ada@example.com", "--password", "pw")
	out := h.mustRun("login", "--email", "ada@example.com", "--password", "pw")
	assert.Contains(h.t, out, "Logged in successfully!")
}

func TestReportPrintsSuccessOrPassesRejection(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	ok := func() (viewmodel.Dialog, error) {
		return viewmodel.Dialog{Title: viewmodel.TitleSuccess, Message: "Deal added successfully!"}, nil
	}
	require.NoError(t, report(cmd)(ok()))
	assert.Equal(t, "✓ Deal added successfully!\n", out.String())

	rejected := viewmodel.Dialog{Title: viewmodel.TitleError, Message: "Please fill in all required fields."}
	fail := func() (viewmodel.Dialog, error) {
		return rejected, &viewmodel.FormError{Dialog: rejected}
	}
	out.Reset()
	err := report(cmd)(fail())
	var fe *viewmodel.FormError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Please fill in all required fields.", err.Error())
	assert.Empty(t, out.String())
}

func TestWhoamiLoggedOut(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("whoami")
	assert.Contains(t, out, "Not logged in")
}

func TestLoginLogout(t *testing.T) {
	h := newHarness(t)
	h.signupAndLogin()

	out := h.mustRun("whoami")
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "ada@example.com")

	h.mustRun("logout")
	out = h.mustRun("whoami")
	assert.Contains(t, out, "Not logged in")
}

func TestLoginRejected(t *testing.T) {
	h := newHarness(t)
	h.mustRun("signup", "--first-name", "Ada", "--last-name", "Lovelace", "--email", "ada@example.com", "--password", "pw")

	_, err := h.run("login", "--email", "ada@example.com", "--password", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid email or password")

	// a failed command must not leave the session store locked
	out := h.mustRun("whoami")
	assert.Contains(t, out, "Not logged in")
}

func TestListsRequireLogin(t *testing.T) {
	h := newHarness(t)
	for _, args := range [][]string{{"dashboard"}, {"tasks", "list"}, {"deals", "list"}, {"customers", "list"}, {"messages", "inbox"}} {
		_, err := h.run(args...)
		require.Error(t, err, "riwora %s", strings.Join(args, " "))
		assert.Contains(t, err.Error(), "not logged in")
	}
}

func TestCustomerCommands(t *testing.T) {
	h := newHarness(t)
	h.signupAndLogin()

	out := h.mustRun("customers", "add", "--first-name", "Grace", "--last-name", "Hopper", "--email", "grace@example.com", "--phone", "555", "--type", "pending")
	assert.Contains(t, out, "Customer added successfully!")

	_, err := h.run("customers", "add", "--first-name", "Grace")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please fill in all required fields.")

	_, err = h.run("customers", "list", "--type", "vip")
	require.Error(t, err)

	out = h.mustRun("customers", "list", "--type", "pending")
	assert.Contains(t, out, "Grace Hopper")

	out = h.mustRun("customers", "search", "Hopper")
	require.Contains(t, out, "Grace Hopper")
	fields := strings.Fields(strings.Split(strings.TrimSpace(out), "\n")[2])
	id := fields[len(fields)-1]

	out = h.mustRun("customers", "update", id, "--type", "be_back")
	assert.Contains(t, out, "Customer updated successfully!")
	out = h.mustRun("customers", "list", "--type", "be_back")
	assert.Contains(t, out, "Grace Hopper")

	out = h.mustRun("notes", "add", id, "--title", "Visit", "--content", "Liked the oak table")
	assert.Contains(t, out, "Note added successfully!")
	out = h.mustRun("notes", "list", id)
	assert.Contains(t, out, "Liked the oak table")

	out = h.mustRun("customers", "show", id)
	assert.Contains(t, out, "Grace Hopper")
	assert.Contains(t, out, "Be Back")
	assert.Contains(t, out, "Visit: Liked the oak table")

	out = h.mustRun("search", "Grace")
	assert.Contains(t, out, "Customers:")
}

func TestDealTaskDashboardCommands(t *testing.T) {
	h := newHarness(t)
	h.signupAndLogin()

	out := h.mustRun("deals", "add", "--title", "Sofa set", "--description", "Three piece")
	assert.Contains(t, out, "Deal added successfully!")
	out = h.mustRun("deals", "list")
	assert.Contains(t, out, "Sofa set")
	out = h.mustRun("deals", "list", "--closed")
	assert.Contains(t, out, "No deals found")

	_, err := h.run("tasks", "add", "--title", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Task title cannot be empty.")

	out = h.mustRun("tasks", "add", "--title", "Call Grace", "--priority", "high", "--deadline", "2030-01-02")
	assert.Contains(t, out, "Task added successfully!")
	out = h.mustRun("tasks", "list")
	assert.Contains(t, out, "Call Grace")
	assert.Contains(t, out, "Not Started")

	out = h.mustRun("dashboard")
	assert.Contains(t, out, "Open deals:        1")
	assert.Contains(t, out, "Call Grace")
}

func TestMessageCommands(t *testing.T) {
	h := newHarness(t)
	h.signupAndLogin()

	h.mustRun("customers", "add", "--first-name", "Grace", "--last-name", "Hopper", "--email", "grace@example.com", "--phone", "555")
	out := h.mustRun("customers", "search", "Grace")
	fields := strings.Fields(strings.Split(strings.TrimSpace(out), "\n")[2])
	id := fields[len(fields)-1]

	out = h.mustRun("messages", "send", id, "Your table arrived")
	assert.Contains(t, out, "Message sent to Grace Hopper")

	out = h.mustRun("messages", "thread", id)
	assert.Contains(t, out, "You: Your table arrived")

	out = h.mustRun("messages", "inbox")
	assert.Contains(t, out, "Grace Hopper")
	assert.Contains(t, out, "Your table arrived")
}

func TestAccountCommands(t *testing.T) {
	h := newHarness(t)
	h.signupAndLogin()

	_, err := h.run("profile", "update")
	require.Error(t, err)

	out := h.mustRun("profile", "update", "--company", "Analytical Engines")
	assert.Contains(t, out, "Profile updated successfully!")

	h.mustRun("notifications", "set", "--tasks=false", "--messages")
	out = h.mustRun("profile", "show")
	assert.Contains(t, out, "Analytical Engines")
	assert.Contains(t, out, "messages:  on")
	assert.Contains(t, out, "tasks:     off")

	_, err = h.run("password", "change", "--current", "pw", "--new", "a", "--confirm", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "New passwords do not match.")

	out = h.mustRun("password", "change", "--current", "pw", "--new", "pw2", "--confirm", "pw2")
	assert.Contains(t, out, "Password updated successfully.")
	h.mustRun("logout")
	out = h.mustRun("login", "--email", "ada@example.com", "--password", "pw2")
	assert.Contains(t, out, "Logged in successfully!")
}

func TestConfigCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("config", "show")
	assert.Contains(t, out, h.apiURL)

	_, err := h.run("config", "set-url", "not a url")
	require.Error(t, err)

	out = h.mustRun("config", "set-url", "http://crm.example.com/api/")
	assert.Contains(t, out, "http://crm.example.com/api")

	out = h.mustRun("config", "show")
	assert.Contains(t, out, "http://crm.example.com/api")
}
