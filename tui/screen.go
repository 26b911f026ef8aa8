// ABOUTME: Per-route screen state: the mounted view-model, cursor, and key bindings
// ABOUTME: build maps each navigation entry to the screen that renders it
package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/riwora/nav"
	"github.com/harperreed/riwora/viewmodel"
)

type screen struct {
	entry nav.Entry

	// view is mounted when the screen is shown and unmounted when it
	// leaves. Form-only screens have none.
	view    viewmodel.Mountable
	cleanup func()

	cursor int
	count  func() int

	render func(m Model) string
	keys   func(m Model, msg tea.KeyMsg) (Model, tea.Cmd, bool)
	help   []string

	form *form

	// input is a single always-focused line; onInput runs when it changes.
	input   *textinput.Model
	onInput func(m Model, value string) tea.Cmd
}

func (s *screen) move(delta int) {
	if s.count == nil {
		return
	}
	n := s.count()
	if n == 0 {
		s.cursor = 0
		return
	}
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor >= n {
		s.cursor = n - 1
	}
}

// selected returns the cursor clamped to n items, or -1 when empty.
func (s *screen) selected(n int) int {
	if n == 0 {
		return -1
	}
	if s.cursor >= n {
		return n - 1
	}
	return s.cursor
}

func (s *screen) close() {
	if s.cleanup != nil {
		s.cleanup()
		return
	}
	if s.view != nil {
		s.view.Unmount()
	}
}

func (s *screen) helpLine() []string {
	if s.form != nil {
		return append(s.form.help(), s.help...)
	}
	return append(s.help, "Esc: Back", "q: Quit")
}

func newInput(placeholder string) *textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 500
	ti.Width = 50
	_ = ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return &ti
}

func (m Model) build(e nav.Entry) *screen {
	switch e.Route {
	case nav.Login:
		return m.loginScreen(e)
	case nav.SignUp:
		return m.signupScreen(e)
	case nav.Recovery:
		return m.recoveryScreen(e)
	case nav.Dashboard:
		return m.dashboardScreen(e)
	case nav.Tasks:
		return m.tasksScreen(e)
	case nav.TasksPage:
		return m.taskPageScreen(e)
	case nav.AddTaskScreen:
		return m.addTaskScreen(e)
	case nav.OpenLeads, nav.ClosedLeads:
		return m.dealsScreen(e)
	case nav.LeadPage:
		return m.leadPageScreen(e)
	case nav.Customer:
		return m.customersScreen(e)
	case nav.CustomerAdd:
		return m.addCustomerScreen(e)
	case nav.CustomerProfile:
		return m.customerProfileScreen(e)
	case nav.CustomerEdit:
		return m.editCustomerScreen(e)
	case nav.Sent:
		return m.inboxScreen(e)
	case nav.MessageDetail:
		return m.conversationScreen(e)
	case nav.Profile:
		return m.accountScreen(e)
	case nav.EditProfile:
		return m.editProfileScreen(e)
	case nav.Notifications:
		return m.notificationsScreen(e)
	case nav.PasswordChange:
		return m.passwordScreen(e)
	case nav.RecentSearch:
		return m.searchScreen(e)
	}
	return &screen{entry: e, render: func(Model) string { return "Unknown screen" }}
}

func (m Model) handleInputKeys(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "esc":
		next, cmd := m.back()
		return next, cmd, true
	case "up", "down", "enter":
		return m, nil, false
	}
	in := m.screen.input
	before := in.Value()
	updated, cmd := in.Update(msg)
	*in = updated
	if m.screen.onInput != nil && updated.Value() != before {
		return m, tea.Batch(cmd, m.screen.onInput(m, updated.Value())), true
	}
	return m, cmd, true
}
