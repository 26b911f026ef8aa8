// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Hosts the navigation stack and renders one screen view-model at a time
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/riwora/api"
	"github.com/harperreed/riwora/nav"
	"github.com/harperreed/riwora/session"
	"github.com/harperreed/riwora/viewmodel"
)

// Options wires the host to storage and the backend. SaveIdentity and
// ClearIdentity persist login and logout; either may be nil.
type Options struct {
	Env           viewmodel.Env
	Client        *api.Client
	SaveIdentity  func(userID string) error
	ClearIdentity func() error
	Now           func() time.Time
}

// Model is the main bubbletea model
type Model struct {
	ctx    context.Context
	opts   Options
	env    viewmodel.Env
	stack  *nav.Stack
	screen *screen
	seq    int

	loading bool
	initCmd tea.Cmd
	spinner spinner.Model
	dialog  *viewmodel.Dialog

	// UI state
	width  int
	height int
}

// loadedMsg reports that the screen built with seq finished mounting.
type loadedMsg struct {
	seq int
	err error
}

// submittedMsg carries a form result. after runs only when err is nil.
type submittedMsg struct {
	dialog viewmodel.Dialog
	err    error
	after  func(m Model) (Model, tea.Cmd)
}

// NewModel creates the host at Login or Dashboard depending on whether the
// environment carries a user. Call Start to build and load the first screen.
func NewModel(ctx context.Context, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	env := opts.Env
	if env.Triggers == nil {
		env.Triggers = viewmodel.NewTriggers()
	}
	if opts.Client == nil {
		opts.Client = env.API
	}
	if env.API == nil {
		env.API = opts.Client
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		ctx:     ctx,
		opts:    opts,
		env:     env,
		stack:   nav.NewStack(env.Identity),
		spinner: sp,
		width:   80,
		height:  24,
	}
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	m, load := NewModel(ctx, opts).Start()
	m.initCmd = load
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if m, ok := final.(Model); ok && m.screen != nil {
		m.screen.close()
	}
	return err
}

// Start builds the screen for the current route and returns its load command.
func (m Model) Start() (Model, tea.Cmd) {
	return m.show()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.initCmd, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case loadedMsg:
		if msg.seq == m.seq {
			m.loading = false
		}
		return m, nil
	case submittedMsg:
		return m.handleSubmitted(msg)
	}
	return m, nil
}

func (m Model) handleSubmitted(msg submittedMsg) (Model, tea.Cmd) {
	d := msg.dialog
	if msg.err != nil && d.Message == "" {
		d = viewmodel.Dialog{Title: viewmodel.TitleError, Message: msg.err.Error()}
	}
	if d.Message != "" {
		m.dialog = &d
	}
	if msg.err != nil || msg.after == nil {
		return m, nil
	}
	return msg.after(m)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.dialog != nil {
		// any key dismisses the dialog
		m.dialog = nil
		return m, nil
	}
	if m.screen == nil {
		return m, nil
	}

	if m.screen.form != nil {
		return m.handleFormKeys(msg)
	}
	if m.screen.input != nil {
		if next, cmd, ok := m.handleInputKeys(msg); ok {
			return next, cmd
		}
	}
	if m.screen.keys != nil {
		if next, cmd, ok := m.screen.keys(m, msg); ok {
			return next, cmd
		}
	}

	switch msg.String() {
	case "q":
		return m.quit()
	case "esc", "backspace":
		return m.back()
	case "up", "k":
		m.screen.move(-1)
	case "down", "j":
		m.screen.move(1)
	case "r":
		return m.reload()
	}
	return m, nil
}

func (m Model) quit() (Model, tea.Cmd) {
	if m.screen != nil {
		m.screen.close()
	}
	return m, tea.Quit
}

// navigate applies a stack move and shows whatever ends up on top.
func (m Model) navigate(move func(*nav.Stack) error) (Model, tea.Cmd) {
	if err := move(m.stack); err != nil {
		m.dialog = &viewmodel.Dialog{Title: viewmodel.TitleError, Message: err.Error()}
		return m, nil
	}
	return m.show()
}

func (m Model) push(route nav.Route, params any) (Model, tea.Cmd) {
	return m.navigate(func(s *nav.Stack) error { return s.Push(route, params) })
}

func (m Model) back() (Model, tea.Cmd) {
	if _, ok := m.stack.Pop(); !ok {
		return m, nil
	}
	return m.show()
}

// show tears down the current screen, builds the one for the top of the
// stack, and mounts it in the background.
func (m Model) show() (Model, tea.Cmd) {
	if m.screen != nil {
		m.screen.close()
	}
	m.seq++
	m.screen = m.build(m.stack.Current())
	return m.mount()
}

func (m Model) mount() (Model, tea.Cmd) {
	s := m.screen
	if s.view == nil {
		m.loading = false
		return m, nil
	}
	m.loading = true
	ctx, seq := m.ctx, m.seq
	return m, func() tea.Msg {
		return loadedMsg{seq: seq, err: s.view.Mount(ctx)}
	}
}

func (m Model) reload() (Model, tea.Cmd) {
	if m.screen == nil || m.screen.view == nil {
		return m, nil
	}
	m.screen.view.Unmount()
	return m.mount()
}

// login persists the identity and restarts navigation at the dashboard.
func (m Model) login(id session.Identity) (Model, tea.Cmd) {
	m.env.Identity = id
	return m.navigate(func(s *nav.Stack) error { return s.Reset(nav.Dashboard, nil) })
}

func (m Model) logout() (Model, tea.Cmd) {
	if m.opts.ClearIdentity != nil {
		if err := m.opts.ClearIdentity(); err != nil {
			m.dialog = &viewmodel.Dialog{Title: viewmodel.TitleError, Message: fmt.Sprintf("Failed to log out: %v", err)}
			return m, nil
		}
	}
	m.env.Identity = session.Identity{}
	return m.navigate(func(s *nav.Stack) error { return s.Reset(nav.Login, nil) })
}

// Route is the route currently on display.
func (m Model) Route() nav.Route {
	return m.stack.Current().Route
}

// Dialog returns the dialog awaiting dismissal, if any.
func (m Model) Dialog() *viewmodel.Dialog {
	return m.dialog
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(m.renderBreadcrumbs())
	s.WriteString("\n\n")

	if m.dialog != nil {
		s.WriteString(m.renderDialog())
		return s.String()
	}

	if m.loading {
		s.WriteString(m.spinner.View())
		s.WriteString(" Loading...\n\n")
	}
	if m.screen != nil {
		if m.screen.render != nil {
			s.WriteString(m.screen.render(m))
		}
		if m.screen.form != nil {
			s.WriteString("\n")
			s.WriteString(m.screen.form.view())
		}
		s.WriteString("\n")
		s.WriteString(helpStyle.Render(strings.Join(m.screen.helpLine(), " • ")))
	}
	return s.String()
}

func (m Model) renderBreadcrumbs() string {
	entries := m.stack.Entries()
	titles := make([]string, 0, len(entries))
	for i, e := range entries {
		if i == len(entries)-1 {
			titles = append(titles, titleStyle.Render(strings.ToUpper(e.Route.Title())))
			continue
		}
		titles = append(titles, crumbStyle.Render(e.Route.Title()))
	}
	return strings.Join(titles, crumbStyle.Render(" › "))
}

func (m Model) renderDialog() string {
	style := successStyle
	if m.dialog.IsError() {
		style = errorStyle
	}
	body := style.Render(m.dialog.Title) + "\n\n" + m.dialog.Message + "\n\n" + helpStyle.Render("Press any key to continue")
	return dialogStyle.Render(body)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	crumbStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(18)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("170")).
			Padding(1, 2)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	mineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	unsavedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)
