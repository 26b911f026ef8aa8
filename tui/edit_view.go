// ABOUTME: Multi-field forms and the screens built from them
// ABOUTME: Account entry, add/edit customer, add task, profile, and password forms
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/riwora/api"
	"github.com/harperreed/riwora/models"
	"github.com/harperreed/riwora/nav"
	"github.com/harperreed/riwora/viewmodel"
)

type field struct {
	label  string
	value  string
	secret bool
}

type form struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int

	// overlay forms sit on top of a screen and close on Esc instead of
	// popping the route.
	overlay bool
	submit  func(ctx context.Context, values []string) tea.Msg
}

func newForm(title string, submit func(ctx context.Context, values []string) tea.Msg, fields ...field) *form {
	f := &form{title: title, submit: submit}
	for _, fd := range fields {
		in := newInput(fd.label)
		in.SetValue(fd.value)
		if fd.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		in.Blur()
		f.labels = append(f.labels, fd.label)
		f.inputs = append(f.inputs, *in)
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func (f *form) values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = in.Value()
	}
	return out
}

func (f *form) setFocus(i int) {
	n := len(f.inputs)
	f.focus = ((i % n) + n) % n
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *form) view() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(f.title))
	s.WriteString("\n\n")
	for i, in := range f.inputs {
		if i == f.focus {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(labelStyle.Render(f.labels[i]))
		s.WriteString(in.View())
		s.WriteString("\n")
	}
	return s.String()
}

func (f *form) help() []string {
	return []string{"Tab: Next field", "Enter: Save", "Esc: Cancel"}
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	f := m.screen.form
	if !f.overlay && m.screen.keys != nil {
		if next, cmd, ok := m.screen.keys(m, msg); ok {
			return next, cmd
		}
	}

	switch msg.String() {
	case "esc":
		if f.overlay {
			m.screen.form = nil
			return m, nil
		}
		return m.back()
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return m, nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return m, nil
	case "enter":
		if f.focus < len(f.inputs)-1 {
			f.setFocus(f.focus + 1)
			return m, nil
		}
		ctx, values := m.ctx, f.values()
		return m, func() tea.Msg { return f.submit(ctx, values) }
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return m, cmd
}

// popAfter is the success continuation of a form that owns its route.
func popAfter(m Model) (Model, tea.Cmd) {
	return m.back()
}

// closeOverlay is the success continuation of an overlay form.
func closeOverlay(m Model) (Model, tea.Cmd) {
	m.screen.form = nil
	return m, nil
}

func submitted(d viewmodel.Dialog, err error, after func(Model) (Model, tea.Cmd)) tea.Msg {
	return submittedMsg{dialog: d, err: err, after: after}
}

func (m Model) loginScreen(e nav.Entry) *screen {
	client, save := m.opts.Client, m.opts.SaveIdentity
	submit := func(ctx context.Context, v []string) tea.Msg {
		lf := viewmodel.NewLoginForm(client)
		lf.Email, lf.Password = v[0], v[1]
		id, d, err := lf.Submit(ctx)
		if err == nil && save != nil {
			if serr := save(id.UserID); serr != nil {
				return submitted(viewmodel.Dialog{}, fmt.Errorf("failed to save session: %w", serr), nil)
			}
		}
		return submitted(d, err, func(m Model) (Model, tea.Cmd) { return m.login(id) })
	}
	return &screen{
		entry: e,
		form:  newForm("Welcome back", submit, field{label: "Email"}, field{label: "Password", secret: true}),
		help:  []string{"Ctrl+N: Sign up", "Ctrl+R: Forgot password"},
		keys: func(m Model, msg tea.KeyMsg) (Model, tea.Cmd, bool) {
			switch msg.String() {
			case "ctrl+n":
				next, cmd := m.push(nav.SignUp, nil)
				return next, cmd, true
			case "ctrl+r":
				next, cmd := m.push(nav.Recovery, nil)
				return next, cmd, true
			}
			return m, nil, false
		},
	}
}

func (m Model) signupScreen(e nav.Entry) *screen {
	client := m.opts.Client
	submit := func(ctx context.Context, v []string) tea.Msg {
		sf := viewmodel.NewSignupForm(client)
		sf.FirstName, sf.LastName, sf.CompanyName, sf.Email, sf.Password = v[0], v[1], v[2], v[3], v[4]
		d, err := sf.Submit(ctx)
		return submitted(d, err, popAfter)
	}
	return &screen{
		entry: e,
		form: newForm("Create an account", submit,
			field{label: "First name"},
			field{label: "Last name"},
			field{label: "Company"},
			field{label: "Email"},
			field{label: "Password", secret: true},
		),
	}
}

// recoveryScreen asks for the email, then swaps in the token form once the
// reset mail is on its way.
func (m Model) recoveryScreen(e nav.Entry) *screen {
	client := m.opts.Client
	s := &screen{entry: e}

	reset := func(ctx context.Context, v []string) tea.Msg {
		rf := viewmodel.NewResetPasswordForm(client)
		rf.Token, rf.NewPassword = v[0], v[1]
		d, err := rf.Submit(ctx)
		return submitted(d, err, popAfter)
	}
	request := func(ctx context.Context, v []string) tea.Msg {
		rf := viewmodel.NewRecoveryForm(client)
		rf.Email = v[0]
		d, err := rf.Submit(ctx)
		return submitted(d, err, func(m Model) (Model, tea.Cmd) {
			s.form = newForm("Reset password", reset, field{label: "Reset token"}, field{label: "New password", secret: true})
			return m, nil
		})
	}
	s.form = newForm("Password recovery", request, field{label: "Email"})
	return s
}

func (m Model) addTaskScreen(e nav.Entry) *screen {
	env, now := m.env, m.opts.Now()
	defaults := viewmodel.NewAddTaskForm(env, now)
	submit := func(ctx context.Context, v []string) tea.Msg {
		tf := viewmodel.NewAddTaskForm(env, now)
		tf.Title, tf.Description, tf.Deadline = v[0], v[1], v[2]
		tf.Status = models.TaskStatus(v[3])
		tf.Priority = models.TaskPriority(v[4])
		d, err := tf.Submit(ctx)
		return submitted(d, err, popAfter)
	}
	return &screen{
		entry: e,
		form: newForm("New task", submit,
			field{label: "Title"},
			field{label: "Description"},
			field{label: "Deadline", value: defaults.Deadline},
			field{label: "Status", value: string(defaults.Status)},
			field{label: "Priority", value: string(defaults.Priority)},
		),
	}
}

func (m Model) addCustomerScreen(e nav.Entry) *screen {
	env := m.env
	p, _ := nav.ParamsAs[nav.CustomerListParams](e)
	defaults := viewmodel.NewAddCustomerForm(env, p.Type)
	submit := func(ctx context.Context, v []string) tea.Msg {
		cf := viewmodel.NewAddCustomerForm(env, models.CustomerType(v[4]))
		cf.FirstName, cf.LastName, cf.Email, cf.Phone, cf.Notes = v[0], v[1], v[2], v[3], v[5]
		d, err := cf.Submit(ctx)
		return submitted(d, err, popAfter)
	}
	return &screen{
		entry: e,
		form: newForm("New customer", submit,
			field{label: "First name"},
			field{label: "Last name"},
			field{label: "Email"},
			field{label: "Phone"},
			field{label: "Type", value: string(defaults.Type)},
			field{label: "Notes"},
		),
	}
}

func (m Model) editCustomerScreen(e nav.Entry) *screen {
	env := m.env
	p, _ := nav.ParamsAs[nav.CustomerProfileParams](e)
	current := viewmodel.NewEditCustomerForm(env, p.Customer)
	submit := func(ctx context.Context, v []string) tea.Msg {
		cf := viewmodel.NewEditCustomerForm(env, p.Customer)
		cf.FirstName, cf.LastName, cf.Email, cf.Phone, cf.Notes = v[0], v[1], v[2], v[3], v[5]
		cf.Type = models.CustomerType(v[4])
		d, err := cf.Submit(ctx)
		return submitted(d, err, popAfter)
	}
	return &screen{
		entry: e,
		form: newForm("Edit "+p.Customer.FullName(), submit,
			field{label: "First name", value: current.FirstName},
			field{label: "Last name", value: current.LastName},
			field{label: "Email", value: current.Email},
			field{label: "Phone", value: current.Phone},
			field{label: "Type", value: string(current.Type)},
			field{label: "Notes", value: current.Notes},
		),
	}
}

func (m Model) editProfileScreen(e nav.Entry) *screen {
	profile := viewmodel.NewProfile(m.env)
	submit := func(ctx context.Context, v []string) tea.Msg {
		d, err := profile.UpdateProfile(ctx, api.ProfileUpdate{
			FirstName:   strings.TrimSpace(v[0]),
			LastName:    strings.TrimSpace(v[1]),
			Email:       strings.TrimSpace(v[2]),
			CompanyName: strings.TrimSpace(v[3]),
		})
		return submitted(d, err, popAfter)
	}
	return &screen{
		entry: e,
		form: newForm("Edit profile (blank fields stay unchanged)", submit,
			field{label: "First name"},
			field{label: "Last name"},
			field{label: "Email"},
			field{label: "Company"},
		),
	}
}

func (m Model) passwordScreen(e nav.Entry) *screen {
	profile := viewmodel.NewProfile(m.env)
	submit := func(ctx context.Context, v []string) tea.Msg {
		d, err := profile.ChangePassword(ctx, v[0], v[1], v[2])
		return submitted(d, err, popAfter)
	}
	return &screen{
		entry: e,
		form: newForm("Change password", submit,
			field{label: "Current", secret: true},
			field{label: "New", secret: true},
			field{label: "Confirm", secret: true},
		),
	}
}
