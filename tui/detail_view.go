// ABOUTME: Detail screens: task, lead, customer profile, conversation, and account
// ABOUTME: Also hosts the overlay forms for new deals and customer notes
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/riwora/models"
	"github.com/harperreed/riwora/nav"
	"github.com/harperreed/riwora/viewmodel"
)

func renderField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return labelStyle.Render(label) + value + "\n"
}

func colored(color, s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(s)
}

var (
	statusCycle   = []models.TaskStatus{models.TaskNotStarted, models.TaskInProgress, models.TaskDone, models.TaskArchived}
	priorityCycle = []models.TaskPriority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh}
)

func nextStatus(s models.TaskStatus) models.TaskStatus {
	for i, st := range statusCycle {
		if st == s.Normalized() {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return statusCycle[0]
}

func nextPriority(p models.TaskPriority) models.TaskPriority {
	for i, pr := range priorityCycle {
		if pr == p.Normalized() {
			return priorityCycle[(i+1)%len(priorityCycle)]
		}
	}
	return priorityCycle[0]
}

func (m Model) taskPageScreen(e nav.Entry) *screen {
	p, _ := nav.ParamsAs[nav.TasksPageParams](e)
	detail := viewmodel.NewTaskDetail(p.Task)
	return &screen{
		entry: e,
		help:  []string{"s: Cycle status", "p: Cycle priority"},
		render: func(m Model) string {
			t := detail.Task()
			row := detail.Row()
			var b strings.Builder
			b.WriteString(titleStyle.Render(t.Title))
			b.WriteString("\n\n")
			b.WriteString(renderField("Status", colored(row.StatusColor, row.StatusLabel)))
			b.WriteString(renderField("Priority", colored(row.PriorityColor, row.PriorityLabel)))
			b.WriteString(renderField("Deadline", row.Deadline))
			b.WriteString(renderField("Description", t.Description))
			if detail.Unsaved() {
				b.WriteString("\n")
				b.WriteString(unsavedStyle.Render("Changes are local only and will not be saved."))
				b.WriteString("\n")
			}
			return b.String()
		},
		keys: func(m Model, msg tea.KeyMsg) (Model, tea.Cmd, bool) {
			switch msg.String() {
			case "s":
				detail.SetStatus(nextStatus(detail.Task().Status))
				return m, nil, true
			case "p":
				detail.SetPriority(nextPriority(detail.Task().Priority))
				return m, nil, true
			}
			return m, nil, false
		},
	}
}

func (m Model) leadPageScreen(e nav.Entry) *screen {
	p, _ := nav.ParamsAs[nav.LeadPageParams](e)
	return &screen{
		entry: e,
		render: func(m Model) string {
			d := p.Deal
			var b strings.Builder
			b.WriteString(titleStyle.Render(d.Title))
			b.WriteString("\n\n")
			b.WriteString(renderField("Status", string(d.Status)))
			b.WriteString(renderField("Description", d.Description))
			b.WriteString(renderField("Created", models.FormatDeadline(d.CreatedAt)))
			return b.String()
		},
	}
}

func newDealForm(env viewmodel.Env) *form {
	submit := func(ctx context.Context, v []string) tea.Msg {
		df := viewmodel.NewAddDealForm(env)
		df.Title, df.Description = v[0], v[1]
		d, err := df.Submit(ctx)
		return submitted(d, err, closeOverlay)
	}
	f := newForm("New deal", submit, field{label: "Title"}, field{label: "Description"})
	f.overlay = true
	return f
}

func (m Model) customerProfileScreen(e nav.Entry) *screen {
	p, _ := nav.ParamsAs[nav.CustomerProfileParams](e)
	profile := viewmodel.NewCustomerProfile(m.env, p.Customer)
	s := &screen{
		entry: e,
		view:  profile,
		help:  []string{"e: Edit", "n: Add note", "m: Message"},
	}
	s.render = func(m Model) string {
		c := profile.Customer()
		var b strings.Builder
		b.WriteString(renderErr(profile.Detail.Err()))
		b.WriteString(titleStyle.Render(c.FullName()))
		b.WriteString("\n\n")
		b.WriteString(renderField("Type", c.Type.Label()))
		b.WriteString(renderField("Email", c.Email))
		b.WriteString(renderField("Phone", c.Phone))
		b.WriteString(renderField("Notes", c.Notes))

		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Visit notes"))
		b.WriteString("\n")
		notes := profile.Notes.Items()
		if len(notes) == 0 {
			b.WriteString(helpStyle.Render("No notes yet."))
			b.WriteString("\n")
		}
		for _, n := range notes {
			b.WriteString(fmt.Sprintf("• %s: %s\n", n.Title, n.Content))
		}

		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Purchases"))
		b.WriteString("\n")
		purchases := profile.Purchases.Items()
		if len(purchases) == 0 {
			b.WriteString(helpStyle.Render("No purchases yet."))
			b.WriteString("\n")
		}
		for _, pu := range purchases {
			b.WriteString(fmt.Sprintf("• %s (%s)\n", pu.Name, pu.SKU))
		}
		return b.String()
	}
	s.keys = func(m Model, msg tea.KeyMsg) (Model, tea.Cmd, bool) {
		switch msg.String() {
		case "e":
			return handled(m.push(nav.CustomerEdit, nav.CustomerProfileParams{Customer: profile.Customer()}))
		case "m":
			c := profile.Customer()
			return handled(m.push(nav.MessageDetail, nav.MessageDetailParams{CustomerID: c.ID, CustomerName: c.FullName()}))
		case "n":
			submit := func(ctx context.Context, v []string) tea.Msg {
				d, err := profile.AddNote(ctx, v[0], v[1])
				return submitted(d, err, closeOverlay)
			}
			s.form = newForm("New note", submit, field{label: "Title"}, field{label: "Content"})
			s.form.overlay = true
			return m, nil, true
		}
		return m, nil, false
	}
	return s
}

func (m Model) conversationScreen(e nav.Entry) *screen {
	p, _ := nav.ParamsAs[nav.MessageDetailParams](e)
	conv := viewmodel.NewConversation(m.env, p.CustomerID, p.CustomerName)
	now := m.opts.Now
	s := &screen{
		entry:   e,
		view:    conv,
		cleanup: conv.Close,
		input:   newInput("Type a message"),
		help:    []string{"Enter: Send"},
	}
	s.render = func(m Model) string {
		var b strings.Builder
		b.WriteString(titleStyle.Render(conv.CustomerName()))
		b.WriteString("\n\n")
		b.WriteString(renderErr(conv.Err()))
		msgs := conv.Items()
		if len(msgs) == 0 {
			b.WriteString(helpStyle.Render("No messages yet."))
			b.WriteString("\n")
		}
		for _, msg := range msgs {
			line := fmt.Sprintf("[%s] %s", models.FormatMessageDate(msg.Time(), now()), msg.Message)
			if conv.IsProvisional(msg.Key()) {
				line += " (sending)"
			}
			if conv.IsMine(msg) {
				b.WriteString(mineStyle.Render("You " + line))
			} else {
				b.WriteString(conv.CustomerName() + " " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(s.input.View())
		return b.String()
	}
	s.keys = func(m Model, msg tea.KeyMsg) (Model, tea.Cmd, bool) {
		if msg.String() != "enter" {
			return m, nil, false
		}
		text := s.input.Value()
		s.input.SetValue("")
		ctx := m.ctx
		return m, func() tea.Msg {
			return submitted(viewmodel.Dialog{}, conv.Send(ctx, text), nil)
		}, true
	}
	return s
}

func (m Model) accountScreen(e nav.Entry) *screen {
	profile := viewmodel.NewProfile(m.env)
	s := &screen{
		entry:   e,
		view:    profile,
		cleanup: profile.Close,
		help:    []string{"e: Edit profile", "n: Notifications", "w: Change password", "x: Log out"},
	}
	s.render = func(m Model) string {
		var b strings.Builder
		b.WriteString(renderErr(profile.Err()))
		u := profile.Get()
		if u == nil {
			return b.String()
		}
		b.WriteString(renderField("Name", strings.TrimSpace(u.FirstName+" "+u.LastName)))
		b.WriteString(renderField("Email", u.Email))
		b.WriteString(renderField("Company", u.CompanyName))
		return b.String()
	}
	s.keys = func(m Model, msg tea.KeyMsg) (Model, tea.Cmd, bool) {
		switch msg.String() {
		case "e":
			return handled(m.push(nav.EditProfile, nil))
		case "n":
			return handled(m.push(nav.Notifications, nil))
		case "w":
			return handled(m.push(nav.PasswordChange, nil))
		case "x":
			return handled(m.logout())
		}
		return m, nil, false
	}
	return s
}

type toggle struct {
	label string
	get   func(models.NotificationPrefs) bool
	set   func(*models.NotificationPrefs, bool)
}

var toggles = []toggle{
	{"Push notifications", func(p models.NotificationPrefs) bool { return p.PushNotifications }, func(p *models.NotificationPrefs, v bool) { p.PushNotifications = v }},
	{"New messages", func(p models.NotificationPrefs) bool { return p.NewMessages }, func(p *models.NotificationPrefs, v bool) { p.NewMessages = v }},
	{"New customers", func(p models.NotificationPrefs) bool { return p.NewCustomers }, func(p *models.NotificationPrefs, v bool) { p.NewCustomers = v }},
	{"New tasks", func(p models.NotificationPrefs) bool { return p.NewTasks }, func(p *models.NotificationPrefs, v bool) { p.NewTasks = v }},
}

func (m Model) notificationsScreen(e nav.Entry) *screen {
	profile := viewmodel.NewProfile(m.env)
	s := &screen{
		entry:   e,
		view:    profile,
		cleanup: profile.Close,
		count:   func() int { return len(toggles) },
		help:    []string{"Space/Enter: Toggle"},
	}
	prefs := func() models.NotificationPrefs {
		if u := profile.Get(); u != nil && u.Notifications != nil {
			return *u.Notifications
		}
		return models.NotificationPrefs{}
	}
	s.render = func(m Model) string {
		var b strings.Builder
		b.WriteString(renderErr(profile.Err()))
		current := prefs()
		for i, t := range toggles {
			mark := "[ ]"
			if t.get(current) {
				mark = "[x]"
			}
			prefix := "  "
			if i == s.cursor {
				prefix = "> "
			}
			b.WriteString(fmt.Sprintf("%s%s %s\n", prefix, mark, t.label))
		}
		return b.String()
	}
	s.keys = func(m Model, msg tea.KeyMsg) (Model, tea.Cmd, bool) {
		switch msg.String() {
		case " ", "enter":
			next := prefs()
			t := toggles[s.selected(len(toggles))]
			t.set(&next, !t.get(next))
			ctx := m.ctx
			return m, func() tea.Msg {
				d, err := profile.SetNotifications(ctx, next)
				if err == nil {
					// the toggle itself is the confirmation
					d = viewmodel.Dialog{}
				}
				return submitted(d, err, nil)
			}, true
		}
		return m, nil, false
	}
	return s
}
