// ABOUTME: List screens: dashboard, tasks, leads, customers, inbox, and search
// ABOUTME: Tables are rebuilt from the mounted view-model on every render
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/riwora/models"
	"github.com/harperreed/riwora/nav"
	"github.com/harperreed/riwora/viewmodel"
)

func (m Model) renderTable(columns []table.Column, rows []table.Row, cursor int) string {
	if len(rows) == 0 {
		return helpStyle.Render("Nothing here yet.")
	}
	height := m.height - 12
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	if cursor < len(rows) {
		t.SetCursor(cursor)
	}
	return t.View()
}

func renderErr(err error) string {
	if err == nil {
		return ""
	}
	return errorStyle.Render(fmt.Sprintf("Error: %v", err)) + "\n\n"
}

func handled(m Model, cmd tea.Cmd) (Model, tea.Cmd, bool) {
	return m, cmd, true
}

func taskTable(m Model, rows []viewmodel.TaskRow, cursor int) string {
	columns := []table.Column{
		{Title: "Task", Width: 30},
		{Title: "Status", Width: 14},
		{Title: "Priority", Width: 10},
		{Title: "Deadline", Width: 14},
	}
	var trs []table.Row
	for _, r := range rows {
		trs = append(trs, table.Row{r.Title, r.StatusLabel, r.PriorityLabel, r.Deadline})
	}
	return m.renderTable(columns, trs, cursor)
}

func (m Model) dashboardScreen(e nav.Entry) *screen {
	d := viewmodel.NewDashboard(m.env)
	s := &screen{
		entry:   e,
		view:    d,
		cleanup: d.Close,
		count:   func() int { return len(d.Data().Tasks) },
		help:    []string{"t: Tasks", "o/c: Open/Closed leads", "u: Customers", "s: Messages", "p: Profile", "/: Search"},
	}
	s.render = func(m Model) string {
		data := d.Data()
		var b strings.Builder
		b.WriteString(renderErr(d.Err()))
		counters := []struct {
			label string
			value any
		}{
			{"New customers", data.NewCustomers},
			{"Pending", data.PendingCustomers},
			{"Be-back", data.BeBackCustomers},
			{"Active listings", data.ActiveListings},
			{"Sales", data.Sales},
			{"Open deals", data.OpenDeals},
			{"Closed deals", data.ClosedDeals},
		}
		for _, c := range counters {
			b.WriteString(labelStyle.Render(c.label))
			b.WriteString(fmt.Sprint(c.value))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(taskTable(m, d.TaskRows(), s.cursor))
		return b.String()
	}
	s.keys = func(m Model, msg tea.KeyMsg) (Model, tea.Cmd, bool) {
		switch msg.String() {
		case "t":
			return handled(m.push(nav.Tasks, nil))
		case "o":
			return handled(m.push(nav.OpenLeads, nil))
		case "c":
			return handled(m.push(nav.ClosedLeads, nil))
		case "u":
			return handled(m.push(nav.Customer, nav.CustomerListParams{Type: models.CustomerNew}))
		case "s":
			return handled(m.push(nav.Sent, nil))
		case "p":
			return handled(m.push(nav.Profile, nil))
		case "/":
			return handled(m.push(nav.RecentSearch, nil))
		case "enter":
			tasks := d.Data().Tasks
			if i := s.selected(len(tasks)); i >= 0 {
				return handled(m.push(nav.TasksPage, nav.TasksPageParams{Task: tasks[i]}))
			}
			return m, nil, true
		}
		return m, nil, false
	}
	return s
}

func (m Model) tasksScreen(e nav.Entry) *screen {
	tasks := viewmodel.NewTasks(m.env)
	s := &screen{
		entry:   e,
		view:    tasks,
		cleanup: tasks.Close,
		count:   func() int { return len(tasks.Items()) },
		help:    []string{"Enter: Open", "a: Add task", "r: Refresh"},
	}
	s.render = func(m Model) string {
		return renderErr(tasks.Err()) + taskTable(m, tasks.Rows(), s.cursor)
	}
	s.keys = func(m Model, msg tea.KeyMsg) (Model, tea.Cmd, bool) {
		switch msg.String() {
		case "a":
			return handled(m.push(nav.AddTaskScreen, nil))
		case "enter":
			items := tasks.Items()
			if i := s.selected(len(items)); i >= 0 {
				return handled(m.push(nav.TasksPage, nav.TasksPageParams{Task: items[i]}))
			}
			return m, nil, true
		}
		return m, nil, false
	}
	return s
}

func (m Model) dealsScreen(e nav.Entry) *screen {
	status := models.DealOpen
	if e.Route == nav.ClosedLeads {
		status = models.DealClosed
	}
	deals := viewmodel.NewDeals(m.env, status)
	s := &screen{
		entry:   e,
		view:    deals,
		cleanup: deals.Close,
		count:   func() int { return len(deals.Items()) },
		help:    []string{"Enter: Open"},
	}
	if status == models.DealOpen {
		s.help = append(s.help, "a: Add deal")
	}
	s.render = func(m Model) string {
		columns := []table.Column{
			{Title: "Deal", Width: 30},
			{Title: "Description", Width: 40},
		}
		var rows []table.Row
		for _, d := range deals.Items() {
			rows = append(rows, table.Row{d.Title, d.Description})
		}
		return renderErr(deals.Err()) + m.renderTable(columns, rows, s.cursor)
	}
	env := m.env
	s.keys = func(m Model, msg tea.KeyMsg) (Model, tea.Cmd, bool) {
		switch msg.String() {
		case "a":
			if status != models.DealOpen {
				return m, nil, false
			}
			s.form = newDealForm(env)
			return m, nil, true
		case "enter":
			items := deals.Items()
			if i := s.selected(len(items)); i >= 0 {
				return handled(m.push(nav.LeadPage, nav.LeadPageParams{Deal: items[i]}))
			}
			return m, nil, true
		}
		return m, nil, false
	}
	return s
}

var customerTypes = []models.CustomerType{models.CustomerNew, models.CustomerBeBack, models.CustomerPending}

func (m Model) customersScreen(e nav.Entry) *screen {
	p, _ := nav.ParamsAs[nav.CustomerListParams](e)
	if p.Type == "" {
		p.Type = models.CustomerNew
	}
	customers := viewmodel.NewCustomers(m.env, p.Type)
	s := &screen{
		entry:   e,
		view:    customers,
		cleanup: customers.Close,
		count:   func() int { return len(customers.Items()) },
		help:    []string{"←/→: Switch list", "Enter: Profile", "a: Add customer"},
	}
	s.render = func(m Model) string {
		var tabs []string
		for _, t := range customerTypes {
			if t == p.Type {
				tabs = append(tabs, tabActiveStyle.Render(t.Label()))
			} else {
				tabs = append(tabs, tabInactiveStyle.Render(t.Label()))
			}
		}
		columns := []table.Column{
			{Title: "Name", Width: 30},
			{Title: "Email", Width: 30},
			{Title: "Phone", Width: 16},
		}
		var rows []table.Row
		for _, c := range customers.Items() {
			rows = append(rows, table.Row{c.FullName(), c.Email, c.Phone})
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n" +
			renderErr(customers.Err()) + m.renderTable(columns, rows, s.cursor)
	}
	s.keys = func(m Model, msg tea.KeyMsg) (Model, tea.Cmd, bool) {
		switch msg.String() {
		case "left", "h", "right", "l":
			delta := 1
			if msg.String() == "left" || msg.String() == "h" {
				delta = -1
			}
			next := customerTypes[(typeIndex(p.Type)+delta+len(customerTypes))%len(customerTypes)]
			return handled(m.navigate(func(st *nav.Stack) error {
				return st.Navigate(nav.Customer, nav.CustomerListParams{Type: next})
			}))
		case "a":
			return handled(m.push(nav.CustomerAdd, nav.CustomerListParams{Type: p.Type}))
		case "enter":
			items := customers.Items()
			if i := s.selected(len(items)); i >= 0 {
				return handled(m.push(nav.CustomerProfile, nav.CustomerProfileParams{Customer: items[i]}))
			}
			return m, nil, true
		}
		return m, nil, false
	}
	return s
}

func typeIndex(t models.CustomerType) int {
	for i, ct := range customerTypes {
		if ct == t {
			return i
		}
	}
	return 0
}

func (m Model) inboxScreen(e nav.Entry) *screen {
	inbox := viewmodel.NewInbox(m.env)
	now := m.opts.Now
	s := &screen{
		entry:   e,
		view:    inbox,
		cleanup: inbox.Close,
		count:   func() int { return len(inbox.Items()) },
		help:    []string{"Enter: Open conversation"},
	}
	s.render = func(m Model) string {
		columns := []table.Column{
			{Title: "Customer", Width: 24},
			{Title: "Last message", Width: 40},
			{Title: "Date", Width: 12},
		}
		var rows []table.Row
		for _, entry := range inbox.Items() {
			rows = append(rows, table.Row{entry.CustomerName, entry.Message.Message, models.FormatMessageDate(entry.Time(), now())})
		}
		return renderErr(inbox.Err()) + m.renderTable(columns, rows, s.cursor)
	}
	s.keys = func(m Model, msg tea.KeyMsg) (Model, tea.Cmd, bool) {
		if msg.String() != "enter" {
			return m, nil, false
		}
		items := inbox.Items()
		if i := s.selected(len(items)); i >= 0 {
			return handled(m.push(nav.MessageDetail, nav.MessageDetailParams{
				CustomerID:   items[i].Receiver,
				CustomerName: items[i].CustomerName,
			}))
		}
		return m, nil, true
	}
	return s
}

func (m Model) searchScreen(e nav.Entry) *screen {
	search := viewmodel.NewSearch(m.env)
	s := &screen{
		entry: e,
		view:  search,
		count: func() int { return len(search.Items()) },
		input: newInput("Search customers"),
		help:  []string{"Type to search", "↑/↓: Select", "Enter: Profile"},
	}
	s.onInput = func(m Model, value string) tea.Cmd {
		seq := m.seq
		return func() tea.Msg {
			return loadedMsg{seq: seq, err: search.SetQuery(value)}
		}
	}
	s.render = func(m Model) string {
		var b strings.Builder
		b.WriteString(s.input.View())
		b.WriteString("\n\n")
		if search.Query() == "" {
			b.WriteString(helpStyle.Render("Start typing to search."))
			return b.String()
		}
		columns := []table.Column{
			{Title: "Name", Width: 30},
			{Title: "Email", Width: 30},
			{Title: "Type", Width: 12},
		}
		var rows []table.Row
		for _, c := range search.Items() {
			rows = append(rows, table.Row{c.FullName(), c.Email, c.Type.Label()})
		}
		b.WriteString(renderErr(search.Err()))
		b.WriteString(m.renderTable(columns, rows, s.cursor))
		return b.String()
	}
	s.keys = func(m Model, msg tea.KeyMsg) (Model, tea.Cmd, bool) {
		if msg.String() != "enter" {
			return m, nil, false
		}
		items := search.Items()
		if i := s.selected(len(items)); i >= 0 {
			return handled(m.push(nav.CustomerProfile, nav.CustomerProfileParams{Customer: items[i]}))
		}
		return m, nil, true
	}
	return s
}
