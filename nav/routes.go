// ABOUTME: Named routes and their typed parameter bags
// ABOUTME: Each route accepts exactly one params type (or none)
package nav

import (
	"fmt"

	"github.com/harperreed/riwora/models"
)

type Route string

const (
	Login           Route = "Login"
	SignUp          Route = "SignUp"
	Recovery        Route = "Recovery"
	Dashboard       Route = "Dashboard"
	Tasks           Route = "Tasks"
	TasksPage       Route = "TasksPage"
	AddTaskScreen   Route = "AddTaskScreen"
	OpenLeads       Route = "OpenLeads"
	ClosedLeads     Route = "ClosedLeads"
	LeadPage        Route = "LeadPage"
	Customer        Route = "Customer"
	CustomerProfile Route = "CustomerProfile"
	CustomerEdit    Route = "CustomerEdit"
	CustomerAdd     Route = "CustomerAdd"
	MessageDetail   Route = "MessageDetail"
	Sent            Route = "Sent"
	Profile         Route = "Profile"
	EditProfile     Route = "EditProfile"
	Notifications   Route = "Notifications"
	PasswordChange  Route = "PasswordChange"
	RecentSearch    Route = "RecentSearch"
)

// All lists every route in menu order.
var All = []Route{
	Login, SignUp, Recovery,
	Dashboard, Tasks, TasksPage, AddTaskScreen,
	OpenLeads, ClosedLeads, LeadPage,
	Customer, CustomerProfile, CustomerEdit, CustomerAdd,
	MessageDetail, Sent,
	Profile, EditProfile, Notifications, PasswordChange,
	RecentSearch,
}

var titles = map[Route]string{
	Login:           "Log In",
	SignUp:          "Sign Up",
	Recovery:        "Password Recovery",
	Dashboard:       "Dashboard",
	Tasks:           "Tasks",
	TasksPage:       "Task",
	AddTaskScreen:   "Add Task",
	OpenLeads:       "Open Leads",
	ClosedLeads:     "Closed Leads",
	LeadPage:        "Lead",
	Customer:        "Customers",
	CustomerProfile: "Customer Profile",
	CustomerEdit:    "Edit Customer",
	CustomerAdd:     "Add Customer",
	MessageDetail:   "Conversation",
	Sent:            "Messages",
	Profile:         "Profile",
	EditProfile:     "Edit Profile",
	Notifications:   "Notifications",
	PasswordChange:  "Change Password",
	RecentSearch:    "Search",
}

func (r Route) Title() string {
	if t, ok := titles[r]; ok {
		return t
	}
	return string(r)
}

// Public routes are reachable without a logged-in user.
func (r Route) Public() bool {
	return r == Login || r == SignUp || r == Recovery
}

type CustomerListParams struct {
	Type           models.CustomerType
	RefreshTrigger uint64
}

type CustomerProfileParams struct {
	Customer models.Customer
}

type TasksPageParams struct {
	Task models.Task
}

type LeadPageParams struct {
	Deal models.Deal
}

type MessageDetailParams struct {
	CustomerID   string
	CustomerName string
}

type DashboardParams struct {
	RefreshTrigger uint64
}

// validate checks that params is the bag route expects.
func validate(route Route, params any) error {
	if _, ok := titles[route]; !ok {
		return fmt.Errorf("unknown route %q", route)
	}

	var ok bool
	required := false
	switch route {
	case Dashboard:
		_, ok = params.(DashboardParams)
	case Customer, CustomerAdd:
		_, ok = params.(CustomerListParams)
	case CustomerProfile, CustomerEdit:
		_, ok = params.(CustomerProfileParams)
		required = true
	case TasksPage:
		_, ok = params.(TasksPageParams)
		required = true
	case LeadPage:
		_, ok = params.(LeadPageParams)
		required = true
	case MessageDetail:
		var p MessageDetailParams
		p, ok = params.(MessageDetailParams)
		if ok && p.CustomerID == "" {
			return fmt.Errorf("%s: customer id is required", route)
		}
		required = true
	default:
		if params != nil {
			return fmt.Errorf("%s takes no params, got %T", route, params)
		}
		return nil
	}

	if params == nil && !required {
		return nil
	}
	if !ok {
		return fmt.Errorf("%s: unexpected params %T", route, params)
	}
	return nil
}
