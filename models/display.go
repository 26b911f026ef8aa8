// ABOUTME: Display shaping for task status, priority, customer type, and dates
// ABOUTME: Maps closed enumerations to labels and colors with fallback styles
package models

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskNotStarted TaskStatus = "notStarted"
	TaskInProgress TaskStatus = "inProgress"
	TaskDone       TaskStatus = "done"
	TaskArchived   TaskStatus = "archived"
)

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// Fallback colors for values outside the enumerations.
const (
	DefaultStatusColor   = "#B0B0B0"
	DefaultPriorityColor = "#D3D3D3"
)

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// Normalized maps free-form spellings ("In Progress", "inprogress") onto the
// canonical status. Unknown values are returned unchanged.
func (s TaskStatus) Normalized() TaskStatus {
	switch normalize(string(s)) {
	case "notstarted":
		return TaskNotStarted
	case "inprogress":
		return TaskInProgress
	case "done":
		return TaskDone
	case "archived":
		return TaskArchived
	}
	return s
}

// Known reports whether the status is one of the closed enumeration values.
func (s TaskStatus) Known() bool {
	switch s.Normalized() {
	case TaskNotStarted, TaskInProgress, TaskDone, TaskArchived:
		return true
	}
	return false
}

func (s TaskStatus) Label() string {
	switch s.Normalized() {
	case TaskInProgress:
		return "In Progress"
	case TaskNotStarted:
		return "Not Started"
	case TaskDone:
		return "Done"
	case TaskArchived:
		return "Archived"
	}
	return string(s)
}

func (s TaskStatus) Color() string {
	switch s.Normalized() {
	case TaskDone:
		return "#C3E88D"
	case TaskNotStarted:
		return "#D3D3D3"
	case TaskInProgress:
		return "#A0D1FB"
	}
	return DefaultStatusColor
}

func (p TaskPriority) Normalized() TaskPriority {
	switch normalize(string(p)) {
	case "high":
		return PriorityHigh
	case "medium":
		return PriorityMedium
	case "low":
		return PriorityLow
	}
	return p
}

func (p TaskPriority) Known() bool {
	switch p.Normalized() {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

func (p TaskPriority) Label() string {
	switch p.Normalized() {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	}
	return string(p)
}

func (p TaskPriority) Color() string {
	switch p.Normalized() {
	case PriorityHigh:
		return "#FFBABA"
	case PriorityMedium:
		return "#FCEABB"
	case PriorityLow:
		return "#D4F1BE"
	}
	return DefaultPriorityColor
}

func (c CustomerType) Label() string {
	switch c {
	case CustomerNew:
		return "New"
	case CustomerBeBack:
		return "Be Back"
	case CustomerPending:
		return "Pending"
	}
	return string(c)
}

// ParseCustomerType accepts the wire values plus a few human spellings.
func ParseCustomerType(s string) (CustomerType, bool) {
	switch normalize(strings.ReplaceAll(strings.ReplaceAll(s, "_", ""), "-", "")) {
	case "new":
		return CustomerNew, true
	case "beback":
		return CustomerBeBack, true
	case "pending":
		return CustomerPending, true
	}
	return "", false
}

// FormatMessageDate renders "Today", "Yesterday", or dd/mm/yyyy relative to now.
func FormatMessageDate(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.In(now.Location())
	if sameDay(t, now) {
		return "Today"
	}
	if sameDay(t, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}
	return t.Format("02/01/2006")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FormatDeadline renders a task deadline, or "" when missing or unparseable.
func FormatDeadline(s string) string {
	t := ParseTime(s)
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
