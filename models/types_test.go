// ABOUTME: Tests for CRM data models and display shaping
// ABOUTME: Validates JSON shapes, status/priority mapping, and date labels
package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerDecodesBothNameShapes(t *testing.T) {
	var list Customer
	require.NoError(t, json.Unmarshal([]byte(`{"id":"c1","first_name":"Ada","last_name":"Lovelace","type":"be_back"}`), &list))
	assert.Equal(t, "Ada Lovelace", list.FullName())
	assert.Equal(t, CustomerBeBack, list.Type)

	var detail Customer
	require.NoError(t, json.Unmarshal([]byte(`{"id":"c2","firstName":"Grace","lastName":"Hopper"}`), &detail))
	assert.Equal(t, "Grace", detail.FirstName)
	assert.Equal(t, "Hopper", detail.LastName)
}

func TestCustomerFullNameFallsBackToName(t *testing.T) {
	c := Customer{ID: "c1", Name: "Walk-in"}
	assert.Equal(t, "Walk-in", c.FullName())
}

func TestTaskDecodesUnderscoreID(t *testing.T) {
	var task Task
	raw := `{"_id":"t1","title":"Call back","status":"inProgress","priority":"high","deadline":"2024-01-01"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &task))
	assert.Equal(t, "t1", task.Key())
	assert.Equal(t, TaskInProgress, task.Status)
	assert.Equal(t, "Jan 1, 2024", FormatDeadline(task.Deadline))
}

func TestTaskStatusDisplay(t *testing.T) {
	tests := []struct {
		status TaskStatus
		label  string
		color  string
	}{
		{TaskInProgress, "In Progress", "#A0D1FB"},
		{TaskNotStarted, "Not Started", "#D3D3D3"},
		{TaskDone, "Done", "#C3E88D"},
		{TaskArchived, "Archived", DefaultStatusColor},
		{"In Progress", "In Progress", "#A0D1FB"},
		{"DONE", "Done", "#C3E88D"},
		{"blocked", "blocked", DefaultStatusColor},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.label, tt.status.Label())
			assert.Equal(t, tt.color, tt.status.Color())
		})
	}
}

func TestTaskPriorityDisplay(t *testing.T) {
	tests := []struct {
		priority TaskPriority
		label    string
		color    string
		known    bool
	}{
		{PriorityHigh, "High", "#FFBABA", true},
		{PriorityMedium, "Medium", "#FCEABB", true},
		{"LOW", "Low", "#D4F1BE", true},
		{"urgent", "urgent", DefaultPriorityColor, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			assert.Equal(t, tt.label, tt.priority.Label())
			assert.Equal(t, tt.color, tt.priority.Color())
			assert.Equal(t, tt.known, tt.priority.Known())
		})
	}
}

func TestParseCustomerType(t *testing.T) {
	for in, want := range map[string]CustomerType{
		"new":     CustomerNew,
		"be_back": CustomerBeBack,
		"Be Back": CustomerBeBack,
		"pending": CustomerPending,
	} {
		got, ok := ParseCustomerType(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseCustomerType("vip")
	assert.False(t, ok)
}

func TestFormatMessageDate(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today", FormatMessageDate(now.Add(-2*time.Hour), now))
	assert.Equal(t, "Yesterday", FormatMessageDate(now.AddDate(0, 0, -1), now))
	assert.Equal(t, "05/03/2024", FormatMessageDate(time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "", FormatMessageDate(time.Time{}, now))
}

func TestParseTime(t *testing.T) {
	assert.False(t, ParseTime("2024-01-02T03:04:05.678Z").IsZero())
	assert.False(t, ParseTime("2024-01-02").IsZero())
	assert.True(t, ParseTime("yesterday-ish").IsZero())
}

func TestEmptyDashboardHasNonNilTasks(t *testing.T) {
	d := EmptyDashboard()
	require.NotNil(t, d.Tasks)
	assert.Empty(t, d.Tasks)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"tasks":[]`)
}
