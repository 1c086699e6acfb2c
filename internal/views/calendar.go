package views

import (
	"time"

	"terralot/internal/model"
)

// Dot colors by task priority, matching the list and calendar screens.
const (
	ColorHigh   = "#D32F2F"
	ColorMedium = "#FF9800"
	ColorLow    = "#4CAF50"
)

// DayMark is the marking of one calendar day.
type DayMark struct {
	Selected bool     `json:"selected,omitempty"`
	Marked   bool     `json:"marked,omitempty"`
	Dots     []string `json:"dots,omitempty"`
}

// CalendarMarks maps an ISO date (no time component) to its marking.
type CalendarMarks map[string]DayMark

// PriorityColor returns the dot color for a task priority.
func PriorityColor(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return ColorHigh
	case model.PriorityMedium:
		return ColorMedium
	case model.PriorityLow:
		return ColorLow
	}
	return ColorMedium
}

// ISODate formats a due date the way the calendar keys its days.
func ISODate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// BuildCalendarMarks produces the date-to-dots mapping for a task
// sequence plus a marker for the selected date. Two tasks due the same
// date contribute two independent dots; nothing is deduplicated.
func BuildCalendarMarks(tasks []model.Task, selectedDate string) CalendarMarks {
	marks := CalendarMarks{
		selectedDate: {Selected: true},
	}
	for _, task := range tasks {
		date := ISODate(task.DueDate)
		mark := marks[date]
		mark.Marked = true
		mark.Dots = append(mark.Dots, PriorityColor(task.Priority))
		marks[date] = mark
	}
	return marks
}

// TasksDueOn returns the tasks due on an ISO date, ordered by priority
// rank with the input order preserved within each rank.
func TasksDueOn(tasks []model.Task, date string) []model.Task {
	due := make([]model.Task, 0)
	for _, task := range tasks {
		if ISODate(task.DueDate) == date {
			due = append(due, task)
		}
	}
	return sortTasksBy(due, TaskSortPriority)
}
