package reminders

import (
	"time"

	"terralot/internal/model"
)

// Reminder offsets before the due date, by priority.
var offsetsByPriority = map[model.Priority][]time.Duration{
	model.PriorityHigh:   {24 * time.Hour, 12 * time.Hour, 2 * time.Hour},
	model.PriorityMedium: {24 * time.Hour, 4 * time.Hour},
	model.PriorityLow:    {12 * time.Hour},
}

// ReminderTimes computes the full, unfiltered reminder set for a due
// date and priority. Callers filter past times against their own clock
// so a later edit can always recompute from the original rule.
func ReminderTimes(due time.Time, priority model.Priority) []time.Time {
	offsets := offsetsByPriority[priority]
	times := make([]time.Time, 0, len(offsets))
	for _, offset := range offsets {
		times = append(times, due.Add(-offset))
	}
	return times
}
