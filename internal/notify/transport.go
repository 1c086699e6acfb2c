// Package notify defines the notification transport the reminder
// scheduler hands fire times to, plus a local in-process
// implementation backed by a cron dispatch loop.
package notify

import (
	"fmt"
	"time"
)

// Payload is the content of one scheduled notification.
type Payload struct {
	TaskID string `json:"task_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// ScheduledEntry is one pending notification.
type ScheduledEntry struct {
	ID      string    `json:"id"`
	Time    time.Time `json:"time"`
	Payload Payload   `json:"payload"`
}

// Transport schedules and cancels platform notifications. A rejected
// schedule surfaces as TransportError; callers above this layer are
// best-effort and must not treat it as fatal.
type Transport interface {
	ScheduleAt(id string, at time.Time, payload Payload) error
	Cancel(id string)
	ListScheduled() []ScheduledEntry
}

// TransportError is returned when the transport rejects a schedule
// request.
type TransportError struct {
	ID     string
	Reason string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("notification transport: %s: %s: %v", e.ID, e.Reason, e.Err)
	}
	return fmt.Sprintf("notification transport: %s: %s", e.ID, e.Reason)
}

func (e *TransportError) Unwrap() error { return e.Err }
