// Package reminders maintains the task-to-reminder mapping: it
// computes fire times from a task's due date and priority and keeps
// the platform transport reconciled with every task write.
package reminders

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"terralot/internal/model"
	"terralot/internal/notify"
	"terralot/internal/schema"
	"terralot/internal/store"
)

// State is the reminder state of one task.
type State int

const (
	// StateNoReminders means nothing is scheduled for the task.
	StateNoReminders State = iota
	// StateScheduled means a reminder set was computed for the task.
	// The set may be empty after past-time filtering; the state is
	// still tracked so a later edit recomputes from the full rule.
	StateScheduled
)

type reminderSet struct {
	state    State
	entryIDs []string
	times    []time.Time
}

// Scheduler reconciles scheduled reminders with task writes. It is a
// best-effort layer: a transport rejection loses that single entry,
// never the write that triggered it.
type Scheduler struct {
	transport notify.Transport
	log       *zap.Logger
	clock     func() time.Time

	mu   sync.Mutex
	sets map[string]reminderSet
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the time source. Used by tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Scheduler) { s.clock = clock }
}

// NewScheduler creates a scheduler on top of a notification transport.
func NewScheduler(transport notify.Transport, log *zap.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		transport: transport,
		log:       log,
		clock:     time.Now,
		sets:      make(map[string]reminderSet),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bind subscribes the scheduler to task writes on the store, so
// reminders reconcile on every create, edit, completion and deletion
// without any screen being involved.
func (s *Scheduler) Bind(st *store.Store) {
	st.Subscribe(schema.TypeTask, func(ev store.Event) {
		task, err := model.Decode[model.Task](ev.Entity)
		if err != nil {
			s.log.Warn("cannot decode task event", zap.Error(err))
			return
		}
		if ev.Action == store.ActionDelete {
			s.Cancel(task.ID)
			return
		}
		s.Schedule(task)
	})
}

// Schedule reconciles the reminder set for a task. It always cancels
// the existing set first, so at most one set is ever active per task.
// Completed and cancelled tasks end with no reminders.
func (s *Scheduler) Schedule(task model.Task) {
	s.cancelEntries(task.ID)

	if task.Status == model.TaskCompleted || task.Status == model.TaskCancelled {
		s.mu.Lock()
		s.sets[task.ID] = reminderSet{state: StateNoReminders}
		s.mu.Unlock()
		return
	}

	now := s.clock()
	var entryIDs []string
	var scheduled []time.Time
	for i, at := range ReminderTimes(task.DueDate, task.Priority) {
		if !at.After(now) {
			continue
		}
		entryID := fmt.Sprintf("%s:%d", task.ID, i)
		payload := notify.Payload{
			TaskID: task.ID,
			Title:  "Reminder: " + task.Title,
			Body:   reminderBody(task),
		}
		if err := s.transport.ScheduleAt(entryID, at, payload); err != nil {
			// Best effort: log and keep going with the rest of
			// the set.
			s.log.Warn("reminder rejected by transport",
				zap.String("task_id", task.ID),
				zap.Time("at", at),
				zap.Error(err))
			continue
		}
		entryIDs = append(entryIDs, entryID)
		scheduled = append(scheduled, at)
	}

	s.mu.Lock()
	s.sets[task.ID] = reminderSet{
		state:    StateScheduled,
		entryIDs: entryIDs,
		times:    scheduled,
	}
	s.mu.Unlock()
}

// Cancel unconditionally releases every reminder for a task.
func (s *Scheduler) Cancel(taskID string) {
	s.cancelEntries(taskID)
	s.mu.Lock()
	s.sets[taskID] = reminderSet{state: StateNoReminders}
	s.mu.Unlock()
}

// StateOf returns the reminder state tracked for a task.
func (s *Scheduler) StateOf(taskID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets[taskID].state
}

// Times returns the fire times currently scheduled for a task.
func (s *Scheduler) Times(taskID string) []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.sets[taskID]
	out := make([]time.Time, len(set.times))
	copy(out, set.times)
	return out
}

func (s *Scheduler) cancelEntries(taskID string) {
	s.mu.Lock()
	set := s.sets[taskID]
	delete(s.sets, taskID)
	s.mu.Unlock()
	for _, entryID := range set.entryIDs {
		s.transport.Cancel(entryID)
	}
}

func reminderBody(task model.Task) string {
	if task.Description != "" {
		return task.Description
	}
	return "Task pending"
}
