package reminders

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"terralot/internal/model"
	"terralot/internal/notify"
	"terralot/internal/schema"
	"terralot/internal/store"
)

// recordingTransport logs every transport call in order so tests can
// assert cancel-before-schedule semantics.
type recordingTransport struct {
	mu      sync.Mutex
	calls   []string
	entries map[string]notify.ScheduledEntry
	reject  func(id string) bool
}

func newRecordingTransport() *recordingTransport {
	return &recordingTransport{entries: map[string]notify.ScheduledEntry{}}
}

func (r *recordingTransport) ScheduleAt(id string, at time.Time, payload notify.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reject != nil && r.reject(id) {
		r.calls = append(r.calls, "reject "+id)
		return &notify.TransportError{ID: id, Reason: "rejected by test"}
	}
	r.calls = append(r.calls, "schedule "+id)
	r.entries[id] = notify.ScheduledEntry{ID: id, Time: at, Payload: payload}
	return nil
}

func (r *recordingTransport) Cancel(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "cancel "+id)
	delete(r.entries, id)
}

func (r *recordingTransport) ListScheduled() []notify.ScheduledEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.ScheduledEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	return out
}

type transportMock struct {
	mock.Mock
}

func (m *transportMock) ScheduleAt(id string, at time.Time, payload notify.Payload) error {
	args := m.Called(id, at, payload)
	return args.Error(0)
}

func (m *transportMock) Cancel(id string) {
	m.Called(id)
}

func (m *transportMock) ListScheduled() []notify.ScheduledEntry {
	args := m.Called()
	return args.Get(0).([]notify.ScheduledEntry)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestReminderTimesByPriority(t *testing.T) {
	due := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	high := ReminderTimes(due, model.PriorityHigh)
	require.Len(t, high, 3)
	assert.Equal(t, due.Add(-24*time.Hour), high[0])
	assert.Equal(t, due.Add(-12*time.Hour), high[1])
	assert.Equal(t, due.Add(-2*time.Hour), high[2])

	medium := ReminderTimes(due, model.PriorityMedium)
	require.Len(t, medium, 2)
	assert.Equal(t, due.Add(-24*time.Hour), medium[0])
	assert.Equal(t, due.Add(-4*time.Hour), medium[1])

	low := ReminderTimes(due, model.PriorityLow)
	require.Len(t, low, 1)
	assert.Equal(t, due.Add(-12*time.Hour), low[0])
}

func TestScheduleHighPriorityWellAhead(t *testing.T) {
	due := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	now := due.Add(-30 * time.Hour)
	transport := newRecordingTransport()
	s := NewScheduler(transport, zap.NewNop(), WithClock(fixedClock(now)))

	s.Schedule(model.Task{ID: "t-1", Title: "Prune", DueDate: due,
		Priority: model.PriorityHigh, Status: model.TaskPending})

	assert.Equal(t, StateScheduled, s.StateOf("t-1"))
	times := s.Times("t-1")
	require.Len(t, times, 3)
	assert.Len(t, transport.ListScheduled(), 3)
}

func TestScheduleFiltersPastTimes(t *testing.T) {
	due := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	// Six hours before due: only the two-hour reminder is still ahead.
	now := due.Add(-6 * time.Hour)
	transport := newRecordingTransport()
	s := NewScheduler(transport, zap.NewNop(), WithClock(fixedClock(now)))

	s.Schedule(model.Task{ID: "t-1", Title: "Prune", DueDate: due,
		Priority: model.PriorityHigh, Status: model.TaskPending})

	times := s.Times("t-1")
	require.Len(t, times, 1)
	assert.Equal(t, due.Add(-2*time.Hour), times[0])
	assert.Equal(t, StateScheduled, s.StateOf("t-1"), "an empty or reduced set is still a scheduled state")
}

func TestScheduleCompletedTaskEndsWithNoReminders(t *testing.T) {
	due := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	now := due.Add(-48 * time.Hour)
	transport := newRecordingTransport()
	s := NewScheduler(transport, zap.NewNop(), WithClock(fixedClock(now)))

	s.Schedule(model.Task{ID: "t-1", Title: "Prune", DueDate: due,
		Priority: model.PriorityHigh, Status: model.TaskPending})
	require.Len(t, transport.ListScheduled(), 3)

	s.Schedule(model.Task{ID: "t-1", Title: "Prune", DueDate: due,
		Priority: model.PriorityHigh, Status: model.TaskCompleted})

	assert.Equal(t, StateNoReminders, s.StateOf("t-1"))
	assert.Empty(t, transport.ListScheduled(), "completion releases every pending entry")

	s.Schedule(model.Task{ID: "t-1", Title: "Prune", DueDate: due,
		Priority: model.PriorityHigh, Status: model.TaskCancelled})
	assert.Equal(t, StateNoReminders, s.StateOf("t-1"))
}

func TestRescheduleCancelsBeforeScheduling(t *testing.T) {
	due := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	now := due.Add(-48 * time.Hour)
	transport := newRecordingTransport()
	s := NewScheduler(transport, zap.NewNop(), WithClock(fixedClock(now)))

	task := model.Task{ID: "t-1", Title: "Prune", DueDate: due,
		Priority: model.PriorityLow, Status: model.TaskPending}
	s.Schedule(task)

	task.Priority = model.PriorityHigh
	s.Schedule(task)

	assert.Len(t, transport.ListScheduled(), 3, "only the new set remains")
	// The old entry is released before any new entry is placed.
	assert.Equal(t, []string{
		"schedule t-1:0",
		"cancel t-1:0",
		"schedule t-1:0",
		"schedule t-1:1",
		"schedule t-1:2",
	}, transport.calls)
}

func TestScheduleSurvivesTransportRejection(t *testing.T) {
	due := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	now := due.Add(-48 * time.Hour)
	transport := newRecordingTransport()
	transport.reject = func(id string) bool { return id == "t-1:1" }
	s := NewScheduler(transport, zap.NewNop(), WithClock(fixedClock(now)))

	s.Schedule(model.Task{ID: "t-1", Title: "Prune", DueDate: due,
		Priority: model.PriorityHigh, Status: model.TaskPending})

	assert.Equal(t, StateScheduled, s.StateOf("t-1"))
	assert.Len(t, s.Times("t-1"), 2, "the rejected entry is skipped, the rest stay")
}

func TestCancelReleasesEverything(t *testing.T) {
	due := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	now := due.Add(-48 * time.Hour)
	transport := newRecordingTransport()
	s := NewScheduler(transport, zap.NewNop(), WithClock(fixedClock(now)))

	s.Schedule(model.Task{ID: "t-1", Title: "Prune", DueDate: due,
		Priority: model.PriorityMedium, Status: model.TaskPending})
	require.Len(t, transport.ListScheduled(), 2)

	s.Cancel("t-1")
	assert.Equal(t, StateNoReminders, s.StateOf("t-1"))
	assert.Empty(t, transport.ListScheduled())
	assert.Empty(t, s.Times("t-1"))
}

func TestScheduleIssuesOneTransportCallPerEntry(t *testing.T) {
	due := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	now := due.Add(-48 * time.Hour)
	tm := new(transportMock)
	tm.On("ScheduleAt", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s := NewScheduler(tm, zap.NewNop(), WithClock(fixedClock(now)))

	s.Schedule(model.Task{ID: "t-1", Title: "Prune", DueDate: due,
		Priority: model.PriorityMedium, Status: model.TaskPending})

	tm.AssertNumberOfCalls(t, "ScheduleAt", 2)
	tm.AssertExpectations(t)
}

func TestBindReconcilesOnTaskWrites(t *testing.T) {
	reg, err := schema.Farm()
	require.NoError(t, err)

	due := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	st, err := store.Open(filepath.Join(t.TempDir(), "farm.db"), reg, 1)
	require.NoError(t, err)
	defer st.Close()

	transport := newRecordingTransport()
	s := NewScheduler(transport, zap.NewNop())
	s.Bind(st)

	created, err := st.Create(schema.TypeTask, store.Entity{
		"title":    "Check irrigation lines",
		"dueDate":  due,
		"priority": "high",
		"status":   "pending",
		"category": "maintenance",
	}, store.ModeInsert)
	require.NoError(t, err)
	id, _ := created["id"].(string)

	assert.Equal(t, StateScheduled, s.StateOf(id))
	assert.Len(t, transport.ListScheduled(), 3)

	// Completing through the store drops the reminders too.
	_, err = st.Create(schema.TypeTask, store.Entity{
		"id": id, "status": "completed", "completedAt": time.Now().UTC(),
	}, store.ModeUpsert)
	require.NoError(t, err)
	assert.Equal(t, StateNoReminders, s.StateOf(id))
	assert.Empty(t, transport.ListScheduled())

	// Deleting clears the tracked state.
	_, err = st.Create(schema.TypeTask, store.Entity{
		"id": id, "status": "pending", "completedAt": nil,
	}, store.ModeUpsert)
	require.NoError(t, err)
	require.Equal(t, StateScheduled, s.StateOf(id))
	require.NoError(t, st.Delete(schema.TypeTask, id))
	assert.Equal(t, StateNoReminders, s.StateOf(id))
	assert.Empty(t, transport.ListScheduled())
}
