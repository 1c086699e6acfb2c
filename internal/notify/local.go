package notify

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DeliverFunc receives a notification when its fire time arrives.
type DeliverFunc func(entry ScheduledEntry)

// LocalTransport keeps scheduled notifications in memory and delivers
// due ones from a cron-driven dispatch loop. It stands in for the
// platform notification service in offline operation and in tests.
type LocalTransport struct {
	log      *zap.Logger
	deliver  DeliverFunc
	clock    func() time.Time
	interval time.Duration

	mu      sync.Mutex
	entries map[string]ScheduledEntry

	cron  *cron.Cron
	jobID cron.EntryID
}

// LocalOption configures a LocalTransport.
type LocalOption func(*LocalTransport)

// WithClock overrides the time source. Used by tests.
func WithClock(clock func() time.Time) LocalOption {
	return func(t *LocalTransport) { t.clock = clock }
}

// WithInterval sets how often the dispatch loop checks for due
// notifications.
func WithInterval(interval time.Duration) LocalOption {
	return func(t *LocalTransport) { t.interval = interval }
}

// NewLocalTransport creates a transport delivering through fn.
func NewLocalTransport(log *zap.Logger, fn DeliverFunc, opts ...LocalOption) *LocalTransport {
	t := &LocalTransport{
		log:      log,
		deliver:  fn,
		clock:    time.Now,
		interval: 30 * time.Second,
		entries:  make(map[string]ScheduledEntry),
		cron:     cron.New(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins the dispatch loop.
func (t *LocalTransport) Start() error {
	id, err := t.cron.AddFunc(fmt.Sprintf("@every %s", t.interval), t.Dispatch)
	if err != nil {
		return err
	}
	t.jobID = id
	t.cron.Start()
	t.log.Info("notification dispatch loop started")
	return nil
}

// Stop halts the dispatch loop, waiting for a running dispatch.
func (t *LocalTransport) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.log.Info("notification dispatch loop stopped")
}

// ScheduleAt registers a notification. Times at or before now are
// rejected with TransportError.
func (t *LocalTransport) ScheduleAt(id string, at time.Time, payload Payload) error {
	if !at.After(t.clock()) {
		return &TransportError{ID: id, Reason: "fire time is in the past"}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[id] = ScheduledEntry{ID: id, Time: at, Payload: payload}
	return nil
}

// Cancel removes a pending notification. Cancelling an unknown id is a
// no-op.
func (t *LocalTransport) Cancel(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, id)
}

// ListScheduled returns pending notifications ordered by fire time.
func (t *LocalTransport) ListScheduled() []ScheduledEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]ScheduledEntry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

// Dispatch delivers every entry whose fire time has arrived. The cron
// loop calls it periodically; tests call it directly.
func (t *LocalTransport) Dispatch() {
	now := t.clock()
	t.mu.Lock()
	var due []ScheduledEntry
	for id, e := range t.entries {
		if !e.Time.After(now) {
			due = append(due, e)
			delete(t.entries, id)
		}
	}
	t.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].Time.Before(due[j].Time) })
	for _, e := range due {
		t.log.Debug("delivering notification",
			zap.String("id", e.ID), zap.String("task_id", e.Payload.TaskID))
		if t.deliver != nil {
			t.deliver(e)
		}
	}
}
