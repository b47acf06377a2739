package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/planloop/planloop-api/internal/platform/push"
	"github.com/planloop/planloop-api/internal/store"
)

// reminderTitle is the notification title for task reminders.
const reminderTitle = "Task Reminder"

// ReminderScheduler fires a push notification once per task whose reminder
// falls within the current scheduling window, then durably marks the
// reminder sent.
//
// The scheduler owns an explicit mapping from task id to armed timer, with a
// start/stop lifecycle, instead of keeping timers as ambient process state.
// Timer callbacks capture only the task id and re-fetch current state at fire
// time, so a task deleted or edited after scheduling is honored as a no-op.
//
// Timers are in-process and not persisted: a restart drops pending timers and
// the next scan re-arms anything still unsent. A reminder is marked sent once
// the dispatch attempt is initiated, whether or not delivery succeeds, an
// at-most-once, best-effort guarantee.
type ReminderScheduler struct {
	tasks  TaskStore
	users  UserStore
	sender push.Sender
	logger *slog.Logger
	now    func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	timers map[uuid.UUID]*time.Timer
}

// NewReminderScheduler creates a ReminderScheduler.
// If logger is nil, a default logger will be used.
func NewReminderScheduler(
	tasks TaskStore,
	users UserStore,
	sender push.Sender,
	logger *slog.Logger,
) *ReminderScheduler {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &ReminderScheduler{
		tasks:  tasks,
		users:  users,
		sender: sender,
		logger: logger.With(slog.String("job", "reminder_scheduler")),
		now:    time.Now,
		ctx:    ctx,
		cancel: cancel,
		timers: make(map[uuid.UUID]*time.Timer),
	}
}

// Scan runs one scheduling pass: it opens a window from now to the end of
// the current calendar day, selects every task with an unsent reminder in
// that window, and arms a one-shot timer per task. A reminder whose instant
// has already passed by the time its timer is armed fires immediately.
//
// Tasks whose reminder fired in a prior scan are excluded by the
// reminder-sent flag at selection time, so re-running the scan never
// re-delivers.
func (s *ReminderScheduler) Scan(ctx context.Context) error {
	from := s.now().UTC()
	to := endOfDay(from)

	due, err := s.tasks.FindDueReminders(ctx, from, to)
	if err != nil {
		return fmt.Errorf("failed to find due reminders: %w", err)
	}

	s.logger.Debug("reminder scan started",
		"window_from", from,
		"window_to", to,
		"due_count", len(due))

	armed := 0
	for _, task := range due {
		if task.ReminderAt == nil {
			continue
		}
		if s.arm(task.ID, *task.ReminderAt) {
			armed++
		}
	}

	s.logger.Info("reminder scan finished",
		"due", len(due),
		"armed", armed)
	return nil
}

// arm registers a one-shot timer for the task unless one is already armed.
// Reports whether a new timer was registered.
func (s *ReminderScheduler) arm(id uuid.UUID, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		return false
	}
	if _, exists := s.timers[id]; exists {
		return false
	}

	delay := at.Sub(s.now())
	if delay < 0 {
		delay = 0
	}

	s.wg.Add(1)
	s.timers[id] = time.AfterFunc(delay, func() {
		defer s.wg.Done()
		s.fire(id)
	})

	s.logger.Debug("reminder armed",
		"task_id", id,
		"fire_at", at)
	return true
}

// Cancel disarms any pending timer for the task. It is called when a task is
// deleted or its reminder cleared. Reports whether a timer was pending.
// A timer that has already started firing is not interrupted; the fire
// callback's state re-check handles that race.
func (s *ReminderScheduler) Cancel(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[id]
	if !ok {
		return false
	}
	delete(s.timers, id)

	if timer.Stop() {
		// The callback will never run, so release its wait-group slot.
		s.wg.Done()
	}

	s.logger.Debug("reminder canceled", "task_id", id)
	return true
}

// Stop disarms all pending timers and waits for in-flight fire callbacks to
// finish. The scheduler cannot be reused after Stop.
func (s *ReminderScheduler) Stop() {
	s.cancel()

	s.mu.Lock()
	for id, timer := range s.timers {
		if timer.Stop() {
			s.wg.Done()
		}
		delete(s.timers, id)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// fire dispatches the reminder for one task. It re-fetches the task rather
// than trusting any snapshot from scheduling time: a task deleted, already
// handled, or with its reminder cleared in the meantime is a no-op.
//
// The reminder-sent flag is written after the dispatch attempt is initiated,
// regardless of dispatch outcome: a missing delivery token or a gateway
// failure is logged but still marks the row sent, with no retry.
func (s *ReminderScheduler) fire(id uuid.UUID) {
	s.mu.Lock()
	delete(s.timers, id)
	s.mu.Unlock()

	if s.ctx.Err() != nil {
		return
	}

	log := s.logger.With(slog.String("task_id", id.String()))

	task, err := s.tasks.GetByID(s.ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task deleted before reminder fired")
			return
		}
		// Transient store failure: nothing marked, so the next scan within
		// the window will re-arm this reminder.
		log.Error("failed to re-fetch task at fire time", "error", err)
		return
	}

	if task.ReminderSent || task.ReminderAt == nil {
		log.Debug("reminder no longer pending, skipping dispatch")
		return
	}

	s.dispatch(log, task.UserID, task.Title, id)

	if err := s.tasks.MarkReminderSent(s.ctx, id); err != nil {
		log.Error("failed to mark reminder sent", "error", err)
	}
}

// dispatch resolves the owner's delivery token and sends the notification.
// All failures are logged only; the caller marks the reminder sent either
// way.
func (s *ReminderScheduler) dispatch(log *slog.Logger, userID uuid.UUID, title string, taskID uuid.UUID) {
	user, err := s.users.GetByID(s.ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Warn("task owner not found, reminder not delivered",
				"user_id", userID)
		} else {
			log.Error("failed to look up task owner", "error", err)
		}
		return
	}

	if user.DeviceToken == "" {
		log.Warn("no device token registered, reminder not delivered",
			"user_id", userID)
		return
	}

	msg := push.Message{
		Token: user.DeviceToken,
		Title: reminderTitle,
		Body:  title,
		Data: map[string]string{
			"task_id": taskID.String(),
			"type":    "task_reminder",
		},
	}

	if err := s.sender.Send(s.ctx, msg); err != nil {
		log.Error("push dispatch failed", "error", err)
		return
	}

	log.Info("reminder dispatched", "user_id", userID)
}

// endOfDay returns the last instant of the calendar day containing t, in UTC.
func endOfDay(t time.Time) time.Time {
	u := t.UTC()
	nextMidnight := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return nextMidnight.Add(-time.Nanosecond)
}
