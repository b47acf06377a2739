package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskUserIDEmpty is returned when a task's user ID is empty or nil.
	ErrTaskUserIDEmpty = errors.New("task user ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskDateEmpty is returned when a task's occurrence date is unset.
	ErrTaskDateEmpty = errors.New("task occurrence date cannot be empty")

	// ErrInvalidRecurrenceKind is returned when a recurrence kind is not one
	// of the supported values.
	ErrInvalidRecurrenceKind = errors.New("invalid recurrence kind")
)

// RecurrenceKind identifies how a recurring task repeats.
type RecurrenceKind string

// Supported recurrence kinds.
const (
	RecurrenceNone   RecurrenceKind = "none"
	RecurrenceDaily  RecurrenceKind = "daily"
	RecurrenceWeekly RecurrenceKind = "weekly"
	RecurrenceCustom RecurrenceKind = "custom"
)

// Task represents one dated occurrence of a (possibly recurring) to-do item.
//
// OccurrenceDate is a pure calendar date stored as midnight UTC; it carries no
// time-of-day meaning. TimeOfDay is a free-form display string and is never
// used by the scheduling logic. ReminderAt, when set, is the absolute instant
// at which a push reminder should fire for this occurrence; ReminderSent is
// monotonic per row and is never reset once true.
type Task struct {
	ID                 uuid.UUID      `json:"id"`
	UserID             uuid.UUID      `json:"user_id"`
	Title              string         `json:"title"`
	Description        string         `json:"description,omitempty"`
	OccurrenceDate     time.Time      `json:"occurrence_date"`
	TimeOfDay          string         `json:"time_of_day,omitempty"`
	ReminderAt         *time.Time     `json:"reminder_at,omitempty"`
	ReminderSent       bool           `json:"reminder_sent"`
	IsRecurring        bool           `json:"is_recurring"`
	RecurrenceKind     RecurrenceKind `json:"recurrence_kind"`
	CustomIntervalDays int            `json:"custom_interval_days,omitempty"`
	Completed          bool           `json:"completed"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// NewTask creates a new Task owned by the given user for the given calendar
// date. It generates a new UUID, normalizes the occurrence date to midnight
// UTC, and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewTask(userID uuid.UUID, title string, date time.Time) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:             uuid.New(),
		UserID:         userID,
		Title:          title,
		OccurrenceDate: DateOnly(date),
		RecurrenceKind: RecurrenceNone,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// NewOccurrence creates the next occurrence of a recurring task for the given
// calendar date. It copies only the recurrence-relevant fields of the source
// (owner, title, description, time of day, recurrence kind and interval) and
// explicitly resets the lifecycle fields: new identity, new date, not
// completed, reminder not sent.
//
// When the source carries a reminder, the new occurrence gets a reminder at
// the same time of day shifted to the new date; otherwise it has none. Both
// occurrence-creation paths (periodic materialization and completion-triggered
// creation) go through this constructor so their behavior cannot diverge.
func NewOccurrence(src *Task, date time.Time) *Task {
	now := time.Now().UTC()
	occ := &Task{
		ID:                 uuid.New(),
		UserID:             src.UserID,
		Title:              src.Title,
		Description:        src.Description,
		OccurrenceDate:     DateOnly(date),
		TimeOfDay:          src.TimeOfDay,
		IsRecurring:        src.IsRecurring,
		RecurrenceKind:     src.RecurrenceKind,
		CustomIntervalDays: src.CustomIntervalDays,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if src.ReminderAt != nil {
		occ.ReminderAt = shiftReminderToDate(*src.ReminderAt, occ.OccurrenceDate)
	}

	return occ
}

// shiftReminderToDate keeps the clock time of reminder but moves it onto the
// given calendar date.
func shiftReminderToDate(reminder, date time.Time) *time.Time {
	r := reminder.UTC()
	shifted := time.Date(
		date.Year(), date.Month(), date.Day(),
		r.Hour(), r.Minute(), r.Second(), 0,
		time.UTC,
	)
	return &shifted
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.UserID == uuid.Nil {
		return ErrTaskUserIDEmpty
	}

	if t.Title == "" {
		return ErrTaskTitleEmpty
	}

	if t.OccurrenceDate.IsZero() {
		return ErrTaskDateEmpty
	}

	switch t.RecurrenceKind {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceCustom:
		// A custom kind without a positive interval is tolerated rather than
		// rejected; recurrence computation defaults it to 1 day.
	case "":
		// Unset kind is treated as none.
	default:
		return ErrInvalidRecurrenceKind
	}

	return nil
}

// DateOnly truncates an instant to its calendar date, represented as
// midnight UTC. All occurrence-date comparisons go through this so that day
// arithmetic is done on calendar dates, never on wall-clock instants.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
