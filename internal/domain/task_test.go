package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	t.Run("valid task", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		task, err := NewTask(userID, "buy groceries", time.Date(2024, time.May, 3, 17, 45, 0, 0, time.UTC))

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, task.ID)
		assert.Equal(t, userID, task.UserID)
		assert.Equal(t, "buy groceries", task.Title)
		// Occurrence dates are normalized to midnight UTC.
		assert.Equal(t, date(2024, time.May, 3), task.OccurrenceDate)
		assert.Equal(t, RecurrenceNone, task.RecurrenceKind)
		assert.False(t, task.Completed)
		assert.False(t, task.ReminderSent)
	})

	t.Run("missing owner", func(t *testing.T) {
		t.Parallel()

		_, err := NewTask(uuid.Nil, "buy groceries", date(2024, time.May, 3))
		assert.ErrorIs(t, err, ErrTaskUserIDEmpty)
	})

	t.Run("missing title", func(t *testing.T) {
		t.Parallel()

		_, err := NewTask(uuid.New(), "", date(2024, time.May, 3))
		assert.ErrorIs(t, err, ErrTaskTitleEmpty)
	})
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Task {
		return &Task{
			ID:             uuid.New(),
			UserID:         uuid.New(),
			Title:          "review notes",
			OccurrenceDate: date(2024, time.May, 3),
			RecurrenceKind: RecurrenceWeekly,
			IsRecurring:    true,
		}
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, valid().Validate())
	})

	t.Run("zero date", func(t *testing.T) {
		t.Parallel()
		task := valid()
		task.OccurrenceDate = time.Time{}
		assert.ErrorIs(t, task.Validate(), ErrTaskDateEmpty)
	})

	t.Run("unknown recurrence kind", func(t *testing.T) {
		t.Parallel()
		task := valid()
		task.RecurrenceKind = "fortnightly"
		assert.ErrorIs(t, task.Validate(), ErrInvalidRecurrenceKind)
	})

	t.Run("custom kind without interval is tolerated", func(t *testing.T) {
		t.Parallel()
		task := valid()
		task.RecurrenceKind = RecurrenceCustom
		task.CustomIntervalDays = 0
		assert.NoError(t, task.Validate())
	})
}

func TestNewOccurrence(t *testing.T) {
	t.Parallel()

	reminderAt := time.Date(2024, time.April, 1, 8, 30, 0, 0, time.UTC)
	src := &Task{
		ID:                 uuid.New(),
		UserID:             uuid.New(),
		Title:              "take out recycling",
		Description:        "bins by the curb",
		OccurrenceDate:     date(2024, time.April, 1),
		TimeOfDay:          "08:30",
		ReminderAt:         &reminderAt,
		ReminderSent:       true,
		IsRecurring:        true,
		RecurrenceKind:     RecurrenceCustom,
		CustomIntervalDays: 14,
		Completed:          true,
	}

	next := date(2024, time.April, 15)
	occ := NewOccurrence(src, next)

	t.Run("copies recurrence-relevant fields", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, src.UserID, occ.UserID)
		assert.Equal(t, src.Title, occ.Title)
		assert.Equal(t, src.Description, occ.Description)
		assert.Equal(t, src.TimeOfDay, occ.TimeOfDay)
		assert.Equal(t, src.IsRecurring, occ.IsRecurring)
		assert.Equal(t, src.RecurrenceKind, occ.RecurrenceKind)
		assert.Equal(t, src.CustomIntervalDays, occ.CustomIntervalDays)
	})

	t.Run("resets lifecycle fields", func(t *testing.T) {
		t.Parallel()
		assert.NotEqual(t, src.ID, occ.ID)
		assert.NotEqual(t, uuid.Nil, occ.ID)
		assert.Equal(t, next, occ.OccurrenceDate)
		assert.False(t, occ.Completed)
		assert.False(t, occ.ReminderSent)
	})

	t.Run("shifts reminder time of day onto the new date", func(t *testing.T) {
		t.Parallel()
		require.NotNil(t, occ.ReminderAt)
		assert.Equal(t, time.Date(2024, time.April, 15, 8, 30, 0, 0, time.UTC), *occ.ReminderAt)
	})

	t.Run("no reminder on source means none on occurrence", func(t *testing.T) {
		t.Parallel()
		bare := *src
		bare.ReminderAt = nil
		assert.Nil(t, NewOccurrence(&bare, next).ReminderAt)
	})

	t.Run("validates cleanly", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, occ.Validate())
	})
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	t.Run("new user with valid data", func(t *testing.T) {
		t.Parallel()
		user, err := NewUser("ada@example.com", "correcthorsebattery")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
	})

	t.Run("invalid email", func(t *testing.T) {
		t.Parallel()
		_, err := NewUser("not-an-email", "correcthorsebattery")
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("short password", func(t *testing.T) {
		t.Parallel()
		_, err := NewUser("ada@example.com", "short")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("stored user needs a hash", func(t *testing.T) {
		t.Parallel()
		user := &User{ID: uuid.New(), Email: "ada@example.com"}
		assert.ErrorIs(t, user.Validate(), ErrEmptyPassword)
	})
}
