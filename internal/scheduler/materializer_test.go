package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planloop/planloop-api/internal/domain"
)

// testLogger returns a logger that discards all output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// makeRecurringTask builds a recurring task on the given date for tests.
func makeRecurringTask(t *testing.T, kind domain.RecurrenceKind, interval int, date time.Time) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(uuid.New(), "Water plants", date)
	require.NoError(t, err)
	task.IsRecurring = true
	task.RecurrenceKind = kind
	task.CustomIntervalDays = interval
	return task
}

func TestMaterializerRun(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	t.Run("creates next occurrence for each due recurring task", func(t *testing.T) {
		t.Parallel()

		tasks := NewMockTaskStore()
		daily := makeRecurringTask(t, domain.RecurrenceDaily, 0, today)
		weekly := makeRecurringTask(t, domain.RecurrenceWeekly, 0, today)
		tasks.Put(daily)
		tasks.Put(weekly)

		m := NewMaterializer(tasks, testLogger())
		m.now = func() time.Time { return today.Add(6 * time.Hour) }

		err := m.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 4, tasks.Len(), "one new occurrence per due task")

		var nextDates []time.Time
		for _, task := range tasks.All() {
			if task.ID != daily.ID && task.ID != weekly.ID {
				nextDates = append(nextDates, task.OccurrenceDate)
			}
		}
		assert.Contains(t, nextDates, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
		assert.Contains(t, nextDates, time.Date(2024, 2, 7, 0, 0, 0, 0, time.UTC))
	})

	t.Run("second run creates nothing", func(t *testing.T) {
		t.Parallel()

		tasks := NewMockTaskStore()
		tasks.Put(makeRecurringTask(t, domain.RecurrenceDaily, 0, today))

		m := NewMaterializer(tasks, testLogger())
		m.now = func() time.Time { return today }

		require.NoError(t, m.Run(context.Background()))
		countAfterFirst := tasks.Len()
		assert.Equal(t, 2, countAfterFirst)

		require.NoError(t, m.Run(context.Background()))
		assert.Equal(t, countAfterFirst, tasks.Len(),
			"re-running against unchanged state must not duplicate occurrences")
	})

	t.Run("custom kind without interval advances one day", func(t *testing.T) {
		t.Parallel()

		tasks := NewMockTaskStore()
		src := makeRecurringTask(t, domain.RecurrenceCustom, 0, today)
		tasks.Put(src)

		m := NewMaterializer(tasks, testLogger())
		m.now = func() time.Time { return today }

		require.NoError(t, m.Run(context.Background()))

		exists, err := tasks.ExistsOccurrence(
			context.Background(), src.UserID, src.Title,
			time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("skips non-recurring and future-dated tasks", func(t *testing.T) {
		t.Parallel()

		tasks := NewMockTaskStore()
		plain, err := domain.NewTask(uuid.New(), "One-off errand", today)
		require.NoError(t, err)
		tasks.Put(plain)
		tasks.Put(makeRecurringTask(t, domain.RecurrenceDaily, 0, today.AddDate(0, 0, 5)))

		m := NewMaterializer(tasks, testLogger())
		m.now = func() time.Time { return today }

		require.NoError(t, m.Run(context.Background()))
		assert.Equal(t, 2, tasks.Len(), "nothing is due yet")
	})

	t.Run("one failing task does not abort the scan", func(t *testing.T) {
		t.Parallel()

		tasks := NewMockTaskStore()
		poison := makeRecurringTask(t, domain.RecurrenceDaily, 0, today)
		healthy := makeRecurringTask(t, domain.RecurrenceDaily, 0, today)
		tasks.Put(poison)
		tasks.Put(healthy)

		tasks.CreateFn = func(ctx context.Context, task *domain.Task) error {
			if task.UserID == poison.UserID {
				return errors.New("insert failed")
			}
			tasks.Put(task)
			return nil
		}

		m := NewMaterializer(tasks, testLogger())
		m.now = func() time.Time { return today }

		err := m.Run(context.Background())
		require.NoError(t, err, "per-task failures are logged, not returned")

		exists, err := tasks.ExistsOccurrence(
			context.Background(), healthy.UserID, healthy.Title,
			time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.True(t, exists, "healthy task still materialized")
	})

	t.Run("list failure aborts the scan", func(t *testing.T) {
		t.Parallel()

		listErr := errors.New("connection reset")
		failing := &failingListStore{TaskStore: NewMockTaskStore(), err: listErr}
		m := NewMaterializer(failing, testLogger())

		err := m.Run(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, listErr)
	})
}

// failingListStore wraps a TaskStore and fails ListDueRecurring.
type failingListStore struct {
	TaskStore
	err error
}

func (s *failingListStore) ListDueRecurring(ctx context.Context, onOrBefore time.Time) ([]*domain.Task, error) {
	return nil, s.err
}

func TestEnsureNextOccurrence(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("both creation paths yield a single row", func(t *testing.T) {
		t.Parallel()

		tasks := NewMockTaskStore()
		src := makeRecurringTask(t, domain.RecurrenceDaily, 0, today)
		tasks.Put(src)

		// Completion-triggered path runs first.
		created, err := EnsureNextOccurrence(context.Background(), tasks, src)
		require.NoError(t, err)
		assert.True(t, created)

		// Periodic materialization then sees the row and backs off.
		created, err = EnsureNextOccurrence(context.Background(), tasks, src)
		require.NoError(t, err)
		assert.False(t, created)

		assert.Equal(t, 2, tasks.Len())
	})

	t.Run("non-recurring source is a no-op", func(t *testing.T) {
		t.Parallel()

		tasks := NewMockTaskStore()
		src, err := domain.NewTask(uuid.New(), "Call dentist", today)
		require.NoError(t, err)

		created, err := EnsureNextOccurrence(context.Background(), tasks, src)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, 0, tasks.Len())
	})

	t.Run("existence check failure propagates", func(t *testing.T) {
		t.Parallel()

		tasks := NewMockTaskStore()
		src := makeRecurringTask(t, domain.RecurrenceDaily, 0, today)

		existsErr := errors.New("query timeout")
		tasks.ExistsOccurrenceFn = func(ctx context.Context, ownerID uuid.UUID, title string, date time.Time) (bool, error) {
			return false, existsErr
		}

		created, err := EnsureNextOccurrence(context.Background(), tasks, src)
		require.Error(t, err)
		assert.ErrorIs(t, err, existsErr)
		assert.False(t, created)
	})

	t.Run("new occurrence carries the shifted reminder", func(t *testing.T) {
		t.Parallel()

		tasks := NewMockTaskStore()
		src := makeRecurringTask(t, domain.RecurrenceWeekly, 0, today)
		reminder := time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC)
		src.ReminderAt = &reminder
		tasks.Put(src)

		created, err := EnsureNextOccurrence(context.Background(), tasks, src)
		require.NoError(t, err)
		require.True(t, created)

		var occ *domain.Task
		for _, task := range tasks.All() {
			if task.ID != src.ID {
				occ = task
			}
		}
		require.NotNil(t, occ)
		require.NotNil(t, occ.ReminderAt)
		assert.Equal(t, time.Date(2024, 3, 17, 8, 30, 0, 0, time.UTC), *occ.ReminderAt)
		assert.False(t, occ.ReminderSent)
		assert.False(t, occ.Completed)
	})
}
