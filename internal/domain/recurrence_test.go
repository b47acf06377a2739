package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func recurringTask(kind RecurrenceKind, occurrence time.Time, interval int) *Task {
	return &Task{
		ID:                 uuid.New(),
		UserID:             uuid.New(),
		Title:              "water the plants",
		OccurrenceDate:     occurrence,
		IsRecurring:        true,
		RecurrenceKind:     kind,
		CustomIntervalDays: interval,
	}
}

func TestNextOccurrence(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		task     *Task
		want     time.Time
		wantNone bool
	}{
		{
			name: "daily crosses month boundary",
			task: recurringTask(RecurrenceDaily, date(2024, time.January, 31), 0),
			want: date(2024, time.February, 1),
		},
		{
			name: "daily crosses leap day",
			task: recurringTask(RecurrenceDaily, date(2024, time.February, 28), 0),
			want: date(2024, time.February, 29),
		},
		{
			name: "weekly adds seven days",
			task: recurringTask(RecurrenceWeekly, date(2024, time.January, 1), 0),
			want: date(2024, time.January, 8),
		},
		{
			name: "custom adds interval days",
			task: recurringTask(RecurrenceCustom, date(2024, time.January, 1), 3),
			want: date(2024, time.January, 4),
		},
		{
			name: "custom with zero interval defaults to one day",
			task: recurringTask(RecurrenceCustom, date(2024, time.January, 1), 0),
			want: date(2024, time.January, 2),
		},
		{
			name: "custom with negative interval defaults to one day",
			task: recurringTask(RecurrenceCustom, date(2024, time.January, 1), -5),
			want: date(2024, time.January, 2),
		},
		{
			name:     "non-recurring task has no next occurrence",
			task:     &Task{OccurrenceDate: date(2024, time.January, 1), RecurrenceKind: RecurrenceDaily},
			wantNone: true,
		},
		{
			name:     "recurring flag without kind has no next occurrence",
			task:     recurringTask(RecurrenceNone, date(2024, time.January, 1), 0),
			wantNone: true,
		},
		{
			name:     "recurring flag with unset kind has no next occurrence",
			task:     recurringTask("", date(2024, time.January, 1), 0),
			wantNone: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			next, ok := NextOccurrence(tc.task)
			if tc.wantNone {
				assert.False(t, ok)
				return
			}

			require.True(t, ok)
			assert.Equal(t, tc.want, next)
		})
	}
}

func TestNextOccurrenceIsDeterministic(t *testing.T) {
	t.Parallel()

	task := recurringTask(RecurrenceCustom, date(2024, time.March, 15), 4)

	first, ok1 := NextOccurrence(task)
	second, ok2 := NextOccurrence(task)

	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestNextOccurrenceNormalizesInstants(t *testing.T) {
	t.Parallel()

	// An occurrence stored as a late-evening instant in a western timezone
	// must not skip or repeat a day once normalized to its calendar date.
	loc := time.FixedZone("UTC-7", -7*60*60)
	task := recurringTask(RecurrenceDaily, time.Date(2024, time.June, 30, 23, 30, 0, 0, loc), 0)

	next, ok := NextOccurrence(task)
	require.True(t, ok)
	assert.Equal(t, date(2024, time.July, 2), next)
	assert.Equal(t, time.UTC, next.Location())
}
