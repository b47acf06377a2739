package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/planloop/planloop-api/internal/domain"
)

// Materializer pre-creates the next occurrence of every recurring task whose
// current occurrence date has been reached, so each day's tasks exist before
// they are due.
//
// The job is idempotent: the (owner, title, date) existence check is the sole
// de-duplication mechanism, so running the scan twice against the same store
// state creates no additional rows. Concurrent materializer instances are not
// supported and must be serialized externally.
type Materializer struct {
	tasks  TaskStore
	logger *slog.Logger
	now    func() time.Time
}

// NewMaterializer creates a Materializer.
// If logger is nil, a default logger will be used.
func NewMaterializer(tasks TaskStore, logger *slog.Logger) *Materializer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Materializer{
		tasks:  tasks,
		logger: logger.With(slog.String("job", "materializer")),
		now:    time.Now,
	}
}

// Run executes one materialization scan. A failure to create one occurrence
// is logged and skipped; it does not abort the scan of remaining tasks. The
// scan is not atomic across tasks.
func (m *Materializer) Run(ctx context.Context) error {
	today := domain.DateOnly(m.now())

	due, err := m.tasks.ListDueRecurring(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list due recurring tasks: %w", err)
	}

	m.logger.Debug("materializer scan started",
		"due_count", len(due),
		"as_of", today.Format(time.DateOnly))

	var created int
	for _, task := range due {
		ok, err := EnsureNextOccurrence(ctx, m.tasks, task)
		if err != nil {
			m.logger.Error("failed to materialize next occurrence",
				"task_id", task.ID,
				"user_id", task.UserID,
				"error", err)
			continue
		}
		if ok {
			created++
		}
	}

	m.logger.Info("materializer scan finished",
		"scanned", len(due),
		"created", created)
	return nil
}

// EnsureNextOccurrence creates the next occurrence of the given task if the
// task recurs and no row for that (owner, title, date) exists yet. Returns
// true when a new occurrence was created.
//
// This is the single shared creation path: the periodic materializer and the
// completion-triggered flow both go through it, so a task completed right
// before or after a scheduled materialization run cannot produce duplicate
// rows (within a single scheduler instance).
func EnsureNextOccurrence(ctx context.Context, tasks TaskStore, src *domain.Task) (bool, error) {
	next, ok := domain.NextOccurrence(src)
	if !ok {
		return false, nil
	}

	exists, err := tasks.ExistsOccurrence(ctx, src.UserID, src.Title, next)
	if err != nil {
		return false, fmt.Errorf("failed to check for existing occurrence: %w", err)
	}
	if exists {
		return false, nil
	}

	occ := domain.NewOccurrence(src, next)
	if err := tasks.Create(ctx, occ); err != nil {
		return false, fmt.Errorf("failed to create occurrence: %w", err)
	}

	return true, nil
}
