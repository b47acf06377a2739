package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/planloop/planloop-api/internal/domain"
	"github.com/planloop/planloop-api/internal/platform/push"
	"github.com/planloop/planloop-api/internal/store"
)

// MockTaskStore implements the TaskStore interface for testing. All default
// behaviors operate on an in-memory map; individual operations can be
// overridden through the exported function fields to simulate failures.
type MockTaskStore struct {
	mutex sync.RWMutex
	tasks map[uuid.UUID]*domain.Task

	CreateFn           func(ctx context.Context, task *domain.Task) error
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ExistsOccurrenceFn func(ctx context.Context, ownerID uuid.UUID, title string, date time.Time) (bool, error)
	MarkReminderSentFn func(ctx context.Context, id uuid.UUID) error
}

// NewMockTaskStore creates a new MockTaskStore with default implementations.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Put seeds the store with a task, replacing any existing row with the same ID.
func (s *MockTaskStore) Put(task *domain.Task) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	copied := *task
	s.tasks[task.ID] = &copied
}

// Remove deletes a task, simulating a concurrent user deletion.
func (s *MockTaskStore) Remove(id uuid.UUID) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.tasks, id)
}

// Get returns a copy of a stored task for assertions.
func (s *MockTaskStore) Get(id uuid.UUID) (*domain.Task, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, false
	}
	copied := *task
	return &copied, true
}

// Len returns the number of stored tasks.
func (s *MockTaskStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.tasks)
}

// All returns copies of every stored task.
func (s *MockTaskStore) All() []*domain.Task {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	tasks := make([]*domain.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		copied := *task
		tasks = append(tasks, &copied)
	}
	return tasks
}

// Create implements TaskStore.Create
func (s *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, task)
	}
	s.Put(task)
	return nil
}

// GetByID implements TaskStore.GetByID
func (s *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	task, ok := s.Get(id)
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

// ListDueRecurring implements TaskStore.ListDueRecurring
func (s *MockTaskStore) ListDueRecurring(
	ctx context.Context,
	onOrBefore time.Time,
) ([]*domain.Task, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var due []*domain.Task
	for _, task := range s.tasks {
		if task.IsRecurring && !task.OccurrenceDate.After(onOrBefore) {
			copied := *task
			due = append(due, &copied)
		}
	}
	return due, nil
}

// FindDueReminders implements TaskStore.FindDueReminders
func (s *MockTaskStore) FindDueReminders(
	ctx context.Context,
	from, to time.Time,
) ([]*domain.Task, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var due []*domain.Task
	for _, task := range s.tasks {
		if task.ReminderAt == nil || task.ReminderSent {
			continue
		}
		at := *task.ReminderAt
		if at.Before(from) || at.After(to) {
			continue
		}
		copied := *task
		due = append(due, &copied)
	}
	return due, nil
}

// ExistsOccurrence implements TaskStore.ExistsOccurrence
func (s *MockTaskStore) ExistsOccurrence(
	ctx context.Context,
	ownerID uuid.UUID,
	title string,
	date time.Time,
) (bool, error) {
	if s.ExistsOccurrenceFn != nil {
		return s.ExistsOccurrenceFn(ctx, ownerID, title, date)
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for _, task := range s.tasks {
		if task.UserID == ownerID && task.Title == title && task.OccurrenceDate.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

// MarkReminderSent implements TaskStore.MarkReminderSent
func (s *MockTaskStore) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	if s.MarkReminderSentFn != nil {
		return s.MarkReminderSentFn(ctx, id)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if task, ok := s.tasks[id]; ok {
		task.ReminderSent = true
	}
	// A missing row is a no-op, matching the real store.
	return nil
}

// MockUserStore implements the UserStore interface for testing.
type MockUserStore struct {
	mutex sync.RWMutex
	users map[uuid.UUID]*domain.User

	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// NewMockUserStore creates a new MockUserStore.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[uuid.UUID]*domain.User)}
}

// Put seeds the store with a user.
func (s *MockUserStore) Put(user *domain.User) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	copied := *user
	s.users[user.ID] = &copied
}

// GetByID implements UserStore.GetByID
func (s *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// MockSender implements push.Sender for testing, recording every dispatched
// message. SendFn can be overridden to simulate delivery failures.
type MockSender struct {
	mutex sync.Mutex
	sent  []push.Message

	SendFn func(ctx context.Context, msg push.Message) error
}

// NewMockSender creates a new MockSender.
func NewMockSender() *MockSender {
	return &MockSender{}
}

// Send implements push.Sender.Send
func (s *MockSender) Send(ctx context.Context, msg push.Message) error {
	if s.SendFn != nil {
		return s.SendFn(ctx, msg)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

// Sent returns a copy of all recorded messages.
func (s *MockSender) Sent() []push.Message {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]push.Message(nil), s.sent...)
}
