package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/planloop/planloop-api/internal/domain"
	"github.com/planloop/planloop-api/internal/store"
)

// mockTaskStore is an in-memory store.TaskStore. Individual operations can
// be overridden through the function fields to simulate failures.
type mockTaskStore struct {
	mutex sync.RWMutex
	tasks map[uuid.UUID]*domain.Task

	createFn  func(ctx context.Context, task *domain.Task) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	updateFn  func(ctx context.Context, task *domain.Task) error
}

func newMockTaskStore() *mockTaskStore {
	return &mockTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
}

func (s *mockTaskStore) put(task *domain.Task) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	copied := *task
	s.tasks[task.ID] = &copied
}

func (s *mockTaskStore) get(id uuid.UUID) (*domain.Task, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, false
	}
	copied := *task
	return &copied, true
}

func (s *mockTaskStore) count() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.tasks)
}

func (s *mockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if s.createFn != nil {
		return s.createFn(ctx, task)
	}
	s.put(task)
	return nil
}

func (s *mockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	task, ok := s.get(id)
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

func (s *mockTaskStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	day *time.Time,
) ([]*domain.Task, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var out []*domain.Task
	for _, task := range s.tasks {
		if task.UserID != ownerID {
			continue
		}
		if day != nil && !task.OccurrenceDate.Equal(domain.DateOnly(*day)) {
			continue
		}
		copied := *task
		out = append(out, &copied)
	}
	return out, nil
}

func (s *mockTaskStore) ListDueRecurring(
	ctx context.Context,
	onOrBefore time.Time,
) ([]*domain.Task, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var out []*domain.Task
	for _, task := range s.tasks {
		if task.IsRecurring && !task.OccurrenceDate.After(onOrBefore) {
			copied := *task
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *mockTaskStore) FindDueReminders(
	ctx context.Context,
	from, to time.Time,
) ([]*domain.Task, error) {
	return nil, nil
}

func (s *mockTaskStore) ExistsOccurrence(
	ctx context.Context,
	ownerID uuid.UUID,
	title string,
	date time.Time,
) (bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for _, task := range s.tasks {
		if task.UserID == ownerID && task.Title == title && task.OccurrenceDate.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (s *mockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, task)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

func (s *mockTaskStore) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if task, ok := s.tasks[id]; ok {
		task.ReminderSent = true
	}
	return nil
}

func (s *mockTaskStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	task, ok := s.tasks[id]
	if !ok || task.UserID != ownerID {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}


// mockUserStore is an in-memory store.UserStore.
type mockUserStore struct {
	mutex sync.RWMutex
	users map[uuid.UUID]*domain.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (s *mockUserStore) put(user *domain.User) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	copied := *user
	s.users[user.ID] = &copied
}

func (s *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *mockUserStore) UpdateDeviceToken(ctx context.Context, id uuid.UUID, token string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	user, ok := s.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	user.DeviceToken = token
	return nil
}


// mockCanceler records reminder cancellations.
type mockCanceler struct {
	mutex    sync.Mutex
	canceled []uuid.UUID
}

func (c *mockCanceler) Cancel(id uuid.UUID) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.canceled = append(c.canceled, id)
	return true
}

func (c *mockCanceler) canceledIDs() []uuid.UUID {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return append([]uuid.UUID(nil), c.canceled...)
}
