package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/planloop/planloop-api/internal/domain"
	"github.com/planloop/planloop-api/internal/service"
)

// MockTaskService implements service.TaskService for handler testing.
// Each operation delegates to its function field; unset fields return the
// zero-value success.
type MockTaskService struct {
	CreateTaskFn   func(ctx context.Context, ownerID uuid.UUID, params service.CreateTaskParams) (*domain.Task, error)
	GetTaskFn      func(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)
	ListTasksFn    func(ctx context.Context, ownerID uuid.UUID, day *time.Time) ([]*domain.Task, error)
	UpdateTaskFn   func(ctx context.Context, ownerID, taskID uuid.UUID, params service.UpdateTaskParams) (*domain.Task, error)
	CompleteTaskFn func(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)
	DeleteTaskFn   func(ctx context.Context, ownerID, taskID uuid.UUID) error
}

// CreateTask implements the service.TaskService interface
func (m *MockTaskService) CreateTask(
	ctx context.Context,
	ownerID uuid.UUID,
	params service.CreateTaskParams,
) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, ownerID, params)
	}
	return nil, nil
}

// GetTask implements the service.TaskService interface
func (m *MockTaskService) GetTask(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, ownerID, taskID)
	}
	return nil, nil
}

// ListTasks implements the service.TaskService interface
func (m *MockTaskService) ListTasks(
	ctx context.Context,
	ownerID uuid.UUID,
	day *time.Time,
) ([]*domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, ownerID, day)
	}
	return nil, nil
}

// UpdateTask implements the service.TaskService interface
func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
	params service.UpdateTaskParams,
) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, ownerID, taskID, params)
	}
	return nil, nil
}

// CompleteTask implements the service.TaskService interface
func (m *MockTaskService) CompleteTask(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
) (*domain.Task, error) {
	if m.CompleteTaskFn != nil {
		return m.CompleteTaskFn(ctx, ownerID, taskID)
	}
	return nil, nil
}

// DeleteTask implements the service.TaskService interface
func (m *MockTaskService) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, ownerID, taskID)
	}
	return nil
}

// MockUserService implements service.UserService for handler testing.
type MockUserService struct {
	GetUserFn             func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	RegisterDeviceTokenFn func(ctx context.Context, id uuid.UUID, token string) error
}

// GetUser implements the service.UserService interface
func (m *MockUserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, id)
	}
	return nil, nil
}

// RegisterDeviceToken implements the service.UserService interface
func (m *MockUserService) RegisterDeviceToken(ctx context.Context, id uuid.UUID, token string) error {
	if m.RegisterDeviceTokenFn != nil {
		return m.RegisterDeviceTokenFn(ctx, id, token)
	}
	return nil
}
