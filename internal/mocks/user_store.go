package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/planloop/planloop-api/internal/domain"
	"github.com/planloop/planloop-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn            func(ctx context.Context, user *domain.User) error
	GetByEmailFn        func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFn           func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateDeviceTokenFn func(ctx context.Context, id uuid.UUID, token string) error

	// Data for default implementation, keyed by email
	Users           map[string]*domain.User
	CreateError     error
	GetByEmailError error
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	if _, exists := m.Users[user.Email]; exists {
		return store.ErrEmailExists
	}

	// The real store hashes the plaintext password before insert.
	if user.HashedPassword == "" && user.Password != "" {
		user.HashedPassword = "hashed:" + user.Password
	}

	m.Users[user.Email] = user
	return nil
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	if m.GetByEmailError != nil {
		return nil, m.GetByEmailError
	}

	user, exists := m.Users[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// UpdateDeviceToken implements the UserStore interface
func (m *MockUserStore) UpdateDeviceToken(ctx context.Context, id uuid.UUID, token string) error {
	if m.UpdateDeviceTokenFn != nil {
		return m.UpdateDeviceTokenFn(ctx, id, token)
	}

	for _, user := range m.Users {
		if user.ID == id {
			user.DeviceToken = token
			return nil
		}
	}
	return store.ErrUserNotFound
}

