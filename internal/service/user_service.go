package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/planloop/planloop-api/internal/domain"
	"github.com/planloop/planloop-api/internal/store"
)

// UserService provides user-related operations outside of authentication.
type UserService interface {
	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// RegisterDeviceToken saves or replaces the user's push delivery token.
	// An empty token unregisters the device.
	RegisterDeviceToken(ctx context.Context, id uuid.UUID, token string) error
}

// userServiceImpl implements the UserService interface.
type userServiceImpl struct {
	users  store.UserStore
	logger *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users store.UserStore, logger *slog.Logger) (UserService, error) {
	if users == nil {
		return nil, &ServiceError{
			Operation: "create_service",
			Message:   "users store cannot be nil",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		users:  users,
		logger: logger.With("component", "user_service"),
	}, nil
}

// GetUser retrieves a user by ID.
func (s *userServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to retrieve user",
			"error", err,
			"user_id", id)
		return nil, NewServiceError("get_user", "failed to retrieve user", err)
	}
	return user, nil
}

// RegisterDeviceToken saves or replaces the user's push delivery token.
func (s *userServiceImpl) RegisterDeviceToken(ctx context.Context, id uuid.UUID, token string) error {
	if err := s.users.UpdateDeviceToken(ctx, id, token); err != nil {
		if store.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		s.logger.Error("failed to update device token",
			"error", err,
			"user_id", id)
		return NewServiceError("register_device_token", "failed to update device token", err)
	}

	s.logger.Info("device token updated", "user_id", id)
	return nil
}
