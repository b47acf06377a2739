package api

import (
	"time"

	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CreateTaskRequest defines the payload for creating a task.
// OccurrenceDate is a calendar date in YYYY-MM-DD form.
type CreateTaskRequest struct {
	Title              string     `json:"title"                validate:"required,max=500"`
	Description        string     `json:"description"          validate:"omitempty,max=5000"`
	OccurrenceDate     string     `json:"occurrence_date"      validate:"required,datetime=2006-01-02"`
	TimeOfDay          string     `json:"time_of_day"          validate:"omitempty,max=100"`
	ReminderAt         *time.Time `json:"reminder_at"`
	IsRecurring        bool       `json:"is_recurring"`
	RecurrenceKind     string     `json:"recurrence_kind"      validate:"omitempty,oneof=none daily weekly custom"`
	CustomIntervalDays int        `json:"custom_interval_days" validate:"omitempty,gte=0"`
}

// UpdateTaskRequest defines the payload for partially updating a task.
// Absent fields are left unchanged. ClearReminder removes the reminder and
// takes precedence over ReminderAt.
type UpdateTaskRequest struct {
	Title              *string    `json:"title"                validate:"omitempty,min=1,max=500"`
	Description        *string    `json:"description"          validate:"omitempty,max=5000"`
	OccurrenceDate     *string    `json:"occurrence_date"      validate:"omitempty,datetime=2006-01-02"`
	TimeOfDay          *string    `json:"time_of_day"          validate:"omitempty,max=100"`
	ReminderAt         *time.Time `json:"reminder_at"`
	ClearReminder      bool       `json:"clear_reminder"`
	IsRecurring        *bool      `json:"is_recurring"`
	RecurrenceKind     *string    `json:"recurrence_kind"      validate:"omitempty,oneof=none daily weekly custom"`
	CustomIntervalDays *int       `json:"custom_interval_days" validate:"omitempty,gte=0"`
}

// DeviceTokenRequest defines the payload for registering a push delivery
// token. An empty token unregisters the device.
type DeviceTokenRequest struct {
	Token string `json:"token" validate:"max=4096"`
}
