package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/planloop/planloop-api/internal/api/shared"
	"github.com/planloop/planloop-api/internal/domain"
	"github.com/planloop/planloop-api/internal/service"
)

// TaskHandler handles task-related API requests.
type TaskHandler struct {
	taskService service.TaskService
	validator   *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validator:   validator.New(),
	}
}

// List handles GET /tasks. The optional date query parameter (YYYY-MM-DD)
// restricts the listing to one calendar day.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var day *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"Invalid date: expected YYYY-MM-DD")
			return
		}
		day = &parsed
	}

	tasks, err := h.taskService.ListTasks(r.Context(), userID, day)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	date, err := time.Parse(time.DateOnly, req.OccurrenceDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Invalid occurrence_date: expected YYYY-MM-DD")
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), userID, service.CreateTaskParams{
		Title:              req.Title,
		Description:        req.Description,
		OccurrenceDate:     date,
		TimeOfDay:          req.TimeOfDay,
		ReminderAt:         req.ReminderAt,
		IsRecurring:        req.IsRecurring,
		RecurrenceKind:     domain.RecurrenceKind(req.RecurrenceKind),
		CustomIntervalDays: req.CustomIntervalDays,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// Update handles PATCH /tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	params := service.UpdateTaskParams{
		Title:              req.Title,
		Description:        req.Description,
		TimeOfDay:          req.TimeOfDay,
		ReminderAt:         req.ReminderAt,
		ClearReminder:      req.ClearReminder,
		IsRecurring:        req.IsRecurring,
		CustomIntervalDays: req.CustomIntervalDays,
	}
	if req.OccurrenceDate != nil {
		date, err := time.Parse(time.DateOnly, *req.OccurrenceDate)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"Invalid occurrence_date: expected YYYY-MM-DD")
			return
		}
		params.OccurrenceDate = &date
	}
	if req.RecurrenceKind != nil {
		kind := domain.RecurrenceKind(*req.RecurrenceKind)
		params.RecurrenceKind = &kind
	}

	task, err := h.taskService.UpdateTask(r.Context(), userID, taskID, params)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Complete handles PATCH /tasks/{id}/complete. It toggles the task's
// completion state; completing a recurring task also creates its next
// occurrence.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	task, err := h.taskService.CompleteTask(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), userID, taskID); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			HandleAPIError(w, r, err, "")
			return
		}
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
