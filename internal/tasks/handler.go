package tasks

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/tejaworks/interndesk/internal/domain"
	"github.com/tejaworks/interndesk/internal/pkg/httputil"
)

// Handler handles HTTP requests for the tasks module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new tasks handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers the task routes under a single /tasks mount.
// Read endpoints are open to any authenticated user; mutations and stats
// additionally pass through the admin middleware.
func (h *Handler) RegisterRoutes(r chi.Router, admin func(http.Handler) http.Handler) {
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.ListTasks)
		r.Get("/mine", h.ListMyTasks)
		r.Get("/{id}", h.GetTask)

		r.With(admin).Post("/", h.CreateTask)
		r.With(admin).Get("/stats", h.GetStats)
		r.With(admin).Patch("/{id}", h.UpdateTask)
		r.With(admin).Delete("/{id}", h.DeleteTask)
		r.With(admin).Post("/{id}/assign", h.AssignTask)
	})
}

var errMappings = []httputil.ErrorMapping{
	{Error: ErrTaskNotFound, Status: http.StatusNotFound},
}

// CreateTaskRequest represents the request body for creating a task.
type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description string  `json:"description" validate:"required"`
	Priority    string  `json:"priority" validate:"required,oneof=low medium high"`
	Deadline    string  `json:"deadline" validate:"required"`
	AssignedTo  *string `json:"assignedTo"`
}

// ToInput converts the request to a service input.
func (r *CreateTaskRequest) ToInput() CreateTaskInput {
	return CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Priority:    domain.TaskPriority(r.Priority),
		Deadline:    r.Deadline,
		AssignedTo:  r.AssignedTo,
	}
}

// UpdateTaskRequest represents the request body for partially updating a task.
// Absent fields are left untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Deadline    *string `json:"deadline"`
	AssignedTo  *string `json:"assignedTo"`
}

// ToPatch converts the request to a service patch.
func (r *UpdateTaskRequest) ToPatch() TaskPatch {
	patch := TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Deadline:    r.Deadline,
		AssignedTo:  r.AssignedTo,
	}
	if r.Priority != nil {
		p := domain.TaskPriority(*r.Priority)
		patch.Priority = &p
	}
	if r.Status != nil {
		s := domain.TaskStatus(*r.Status)
		patch.Status = &s
	}
	return patch
}

// AssignTaskRequest represents the request body for assigning a task.
type AssignTaskRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// ListTasks handles GET /tasks request.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errMappings)
		return
	}

	httputil.Success(w, http.StatusOK, list)
}

// ListMyTasks handles GET /tasks/mine request.
func (h *Handler) ListMyTasks(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListMine(r.Context())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errMappings)
		return
	}

	httputil.Success(w, http.StatusOK, list)
}

// GetTask handles GET /tasks/{id} request.
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	task, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errMappings)
		return
	}

	httputil.Success(w, http.StatusOK, task)
}

// CreateTask handles POST /tasks request.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	task, err := h.service.Create(r.Context(), req.ToInput())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errMappings)
		return
	}

	httputil.Success(w, http.StatusCreated, task)
}

// UpdateTask handles PATCH /tasks/{id} request.
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	task, err := h.service.Update(r.Context(), id, req.ToPatch())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errMappings)
		return
	}

	httputil.Success(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{id} request.
// Deleting an unknown id is a successful no-op.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.HandleError(r.Context(), w, err, errMappings)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AssignTask handles POST /tasks/{id}/assign request.
func (h *Handler) AssignTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req AssignTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	task, err := h.service.Assign(r.Context(), id, req.UserID)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errMappings)
		return
	}

	httputil.Success(w, http.StatusOK, task)
}

// GetStats handles GET /tasks/stats request.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errMappings)
		return
	}

	httputil.Success(w, http.StatusOK, stats)
}
