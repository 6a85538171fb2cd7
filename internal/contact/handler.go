package contact

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/tejaworks/interndesk/internal/domain"
	"github.com/tejaworks/interndesk/internal/pkg/httputil"
)

// Handler handles HTTP requests for the contact module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new contact handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers public contact routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/contact", h.Submit)
}

// RegisterAdminRoutes registers routes that require the admin role.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/contact", h.List)
}

// SubmitRequest represents the contact form body.
// Validation mirrors the frontend form: phone is optional, the rest required.
type SubmitRequest struct {
	FullName    string `json:"fullName" validate:"required,min=2"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,min=10"`
	ServiceType string `json:"serviceType" validate:"required,oneof=translation transcription voice-over"`
	Message     string `json:"message" validate:"required,min=10"`
}

// Submit handles POST /contact request.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	msg, err := h.service.Submit(r.Context(), SubmitInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		ServiceType: domain.ServiceType(req.ServiceType),
		Message:     req.Message,
	})
	if err != nil {
		httputil.HandleError(r.Context(), w, err, []httputil.ErrorMapping{
			{Error: ErrRateLimited, Status: http.StatusTooManyRequests},
		})
		return
	}

	httputil.Success(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      msg.ID,
	})
}

// List handles GET /contact request.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.List(r.Context())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, nil)
		return
	}

	httputil.Success(w, http.StatusOK, messages)
}
