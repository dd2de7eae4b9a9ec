package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"minjec-portal-backend/internal/domain"
	"minjec-portal-backend/internal/logger"
	"minjec-portal-backend/internal/service"
)

// RegistrationHandler serves the public intake endpoint and the admin
// request listing.
type RegistrationHandler struct {
	registrations service.RegistrationService
}

func NewRegistrationHandler(registrations service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations}
}

type submitRegistrationRequest struct {
	Email        string                         `json:"email"`
	Username     string                         `json:"username"`
	Role         domain.Role                    `json:"role"`
	ExternalID   string                         `json:"external_id"`
	Password     string                         `json:"password"`
	FieldAgent   *domain.FieldAgentAttributes   `json:"field_agent,omitempty"`
	Organization *domain.OrganizationAttributes `json:"organization,omitempty"`
}

func (h *RegistrationHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var body submitRegistrationRequest
	if !decodeBody(w, r, &body) {
		return
	}

	req := &domain.RegistrationRequest{
		Email:        body.Email,
		Username:     body.Username,
		Role:         body.Role,
		ExternalID:   body.ExternalID,
		Credential:   body.Password,
		FieldAgent:   body.FieldAgent,
		Organization: body.Organization,
	}

	id, err := h.registrations.Submit(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRegistration) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("registration submission failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to submit registration request")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":     id,
		"status": domain.RegistrationStatusPending,
	})
}

func (h *RegistrationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	status := domain.RegistrationStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.RegistrationStatusPending
	}
	switch status {
	case domain.RegistrationStatusPending, domain.RegistrationStatusApproved, domain.RegistrationStatusRejected:
	default:
		writeError(w, http.StatusBadRequest, "Unknown status filter")
		return
	}

	requests, err := h.registrations.ListByStatus(r.Context(), status)
	if err != nil {
		logger.Error("listing registration requests failed", "status", status, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list registration requests")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"requests": requests})
}

// RegisterRegistrationRoutes registers the public intake endpoint and the
// admin listing (the latter behind auth middleware applied by the router).
func RegisterRegistrationRoutes(public, admin *mux.Router, registrations service.RegistrationService) {
	handler := NewRegistrationHandler(registrations)
	public.HandleFunc("/api/registrations", handler.HandleSubmit).Methods("POST")
	admin.HandleFunc("/registrations", handler.HandleList).Methods("GET")
}
