package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"minjec-portal-backend/internal/domain"
	"minjec-portal-backend/internal/logger"
	"minjec-portal-backend/internal/security"
	"minjec-portal-backend/internal/service"
)

// ApprovalHandler serves the authenticated admin decision endpoints and the
// token-gated quick-action links embedded in notification emails.
type ApprovalHandler struct {
	approvals service.ApprovalService
	links     *security.LinkSigner
}

func NewApprovalHandler(approvals service.ApprovalService, links *security.LinkSigner) *ApprovalHandler {
	return &ApprovalHandler{approvals: approvals, links: links}
}

func (h *ApprovalHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["id"]
	adminID := AdminIDFromContext(r.Context())

	result, err := h.approvals.Approve(r.Context(), requestID, adminID)
	if err != nil {
		h.writeDecisionError(w, requestID, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":          domain.RegistrationStatusApproved,
		"identity_id":     result.IdentityID,
		"activation_code": result.ActivationCode,
		"email_sent":      result.EmailSent,
	})
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *ApprovalHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["id"]
	adminID := AdminIDFromContext(r.Context())

	var body rejectRequest
	if r.ContentLength > 0 && !decodeBody(w, r, &body) {
		return
	}

	if err := h.approvals.Reject(r.Context(), requestID, adminID, body.Reason); err != nil {
		h.writeDecisionError(w, requestID, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": domain.RegistrationStatusRejected})
}

func (h *ApprovalHandler) writeDecisionError(w http.ResponseWriter, requestID string, err error) {
	var decided *domain.AlreadyDecidedError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Registration request not found")
	case errors.As(err, &decided):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":  "Request has already been processed",
			"status": decided.CurrentStatus,
		})
	default:
		logger.Error("registration decision failed", "request_id", requestID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to process registration request")
	}
}

// HandleEmailAction serves the one-click approve/reject links. It always
// answers with an HTML page: admins open these from their mail client.
func (h *ApprovalHandler) HandleEmailAction(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	action := q.Get("action")
	requestID := q.Get("id")
	token := q.Get("token")

	if requestID == "" || !h.links.VerifyToken(requestID, token) {
		writeActionPage(w, http.StatusForbidden, "Action failed",
			"This link is invalid or has expired.")
		return
	}

	switch action {
	case "approve":
		result, err := h.approvals.Approve(r.Context(), requestID, domain.EmailActionActor)
		if err != nil {
			h.writeActionError(w, requestID, err)
			return
		}
		detail := fmt.Sprintf("The registration request has been approved. Activation code: %s.", result.ActivationCode)
		if !result.EmailSent {
			detail += " The code email could not be delivered; share the code with the user directly."
		}
		writeActionPage(w, http.StatusOK, "Request approved", detail)
	case "reject":
		if err := h.approvals.Reject(r.Context(), requestID, domain.EmailActionActor, q.Get("reason")); err != nil {
			h.writeActionError(w, requestID, err)
			return
		}
		writeActionPage(w, http.StatusOK, "Request rejected",
			"The registration request has been rejected and the applicant notified.")
	default:
		writeActionPage(w, http.StatusBadRequest, "Action failed",
			"This link is invalid or has expired.")
	}
}

func (h *ApprovalHandler) writeActionError(w http.ResponseWriter, requestID string, err error) {
	var decided *domain.AlreadyDecidedError
	if errors.As(err, &decided) {
		writeActionPage(w, http.StatusConflict, "Already processed",
			fmt.Sprintf("This request has already been %s.", decided.CurrentStatus))
		return
	}
	logger.Error("email action failed", "request_id", requestID, "error", err)
	writeActionPage(w, http.StatusInternalServerError, "Action failed",
		"The request could not be processed. Please use the admin panel instead.")
}

func writeActionPage(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body style="font-family: Arial, sans-serif; max-width: 480px; margin: 60px auto; text-align: center;">
  <h2>%s</h2>
  <p>%s</p>
  <p style="color: #888; font-size: 13px;">You can close this window.</p>
</body>
</html>`, title, title, detail)
}

// RegisterApprovalRoutes registers the admin decision endpoints on the
// authenticated subrouter and the quick-action endpoint on the public router.
func RegisterApprovalRoutes(public, admin *mux.Router, approvals service.ApprovalService, links *security.LinkSigner) {
	handler := NewApprovalHandler(approvals, links)
	admin.HandleFunc("/registrations/{id}/approve", handler.HandleApprove).Methods("POST")
	admin.HandleFunc("/registrations/{id}/reject", handler.HandleReject).Methods("POST")
	public.HandleFunc("/approvals/action", handler.HandleEmailAction).Methods("GET")
}
