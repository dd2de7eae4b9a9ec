package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"minjec-portal-backend/internal/domain"
	"minjec-portal-backend/internal/logger"
	"minjec-portal-backend/internal/service"
)

// OTPHandler serves the public one-time code endpoints.
type OTPHandler struct {
	otp service.OTPService
}

func NewOTPHandler(otp service.OTPService) *OTPHandler {
	return &OTPHandler{otp: otp}
}

type otpRequestBody struct {
	Email   string             `json:"email"`
	Purpose domain.CodePurpose `json:"purpose"`
}

type otpVerifyBody struct {
	Email   string             `json:"email"`
	Purpose domain.CodePurpose `json:"purpose"`
	Code    string             `json:"code"`
}

func validPurpose(p domain.CodePurpose) bool {
	switch p {
	case domain.CodePurposeLogin, domain.CodePurposeRegistration,
		domain.CodePurposePasswordReset, domain.CodePurposeApprovalActivation:
		return true
	}
	return false
}

func (h *OTPHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	var body otpRequestBody
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Email == "" || !validPurpose(body.Purpose) {
		writeError(w, http.StatusBadRequest, "Email and a valid purpose are required")
		return
	}

	expiresIn, err := h.otp.Request(r.Context(), body.Email, body.Purpose)
	if err != nil {
		var allFailed *domain.AllProvidersFailedError
		if errors.As(err, &allFailed) {
			logger.Error("code delivery failed", "email", body.Email, "purpose", body.Purpose, "error", err)
			writeError(w, http.StatusServiceUnavailable, "Failed to send verification code")
			return
		}
		logger.Error("code request failed", "email", body.Email, "purpose", body.Purpose, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to send verification code")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sent":               true,
		"expires_in_seconds": int(expiresIn.Seconds()),
	})
}

func (h *OTPHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var body otpVerifyBody
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Email == "" || body.Code == "" || !validPurpose(body.Purpose) {
		writeError(w, http.StatusBadRequest, "Email, code and a valid purpose are required")
		return
	}

	if err := h.otp.Verify(r.Context(), body.Email, body.Purpose, body.Code); err != nil {
		if errors.Is(err, domain.ErrInvalidOrExpiredCode) {
			writeError(w, http.StatusUnauthorized, "Invalid or expired code")
			return
		}
		logger.Error("code verification failed", "email", body.Email, "purpose", body.Purpose, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to verify code")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"verified": true})
}

// RegisterOTPRoutes registers the public code request/verify endpoints.
func RegisterOTPRoutes(router *mux.Router, otp service.OTPService) {
	handler := NewOTPHandler(otp)
	router.HandleFunc("/api/otp/request", handler.HandleRequest).Methods("POST")
	router.HandleFunc("/api/otp/verify", handler.HandleVerify).Methods("POST")
}
