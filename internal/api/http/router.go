package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"minjec-portal-backend/internal/security"
	"minjec-portal-backend/internal/service"
)

// Services bundles everything the HTTP surface needs.
type Services struct {
	Registrations service.RegistrationService
	Approvals     service.ApprovalService
	OTP           service.OTPService
	Auth          service.AuthService
	Links         *security.LinkSigner
	Tokens        security.TokenManager
}

// NewRouter builds the full route table. Admin decision and listing
// endpoints sit behind JWT auth; the intake, OTP and email quick-action
// endpoints are public.
func NewRouter(svcs Services) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", handleHealth).Methods("GET")

	// Login is registered before the authenticated subrouter so the
	// /api/admin prefix route does not swallow it.
	RegisterAuthRoutes(router, svcs.Auth)

	admin := router.PathPrefix("/api/admin").Subrouter()
	admin.Use(AuthMiddleware(svcs.Tokens))

	RegisterRegistrationRoutes(router, admin, svcs.Registrations)
	RegisterApprovalRoutes(router, admin, svcs.Approvals, svcs.Links)
	RegisterOTPRoutes(router, svcs.OTP)

	return router
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
