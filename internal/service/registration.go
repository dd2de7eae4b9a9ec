package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"minjec-portal-backend/internal/domain"
	"minjec-portal-backend/internal/logger"
	"minjec-portal-backend/internal/notification"
	"minjec-portal-backend/internal/repository"
	"minjec-portal-backend/internal/security"
)

var ErrInvalidRegistration = fmt.Errorf("invalid registration request")

type registrationService struct {
	registrations repository.RegistrationRepository
	dispatcher    notification.Dispatcher
	links         *security.LinkSigner
	adminEmail    string
	publicBaseURL string
	adminPanelURL string
}

func NewRegistrationService(
	registrations repository.RegistrationRepository,
	dispatcher notification.Dispatcher,
	links *security.LinkSigner,
	adminEmail, publicBaseURL, adminPanelURL string,
) RegistrationService {
	return &registrationService{
		registrations: registrations,
		dispatcher:    dispatcher,
		links:         links,
		adminEmail:    adminEmail,
		publicBaseURL: publicBaseURL,
		adminPanelURL: adminPanelURL,
	}
}

func (s *registrationService) Submit(ctx context.Context, req *domain.RegistrationRequest) (string, error) {
	if err := validateSubmission(req); err != nil {
		return "", err
	}

	req.ID = uuid.NewString()
	req.Status = domain.RegistrationStatusPending
	req.CreatedAt = time.Now().UTC()

	if err := s.registrations.Create(ctx, req); err != nil {
		return "", fmt.Errorf("storing registration request: %w", err)
	}

	// The request is durable at this point; the admin alert is advisory.
	if err := s.notifyAdmin(ctx, req); err != nil {
		logger.WithService("registration").Warn("admin notification failed",
			"request_id", req.ID, "error", err)
	}

	logger.WithService("registration").Info("registration request submitted",
		"request_id", req.ID, "email", req.Email, "role", req.Role)
	return req.ID, nil
}

func (s *registrationService) ListByStatus(ctx context.Context, status domain.RegistrationStatus) ([]domain.RegistrationRequest, error) {
	return s.registrations.ListByStatus(ctx, status)
}

func validateSubmission(req *domain.RegistrationRequest) error {
	if req.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidRegistration)
	}
	if req.Username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidRegistration)
	}
	switch req.Role {
	case domain.RoleStandard, domain.RoleFieldAgent, domain.RoleOrganization:
	default:
		return fmt.Errorf("%w: unknown role %q", ErrInvalidRegistration, req.Role)
	}
	return nil
}

func (s *registrationService) notifyAdmin(ctx context.Context, req *domain.RegistrationRequest) error {
	if s.adminEmail == "" {
		return nil
	}
	token := s.links.MakeToken(req.ID)
	_, err := s.dispatcher.Send(ctx, notification.KindAdminNotification, s.adminEmail, notification.Data{
		Username:       req.Username,
		Email:          req.Email,
		Role:           string(req.Role),
		ExternalID:     req.ExternalID,
		SubmissionDate: req.CreatedAt.Format("2006-01-02"),
		ApproveURL:     s.actionURL(req.ID, token, "approve", ""),
		RejectURL:      s.actionURL(req.ID, token, "reject", defaultRejectionReason),
		AdminPanelURL:  s.adminPanelURL,
	})
	return err
}

func (s *registrationService) actionURL(requestID, token, action, reason string) string {
	q := url.Values{}
	q.Set("action", action)
	q.Set("id", requestID)
	q.Set("token", token)
	if reason != "" {
		q.Set("reason", reason)
	}
	return s.publicBaseURL + "/approvals/action?" + q.Encode()
}
