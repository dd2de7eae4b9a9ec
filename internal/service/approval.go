package service

import (
	"context"
	"fmt"
	"time"

	"minjec-portal-backend/internal/codegen"
	"minjec-portal-backend/internal/domain"
	"minjec-portal-backend/internal/identity"
	"minjec-portal-backend/internal/logger"
	"minjec-portal-backend/internal/notification"
	"minjec-portal-backend/internal/repository"
)

const defaultRejectionReason = "Request did not meet the requirements"

type approvalService struct {
	registrations repository.RegistrationRepository
	profiles      repository.ProfileRepository
	activity      repository.ActivityLogRepository
	identities    identity.Provider
	otp           OTPService
	dispatcher    notification.Dispatcher
	tempPassword  string
}

func NewApprovalService(
	registrations repository.RegistrationRepository,
	profiles repository.ProfileRepository,
	activity repository.ActivityLogRepository,
	identities identity.Provider,
	otp OTPService,
	dispatcher notification.Dispatcher,
	tempPassword string,
) ApprovalService {
	return &approvalService{
		registrations: registrations,
		profiles:      profiles,
		activity:      activity,
		identities:    identities,
		otp:           otp,
		dispatcher:    dispatcher,
		tempPassword:  tempPassword,
	}
}

func (s *approvalService) Approve(ctx context.Context, requestID, actingAdminID string) (*ApprovalResult, error) {
	log := logger.WithService("approval")

	req, err := s.registrations.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Decided() {
		return nil, &domain.AlreadyDecidedError{CurrentStatus: req.Status}
	}

	uid, err := s.ensureIdentity(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.provisionRecords(ctx, req, uid); err != nil {
		return nil, err
	}

	code, err := codegen.ForPurpose(domain.CodePurposeApprovalActivation)
	if err != nil {
		return nil, fmt.Errorf("generating activation code: %w", err)
	}

	now := time.Now().UTC()
	ok, err := s.registrations.MarkApproved(ctx, requestID, actingAdminID, now, code)
	if err != nil {
		return nil, fmt.Errorf("marking request approved: %w", err)
	}
	if !ok {
		return nil, s.alreadyDecided(ctx, requestID, domain.RegistrationStatusApproved)
	}

	// Everything past the status flip is best-effort: the request is
	// approved even if the code email or the audit entry fails.
	emailSent := true
	if err := s.otp.Issue(ctx, req.Email, domain.CodePurposeApprovalActivation, code, req.Username); err != nil {
		emailSent = false
		log.Warn("activation code delivery failed after approval",
			"request_id", requestID, "email", req.Email, "error", err)
	}

	s.logDecision(ctx, req, actingAdminID, domain.ActivityActionApprove,
		fmt.Sprintf("Approved registration request for %s (%s)", req.Username, req.Email),
		map[string]any{"role": string(req.Role), "identity_id": uid, "email_sent": emailSent})

	log.Info("registration request approved",
		"request_id", requestID, "email", req.Email, "role", req.Role, "email_sent", emailSent)

	return &ApprovalResult{IdentityID: uid, ActivationCode: code, EmailSent: emailSent}, nil
}

func (s *approvalService) Reject(ctx context.Context, requestID, actingAdminID, reason string) error {
	log := logger.WithService("approval")

	req, err := s.registrations.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Decided() {
		return &domain.AlreadyDecidedError{CurrentStatus: req.Status}
	}

	if reason == "" {
		reason = defaultRejectionReason
	}

	ok, err := s.registrations.MarkRejected(ctx, requestID, actingAdminID, time.Now().UTC(), reason)
	if err != nil {
		return fmt.Errorf("marking request rejected: %w", err)
	}
	if !ok {
		return s.alreadyDecided(ctx, requestID, domain.RegistrationStatusRejected)
	}

	if _, err := s.dispatcher.Send(ctx, notification.KindRejection, req.Email, notification.Data{
		Username:        req.Username,
		RejectionReason: reason,
	}); err != nil {
		log.Warn("rejection notice delivery failed",
			"request_id", requestID, "email", req.Email, "error", err)
	}

	s.logDecision(ctx, req, actingAdminID, domain.ActivityActionReject,
		fmt.Sprintf("Rejected registration request for %s (%s)", req.Username, req.Email),
		map[string]any{"role": string(req.Role), "reason": reason})

	log.Info("registration request rejected", "request_id", requestID, "email", req.Email)
	return nil
}

// ensureIdentity reuses an existing external identity for the email when one
// exists, so replays of an interrupted approval never duplicate accounts.
func (s *approvalService) ensureIdentity(ctx context.Context, req *domain.RegistrationRequest) (string, error) {
	uid, found, err := s.identities.LookupByEmail(ctx, req.Email)
	if err != nil {
		return "", &domain.ProvisioningError{Stage: "identity lookup", Err: err}
	}
	if found {
		return uid, nil
	}

	password := req.Credential
	if password == "" {
		password = s.tempPassword
	}
	uid, err = s.identities.CreateUser(ctx, req.Email, password)
	if err != nil {
		return "", &domain.ProvisioningError{Stage: "identity creation", Err: err}
	}
	return uid, nil
}

func (s *approvalService) provisionRecords(ctx context.Context, req *domain.RegistrationRequest, uid string) error {
	if err := s.profiles.UpsertProfile(ctx, &domain.Profile{
		ID:         uid,
		Role:       req.Role,
		Username:   req.Username,
		ExternalID: req.ExternalID,
	}); err != nil {
		return &domain.ProvisioningError{Stage: "profile record", Err: err}
	}

	switch req.Role {
	case domain.RoleFieldAgent:
		if err := s.profiles.UpsertFieldAgent(ctx, &domain.FieldAgentRecord{
			UserID:     uid,
			Department: composeDepartment(req.FieldAgent),
			Status:     domain.FieldAgentStatusActive,
		}); err != nil {
			return &domain.ProvisioningError{Stage: "field agent record", Err: err}
		}
	case domain.RoleOrganization:
		if err := s.profiles.UpsertOrganization(ctx, organizationRecord(req.Organization, uid)); err != nil {
			return &domain.ProvisioningError{Stage: "organization record", Err: err}
		}
	}
	return nil
}

// composeDepartment flattens the agent's location into a single display value:
// "Region - Commune (Neighborhood)", with the parts that are present.
func composeDepartment(fa *domain.FieldAgentAttributes) string {
	if fa == nil {
		return "Unspecified"
	}
	region := fa.Region
	if region == "" {
		region = "Unspecified"
	}
	dept := region
	if fa.Commune != "" {
		dept = region + " - " + fa.Commune
	}
	if fa.Neighborhood != "" {
		dept += " (" + fa.Neighborhood + ")"
	}
	return dept
}

func organizationRecord(org *domain.OrganizationAttributes, uid string) *domain.OrganizationRecord {
	rec := &domain.OrganizationRecord{
		UserID: uid,
		Name:   "Unnamed organization",
		Sector: "Unspecified",
		Status: domain.OrganizationStatusApproved,
	}
	if org == nil {
		return rec
	}
	if org.Name != "" {
		rec.Name = org.Name
	}
	if org.Sector != "" {
		rec.Sector = org.Sector
	}
	if org.Address != "" {
		rec.Address = &org.Address
	}
	if org.Phone != "" {
		rec.Phone = &org.Phone
	}
	return rec
}

// alreadyDecided re-reads the row after a lost conditional update so the
// error reports what actually won; fallback covers a read failure.
func (s *approvalService) alreadyDecided(ctx context.Context, requestID string, fallback domain.RegistrationStatus) error {
	status := fallback
	if cur, err := s.registrations.GetByID(ctx, requestID); err == nil {
		status = cur.Status
	}
	return &domain.AlreadyDecidedError{CurrentStatus: status}
}

func (s *approvalService) logDecision(ctx context.Context, req *domain.RegistrationRequest, actingAdminID string, action domain.ActivityAction, description string, metadata map[string]any) {
	var actorID *string
	if actingAdminID != "" && actingAdminID != domain.EmailActionActor {
		actorID = &actingAdminID
	} else {
		metadata["actor"] = domain.EmailActionActor
	}
	entry := &domain.ActivityLogEntry{
		ActorID:     actorID,
		Action:      action,
		TargetType:  domain.ActivityTargetRegistration,
		TargetID:    req.ID,
		Description: description,
		Metadata:    metadata,
	}
	if err := s.activity.Append(ctx, entry); err != nil {
		logger.WithService("approval").Warn("activity log append failed",
			"request_id", req.ID, "action", action, "error", err)
	}
}
