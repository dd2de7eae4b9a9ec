package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"minjec-portal-backend/internal/codegen"
	"minjec-portal-backend/internal/domain"
	"minjec-portal-backend/internal/logger"
	"minjec-portal-backend/internal/notification"
	"minjec-portal-backend/internal/repository"
)

type otpService struct {
	codes      repository.CodeRepository
	dispatcher notification.Dispatcher
	expiry     time.Duration
}

func NewOTPService(codes repository.CodeRepository, dispatcher notification.Dispatcher, expiry time.Duration) OTPService {
	return &otpService{codes: codes, dispatcher: dispatcher, expiry: expiry}
}

func (s *otpService) Request(ctx context.Context, email string, purpose domain.CodePurpose) (time.Duration, error) {
	code, err := codegen.ForPurpose(purpose)
	if err != nil {
		return 0, fmt.Errorf("generating code: %w", err)
	}
	if err := s.Issue(ctx, email, purpose, code, ""); err != nil {
		return 0, err
	}
	return s.expiry, nil
}

func (s *otpService) Issue(ctx context.Context, email string, purpose domain.CodePurpose, code, username string) error {
	now := time.Now().UTC()
	rec := &domain.CodeRecord{
		Email:     email,
		Purpose:   purpose,
		Code:      code,
		ExpiresAt: now.Add(s.expiry),
	}
	if err := s.codes.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("storing code: %w", err)
	}

	kind := notification.KindOTP
	if purpose == domain.CodePurposeApprovalActivation {
		kind = notification.KindApproval
	}
	if _, err := s.dispatcher.Send(ctx, kind, email, notification.Data{
		Username:      username,
		Code:          code,
		ExpiryMinutes: int(s.expiry.Minutes()),
	}); err != nil {
		return err
	}

	logger.WithService("otp").Info("code issued", "email", email, "purpose", purpose)
	return nil
}

func (s *otpService) Verify(ctx context.Context, email string, purpose domain.CodePurpose, submitted string) error {
	log := logger.WithService("otp")

	rec, err := s.codes.GetActive(ctx, email, purpose)
	if err != nil {
		return fmt.Errorf("loading code: %w", err)
	}
	if rec == nil {
		return domain.ErrInvalidOrExpiredCode
	}

	if strings.TrimSpace(submitted) != rec.Code {
		return domain.ErrInvalidOrExpiredCode
	}

	now := time.Now().UTC()
	if rec.Expired(now) {
		// Burn the matched-but-stale code so it cannot be retried.
		if _, err := s.codes.Consume(ctx, email, purpose, nil); err != nil {
			log.Warn("failed to burn expired code", "email", email, "purpose", purpose, "error", err)
		}
		return domain.ErrInvalidOrExpiredCode
	}

	ok, err := s.codes.Consume(ctx, email, purpose, &now)
	if err != nil {
		return fmt.Errorf("consuming code: %w", err)
	}
	if !ok {
		// A concurrent verify won the redemption.
		return domain.ErrInvalidOrExpiredCode
	}

	log.Info("code verified", "email", email, "purpose", purpose)
	return nil
}
