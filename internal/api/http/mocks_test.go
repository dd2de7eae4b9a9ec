package http

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"minjec-portal-backend/internal/domain"
	"minjec-portal-backend/internal/service"
)

type MockRegistrationService struct {
	mock.Mock
}

func (m *MockRegistrationService) Submit(ctx context.Context, req *domain.RegistrationRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockRegistrationService) ListByStatus(ctx context.Context, status domain.RegistrationStatus) ([]domain.RegistrationRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RegistrationRequest), args.Error(1)
}

type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) Approve(ctx context.Context, requestID, actingAdminID string) (*service.ApprovalResult, error) {
	args := m.Called(ctx, requestID, actingAdminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApprovalResult), args.Error(1)
}

func (m *MockApprovalService) Reject(ctx context.Context, requestID, actingAdminID, reason string) error {
	args := m.Called(ctx, requestID, actingAdminID, reason)
	return args.Error(0)
}

type MockOTPService struct {
	mock.Mock
}

func (m *MockOTPService) Request(ctx context.Context, email string, purpose domain.CodePurpose) (time.Duration, error) {
	args := m.Called(ctx, email, purpose)
	return args.Get(0).(time.Duration), args.Error(1)
}

func (m *MockOTPService) Issue(ctx context.Context, email string, purpose domain.CodePurpose, code, username string) error {
	args := m.Called(ctx, email, purpose, code, username)
	return args.Error(0)
}

func (m *MockOTPService) Verify(ctx context.Context, email string, purpose domain.CodePurpose, submitted string) error {
	args := m.Called(ctx, email, purpose, submitted)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *domain.Admin, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.Admin), args.Error(2)
}
