package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"minjec-portal-backend/internal/domain"
	"minjec-portal-backend/internal/notification"
)

type MockRegistrationRepo struct {
	mock.Mock
}

func (m *MockRegistrationRepo) Create(ctx context.Context, req *domain.RegistrationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRegistrationRepo) GetByID(ctx context.Context, id string) (*domain.RegistrationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegistrationRequest), args.Error(1)
}

func (m *MockRegistrationRepo) ListByStatus(ctx context.Context, status domain.RegistrationStatus) ([]domain.RegistrationRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RegistrationRequest), args.Error(1)
}

func (m *MockRegistrationRepo) MarkApproved(ctx context.Context, id, adminID string, decidedAt time.Time, code string) (bool, error) {
	args := m.Called(ctx, id, adminID, decidedAt, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockRegistrationRepo) MarkRejected(ctx context.Context, id, adminID string, decidedAt time.Time, reason string) (bool, error) {
	args := m.Called(ctx, id, adminID, decidedAt, reason)
	return args.Bool(0), args.Error(1)
}

type MockCodeRepo struct {
	mock.Mock
}

func (m *MockCodeRepo) Upsert(ctx context.Context, rec *domain.CodeRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockCodeRepo) GetActive(ctx context.Context, email string, purpose domain.CodePurpose) (*domain.CodeRecord, error) {
	args := m.Called(ctx, email, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CodeRecord), args.Error(1)
}

func (m *MockCodeRepo) Consume(ctx context.Context, email string, purpose domain.CodePurpose, verifiedAt *time.Time) (bool, error) {
	args := m.Called(ctx, email, purpose, verifiedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockCodeRepo) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Append(ctx context.Context, entry *domain.ActivityLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) UpsertProfile(ctx context.Context, p *domain.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileRepo) UpsertFieldAgent(ctx context.Context, rec *domain.FieldAgentRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockProfileRepo) UpsertOrganization(ctx context.Context, rec *domain.OrganizationRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) LookupByEmail(ctx context.Context, email string) (string, bool, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockIdentityProvider) CreateUser(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Send(ctx context.Context, kind notification.Kind, to string, data notification.Data) (*notification.Result, error) {
	args := m.Called(ctx, kind, to, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Result), args.Error(1)
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
