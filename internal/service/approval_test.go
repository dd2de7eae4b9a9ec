package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"minjec-portal-backend/internal/domain"
	"minjec-portal-backend/internal/notification"
)

func pendingRequest(role domain.Role) *domain.RegistrationRequest {
	req := &domain.RegistrationRequest{
		ID:         "req-1",
		Email:      "applicant@test.cm",
		Username:   "applicant",
		Role:       role,
		ExternalID: "EXT-42",
		Status:     domain.RegistrationStatusPending,
	}
	switch role {
	case domain.RoleFieldAgent:
		req.FieldAgent = &domain.FieldAgentAttributes{Region: "Capital", Commune: "North"}
	case domain.RoleOrganization:
		req.Organization = &domain.OrganizationAttributes{Name: "Youth Assoc", Sector: "Education"}
	}
	return req
}

func isActivationCode(code string) bool {
	if len(code) != 4 {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func newApprovalFixture() (*MockRegistrationRepo, *MockProfileRepo, *MockActivityRepo, *MockIdentityProvider, *MockOTPService, *MockDispatcher, ApprovalService) {
	regRepo := new(MockRegistrationRepo)
	profileRepo := new(MockProfileRepo)
	activityRepo := new(MockActivityRepo)
	idp := new(MockIdentityProvider)
	otp := new(MockOTPService)
	dispatcher := new(MockDispatcher)
	svc := NewApprovalService(regRepo, profileRepo, activityRepo, idp, otp, dispatcher, "TempPassword123!")
	return regRepo, profileRepo, activityRepo, idp, otp, dispatcher, svc
}

func TestApprovalService_Approve_FieldAgent(t *testing.T) {
	regRepo, profileRepo, activityRepo, idp, otp, _, svc := newApprovalFixture()
	ctx := context.Background()
	req := pendingRequest(domain.RoleFieldAgent)

	regRepo.On("GetByID", ctx, "req-1").Return(req, nil).Once()
	idp.On("LookupByEmail", ctx, req.Email).Return("", false, nil).Once()
	idp.On("CreateUser", ctx, req.Email, "TempPassword123!").Return("uid-1", nil).Once()
	profileRepo.On("UpsertProfile", ctx, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.ID == "uid-1" && p.Role == domain.RoleFieldAgent && p.Username == "applicant" && p.ExternalID == "EXT-42"
	})).Return(nil).Once()
	profileRepo.On("UpsertFieldAgent", ctx, mock.MatchedBy(func(rec *domain.FieldAgentRecord) bool {
		return rec.UserID == "uid-1" && rec.Department == "Capital - North" && rec.Status == domain.FieldAgentStatusActive
	})).Return(nil).Once()
	regRepo.On("MarkApproved", ctx, "req-1", "admin-9", mock.Anything, mock.MatchedBy(isActivationCode)).Return(true, nil).Once()
	otp.On("Issue", ctx, req.Email, domain.CodePurposeApprovalActivation, mock.MatchedBy(isActivationCode), "applicant").Return(nil).Once()
	activityRepo.On("Append", ctx, mock.MatchedBy(func(e *domain.ActivityLogEntry) bool {
		return e.Action == domain.ActivityActionApprove && e.TargetID == "req-1" && e.ActorID != nil && *e.ActorID == "admin-9"
	})).Return(nil).Once()

	result, err := svc.Approve(ctx, "req-1", "admin-9")
	assert.NoError(t, err)
	assert.Equal(t, "uid-1", result.IdentityID)
	assert.True(t, isActivationCode(result.ActivationCode))
	assert.True(t, result.EmailSent)

	regRepo.AssertExpectations(t)
	profileRepo.AssertExpectations(t)
	idp.AssertExpectations(t)
	otp.AssertExpectations(t)
	activityRepo.AssertExpectations(t)
}

func TestApprovalService_Approve_OrganizationDefaults(t *testing.T) {
	regRepo, profileRepo, activityRepo, idp, otp, _, svc := newApprovalFixture()
	ctx := context.Background()
	req := pendingRequest(domain.RoleOrganization)
	req.Organization = &domain.OrganizationAttributes{}
	req.Credential = "chosen-password"

	regRepo.On("GetByID", ctx, "req-1").Return(req, nil).Once()
	idp.On("LookupByEmail", ctx, req.Email).Return("", false, nil).Once()
	idp.On("CreateUser", ctx, req.Email, "chosen-password").Return("uid-2", nil).Once()
	profileRepo.On("UpsertProfile", ctx, mock.Anything).Return(nil).Once()
	profileRepo.On("UpsertOrganization", ctx, mock.MatchedBy(func(rec *domain.OrganizationRecord) bool {
		return rec.UserID == "uid-2" && rec.Name == "Unnamed organization" && rec.Sector == "Unspecified" &&
			rec.Address == nil && rec.Phone == nil && rec.Status == domain.OrganizationStatusApproved
	})).Return(nil).Once()
	regRepo.On("MarkApproved", ctx, "req-1", "admin-9", mock.Anything, mock.Anything).Return(true, nil).Once()
	otp.On("Issue", ctx, req.Email, domain.CodePurposeApprovalActivation, mock.Anything, "applicant").Return(nil).Once()
	activityRepo.On("Append", ctx, mock.Anything).Return(nil).Once()

	_, err := svc.Approve(ctx, "req-1", "admin-9")
	assert.NoError(t, err)
	profileRepo.AssertExpectations(t)
}

func TestApprovalService_Approve_ReusesExistingIdentity(t *testing.T) {
	regRepo, profileRepo, activityRepo, idp, otp, _, svc := newApprovalFixture()
	ctx := context.Background()
	req := pendingRequest(domain.RoleStandard)

	regRepo.On("GetByID", ctx, "req-1").Return(req, nil).Once()
	idp.On("LookupByEmail", ctx, req.Email).Return("uid-existing", true, nil).Once()
	profileRepo.On("UpsertProfile", ctx, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.ID == "uid-existing"
	})).Return(nil).Once()
	regRepo.On("MarkApproved", ctx, "req-1", "admin-9", mock.Anything, mock.Anything).Return(true, nil).Once()
	otp.On("Issue", ctx, req.Email, domain.CodePurposeApprovalActivation, mock.Anything, "applicant").Return(nil).Once()
	activityRepo.On("Append", ctx, mock.Anything).Return(nil).Once()

	result, err := svc.Approve(ctx, "req-1", "admin-9")
	assert.NoError(t, err)
	assert.Equal(t, "uid-existing", result.IdentityID)
	idp.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestApprovalService_Approve_AlreadyDecided(t *testing.T) {
	regRepo, _, _, _, _, _, svc := newApprovalFixture()
	ctx := context.Background()
	req := pendingRequest(domain.RoleStandard)
	req.Status = domain.RegistrationStatusApproved

	regRepo.On("GetByID", ctx, "req-1").Return(req, nil).Once()

	_, err := svc.Approve(ctx, "req-1", "admin-9")
	var decided *domain.AlreadyDecidedError
	assert.ErrorAs(t, err, &decided)
	assert.Equal(t, domain.RegistrationStatusApproved, decided.CurrentStatus)
	regRepo.AssertNotCalled(t, "MarkApproved", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApprovalService_Approve_LosesRaceToReject(t *testing.T) {
	regRepo, profileRepo, activityRepo, idp, otp, _, svc := newApprovalFixture()
	ctx := context.Background()
	req := pendingRequest(domain.RoleStandard)

	regRepo.On("GetByID", ctx, "req-1").Return(req, nil).Once()
	idp.On("LookupByEmail", ctx, req.Email).Return("uid-1", true, nil).Once()
	profileRepo.On("UpsertProfile", ctx, mock.Anything).Return(nil).Once()
	regRepo.On("MarkApproved", ctx, "req-1", "admin-9", mock.Anything, mock.Anything).Return(false, nil).Once()

	rejected := pendingRequest(domain.RoleStandard)
	rejected.Status = domain.RegistrationStatusRejected
	regRepo.On("GetByID", ctx, "req-1").Return(rejected, nil).Once()

	_, err := svc.Approve(ctx, "req-1", "admin-9")
	var decided *domain.AlreadyDecidedError
	assert.ErrorAs(t, err, &decided)
	assert.Equal(t, domain.RegistrationStatusRejected, decided.CurrentStatus)
	otp.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	activityRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestApprovalService_Approve_EmailFailureDoesNotFail(t *testing.T) {
	regRepo, profileRepo, activityRepo, idp, otp, _, svc := newApprovalFixture()
	ctx := context.Background()
	req := pendingRequest(domain.RoleStandard)

	regRepo.On("GetByID", ctx, "req-1").Return(req, nil).Once()
	idp.On("LookupByEmail", ctx, req.Email).Return("uid-1", true, nil).Once()
	profileRepo.On("UpsertProfile", ctx, mock.Anything).Return(nil).Once()
	regRepo.On("MarkApproved", ctx, "req-1", "admin-9", mock.Anything, mock.Anything).Return(true, nil).Once()
	otp.On("Issue", ctx, req.Email, domain.CodePurposeApprovalActivation, mock.Anything, "applicant").
		Return(&domain.AllProvidersFailedError{}).Once()
	activityRepo.On("Append", ctx, mock.Anything).Return(nil).Once()

	result, err := svc.Approve(ctx, "req-1", "admin-9")
	assert.NoError(t, err)
	assert.False(t, result.EmailSent)
	assert.True(t, isActivationCode(result.ActivationCode))
}

func TestApprovalService_Approve_ProvisioningFailure(t *testing.T) {
	regRepo, profileRepo, _, idp, _, _, svc := newApprovalFixture()
	ctx := context.Background()
	req := pendingRequest(domain.RoleStandard)

	regRepo.On("GetByID", ctx, "req-1").Return(req, nil).Once()
	idp.On("LookupByEmail", ctx, req.Email).Return("uid-1", true, nil).Once()
	profileRepo.On("UpsertProfile", ctx, mock.Anything).Return(errors.New("db down")).Once()

	_, err := svc.Approve(ctx, "req-1", "admin-9")
	var prov *domain.ProvisioningError
	assert.ErrorAs(t, err, &prov)
	assert.Equal(t, "profile record", prov.Stage)
	regRepo.AssertNotCalled(t, "MarkApproved", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApprovalService_Approve_NotFound(t *testing.T) {
	regRepo, _, _, _, _, _, svc := newApprovalFixture()
	ctx := context.Background()

	regRepo.On("GetByID", ctx, "missing").Return(nil, domain.ErrNotFound).Once()

	_, err := svc.Approve(ctx, "missing", "admin-9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApprovalService_Reject(t *testing.T) {
	regRepo, _, activityRepo, _, _, dispatcher, svc := newApprovalFixture()
	ctx := context.Background()

	t.Run("DefaultReason", func(t *testing.T) {
		req := pendingRequest(domain.RoleStandard)
		regRepo.On("GetByID", ctx, "req-1").Return(req, nil).Once()
		regRepo.On("MarkRejected", ctx, "req-1", "admin-9", mock.Anything, defaultRejectionReason).Return(true, nil).Once()
		dispatcher.On("Send", ctx, notification.KindRejection, req.Email, mock.MatchedBy(func(d notification.Data) bool {
			return d.RejectionReason == defaultRejectionReason && d.Username == "applicant"
		})).Return(&notification.Result{Provider: "sendgrid"}, nil).Once()
		activityRepo.On("Append", ctx, mock.MatchedBy(func(e *domain.ActivityLogEntry) bool {
			return e.Action == domain.ActivityActionReject
		})).Return(nil).Once()

		err := svc.Reject(ctx, "req-1", "admin-9", "")
		assert.NoError(t, err)
	})

	t.Run("EmailActorLoggedWithoutActorID", func(t *testing.T) {
		req := pendingRequest(domain.RoleStandard)
		regRepo.On("GetByID", ctx, "req-1").Return(req, nil).Once()
		regRepo.On("MarkRejected", ctx, "req-1", domain.EmailActionActor, mock.Anything, "Incomplete documents").Return(true, nil).Once()
		dispatcher.On("Send", ctx, notification.KindRejection, req.Email, mock.Anything).
			Return(&notification.Result{}, nil).Once()
		activityRepo.On("Append", ctx, mock.MatchedBy(func(e *domain.ActivityLogEntry) bool {
			return e.ActorID == nil && e.Metadata["actor"] == domain.EmailActionActor
		})).Return(nil).Once()

		err := svc.Reject(ctx, "req-1", domain.EmailActionActor, "Incomplete documents")
		assert.NoError(t, err)
	})

	t.Run("AlreadyDecided", func(t *testing.T) {
		req := pendingRequest(domain.RoleStandard)
		req.Status = domain.RegistrationStatusRejected
		regRepo.On("GetByID", ctx, "req-1").Return(req, nil).Once()

		err := svc.Reject(ctx, "req-1", "admin-9", "")
		assert.True(t, domain.IsAlreadyDecided(err))
	})

	regRepo.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
	activityRepo.AssertExpectations(t)
}

func TestComposeDepartment(t *testing.T) {
	cases := []struct {
		name string
		fa   *domain.FieldAgentAttributes
		want string
	}{
		{"Full", &domain.FieldAgentAttributes{Region: "Capital", Commune: "North", Neighborhood: "Hilltop"}, "Capital - North (Hilltop)"},
		{"RegionCommune", &domain.FieldAgentAttributes{Region: "Capital", Commune: "North"}, "Capital - North"},
		{"RegionOnly", &domain.FieldAgentAttributes{Region: "Capital"}, "Capital"},
		{"CommuneWithoutRegion", &domain.FieldAgentAttributes{Commune: "North"}, "Unspecified - North"},
		{"Empty", &domain.FieldAgentAttributes{}, "Unspecified"},
		{"Nil", nil, "Unspecified"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, composeDepartment(tc.fa))
		})
	}
}
