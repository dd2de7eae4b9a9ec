package domain

import "time"

type RegistrationStatus string

const (
	RegistrationStatusPending  RegistrationStatus = "pending"
	RegistrationStatusApproved RegistrationStatus = "approved"
	RegistrationStatusRejected RegistrationStatus = "rejected"
)

type Role string

const (
	RoleStandard     Role = "standard"
	RoleFieldAgent   Role = "field_agent"
	RoleOrganization Role = "organization"
	RoleAdmin        Role = "admin"
)

// FieldAgentAttributes carries the deployment area submitted with a
// field-agent registration. Commune and Neighborhood are only meaningful
// when the region is subdivided.
type FieldAgentAttributes struct {
	Region       string `json:"region"`
	Commune      string `json:"commune,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
}

// OrganizationAttributes carries the details submitted with an
// organization registration.
type OrganizationAttributes struct {
	Name    string `json:"name"`
	Sector  string `json:"sector"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// RegistrationRequest is a citizen registration awaiting an admin decision.
// Status is monotonic: pending moves to approved or rejected exactly once
// and is never reversed. Rows are kept forever as an audit trail.
type RegistrationRequest struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Role       Role   `json:"role"`
	ExternalID string `json:"external_id"`

	// Exactly one of these is set, matching Role.
	FieldAgent   *FieldAgentAttributes   `json:"field_agent,omitempty"`
	Organization *OrganizationAttributes `json:"organization,omitempty"`

	// Credential is the password requested at submission time. It is kept
	// out of the attribute structs and never serialized.
	Credential string `json:"-"`

	Status          RegistrationStatus `json:"status"`
	ApprovedBy      *string            `json:"approved_by,omitempty"`
	DecidedAt       *time.Time         `json:"decided_at,omitempty"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
	ActivationCode  *string            `json:"activation_code,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

// Decided reports whether the request has reached a terminal status.
func (r *RegistrationRequest) Decided() bool {
	return r.Status != RegistrationStatusPending
}
