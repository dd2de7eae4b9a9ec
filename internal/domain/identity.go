package domain

import "time"

// Profile mirrors the identity-store account inside our own database.
// The ID is the identity provider's uid, so provisioning upserts are
// naturally idempotent.
type Profile struct {
	ID         string    `json:"id"`
	Role       Role      `json:"role"`
	Username   string    `json:"username"`
	ExternalID string    `json:"external_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type FieldAgentStatus string

const FieldAgentStatusActive FieldAgentStatus = "active"

// FieldAgentRecord is the role record provisioned for approved field agents,
// keyed by the identity uid. Department is the composed display value of the
// submitted region attributes.
type FieldAgentRecord struct {
	UserID     string           `json:"user_id"`
	Department string           `json:"department"`
	Status     FieldAgentStatus `json:"status"`
}

type OrganizationStatus string

const OrganizationStatusApproved OrganizationStatus = "approved"

// OrganizationRecord is the role record provisioned for approved
// organizations, keyed by the identity uid.
type OrganizationRecord struct {
	UserID  string             `json:"user_id"`
	Name    string             `json:"name"`
	Sector  string             `json:"sector"`
	Address *string            `json:"address,omitempty"`
	Phone   *string            `json:"phone,omitempty"`
	Status  OrganizationStatus `json:"status"`
}

// Admin is a back-office account allowed to decide registrations.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// EmailActionActor is the fixed actor id recorded for decisions taken
// through an email quick-action link.
const EmailActionActor = "admin-via-email"
