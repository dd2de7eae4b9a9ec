package domain

import "time"

type ActivityAction string

const (
	ActivityActionApprove ActivityAction = "APPROVE"
	ActivityActionReject  ActivityAction = "REJECT"
)

const ActivityTargetRegistration = "REGISTRATION_REQUEST"

// ActivityLogEntry is an append-only audit record. ActorID is nil for
// actions triggered by the system or an email quick-action link.
type ActivityLogEntry struct {
	ID          string         `json:"id"`
	ActorID     *string        `json:"actor_id,omitempty"`
	Action      ActivityAction `json:"action"`
	TargetType  string         `json:"target_type"`
	TargetID    string         `json:"target_id"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
