// Package notification renders templated emails and delivers them through an
// ordered chain of providers, falling through to the next provider on
// failure.
package notification

import (
	"context"

	"minjec-portal-backend/internal/domain"
	"minjec-portal-backend/internal/logger"
)

type Kind string

const (
	KindAdminNotification Kind = "admin_notification"
	KindApproval          Kind = "approval"
	KindRejection         Kind = "rejection"
	KindOTP               Kind = "otp"
)

// Result identifies a successful delivery.
type Result struct {
	DeliveryID string `json:"delivery_id"`
	Provider   string `json:"provider"`
}

type Dispatcher interface {
	// Send renders the template for kind once, then tries each provider in
	// order with the same rendered content. It fails with
	// AllProvidersFailedError only when every provider rejected the send.
	Send(ctx context.Context, kind Kind, to string, data Data) (*Result, error)
}

type dispatcher struct {
	providers []Provider
}

// NewDispatcher builds a dispatcher trying providers in the given order.
func NewDispatcher(providers ...Provider) Dispatcher {
	return &dispatcher{providers: providers}
}

func (d *dispatcher) Send(ctx context.Context, kind Kind, to string, data Data) (*Result, error) {
	subject, html, err := render(kind, data)
	if err != nil {
		return nil, err
	}

	var attempts []domain.ProviderAttempt
	for _, p := range d.providers {
		logger.ExternalServiceCall(p.Name(), "Send", "kind", kind, "to", to)
		id, err := p.Send(ctx, to, subject, html)
		if err == nil {
			logger.ExternalServiceResult(p.Name(), "Send", nil, "delivery_id", id)
			return &Result{DeliveryID: id, Provider: p.Name()}, nil
		}
		logger.Warn("Notification provider failed, trying next", "provider", p.Name(), "kind", kind, "error", err)
		attempts = append(attempts, domain.ProviderAttempt{Provider: p.Name(), Err: err})
	}

	return nil, &domain.AllProvidersFailedError{Attempts: attempts}
}
