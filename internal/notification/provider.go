package notification

import "context"

// Provider is a single email delivery channel. Implementations must treat
// each Send independently so the dispatcher can fall through the chain.
type Provider interface {
	Name() string
	Send(ctx context.Context, to, subject, html string) (deliveryID string, err error)
}
