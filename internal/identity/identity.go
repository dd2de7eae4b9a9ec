// Package identity wraps the external identity store that holds the actual
// login accounts. Provisioning during approval works against this store, so
// it is kept behind a small interface the services can be tested without.
package identity

import "context"

// Provider is the external identity store.
type Provider interface {
	// LookupByEmail returns the identity uid for an email, with found = false
	// (and no error) when no account exists.
	LookupByEmail(ctx context.Context, email string) (uid string, found bool, err error)
	// CreateUser creates an account with a confirmed email and returns its uid.
	CreateUser(ctx context.Context, email, password string) (uid string, err error)
}
