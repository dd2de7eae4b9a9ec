package identity

import (
	"context"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"minjec-portal-backend/internal/logger"
)

type firebaseProvider struct {
	client  *auth.Client
	timeout time.Duration
}

// NewFirebaseProvider connects to Firebase Auth using a service-account
// credentials file. Every call is bounded by the given timeout.
func NewFirebaseProvider(ctx context.Context, credentialsFile string, timeout time.Duration) (Provider, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}
	return &firebaseProvider{client: client, timeout: timeout}, nil
}

func (p *firebaseProvider) LookupByEmail(ctx context.Context, email string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	logger.ExternalServiceCall("firebase", "GetUserByEmail", "email", email)
	u, err := p.client.GetUserByEmail(ctx, email)
	if auth.IsUserNotFound(err) {
		logger.ExternalServiceResult("firebase", "GetUserByEmail", nil, "found", false)
		return "", false, nil
	}
	if err != nil {
		logger.ExternalServiceResult("firebase", "GetUserByEmail", err)
		return "", false, fmt.Errorf("identity lookup failed: %w", err)
	}
	logger.ExternalServiceResult("firebase", "GetUserByEmail", nil, "found", true)
	return u.UID, true, nil
}

func (p *firebaseProvider) CreateUser(ctx context.Context, email, password string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		EmailVerified(true)

	logger.ExternalServiceCall("firebase", "CreateUser", "email", email)
	u, err := p.client.CreateUser(ctx, params)
	if err != nil {
		logger.ExternalServiceResult("firebase", "CreateUser", err)
		return "", fmt.Errorf("identity creation failed: %w", err)
	}
	logger.ExternalServiceResult("firebase", "CreateUser", nil, "uid", u.UID)
	return u.UID, nil
}
