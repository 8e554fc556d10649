package auth

import (
	"context"
	"fmt"

	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseAccountProvider implements AccountProvider on Firebase Auth.
type FirebaseAccountProvider struct {
	client *fbauth.Client
}

// NewFirebaseAccountProvider wraps an initialized Firebase Auth client.
func NewFirebaseAccountProvider(client *fbauth.Client) *FirebaseAccountProvider {
	return &FirebaseAccountProvider{client: client}
}

// CreateAccount provisions a Firebase user with email/password credentials
// and returns the assigned UID. Firebase rejects duplicate emails here, which
// makes this call the authoritative duplicate check.
func (p *FirebaseAccountProvider) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	record, err := p.client.CreateUser(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to create account: %w", err)
	}
	return record.UID, nil
}
