package auth

import "context"

// AccountProvider creates authenticated identities with an external auth
// service. The provider is the authority on duplicates: it must reject a
// second account for an email that already has one.
type AccountProvider interface {
	// CreateAccount provisions a new account and returns its opaque user ID.
	CreateAccount(ctx context.Context, email, password, displayName string) (string, error)
}
