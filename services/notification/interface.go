package notification

import (
	"context"

	"voltpath/models"
)

// Dispatcher sends transactional email. Welcome mail is best-effort: the
// onboarding flow never blocks on it.
type Dispatcher interface {
	SendWelcomeEmail(ctx context.Context, payload models.WelcomeEmailPayload) error
}
