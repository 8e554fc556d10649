package onboarding

import (
	"context"

	profileRepo "voltpath/database/repository/profile"
	"voltpath/models"
	"voltpath/services/auth"

	"github.com/hibiken/asynq"
)

// OnboardingService drives the multi-step signup flow: account credentials,
// role selection, consent capture, then hand-off to checkout.
type OnboardingService interface {
	// Start creates a fresh session positioned at the account step and
	// returns it with a signed session token. An offer code from the landing
	// URL is captured here, once.
	Start(offerCode string) (*models.OnboardingSession, string, error)
	// GetSession returns the current session state.
	GetSession(sessionID string) (*models.OnboardingSession, error)
	// SubmitAccount validates the account step and, on success, advances to
	// the profile step. Includes the advisory duplicate-email pre-check.
	SubmitAccount(sessionID string, account models.AccountDetails) (*models.OnboardingSession, error)
	// SubmitProfile records the role selection and advances to consent.
	SubmitProfile(sessionID string, role models.Role) (*models.OnboardingSession, error)
	// Back moves exactly one step backward without validation.
	Back(sessionID string) (*models.OnboardingSession, error)
	// Submit runs the final submission chain and, on success, returns the
	// checkout hand-off. On a validation failure the returned session
	// carries the error and no result is produced.
	Submit(ctx context.Context, sessionID string, consent models.ConsentDetails) (*models.OnboardingSession, *SubmissionResult, error)
}

// SubmissionResult is the terminal outcome of a completed onboarding flow.
type SubmissionResult struct {
	UserID        string                   `json:"userId"`
	Selection     models.CheckoutSelection `json:"selection"`
	CheckoutRoute string                   `json:"checkoutRoute"`
}

// TaskEnqueuer enqueues background tasks. *asynq.Client satisfies it.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DefaultOnboardingService is the production implementation.
type DefaultOnboardingService struct {
	Profiles      profileRepo.ProfileRepository
	Accounts      auth.AccountProvider
	Sessions      SessionStore
	Staging       StagingStore
	Queue         TaskEnqueuer
	CheckoutRoute string
}
