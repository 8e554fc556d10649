package profileRepo

import (
	"voltpath/models"
)

// ProfileRepository defines methods for profile data access.
type ProfileRepository interface {
	// GetByID retrieves a profile by its unique ID.
	GetByID(id string) (*models.Profile, error)
	// FindByEmail retrieves a profile by normalized email. It returns
	// (nil, nil) when no profile matches.
	FindByEmail(email string) (*models.Profile, error)
	// Create inserts a new profile record.
	Create(profile *models.Profile) error
	// UpsertOnboarding applies the onboarding result (role, completion flag)
	// to the profile row keyed by the auth user ID, creating the row if the
	// provisioning hook has not run yet.
	UpsertOnboarding(profile *models.Profile) error
}
