package models

import "time"

// Profile is the portal-side record of a user, keyed by the auth provider's
// user ID. Email is stored normalized (trimmed, lowercased).
type Profile struct {
	ID                  string    `bson:"id" json:"id"`
	Email               string    `bson:"email" json:"email"`
	FullName            string    `bson:"fullName" json:"fullName"`
	Role                Role      `bson:"role,omitempty" json:"role,omitempty"`
	OnboardingCompleted bool      `bson:"onboardingCompleted" json:"onboardingCompleted"`
	Subscribed          bool      `bson:"subscribed" json:"subscribed"`
	CreatedAt           time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time `bson:"updatedAt" json:"updatedAt"`
}
