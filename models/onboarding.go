package models

import "time"

// OnboardingStep identifies the wizard step a session is positioned at.
type OnboardingStep string

const (
	StepAccount OnboardingStep = "account"
	StepProfile OnboardingStep = "profile"
	StepConsent OnboardingStep = "consent"
)

// Role is the trade role selected during onboarding.
type Role string

const (
	RoleElectrician Role = "electrician"
	RoleApprentice  Role = "apprentice"
	// RoleEmployer exists in the domain but is provisioned through the
	// sales-led path, never through self-service onboarding.
	RoleEmployer Role = "employer"
)

// SelectableRoles are the roles offered on the profile step.
var SelectableRoles = []Role{RoleElectrician, RoleApprentice}

// IsSelectable reports whether the role may be chosen during self-service
// onboarding.
func (r Role) IsSelectable() bool {
	for _, allowed := range SelectableRoles {
		if r == allowed {
			return true
		}
	}
	return false
}

// AccountDetails are the credentials collected on the account step.
type AccountDetails struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ConsentDetails are the consent flags collected on the final step. The
// first three gate submission; marketing is optional.
type ConsentDetails struct {
	TermsAccepted          bool `json:"termsAccepted"`
	PrivacyAccepted        bool `json:"privacyAccepted"`
	DataProcessingAccepted bool `json:"dataProcessingAccepted"`
	MarketingOptIn         bool `json:"marketingOptIn"`
}

// RequiredAccepted reports whether all mandatory consent flags are set.
func (c ConsentDetails) RequiredAccepted() bool {
	return c.TermsAccepted && c.PrivacyAccepted && c.DataProcessingAccepted
}

// OnboardingSession is the server-held state of one onboarding flow. It is
// created on start, mutated only by step submissions, and deleted when the
// flow exits to checkout or its TTL lapses.
type OnboardingSession struct {
	ID      string          `json:"id"`
	Step    OnboardingStep  `json:"step"`
	Account *AccountDetails `json:"account,omitempty"`
	Role    Role            `json:"role,omitempty"`
	Consent *ConsentDetails `json:"consent,omitempty"`
	// Error is the message surfaced for the active step. It is cleared on
	// every transition attempt and mutually exclusive with an advance.
	Error     string `json:"error,omitempty"`
	OfferCode string `json:"offerCode,omitempty"`
	// SubmitInFlight guards against a second submission while a collaborator
	// call is pending.
	SubmitInFlight bool      `json:"submitInFlight"`
	CreatedAt      time.Time `json:"createdAt"`
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
}

// ProfileApplyPayload is the payload of the background task that retries a
// failed onboarding profile write.
type ProfileApplyPayload struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Role      Role   `json:"role"`
}
