package onboarding

import "errors"

// Flow-control errors returned to handlers. These are distinct from the
// user-facing step messages below, which travel on the session itself.
var (
	ErrSessionNotFound    = errors.New("onboarding session not found or expired")
	ErrInvalidStep        = errors.New("operation not valid for the current step")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
)

// User-facing step messages. Each replaces the previous one; they are never
// accumulated.
const (
	MsgFillAllFields        = "Please fill in all fields"
	MsgInvalidEmail         = "Please enter a valid email address"
	MsgPasswordRequirements = "Password must be at least 8 characters and include an uppercase letter, a lowercase letter and a number"
	MsgPasswordMismatch     = "Passwords do not match"
	MsgDuplicateAccount     = "An account with this email already exists. Please sign in instead."
	MsgSelectRole           = "Please select your role"
	MsgAcceptRequired       = "Please accept the required terms"
)
