package onboarding

import (
	"regexp"

	"voltpath/models"
)

// Permissive local@domain.tld shape; full RFC 5322 checking is deliberately
// out of scope.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	upperPattern = regexp.MustCompile(`[A-Z]`)
	lowerPattern = regexp.MustCompile(`[a-z]`)
	digitPattern = regexp.MustCompile(`[0-9]`)
)

// IsValidEmail reports whether the string looks like an email address.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// PasswordChecklist itemizes the password policy so callers can render a
// per-rule checklist, not just a pass/fail.
type PasswordChecklist struct {
	MinLength bool `json:"minLength"`
	HasUpper  bool `json:"hasUpper"`
	HasLower  bool `json:"hasLower"`
	HasDigit  bool `json:"hasDigit"`
}

// CheckPassword evaluates every policy rule independently.
func CheckPassword(password string) PasswordChecklist {
	return PasswordChecklist{
		MinLength: len(password) >= 8,
		HasUpper:  upperPattern.MatchString(password),
		HasLower:  lowerPattern.MatchString(password),
		HasDigit:  digitPattern.MatchString(password),
	}
}

// Satisfied reports whether all rules hold.
func (c PasswordChecklist) Satisfied() bool {
	return c.MinLength && c.HasUpper && c.HasLower && c.HasDigit
}

// MeetsPasswordPolicy reports whether the password satisfies the full policy:
// at least 8 characters with an uppercase letter, a lowercase letter and a
// digit. There is no symbol requirement and no maximum length.
func MeetsPasswordPolicy(password string) bool {
	return CheckPassword(password).Satisfied()
}

// AccountValidation is the result of validating the account step.
type AccountValidation struct {
	Valid    bool              `json:"valid"`
	Message  string            `json:"message,omitempty"`
	Password PasswordChecklist `json:"password"`
}

// ValidateAccount checks the four account fields. Emptiness is reported
// before any field-specific rule, with a generic message.
func ValidateAccount(account models.AccountDetails) AccountValidation {
	v := AccountValidation{Password: CheckPassword(account.Password)}

	if account.FullName == "" || account.Email == "" || account.Password == "" || account.ConfirmPassword == "" {
		v.Message = MsgFillAllFields
		return v
	}
	if !IsValidEmail(account.Email) {
		v.Message = MsgInvalidEmail
		return v
	}
	if !v.Password.Satisfied() {
		v.Message = MsgPasswordRequirements
		return v
	}
	if account.Password != account.ConfirmPassword {
		v.Message = MsgPasswordMismatch
		return v
	}

	v.Valid = true
	return v
}
