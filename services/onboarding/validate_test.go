package onboarding

import (
	"testing"

	"voltpath/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeetsPasswordPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"all rules satisfied", "Abcd1234", true},
		{"exactly 8 chars with one of each class", "Aa1bcdef", true},
		{"7 chars with all classes fails on length", "Abc1234", false},
		{"no uppercase and no digit", "abcdefgh", false},
		{"no lowercase", "ABCD1234", false},
		{"no digit", "Abcdefgh", false},
		{"no uppercase", "abcd1234", false},
		{"symbols allowed but not required", "Abcd123!", true},
		{"long password", "CorrectHorse1BatteryStaple", true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MeetsPasswordPolicy(tt.password))
		})
	}
}

func TestCheckPasswordItemizesRules(t *testing.T) {
	checklist := CheckPassword("abc1234")

	assert.False(t, checklist.MinLength)
	assert.False(t, checklist.HasUpper)
	assert.True(t, checklist.HasLower)
	assert.True(t, checklist.HasDigit)
	assert.False(t, checklist.Satisfied())
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"jane@example.com", true},
		{"a@b.co", true},
		{"first.last+tag@sub.example.co.uk", true},
		{"janeexample.com", false},
		{"jane@example", false},
		{"@example.com", false},
		{"jane@", false},
		{"jane doe@example.com", false},
		{"jane@exa mple.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.email))
		})
	}
}

func TestValidateAccount(t *testing.T) {
	valid := models.AccountDetails{
		FullName:        "Jane Doe",
		Email:           "jane@example.com",
		Password:        "Abcd1234",
		ConfirmPassword: "Abcd1234",
	}

	t.Run("valid input passes", func(t *testing.T) {
		v := ValidateAccount(valid)
		assert.True(t, v.Valid)
		assert.Empty(t, v.Message)
	})

	t.Run("empty field reported before specific rules", func(t *testing.T) {
		acct := valid
		acct.FullName = ""
		acct.Email = "not-an-email"
		v := ValidateAccount(acct)
		assert.False(t, v.Valid)
		assert.Equal(t, MsgFillAllFields, v.Message)
	})

	t.Run("invalid email", func(t *testing.T) {
		acct := valid
		acct.Email = "janeexample.com"
		v := ValidateAccount(acct)
		assert.False(t, v.Valid)
		assert.Equal(t, MsgInvalidEmail, v.Message)
	})

	t.Run("weak password", func(t *testing.T) {
		acct := valid
		acct.Password = "abcdefgh"
		acct.ConfirmPassword = "abcdefgh"
		v := ValidateAccount(acct)
		assert.False(t, v.Valid)
		assert.Equal(t, MsgPasswordRequirements, v.Message)
		assert.False(t, v.Password.HasUpper)
		assert.False(t, v.Password.HasDigit)
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		acct := valid
		acct.ConfirmPassword = "Abcd12345"
		v := ValidateAccount(acct)
		assert.False(t, v.Valid)
		assert.Equal(t, MsgPasswordMismatch, v.Message)
	})

	t.Run("idempotent over identical input", func(t *testing.T) {
		first := ValidateAccount(valid)
		second := ValidateAccount(valid)
		require.Equal(t, first, second)

		weak := valid
		weak.Password = "short"
		weak.ConfirmPassword = "short"
		require.Equal(t, ValidateAccount(weak), ValidateAccount(weak))
	})
}
