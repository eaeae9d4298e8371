package auth_test

import (
	"strings"
	"testing"

	"github.com/phreshco/phresh/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPasswordPolicy(t *testing.T) {
	policy := auth.DefaultPasswordPolicy()

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"all three classes", "correct-horse1", true},
		{"exactly min length", "abcdefgh1!", true},
		{"exactly max length", strings.Repeat("a1!", 10), true},
		{"too short", "abc1!", false},
		{"too long", strings.Repeat("a1!", 10) + "x", false},
		{"no digit", "abcdefghij!", false},
		{"no letter", "1234567890!", false},
		{"no symbol", "abcdefghij1", false},
		{"empty", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := policy.Validate(tc.password)
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, auth.IsInvalidPassword(err))
		})
	}
}

func TestPasswordPolicyDeniedPatterns(t *testing.T) {
	policy := auth.DefaultPasswordPolicy()
	policy.Denied = []auth.CharacterClass{
		auth.Class("whitespace", `\s`),
	}

	err := policy.Validate("has a space1!")
	require.Error(t, err)
	assert.True(t, auth.IsInvalidPassword(err))

	assert.NoError(t, policy.Validate("no-spaces-here1"))
}

func TestPasswordPolicyLengthBeforeClasses(t *testing.T) {
	policy := auth.DefaultPasswordPolicy()

	// A short password missing every class reports length, not a class.
	err := policy.Validate("ab")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 10 characters")
}
