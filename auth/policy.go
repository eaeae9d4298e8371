package auth

import (
	"fmt"
	"regexp"
)

// CharacterClass names a set of characters a password must (or must not)
// draw from.
type CharacterClass struct {
	Name    string
	Pattern *regexp.Regexp
}

// Class compiles a named character class. It panics on a bad pattern, so
// policies are only ever built from literals at startup.
func Class(name, pattern string) CharacterClass {
	return CharacterClass{
		Name:    name,
		Pattern: regexp.MustCompile(pattern),
	}
}

// PasswordPolicy validates candidate passwords before they are hashed and
// persisted. Validation is pure: no I/O, no state.
type PasswordPolicy struct {
	MinLength int
	MaxLength int
	// Required classes must each match at least once.
	Required []CharacterClass
	// Denied classes reject the password on any match. Empty by default.
	Denied []CharacterClass
}

// DefaultPasswordPolicy mirrors the deployment defaults: 10-30 characters
// with at least one letter, one digit, and one symbol.
func DefaultPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{
		MinLength: 10,
		MaxLength: 30,
		Required: []CharacterClass{
			Class("letter", `[a-zA-Z]`),
			Class("digit", `[0-9]`),
			Class("symbol", `[{}\[\]/?.,;:|)*~`+"`"+`!^\-_+<>@#$%&\\=('"]`),
		},
	}
}

// Validate returns nil when password satisfies the policy, or an
// InvalidPassword error whose reason names the rule that failed.
func (p *PasswordPolicy) Validate(password string) error {
	if len(password) < p.MinLength {
		return InvalidPassword(fmt.Sprintf("password should be at least %d characters", p.MinLength))
	}

	if len(password) > p.MaxLength {
		return InvalidPassword(fmt.Sprintf("password should be at most %d characters", p.MaxLength))
	}

	for _, class := range p.Denied {
		if class.Pattern.MatchString(password) {
			return InvalidPassword(fmt.Sprintf("password should not include %s characters", class.Name))
		}
	}

	for _, class := range p.Required {
		if !class.Pattern.MatchString(password) {
			return InvalidPassword(fmt.Sprintf("password must include at least one %s", class.Name))
		}
	}

	return nil
}
