package service

import "regexp"

var (
	upperRe  = regexp.MustCompile(`[A-Z]`)
	lowerRe  = regexp.MustCompile(`[a-z]`)
	digitRe  = regexp.MustCompile(`\d`)
	symbolRe = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// PasswordValidator checks the registration password policy.
type PasswordValidator struct{}

// NewPasswordValidator creates a new password validator.
func NewPasswordValidator() *PasswordValidator {
	return &PasswordValidator{}
}

// Validate returns every violated rule, not just the first one.
func (v *PasswordValidator) Validate(password string) []string {
	if password == "" {
		return []string{"Password is required."}
	}

	var violations []string
	if len(password) < 8 {
		violations = append(violations, "Password must be at least 8 characters long.")
	}
	if !upperRe.MatchString(password) {
		violations = append(violations, "Password must contain at least one uppercase letter.")
	}
	if !lowerRe.MatchString(password) {
		violations = append(violations, "Password must contain at least one lowercase letter.")
	}
	if !digitRe.MatchString(password) {
		violations = append(violations, "Password must contain at least one digit.")
	}
	if !symbolRe.MatchString(password) {
		violations = append(violations, "Password must contain at least one special character.")
	}
	return violations
}
