package validation

import "strings"

const minPasswordLength = 8

// PasswordStrengthErrors applies the password strength rules: minimum
// length, not entirely numeric, and not too similar to the username or email.
// Returns one message per violated rule, empty when the password passes.
func PasswordStrengthErrors(password, username, email string) []string {
	var msgs []string

	if len(password) < minPasswordLength {
		msgs = append(msgs, "This password is too short. It must contain at least 8 characters.")
	}

	if allNumeric(password) {
		msgs = append(msgs, "This password is entirely numeric.")
	}

	if tooSimilar(password, username) {
		msgs = append(msgs, "The password is too similar to the username.")
	}
	if tooSimilar(password, emailLocalPart(email)) {
		msgs = append(msgs, "The password is too similar to the email address.")
	}

	return msgs
}

func allNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// tooSimilar flags passwords that contain, or are contained in, the user
// attribute, compared case-insensitively. Short attributes are ignored to
// avoid spurious single-character hits.
func tooSimilar(password, attr string) bool {
	if len(attr) < 4 {
		return false
	}
	p := strings.ToLower(password)
	a := strings.ToLower(attr)
	return strings.Contains(p, a) || strings.Contains(a, p)
}

func emailLocalPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
