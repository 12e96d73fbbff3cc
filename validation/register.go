// Package validation implements registration payload validation with
// field-keyed error reporting. The rules and their ordering are load-bearing:
// a duplicate username short-circuits everything else, while email and
// password problems are aggregated and reported together.
package validation

import (
	"net/mail"
	"strings"
)

// FieldErrors maps a field name to its error messages, the 400 response body.
type FieldErrors map[string][]string

// Add appends a message for a field.
func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// UserDirectory is the storage collaborator for uniqueness pre-checks. The
// checks are best-effort; the database unique constraints remain the source
// of truth under concurrent registration.
type UserDirectory interface {
	UsernameExists(username string) (bool, error)
	EmailExists(email string) (bool, error)
}

// RegisterInput is the registration payload after JSON binding.
type RegisterInput struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ValidateRegistration checks in, returning nil when registration may
// proceed. The returned FieldErrors is non-nil and non-empty otherwise.
// A second error return signals a storage failure.
func ValidateRegistration(in RegisterInput, users UserDirectory) (FieldErrors, error) {
	username := strings.TrimSpace(in.Username)

	// Duplicate username is reported alone, before any other validation.
	if username == "" {
		return FieldErrors{"username": {"This field is required."}}, nil
	}
	taken, err := users.UsernameExists(username)
	if err != nil {
		return nil, err
	}
	if taken {
		return FieldErrors{"username": {"A user with that username already exists."}}, nil
	}

	errs := FieldErrors{}

	email := strings.TrimSpace(in.Email)
	switch {
	case email == "":
		errs.Add("email", "This field is required.")
	case !validEmail(email):
		errs.Add("email", "Enter a valid email address.")
	default:
		used, err := users.EmailExists(email)
		if err != nil {
			return nil, err
		}
		if used {
			errs.Add("email", "Email address already in use.")
		}
	}

	if in.Password == "" {
		errs.Add("password", "This field is required.")
	} else {
		if in.Password != in.ConfirmPassword {
			errs.Add("password", "Password fields didn't match.")
		}
		for _, msg := range PasswordStrengthErrors(in.Password, username, email) {
			errs.Add("password", msg)
		}
	}

	if len(errs) == 0 {
		return nil, nil
	}
	return errs, nil
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	// Reject the name-and-address form; only a bare address is acceptable.
	return err == nil && addr.Address == s
}
