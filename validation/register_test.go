package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enricothe3rd/CMS-BLOG-LATEST/validation"
)

type fakeDirectory struct {
	usernames map[string]bool
	emails    map[string]bool
}

func (f *fakeDirectory) UsernameExists(username string) (bool, error) {
	return f.usernames[username], nil
}

func (f *fakeDirectory) EmailExists(email string) (bool, error) {
	return f.emails[email], nil
}

func emptyDirectory() *fakeDirectory {
	return &fakeDirectory{usernames: map[string]bool{}, emails: map[string]bool{}}
}

func TestValidateRegistrationSuccess(t *testing.T) {
	in := validation.RegisterInput{
		Username:        "u1",
		Email:           "u1@x.com",
		Password:        "Abcd1234!",
		ConfirmPassword: "Abcd1234!",
	}
	errs, err := validation.ValidateRegistration(in, emptyDirectory())
	require.NoError(t, err)
	assert.Nil(t, errs)
}

func TestValidateRegistrationDuplicateUsernameShortCircuits(t *testing.T) {
	dir := &fakeDirectory{
		usernames: map[string]bool{"existinguser": true},
		emails:    map[string]bool{"existing@test.com": true},
	}
	// Everything else is also invalid, but only the username error surfaces.
	in := validation.RegisterInput{
		Username:        "existinguser",
		Email:           "existing@test.com",
		Password:        "123",
		ConfirmPassword: "456",
	}
	errs, err := validation.ValidateRegistration(in, dir)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Contains(t, errs, "username")
}

func TestValidateRegistrationPasswordMismatch(t *testing.T) {
	in := validation.RegisterInput{
		Username:        "testuser",
		Email:           "test@test.com",
		Password:        "TestPass123!",
		ConfirmPassword: "DifferentPass123!",
	}
	errs, err := validation.ValidateRegistration(in, emptyDirectory())
	require.NoError(t, err)
	require.Contains(t, errs, "password")
	assert.Contains(t, errs["password"], "Password fields didn't match.")
}

func TestValidateRegistrationAggregatesEmailAndPassword(t *testing.T) {
	dir := &fakeDirectory{
		usernames: map[string]bool{},
		emails:    map[string]bool{"existing@test.com": true},
	}
	in := validation.RegisterInput{
		Username:        "newuser",
		Email:           "existing@test.com",
		Password:        "123",
		ConfirmPassword: "123",
	}
	errs, err := validation.ValidateRegistration(in, dir)
	require.NoError(t, err)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestValidateRegistrationFieldRules(t *testing.T) {
	tests := []struct {
		name      string
		in        validation.RegisterInput
		wantField string
	}{
		{
			name:      "missing username",
			in:        validation.RegisterInput{Email: "a@b.com", Password: "TestPass123!", ConfirmPassword: "TestPass123!"},
			wantField: "username",
		},
		{
			name:      "missing email",
			in:        validation.RegisterInput{Username: "testuser", Password: "TestPass123!", ConfirmPassword: "TestPass123!"},
			wantField: "email",
		},
		{
			name:      "malformed email",
			in:        validation.RegisterInput{Username: "testuser", Email: "not-an-email", Password: "TestPass123!", ConfirmPassword: "TestPass123!"},
			wantField: "email",
		},
		{
			name:      "missing password",
			in:        validation.RegisterInput{Username: "testuser", Email: "a@b.com"},
			wantField: "password",
		},
		{
			name:      "short password",
			in:        validation.RegisterInput{Username: "testuser", Email: "a@b.com", Password: "Ab1!", ConfirmPassword: "Ab1!"},
			wantField: "password",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := validation.ValidateRegistration(tt.in, emptyDirectory())
			require.NoError(t, err)
			assert.Contains(t, errs, tt.wantField)
		})
	}
}
