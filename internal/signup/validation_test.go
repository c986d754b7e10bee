package signup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validState() FormState {
	return FormState{
		Name:            "khang",
		Email:           "khang@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
}

func TestValidate_Valid(t *testing.T) {
	formErrors, valid := Validate(validState(), true)
	require.True(t, valid)
	require.NotNil(t, formErrors)
	require.Empty(t, formErrors)
}

func TestValidate_EmptyForm(t *testing.T) {
	formErrors, valid := Validate(FormState{}, false)
	require.False(t, valid)
	assert.Equal(t, ErrorMap{
		FieldName:          DefaultMessages.NameRequired,
		FieldEmail:         DefaultMessages.EmailRequired,
		FieldPassword:      DefaultMessages.PasswordRequired,
		FieldAcceptedTerms: DefaultMessages.TermsRequired,
	}, formErrors, "empty password equals empty confirmation, so no mismatch")
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(s *FormState)
		accepted bool
		want     ErrorMap
	}{
		{
			name:     "short password with matching confirmation",
			mutate:   func(s *FormState) { s.Password, s.ConfirmPassword = "abc12", "abc12" },
			accepted: true,
			want:     ErrorMap{FieldPassword: DefaultMessages.PasswordTooShort},
		},
		{
			name:     "password exactly six characters",
			mutate:   func(s *FormState) { s.Password, s.ConfirmPassword = "abcdef", "abcdef" },
			accepted: true,
			want:     ErrorMap{},
		},
		{
			name:     "mismatch only",
			mutate:   func(s *FormState) { s.Password, s.ConfirmPassword = "abcdef", "abcxyz" },
			accepted: true,
			want:     ErrorMap{FieldConfirmPassword: DefaultMessages.PasswordMismatch},
		},
		{
			name:     "mismatch checked even when password too short",
			mutate:   func(s *FormState) { s.Password, s.ConfirmPassword = "abc", "abd" },
			accepted: true,
			want: ErrorMap{
				FieldPassword:        DefaultMessages.PasswordTooShort,
				FieldConfirmPassword: DefaultMessages.PasswordMismatch,
			},
		},
		{
			name:     "invalid email",
			mutate:   func(s *FormState) { s.Email = "not-an-email" },
			accepted: true,
			want:     ErrorMap{FieldEmail: DefaultMessages.EmailInvalid},
		},
		{
			name:     "short valid email",
			mutate:   func(s *FormState) { s.Email = "a@b.co" },
			accepted: true,
			want:     ErrorMap{},
		},
		{
			name:     "email without dot after at",
			mutate:   func(s *FormState) { s.Email = "a@b" },
			accepted: true,
			want:     ErrorMap{FieldEmail: DefaultMessages.EmailInvalid},
		},
		{
			name:     "email with spaces around a valid part",
			mutate:   func(s *FormState) { s.Email = "hello a@b.c world" },
			accepted: true,
			want:     ErrorMap{},
		},
		{
			name:     "terms not accepted",
			mutate:   func(s *FormState) {},
			accepted: false,
			want:     ErrorMap{FieldAcceptedTerms: DefaultMessages.TermsRequired},
		},
		{
			name:     "multibyte password counted in characters",
			mutate:   func(s *FormState) { s.Password, s.ConfirmPassword = "ñandú", "ñandú" },
			accepted: true,
			want:     ErrorMap{FieldPassword: DefaultMessages.PasswordTooShort},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := validState()
			tt.mutate(&state)
			formErrors, valid := Validate(state, tt.accepted)
			assert.Equal(t, tt.want, formErrors)
			assert.Equal(t, len(tt.want) == 0, valid)
		})
	}
}

func TestValidator_CustomMessages(t *testing.T) {
	v := NewValidator(Messages{NameRequired: "Name is required."})
	formErrors, valid := v.Validate(FormState{}, true)
	require.False(t, valid)
	assert.Equal(t, "Name is required.", formErrors[FieldName])
	assert.Equal(t, DefaultMessages.EmailRequired, formErrors[FieldEmail])
}

// TestValidate_Properties checks the per-field rules against random input.
func TestValidate_Properties(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		state := FormState{
			Name:            rapid.StringMatching(`[a-z]{0,6}`).Draw(r, "name"),
			Email:           rapid.StringMatching(`([a-z]{0,4}@[a-z]{0,4}(\.[a-z]{0,3})?)?`).Draw(r, "email"),
			Password:        rapid.StringMatching(`[a-z0-9]{0,9}`).Draw(r, "password"),
			ConfirmPassword: rapid.StringMatching(`[a-z0-9]{0,9}`).Draw(r, "confirmPassword"),
		}
		if rapid.Bool().Draw(r, "sameConfirm") {
			state.ConfirmPassword = state.Password
		}
		accepted := rapid.Bool().Draw(r, "accepted")

		formErrors, valid := Validate(state, accepted)
		again, validAgain := Validate(state, accepted)
		require.Equal(r, formErrors, again, "validation must be idempotent")
		require.Equal(r, valid, validAgain)
		require.Equal(r, len(formErrors) == 0, valid)

		require.Equal(r, state.Name == "", formErrors.Has(FieldName))
		require.Equal(r, state.Email == "" || !emailRegex.MatchString(state.Email), formErrors.Has(FieldEmail))
		require.Equal(r, state.Password == "" || len(state.Password) < 6, formErrors.Has(FieldPassword))
		require.Equal(r, state.Password != state.ConfirmPassword, formErrors.Has(FieldConfirmPassword))
		require.Equal(r, !accepted, formErrors.Has(FieldAcceptedTerms))
	})
}
