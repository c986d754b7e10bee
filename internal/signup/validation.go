package signup

import (
	"regexp"
	"unicode/utf8"

	"github.com/khanghh/cas-signup/params"
)

var emailRegex = regexp.MustCompile(`\S+@\S+\.\S+`)

type Validator struct {
	msgs Messages
}

// Validate checks every field independently and collects all violations.
func (v *Validator) Validate(form FormState, acceptedTerms bool) (ErrorMap, bool) {
	formErrors := make(ErrorMap)
	if form.Name == "" {
		formErrors[FieldName] = v.msgs.NameRequired
	}

	if form.Email == "" {
		formErrors[FieldEmail] = v.msgs.EmailRequired
	} else if !emailRegex.MatchString(form.Email) {
		formErrors[FieldEmail] = v.msgs.EmailInvalid
	}

	if form.Password == "" {
		formErrors[FieldPassword] = v.msgs.PasswordRequired
	} else if utf8.RuneCountInString(form.Password) < params.MinPasswordLength {
		formErrors[FieldPassword] = v.msgs.PasswordTooShort
	}

	if form.Password != form.ConfirmPassword {
		formErrors[FieldConfirmPassword] = v.msgs.PasswordMismatch
	}

	if !acceptedTerms {
		formErrors[FieldAcceptedTerms] = v.msgs.TermsRequired
	}
	return formErrors, len(formErrors) == 0
}

func NewValidator(msgs Messages) *Validator {
	return &Validator{msgs: msgs.Merge(DefaultMessages)}
}

var defaultValidator = NewValidator(DefaultMessages)

// Validate runs the validator with the default messages.
func Validate(form FormState, acceptedTerms bool) (ErrorMap, bool) {
	return defaultValidator.Validate(form, acceptedTerms)
}
