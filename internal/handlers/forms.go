package handlers

import (
	"strconv"

	"github.com/khanghh/cas-signup/internal/signup"
)

type RegisterForm struct {
	Name            string `form:"name"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
	AcceptedTerms   string `form:"acceptedTerms"`
}

func (form *RegisterForm) State() signup.FormState {
	return signup.FormState{
		Name:            form.Name,
		Email:           form.Email,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	}
}

// Apply copies the posted values into f as edits. Only fields whose value changed
// count as edited, so untouched fields keep their errors.
func (form *RegisterForm) Apply(f *signup.Form) error {
	current, posted := f.State(), form.State()
	for _, field := range []signup.Field{signup.FieldName, signup.FieldEmail, signup.FieldPassword, signup.FieldConfirmPassword} {
		if current.Get(field) == posted.Get(field) {
			continue
		}
		if err := f.SetField(field, posted.Get(field)); err != nil {
			return err
		}
	}
	f.SetAcceptedTerms(parseBool(form.AcceptedTerms))
	return nil
}

type FieldEditForm struct {
	Field string `json:"field" form:"field"`
	Value string `json:"value" form:"value"`
}

func parseBool(val string) bool {
	if val == "on" {
		return true
	}
	accepted, _ := strconv.ParseBool(val)
	return accepted
}
