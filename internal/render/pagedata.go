package render

import "github.com/khanghh/cas-signup/internal/signup"

type RegisterPageData struct {
	CSRFToken     string
	Name          string
	Email         string
	AcceptedTerms bool
	Success       bool
	FormErrors    signup.ErrorMap
}

// NewRegisterPageData builds the page from a form snapshot. Passwords are never
// sent back to the browser.
func NewRegisterPageData(csrfToken string, snap signup.Snapshot) RegisterPageData {
	return RegisterPageData{
		CSRFToken:     csrfToken,
		Name:          snap.State.Name,
		Email:         snap.State.Email,
		AcceptedTerms: snap.AcceptedTerms,
		Success:       snap.Success,
		FormErrors:    snap.Errors,
	}
}
