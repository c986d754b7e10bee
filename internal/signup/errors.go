package signup

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownField         = errors.New("unknown form field")
	ErrSubmitInProgress     = errors.New("submission already in progress")
	ErrEmailTaken           = errors.New("email already in use")
	ErrNameTaken            = errors.New("username already in use")
	ErrRegistrationRejected = errors.New("registration was not accepted")
)

const (
	CodeEmailTaken = "email_taken"
	CodeNameTaken  = "name_taken"
)

// RegisterError is returned by a Registrar when the account cannot be created.
// Message is the raw text reported by the auth service.
type RegisterError struct {
	Code    string
	Message string
	Status  int
}

func (e *RegisterError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("register failed with status %d", e.Status)
	}
	return e.Message
}

func (e *RegisterError) Is(target error) bool {
	switch e.Code {
	case CodeEmailTaken:
		return target == ErrEmailTaken
	case CodeNameTaken:
		return target == ErrNameTaken
	}
	return false
}

type Reason int

const (
	ReasonUnknown Reason = iota
	ReasonEmailTaken
	ReasonNameTaken
)

func (r Reason) String() string {
	switch r {
	case ReasonEmailTaken:
		return "email_taken"
	case ReasonNameTaken:
		return "name_taken"
	default:
		return "unknown"
	}
}

// Classify maps a registrar failure to a conflict reason. Structured codes win,
// otherwise the message must match the configured conflict text exactly.
func (m Messages) Classify(err error) Reason {
	if err == nil {
		return ReasonUnknown
	}
	switch {
	case errors.Is(err, ErrEmailTaken):
		return ReasonEmailTaken
	case errors.Is(err, ErrNameTaken):
		return ReasonNameTaken
	}

	msg := err.Error()
	var regErr *RegisterError
	if errors.As(err, &regErr) {
		msg = regErr.Message
	}
	switch msg {
	case m.EmailTaken:
		return ReasonEmailTaken
	case m.NameTaken:
		return ReasonNameTaken
	}
	return ReasonUnknown
}
