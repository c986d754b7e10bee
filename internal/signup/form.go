package signup

import (
	"fmt"
	"sync"
)

// Field names one input of the registration form.
type Field string

const (
	FieldName            Field = "name"
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldAcceptedTerms   Field = "acceptedTerms"
)

// ParseField maps a wire/form key to a Field.
func ParseField(key string) (Field, error) {
	switch field := Field(key); field {
	case FieldName, FieldEmail, FieldPassword, FieldConfirmPassword, FieldAcceptedTerms:
		return field, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, key)
}

// FormState holds the editable text fields of the registration form.
type FormState struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Set writes value to the text field named field.
func (s *FormState) Set(field Field, value string) error {
	switch field {
	case FieldName:
		s.Name = value
	case FieldEmail:
		s.Email = value
	case FieldPassword:
		s.Password = value
	case FieldConfirmPassword:
		s.ConfirmPassword = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Get returns the value of a text field, or "" for anything else.
func (s FormState) Get(field Field) string {
	switch field {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldPassword:
		return s.Password
	case FieldConfirmPassword:
		return s.ConfirmPassword
	}
	return ""
}

// ErrorMap maps a field to its current error message. A missing key means no error.
type ErrorMap map[Field]string

// Has reports whether field currently has an error.
func (m ErrorMap) Has(field Field) bool {
	_, ok := m[field]
	return ok
}

// Clone returns a copy of m. The copy of a nil map is empty, not nil.
func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for field, msg := range m {
		out[field] = msg
	}
	return out
}

// Snapshot is a serializable copy of a Form.
type Snapshot struct {
	State         FormState `json:"state"`
	Errors        ErrorMap  `json:"errors"`
	AcceptedTerms bool      `json:"acceptedTerms"`
	Success       bool      `json:"success"`
}

// WithoutPasswords returns a copy of s with both password fields cleared, for
// anything that outlives the request.
func (s Snapshot) WithoutPasswords() Snapshot {
	s.State.Password = ""
	s.State.ConfirmPassword = ""
	s.Errors = s.Errors.Clone()
	return s
}

// Form is the registration form state holder. It is safe for concurrent use so a
// pending submission may resolve while the user keeps editing.
type Form struct {
	mu            sync.Mutex
	state         FormState
	errors        ErrorMap
	acceptedTerms bool
	success       bool
	pending       bool
}

// SetField edits a text field and clears that field's error.
func (f *Form) SetField(field Field, value string) error {
	if field == FieldAcceptedTerms {
		return fmt.Errorf("%w: %q is not a text field", ErrUnknownField, field)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.state.Set(field, value); err != nil {
		return err
	}
	delete(f.errors, field)
	return nil
}

// SetAcceptedTerms changes the terms flag. The acceptedTerms error is left in place
// until the next validation pass.
func (f *Form) SetAcceptedTerms(accepted bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acceptedTerms = accepted
}

// ToggleTerms flips the terms flag and returns the new value.
func (f *Form) ToggleTerms() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acceptedTerms = !f.acceptedTerms
	return f.acceptedTerms
}

// Acknowledge dismisses the success notification and resets the form. It is a
// no-op unless the last submission succeeded.
func (f *Form) Acknowledge() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.success {
		return false
	}
	f.state = FormState{}
	f.errors = ErrorMap{}
	f.acceptedTerms = false
	f.success = false
	return true
}

// State returns a copy of the text fields.
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Errors returns a copy of the current errors.
func (f *Form) Errors() ErrorMap {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors.Clone()
}

// AcceptedTerms reports whether the terms checkbox is ticked.
func (f *Form) AcceptedTerms() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.acceptedTerms
}

// Success reports whether the last submission created the account.
func (f *Form) Success() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.success
}

// Pending reports whether a submission is waiting for the auth API.
func (f *Form) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// Snapshot copies the form. The pending flag is process local and not included.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot{
		State:         f.state,
		Errors:        f.errors.Clone(),
		AcceptedTerms: f.acceptedTerms,
		Success:       f.success,
	}
}

// beginSubmit validates the current state and, when valid, marks the form pending.
// The returned state is the one that must be sent to the registrar.
func (f *Form) beginSubmit(validate func(FormState, bool) (ErrorMap, bool)) (FormState, ErrorMap, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending {
		return FormState{}, nil, false, ErrSubmitInProgress
	}
	formErrors, valid := validate(f.state, f.acceptedTerms)
	f.errors = formErrors.Clone()
	if valid {
		f.pending = true
	}
	return f.state, formErrors, valid, nil
}

func (f *Form) endSubmit(success bool, field Field, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = false
	if success {
		f.success = true
	}
	if field != "" {
		f.errors[field] = msg
	}
}

// NewForm returns an empty form with no errors.
func NewForm() *Form {
	return &Form{errors: ErrorMap{}}
}

// RestoreForm rebuilds a form from a snapshot taken with Form.Snapshot.
func RestoreForm(snap Snapshot) *Form {
	formErrors := snap.Errors.Clone()
	return &Form{
		state:         snap.State,
		errors:        formErrors,
		acceptedTerms: snap.AcceptedTerms,
		success:       snap.Success,
	}
}
