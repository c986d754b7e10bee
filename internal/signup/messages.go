package signup

// Messages holds every user facing text of the form. EmailTaken and NameTaken are
// also the exact failure messages the auth API sends for conflicts.
type Messages struct {
	NameRequired     string `yaml:"nameRequired"`
	EmailRequired    string `yaml:"emailRequired"`
	EmailInvalid     string `yaml:"emailInvalid"`
	PasswordRequired string `yaml:"passwordRequired"`
	PasswordTooShort string `yaml:"passwordTooShort"`
	PasswordMismatch string `yaml:"passwordMismatch"`
	TermsRequired    string `yaml:"termsRequired"`
	EmailTaken       string `yaml:"emailTaken"`
	NameTaken        string `yaml:"nameTaken"`
}

var DefaultMessages = Messages{
	NameRequired:     "El nombre es obligatorio",
	EmailRequired:    "El email es obligatorio",
	EmailInvalid:     "Formato de email inválido",
	PasswordRequired: "La contraseña es obligatoria",
	PasswordTooShort: "La contraseña debe tener al menos 6 caracteres",
	PasswordMismatch: "Las contraseñas no coinciden",
	TermsRequired:    "Debe aceptar los términos y condiciones",
	EmailTaken:       "El correo electrónico ya está en uso",
	NameTaken:        "El nombre de usuario ya está en uso",
}

// Merge returns m with every empty text filled from fallback.
func (m Messages) Merge(fallback Messages) Messages {
	pick := func(val, def string) string {
		if val == "" {
			return def
		}
		return val
	}
	return Messages{
		NameRequired:     pick(m.NameRequired, fallback.NameRequired),
		EmailRequired:    pick(m.EmailRequired, fallback.EmailRequired),
		EmailInvalid:     pick(m.EmailInvalid, fallback.EmailInvalid),
		PasswordRequired: pick(m.PasswordRequired, fallback.PasswordRequired),
		PasswordTooShort: pick(m.PasswordTooShort, fallback.PasswordTooShort),
		PasswordMismatch: pick(m.PasswordMismatch, fallback.PasswordMismatch),
		TermsRequired:    pick(m.TermsRequired, fallback.TermsRequired),
		EmailTaken:       pick(m.EmailTaken, fallback.EmailTaken),
		NameTaken:        pick(m.NameTaken, fallback.NameTaken),
	}
}
