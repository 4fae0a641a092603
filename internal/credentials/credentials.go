// Package credentials validates the sign-in and sign-up forms before anything
// is sent to the server.
package credentials

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const (
	EmailDomain       = "@gmail.com"
	MinPasswordLength = 7

	RegistrationFallback = "Unknown error occurred"
)

var ErrSignInRequired = errors.New("Email and password are required")

type Field string

const (
	FieldName     Field = "name"
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
)

var fieldOrder = []Field{FieldName, FieldEmail, FieldPassword}

// Phase selects the wording: change-time checks stay quiet on empty optional
// input, submit-time checks do not.
type Phase int

const (
	OnChange Phase = iota
	OnSubmit
)

type SignUp struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,endswith=@gmail.com"`
	Password string `validate:"required,min=7"`
}

type SignIn struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// FieldErrors maps each failing field to its message.
type FieldErrors map[Field]string

func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, f := range fieldOrder {
		if msg, ok := fe[f]; ok {
			msgs = append(msgs, msg)
		}
	}
	return strings.Join(msgs, "; ")
}

var validate = validator.New()

var structFields = map[string]Field{
	"Name":     FieldName,
	"Email":    FieldEmail,
	"Password": FieldPassword,
}

var messages = map[Phase]map[Field]map[string]string{
	OnChange: {
		FieldName:     {"required": "Name is required"},
		FieldEmail:    {"endswith": "Email must end with " + EmailDomain},
		FieldPassword: {"min": "Password must be at least 7 characters"},
	},
	OnSubmit: {
		FieldName: {"required": "Name is required"},
		FieldEmail: {
			"required": "Email is required",
			"endswith": "Only " + EmailDomain + " emails are allowed",
		},
		FieldPassword: {
			"required": "Password is required",
			"min":      "Password must be at least 7 characters",
		},
	},
}

// ValidateSignUp checks every field and reports all failures together. It
// returns nil when the form can be submitted.
func ValidateSignUp(form SignUp) FieldErrors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{FieldName: err.Error()}
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := structFields[fe.StructField()]
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = message(OnSubmit, field, fe.Tag())
	}
	return out
}

// ValidateField checks one field as the user types. It returns "" when the
// value is acceptable for now.
func ValidateField(field Field, value string, phase Phase) string {
	var rules string
	switch field {
	case FieldName:
		rules = "required"
	case FieldEmail:
		rules = "required,endswith=" + EmailDomain
	case FieldPassword:
		rules = "required,min=7"
	default:
		return ""
	}

	if phase == OnChange && value == "" && field != FieldName {
		return ""
	}

	err := validate.Var(value, rules)
	if err == nil {
		return ""
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return message(phase, field, verrs[0].Tag())
	}
	return err.Error()
}

// ValidateSignIn only requires both fields to be present.
func ValidateSignIn(form SignIn) error {
	if err := validate.Struct(form); err != nil {
		return ErrSignInRequired
	}
	return nil
}

// RegistrationMessage is what the sign-up form shows for a failed request.
func RegistrationMessage(detail string) string {
	if strings.TrimSpace(detail) == "" {
		return RegistrationFallback
	}
	return detail
}

func message(phase Phase, field Field, tag string) string {
	if msg, ok := messages[phase][field][tag]; ok {
		return msg
	}
	return messages[OnSubmit][field][tag]
}
