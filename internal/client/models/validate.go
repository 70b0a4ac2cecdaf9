package models

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailTag narrows the validator's RFC 5322 check to the plain addresses a
// sign-up form accepts. It mirrors the tag on RegistrationStep1.Email.
const emailTag = "required,email,excludesall=!#$%&*/=?^{}~0x7C"

// fieldMessages is the message shown for any failed rule of a field.
var fieldMessages = map[string]string{
	"username":  "Username is required",
	"email":     "Invalid email address",
	"password":  "Password is required",
	"gender":    "Select male, female or other",
	"birthdate": "Use YYYY-MM-DD",
}

// passwordRules are checked one by one so every unmet rule is reported.
var passwordRules = []struct {
	tag     string
	message string
}{
	{tag: "min=8", message: "Min 8 chars"},
	{tag: "containsany=ABCDEFGHIJKLMNOPQRSTUVWXYZ", message: "1 uppercase"},
	{tag: "containsany=0123456789", message: "1 number"},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// FieldError is a validation failure of one form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every failing field of a form.
type ValidationError []FieldError

func (v ValidationError) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

func (v ValidationError) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func structErrors(s any) ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationError{{Field: "form", Message: err.Error()}}
	}

	out := make(ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = "Invalid value"
		}
		out = append(out, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}

// Validate checks the account step of the registration form.
func (s RegistrationStep1) Validate() error {
	s.Username = strings.TrimSpace(s.Username)
	errs := structErrors(s)
	errs = append(errs, passwordErrors(s.Password)...)
	return errs.orNil()
}

func passwordErrors(pw string) []FieldError {
	var errs []FieldError
	for _, r := range passwordRules {
		if validate.Var(pw, r.tag) != nil {
			errs = append(errs, FieldError{Field: "password", Message: r.message})
		}
	}
	return errs
}

// Validate checks the optional profile step. Every field may be empty.
func (s RegistrationStep2) Validate() error {
	return structErrors(s).orNil()
}

// Validate checks an edited profile.
func (r UpdateProfileRequest) Validate() error {
	return structErrors(r).orNil()
}

// Validate checks the login form.
func (r LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	return structErrors(r).orNil()
}

// IsEmail reports whether s passes the registration email rule.
func IsEmail(s string) bool {
	return validate.Var(s, emailTag) == nil
}
