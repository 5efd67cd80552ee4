package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

// FieldError describes a validation failure for a single request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is a list of per-field validation failures. A request failing
// validation is rejected as a whole; no partial application happens.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// Validator accumulates field errors across a sequence of checks.
type Validator struct {
	errs Errors
}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: message})
}

// Required records an error when value is empty or whitespace.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, fmt.Sprintf("%s is required", field))
	}
	return v
}

// Email records an error when value is not a well-formed address.
// Empty values are skipped; combine with Required for mandatory fields.
func (v *Validator) Email(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, "must be a valid email address")
	}
	return v
}

// MinLen records an error when value is shorter than min characters.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if len(value) < min {
		v.add(field, fmt.Sprintf("must be at least %d characters", min))
	}
	return v
}

// OneOf records an error when value is not in the allowed set.
// Empty values are skipped; combine with Required for mandatory fields.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Pattern records an error with the given message when value does not
// match re. Empty values are skipped.
func (v *Validator) Pattern(field, value string, re *regexp.Regexp, message string) *Validator {
	if value == "" {
		return v
	}
	if !re.MatchString(value) {
		v.add(field, message)
	}
	return v
}

// Min records an error when n is below min.
func (v *Validator) Min(field string, n, min float64) *Validator {
	if n < min {
		v.add(field, fmt.Sprintf("must be at least %g", min))
	}
	return v
}

// Err returns the accumulated errors, or nil when every check passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return v.errs
}

// Fields returns the accumulated field errors for serialization.
func (v *Validator) Fields() Errors {
	return v.errs
}

// AsErrors extracts the field list from an error produced by a Validator.
func AsErrors(err error) (Errors, bool) {
	e, ok := err.(Errors)
	return e, ok
}
