// Package validate accumulates field-addressed validation errors so a whole
// descriptor can be checked in one pass.
package validate

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Error is a single validation failure.
type Error struct {
	Field   string `json:"field"`           // dotted path of the offending field, e.g. themeConfig.nav[2].link
	Value   any    `json:"value,omitempty"` // the offending value
	Message string `json:"message"`         // human-readable reason
}

// Error implements the error interface.
func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator collects errors. The zero value is ready to use.
type Validator struct {
	errors []Error
}

// ValidationError bundles every failure found by a Validator.
type ValidationError struct {
	errors []Error
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a failure for field.
func (v *Validator) AddError(field, message string, value any) {
	v.errors = append(v.errors, Error{Field: field, Value: value, Message: message})
}

// Merge appends the errors of err when it is a ValidationError, or records
// err itself against field otherwise. A nil err is ignored.
func (v *Validator) Merge(field string, err error) {
	if err == nil {
		return
	}
	var ve ValidationError
	if errors.As(err, &ve) {
		v.errors = append(v.errors, ve.errors...)
		return
	}
	v.AddError(field, err.Error(), nil)
}

// IsValid reports whether no errors were recorded.
func (v *Validator) IsValid() bool {
	return len(v.errors) == 0
}

// Errors returns the recorded errors in the order they were found.
func (v *Validator) Errors() []Error {
	return v.errors
}

// Err returns nil when valid, otherwise a ValidationError holding a copy of
// the recorded errors.
func (v *Validator) Err() error {
	if len(v.errors) == 0 {
		return nil
	}
	copied := make([]Error, len(v.errors))
	copy(copied, v.errors)
	return ValidationError{errors: copied}
}

// Errors returns the individual failures.
func (e ValidationError) Errors() []Error {
	return e.errors
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	switch len(e.errors) {
	case 0:
		return ""
	case 1:
		return e.errors[0].Error()
	}
	msgs := make([]string, len(e.errors))
	for i, err := range e.errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d problems: %s", len(e.errors), strings.Join(msgs, "; "))
}

// NotEmpty requires a non-blank string.
func (v *Validator) NotEmpty(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "must not be empty", value)
	}
}

// Route requires a non-empty site-relative path beginning with "/".
func (v *Validator) Route(field, value string) {
	if value == "" {
		v.AddError(field, "route must not be empty", value)
		return
	}
	if !strings.HasPrefix(value, "/") {
		v.AddError(field, `route must begin with "/"`, value)
		return
	}
	if strings.HasPrefix(value, "//") {
		v.AddError(field, "route must be site-relative", value)
	}
}

// Prefix requires a route prefix that begins and ends with "/".
func (v *Validator) Prefix(field, value string) {
	if value == "" {
		v.AddError(field, "route prefix must not be empty", value)
		return
	}
	if !strings.HasPrefix(value, "/") || !strings.HasSuffix(value, "/") {
		v.AddError(field, `route prefix must begin and end with "/"`, value)
	}
}

// URL validates an absolute URL with one of the allowed schemes.
func (v *Validator) URL(field, value string, allowedSchemes []string) {
	if value == "" {
		v.AddError(field, "URL must not be empty", value)
		return
	}
	u, err := url.Parse(value)
	if err != nil {
		v.AddError(field, fmt.Sprintf("invalid URL: %v", err), value)
		return
	}
	if u.Host == "" {
		v.AddError(field, "URL must have a host", value)
		return
	}
	if len(allowedSchemes) == 0 {
		return
	}
	for _, scheme := range allowedSchemes {
		if u.Scheme == scheme {
			return
		}
	}
	v.AddError(field, fmt.Sprintf("unsupported URL scheme %q (allowed: %v)", u.Scheme, allowedSchemes), value)
}

// OneOf requires value to be in allowed.
func (v *Validator) OneOf(field, value string, allowed []string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of %v", allowed), value)
}
