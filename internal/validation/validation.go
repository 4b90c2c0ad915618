// Package validation implements the declarative request-body checks
// applied before any handler logic runs. Failures accumulate across the
// whole body so a response can name every bad field at once.
package validation

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// FieldError describes a single failed check on a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator accumulates field errors across a request body.
type Validator struct {
	errs []FieldError
}

func New() *Validator {
	return &Validator{}
}

// Field begins a check chain for a named value. The value is trimmed
// before any check runs. Once a check fails, later checks on the same
// field are skipped.
func (v *Validator) Field(name, value string) *FieldChain {
	return &FieldChain{v: v, name: name, value: strings.TrimSpace(value)}
}

// Optional begins a chain that runs only when the value was present in
// the body. A nil pointer marks omission, distinct from an empty value.
func (v *Validator) Optional(name string, value *string) *FieldChain {
	if value == nil {
		return &FieldChain{v: v, name: name, skip: true}
	}
	return v.Field(name, *value)
}

// Check records a failure for field unless ok holds. It is the escape
// hatch for conditions the chain checks do not cover.
func (v *Validator) Check(field string, ok bool, message string) {
	if !ok {
		v.errs = append(v.errs, FieldError{Field: field, Message: message})
	}
}

// Valid reports whether no check has failed so far.
func (v *Validator) Valid() bool {
	return len(v.errs) == 0
}

// Errors returns every accumulated failure in check order.
func (v *Validator) Errors() []FieldError {
	return v.errs
}

// FieldChain applies ordered checks to one field.
type FieldChain struct {
	v      *Validator
	name   string
	value  string
	skip   bool
	failed bool
}

func (c *FieldChain) fail(message string) *FieldChain {
	c.failed = true
	c.v.errs = append(c.v.errs, FieldError{Field: c.name, Message: message})
	return c
}

func (c *FieldChain) done() bool {
	return c.skip || c.failed
}

// Required fails when the trimmed value is empty.
func (c *FieldChain) Required(message string) *FieldChain {
	if c.done() {
		return c
	}
	if c.value == "" {
		return c.fail(message)
	}
	return c
}

// Length fails when the rune count falls outside [min, max].
func (c *FieldChain) Length(min, max int, message string) *FieldChain {
	if c.done() {
		return c
	}
	if n := utf8.RuneCountInString(c.value); n < min || n > max {
		return c.fail(message)
	}
	return c
}

// MinLength fails when the rune count is below min.
func (c *FieldChain) MinLength(min int, message string) *FieldChain {
	if c.done() {
		return c
	}
	if utf8.RuneCountInString(c.value) < min {
		return c.fail(message)
	}
	return c
}

// Email fails when the value is not a plain RFC 5322 address.
func (c *FieldChain) Email(message string) *FieldChain {
	if c.done() {
		return c
	}
	addr, err := mail.ParseAddress(c.value)
	if err != nil || addr.Address != c.value {
		return c.fail(message)
	}
	return c
}

// Date fails when the value does not parse as a calendar date.
func (c *FieldChain) Date(message string) *FieldChain {
	if c.done() {
		return c
	}
	if _, err := ParseDate(c.value); err != nil {
		return c.fail(message)
	}
	return c
}

// ParseDate accepts dates in ISO form, with or without a time component.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
