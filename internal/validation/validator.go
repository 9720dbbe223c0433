// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

// Package validation wraps go-playground/validator with a shared instance,
// a "slug" tag for URL identifiers and error values that map onto the API
// VALIDATION_ERROR envelope.
//
//	type listRequest struct {
//	    Limit int    `validate:"min=1,max=50"`
//	    Slug  string `validate:"required,slug"`
//	}
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", verr.Error(), verr.Details())
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// FieldError describes one failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// Error is returned by ValidateStruct when one or more rules fail.
type Error struct {
	Fields []FieldError
}

// Error joins the field messages.
func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// Details returns the field errors in the shape used by APIError.Details.
func (e *Error) Details() map[string]interface{} {
	if len(e.Fields) == 1 {
		f := e.Fields[0]
		return map[string]interface{}{"field": f.Field, "tag": f.Tag}
	}
	return map[string]interface{}{"fields": e.Fields}
}

// Validator returns the shared validator instance. Field names reported in
// errors use the `query` or `json` tag when one is set.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(tagName)
		if err := validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return IsSlug(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("register slug validator: %v", err))
		}
	})
	return validate
}

// IsSlug reports whether s is a lower-case, hyphen separated identifier.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// ValidateStruct validates s and returns nil or an *Error.
func ValidateStruct(s interface{}) *Error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Error{Fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}}}
	}

	out := make([]FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: message(fe),
		}
	}
	return &Error{Fields: out}
}

func tagName(f reflect.StructField) string {
	for _, key := range []string{"query", "json", "koanf"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func message(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "slug":
		return field + " must be a lower-case slug"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "min", "gte":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max", "lte":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gtefield":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
