// Package services contains the server's business logic: admin
// authentication, event and gallery content management with file cleanup,
// and the contact form.
package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/carvingsite/internal/common"
	"github.com/go-playground/validator/v10"
)

// ValidationError names the offending input field. It matches
// common.ErrorValidation with errors.Is.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return common.ErrorValidation }

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("singleline", singleLine); err != nil {
		panic(err)
	}
	return v
}

// singleLine rejects CR, LF and other control characters, which cannot be
// carried in a mail header.
func singleLine(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsControl)
}

// validateStruct returns the first failing field as a ValidationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return invalid(fe.Field(), "%s is required", fe.Field())
	case "email":
		return invalid(fe.Field(), "%s must be a valid email address", fe.Field())
	case "singleline":
		return invalid(fe.Field(), "%s must be a single line of text", fe.Field())
	case "max":
		return invalid(fe.Field(), "%s allows at most %s items", fe.Field(), fe.Param())
	}
	return invalid(fe.Field(), "%s is invalid", fe.Field())
}
