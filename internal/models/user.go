package models

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Address is the postal address embedded in a user payload
type Address struct {
	StreetAddress  string  `json:"streetAddress" validate:"required"`
	StreetAddress2 *string `json:"streetAddress2,omitempty"`
	City           string  `json:"city" validate:"required"`
	State          string  `json:"state" validate:"required"`
	Country        string  `json:"country" validate:"required"`
	Postal         string  `json:"postal" validate:"required"`
}

// User is the full user payload accepted on create and update.
// Updates overwrite every field, so callers always send the complete document.
type User struct {
	Name        string  `json:"name" validate:"required"`
	DOB         string  `json:"dob"`
	Address     Address `json:"address"`
	Description string  `json:"description"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the payload and reports the first offending field
func (u *User) Validate() error {
	if u == nil {
		return &ValidationError{Field: "user", Message: "user payload is required"}
	}

	err := validate.Struct(u)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := strings.TrimPrefix(fe.Namespace(), "User.")
		return &ValidationError{
			Field:   field,
			Message: field + " is required",
			Value:   fe.Value(),
		}
	}
	return &ValidationError{Field: "user", Message: err.Error()}
}

// SecondaryStreet returns the optional second street line, or nil when it was
// omitted or left blank.
func (a Address) SecondaryStreet() *string {
	if a.StreetAddress2 == nil || *a.StreetAddress2 == "" {
		return nil
	}
	return a.StreetAddress2
}
