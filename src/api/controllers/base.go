package controllers

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// validationMessage turns the first failed rule into a client facing message.
func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err.Error()
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + ": This field is required."
	case "email":
		return fe.Field() + ": Enter a valid email address."
	case "min":
		return fe.Field() + ": Ensure this field has at least " + fe.Param() + " characters."
	case "max":
		return fe.Field() + ": Ensure this field has no more than " + fe.Param() + " characters."
	case "gt":
		return fe.Field() + ": Ensure this value is greater than " + fe.Param() + "."
	default:
		return fe.Field() + ": Invalid value."
	}
}
