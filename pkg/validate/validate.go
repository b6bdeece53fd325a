// Package validate wires go-playground/validator into echo's Validator hook
// and converts its failures into the wire's {errors:[{msg,param}]} shape.
package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"greenlands/pkg/apperr"
)

type Echo struct {
	v *validator.Validate
}

func New() *Echo {
	return &Echo{v: validator.New(validator.WithRequiredStructEnabled())}
}

func (e *Echo) Validate(i interface{}) error {
	return e.v.Struct(i)
}

// Fields flattens validator errors to the field-error list; non-validator
// errors become a single generic entry.
func Fields(err error) []apperr.FieldError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []apperr.FieldError{{Msg: "Invalid value", Param: ""}}
	}
	out := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperr.FieldError{
			Msg:   msgFor(fe),
			Param: lowerFirst(fe.Field()),
		})
	}
	return out
}

func msgFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Please include a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
