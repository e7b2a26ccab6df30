package dto

import (
	"errors"
	"fmt"
	"html"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	apperrors "github.com/spec-kit/recipe-service/pkg/util/errorutil"
)

var textPolicy = bluemonday.StrictPolicy()

// HasMarkup reports whether s contains HTML elements. Free text is stored
// exactly as sent, so markup is rejected rather than stripped. Plain
// characters such as "<" or "&" pass.
func HasMarkup(s string) bool {
	return html.UnescapeString(textPolicy.Sanitize(s)) != html.UnescapeString(s)
}

// Validator checks request payloads and reports field-level messages keyed by JSON name.
type Validator struct {
	validate          *validator.Validate
	passwordMinLength int
}

// NewValidator builds a validator enforcing the given minimum password length.
func NewValidator(passwordMinLength int) *Validator {
	v := &Validator{
		validate:          validator.New(validator.WithRequiredStructEnabled()),
		passwordMinLength: passwordMinLength,
	}
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return len([]rune(fl.Field().String())) >= v.passwordMinLength
	})
	_ = v.validate.RegisterValidation("nomarkup", func(fl validator.FieldLevel) bool {
		return !HasMarkup(fl.Field().String())
	})
	return v
}

// Struct validates s and returns a 400 DomainError describing every failing field.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	details := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		msgs, _ := details[field].([]string)
		details[field] = append(msgs, v.message(fe))
	}
	return apperrors.NewValidationError("invalid input", details)
}

func (v *Validator) message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "password":
		return fmt.Sprintf("Ensure this field has at least %d characters.", v.passwordMinLength)
	case "nomarkup":
		return "HTML markup is not allowed."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}

// mergeDetails folds extra field messages into a validation error.
func mergeDetails(err error, extra map[string][]string) error {
	if len(extra) == 0 {
		return err
	}
	details := map[string]any{}
	if err != nil {
		if de := apperrors.ToDomainError(err); de.Details != nil {
			for k, val := range de.Details {
				details[k] = val
			}
		}
	}
	for field, msgs := range extra {
		existing, _ := details[field].([]string)
		details[field] = append(existing, msgs...)
	}
	return apperrors.NewValidationError("invalid input", details)
}
