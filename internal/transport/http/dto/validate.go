package dto

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/baechuer/eventflow/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("password_strength", validatePasswordStrength)
}

// validatePasswordStrength requires at least one uppercase letter, one
// lowercase letter and one number.
func validatePasswordStrength(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	hasUpper := false
	hasLower := false
	hasNumber := false

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		}
		if unicode.IsLower(char) {
			hasLower = true
		}
		if unicode.IsNumber(char) {
			hasNumber = true
		}
		if hasUpper && hasLower && hasNumber {
			return true
		}
	}
	return hasUpper && hasLower && hasNumber
}

// check runs struct validation and converts the first failure into a
// domain validation error so handlers get consistent HTTP mapping.
func check(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return domain.ErrInvalidForm(err)
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return domain.ErrMissingField(field)
	case "email":
		return domain.ErrInvalidField(field, "must be a valid email address")
	case "min":
		return domain.ErrInvalidField(field, fmt.Sprintf("must be at least %s characters", fe.Param()))
	case "max":
		return domain.ErrInvalidField(field, fmt.Sprintf("must be at most %s characters", fe.Param()))
	case "len":
		return domain.ErrInvalidField(field, fmt.Sprintf("must be exactly %s characters", fe.Param()))
	case "numeric":
		return domain.ErrInvalidField(field, "must be numeric")
	case "password_strength":
		return domain.ErrInvalidField(field, "must contain an uppercase letter, a lowercase letter and a number")
	case "oneof":
		return domain.ErrInvalidField(field, "must be one of "+fe.Param())
	case "gte":
		return domain.ErrInvalidField(field, "must be at least "+fe.Param())
	default:
		return domain.ErrInvalidField(field, "is invalid")
	}
}
