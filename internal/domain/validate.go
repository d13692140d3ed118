package domain

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is returned (wrapped) whenever an entity fails validation.
var ErrValidation = errors.New("validation failed")

// FieldError describes a single field-level validation failure in the
// shape the error envelope exposes to clients.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value"`
}

var (
	skuPattern        = regexp.MustCompile(`^[A-Z]{2}-\d{4}-\d{2}$`)
	namePattern       = regexp.MustCompile(`^[A-Za-z0-9\s()\-_/.]{2,50}$`)
	usernamePattern   = regexp.MustCompile(`^[a-z0-9_]{6,20}$`)
	personNamePattern = regexp.MustCompile(`^[A-Za-z\s\-]{2,50}$`)
)

// validate is the shared validator instance. Field names in errors come
// from json tags so clients see the wire names, not Go identifiers.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "sku", func(fl validator.FieldLevel) bool {
		return skuPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "productname", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "personname", func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "password", func(fl validator.FieldLevel) bool {
		return validPassword(fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("domain: register %q validation: %v", tag, err))
	}
}

// validPassword requires 8-50 characters with at least one lowercase
// letter, one uppercase letter, one digit and one special character.
func validPassword(s string) bool {
	if len(s) < 8 || len(s) > 50 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune("@$!%*?&#_-", r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}

// Validate checks an entity against its struct tags and returns the
// field-error list, or nil when the entity is valid.
func Validate(entity any) []FieldError {
	err := validate.Struct(entity)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError means the caller passed a non-struct;
		// treat it as a single opaque failure rather than panicking.
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	fieldErrs := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrs = append(fieldErrs, FieldError{
			Field:   fe.Field(),
			Message: tagMessage(fe),
			Value:   fe.Value(),
		})
	}
	return fieldErrs
}

// tagMessage renders a human message for a failed validation tag.
func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "sku":
		return "should be a SKU in the format of XX-1234-56"
	case "productname":
		return "should be 2-50 characters of letters, numbers, spaces or ()-_/."
	case "username":
		return "should be 6-20 lowercase letters, numbers, and underscores"
	case "personname":
		return "should contain only letters, spaces, and hyphens (2-50 characters)"
	case "password":
		return "must be 8-50 characters with at least one uppercase letter, one lowercase letter, one number, and one special character"
	case "gte", "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte", "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "len":
		return fmt.Sprintf("must be exactly %s long", fe.Param())
	case "dive":
		return "contains an invalid element"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
