package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateFunko checks the field invariants a funko must hold before it may
// reach persistence or the cache. Failures are reported as ErrFunkoNotValid
// with a human-readable field list.
func ValidateFunko(f Funko) error {
	var msgs []string

	if err := validate.Struct(f); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return fmt.Errorf("%w: %v", ErrFunkoNotValid, err)
		}
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}
	}
	if f.ReleaseDate.IsZero() {
		msgs = append(msgs, "release date is required")
	}
	if len(msgs) > 0 {
		return fmt.Errorf("%w: %s", ErrFunkoNotValid, strings.Join(msgs, "; "))
	}
	return nil
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "uuid4":
		return field + " must be a valid UUID"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
