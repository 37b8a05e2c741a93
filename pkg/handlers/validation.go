package handlers

import (
	"net/http"
	"regexp"

	"github.com/gorilla/mux"

	"github.com/boothworks/crm-manager/pkg/errors"
)

var (
	// MinRequiredFieldLength ...
	MinRequiredFieldLength = 1

	// ValidUUIDRegexp matches the canonical UUID form used for entity IDs.
	ValidUUIDRegexp = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

// ValidateMaxLength ...
func ValidateMaxLength(value *string, field string, maxVal *int) Validate {
	return func() *errors.ServiceError {
		if maxVal != nil && len(*value) > *maxVal {
			return errors.MaximumFieldLengthExceeded("%s is not valid. Maximum length %d is required", field, *maxVal)
		}
		return nil
	}
}

// ValidateMinLength ...
func ValidateMinLength(value *string, field string, min int) Validate {
	return func() *errors.ServiceError {
		if value == nil || len(*value) < min {
			return errors.MinimumFieldLengthNotReached("%s is not valid. Minimum length %d is required.", field, min)
		}
		return nil
	}
}

// ValidateLength ...
func ValidateLength(value *string, field string, minVal *int, maxVal *int) Validate {
	var min = 1
	if minVal != nil && *minVal > 1 {
		min = *minVal
	}
	return func() *errors.ServiceError {
		if err := ValidateMaxLength(value, field, maxVal)(); err != nil {
			return err
		}
		return ValidateMinLength(value, field, min)()
	}
}

// ValidatePathUUID returns a validator checking the named path variable is a
// well formed UUID.
func ValidatePathUUID(r *http.Request, field string) Validate {
	return func() *errors.ServiceError {
		value := mux.Vars(r)[field]
		if !ValidUUIDRegexp.MatchString(value) {
			return errors.BadRequest("%s %q is not a valid UUID", field, value)
		}
		return nil
	}
}

// ValidateRegex returns a validator checking the named path variable against
// the given expression.
func ValidateRegex(r *http.Request, field string, regex *regexp.Regexp) Validate {
	return func() *errors.ServiceError {
		value := mux.Vars(r)[field]
		if !regex.MatchString(value) {
			return errors.BadRequest("%s %q does not match %s", field, value, regex.String())
		}
		return nil
	}
}

// ValidateOneOf returns a validator checking that value is one of allowed.
// Empty values pass, use ValidateMinLength for required fields.
func ValidateOneOf(value *string, field string, allowed ...string) Validate {
	return func() *errors.ServiceError {
		if *value == "" {
			return nil
		}
		for _, a := range allowed {
			if *value == a {
				return nil
			}
		}
		return errors.BadRequest("%s %q is not valid, must be one of %v", field, *value, allowed)
	}
}
