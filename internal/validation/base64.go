// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/base64"
	"fmt"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/fieldcrypt/internal/errors"
)

// Base64 validates that a string is valid base64-encoded data.
var Base64 = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	_, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return validation.NewError("validation_base64", "must be valid base64-encoded data")
	}
	return nil
})

// Key256 validates that a string is base64-encoded data decoding to exactly
// 32 bytes (256 bits). Used for master keys and dataset salts.
var Key256 = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_key256_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return validation.NewError("validation_key256", "must be valid base64-encoded data")
	}
	if len(decoded) != 32 {
		return validation.NewError(
			"validation_key256_size",
			fmt.Sprintf("must decode to exactly 32 bytes, got %d", len(decoded)),
		)
	}
	return nil
})

// WrapValidationError wraps validation errors as domain ErrConfiguration.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrConfiguration, err.Error())
}
