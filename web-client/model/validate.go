package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Check validates a decoded response struct against its `validate` tags.
func Check(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("invalid response payload: %w", err)
	}
	return nil
}

// CheckEach validates every element of a decoded response slice.
func CheckEach(v interface{}) error {
	if err := validate.Var(v, "dive"); err != nil {
		return fmt.Errorf("invalid response payload: %w", err)
	}
	return nil
}
