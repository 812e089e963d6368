// Package uuid provides UUID v4 validation for externally supplied
// identifiers such as owner and vehicle ids.
package uuid

import (
	"fmt"

	"github.com/google/uuid"
)

// IsValid checks if a string is a valid UUID v4.
func IsValid(s string) bool {
	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return id.Version() == 4
}

// Validate returns an error if the string is not a valid UUID v4.
func Validate(s string) error {
	if !IsValid(s) {
		return fmt.Errorf("invalid UUID v4: %q", s)
	}
	return nil
}
