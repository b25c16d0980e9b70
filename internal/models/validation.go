package models

import (
	"regexp"
)

// uuidV1Regex matches the canonical 8-4-4-4-12 layout with version nibble 1
var uuidV1Regex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-1[0-9a-fA-F]{3}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// ValidationError represents a validation error with field-specific details
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (ve *ValidationError) Error() string {
	return ve.Message
}

// IsUUIDv1 reports whether id is a time-ordered (version 1) UUID
func IsUUIDv1(id string) bool {
	return uuidV1Regex.MatchString(id)
}

// ValidateID checks that id is present and in UUID v1 format
func ValidateID(id string) error {
	if id == "" {
		return &ValidationError{Field: "id", Message: "ID Parameter required."}
	}
	if !IsUUIDv1(id) {
		return &ValidationError{Field: "id", Message: "Required UUID V1 format.", Value: id}
	}
	return nil
}
