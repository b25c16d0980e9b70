package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func validUser() *User {
	return &User{
		Name: "Jane Smith",
		DOB:  "1990-04-12",
		Address: Address{
			StreetAddress: "1 Main St",
			City:          "Melbourne",
			State:         "VIC",
			Country:       "Australia",
			Postal:        "3000",
		},
		Description: "regular",
	}
}

func TestIsUUIDv1(t *testing.T) {
	v1, err := uuid.NewUUID()
	if err != nil {
		t.Fatalf("Failed to generate v1 UUID: %v", err)
	}

	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"generated v1", v1.String(), true},
		{"upper case v1", strings.ToUpper(v1.String()), true},
		{"fixed v1", "c5b1a2e0-8f3d-11ee-b9d1-0242ac120002", true},
		{"v4", uuid.New().String(), false},
		{"version nibble 4", "c5b1a2e0-8f3d-41ee-b9d1-0242ac120002", false},
		{"non hex", "g5b1a2e0-8f3d-11ee-b9d1-0242ac120002", false},
		{"not a uuid", "not-a-uuid", false},
		{"missing group", "c5b1a2e0-8f3d-11ee-0242ac120002", false},
		{"trailing text", "c5b1a2e0-8f3d-11ee-b9d1-0242ac120002x", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUUIDv1(tt.id); got != tt.want {
				t.Errorf("IsUUIDv1(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	if err := ValidateID("c5b1a2e0-8f3d-11ee-b9d1-0242ac120002"); err != nil {
		t.Errorf("ValidateID() unexpected error: %v", err)
	}

	err := ValidateID("")
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Message != "ID Parameter required." {
		t.Errorf("ValidateID(\"\") = %v, want missing id error", err)
	}

	err = ValidateID("abc")
	if !errors.As(err, &ve) || ve.Value != "abc" {
		t.Errorf("ValidateID(\"abc\") = %v, want format error", err)
	}
}

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(u *User)
		wantField string
	}{
		{"valid", func(u *User) {}, ""},
		{"missing name", func(u *User) { u.Name = "" }, "name"},
		{"missing street", func(u *User) { u.Address.StreetAddress = "" }, "address.streetAddress"},
		{"missing city", func(u *User) { u.Address.City = "" }, "address.city"},
		{"missing state", func(u *User) { u.Address.State = "" }, "address.state"},
		{"missing country", func(u *User) { u.Address.Country = "" }, "address.country"},
		{"missing postal", func(u *User) { u.Address.Postal = "" }, "address.postal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUser()
			tt.mutate(u)
			err := u.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Validate() field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}

	var nilUser *User
	if err := nilUser.Validate(); err == nil {
		t.Error("Validate() on nil user should fail")
	}
}

func TestSecondaryStreet(t *testing.T) {
	blank := ""
	unit := "Unit 4"

	if got := (Address{}).SecondaryStreet(); got != nil {
		t.Errorf("SecondaryStreet() = %v, want nil for omitted line", *got)
	}
	if got := (Address{StreetAddress2: &blank}).SecondaryStreet(); got != nil {
		t.Errorf("SecondaryStreet() = %v, want nil for blank line", *got)
	}
	if got := (Address{StreetAddress2: &unit}).SecondaryStreet(); got == nil || *got != unit {
		t.Errorf("SecondaryStreet() = %v, want %q", got, unit)
	}
}
