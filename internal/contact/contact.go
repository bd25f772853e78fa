// Package contact implements the contact book: validated contacts kept in a
// JSON file that is re-read on every operation.
package contact

import (
	"encoding/json"
	"strings"

	"github.com/smileynet/recordkeep/internal/record"
)

var (
	emailPattern = record.NewPattern(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`, "invalid email format")
	phonePattern = record.NewPattern(`^\d{3}-\d{8}$`, "invalid phone number format")
)

// Contact is a person entry. Build it with New; decoding from JSON applies
// the same checks.
type Contact struct {
	Name        string `json:"name" jsonschema:"minLength=1,description=Display name"`
	Email       string `json:"email" jsonschema:"pattern=^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\\.[a-zA-Z0-9-.]+$"`
	PhoneNumber string `json:"phone_number" jsonschema:"pattern=^\\d{3}-\\d{8}$"`
}

// New validates name, email and phone and returns the contact. The name
// has no format but must not be blank.
// The error is a *record.ValidationError for the first failing field.
func New(name, email, phone string) (Contact, error) {
	if strings.TrimSpace(name) == "" {
		return Contact{}, &record.ValidationError{Field: "name", Value: name, Reason: "name must not be empty"}
	}
	if err := emailPattern.Check("email", email); err != nil {
		return Contact{}, err
	}
	if err := phonePattern.Check("phone_number", phone); err != nil {
		return Contact{}, err
	}
	return Contact{Name: name, Email: email, PhoneNumber: phone}, nil
}

// UnmarshalJSON decodes a contact and validates it like New.
func (c *Contact) UnmarshalJSON(data []byte) error {
	type plain Contact
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	v, err := New(p.Name, p.Email, p.PhoneNumber)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
